// Command bandsynth writes a synthetic resistor image for a band list,
// e.g. "bandsynth -out 4k7.png yellow violet red gold".
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/synth"
)

func main() {
	out := flag.String("out", "resistor.png", "Output file (.png, .tif/.tiff or .bmp)")
	colors := flag.String("colors", "", "Comma-separated band colors; positional arguments also work")
	vertical := flag.Bool("vertical", false, "Draw the resistor vertically")
	width := flag.Int("width", 0, "Image width before rotation (default 480)")
	height := flag.Int("height", 0, "Image height before rotation (default 160)")
	flag.Parse()

	names := flag.Args()
	if *colors != "" {
		names = append(strings.Split(*colors, ","), names...)
	}

	labels, err := bands.ParseLabels(names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	opts := synth.DefaultOptions()
	opts.Vertical = *vertical
	if *width > 0 {
		opts.Width = *width
	}
	if *height > 0 {
		opts.Height = *height
	}

	if err := write(*out, synth.Resistor(labels, opts)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d-band resistor to %s\n", len(labels), *out)
}

func write(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
