// Command bandinspect runs the band pipeline on one image and prints every
// intermediate result: parameters, regions, classified bands and the verdict.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/config"
	"resistor-reader/internal/log"
	"resistor-reader/internal/pipeline"
	"resistor-reader/internal/report"
)

func main() {
	imagePath := flag.String("image", "", "Path to resistor image (PNG, JPEG, TIFF or BMP)")
	configPath := flag.String("config", "", "Tunables file (.yaml, .toml or .json)")
	debug := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	if *imagePath == "" && flag.NArg() > 0 {
		*imagePath = flag.Arg(0)
	}
	if *imagePath == "" {
		fmt.Println("Usage: bandinspect -image <path> [-config file]")
		os.Exit(1)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := pipeline.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())
	printParams(os.Stdout, cfg)

	reader, err := pipeline.New(cfg, pipeline.WithLogger(log.GetSugaredLogger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create reader: %v\n", err)
		os.Exit(1)
	}

	res, err := reader.Inspect(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inspection failed: %v\n", err)
		os.Exit(1)
	}
	printResult(os.Stdout, reader.Config().Palette, res)
}

func printParams(w io.Writer, cfg pipeline.Config) {
	s := cfg.Segment
	fmt.Fprintf(w, "\nSegmentation parameters:\n")
	fmt.Fprintf(w, "  Blur kernel: %d  Min area: %.0f\n", s.BlurKernel, s.MinArea)
	fmt.Fprintf(w, "  Mask: %s (border %d px, tolerance %.0f)\n", s.Mask, s.BorderWidth, s.BackgroundTolerance)
	fmt.Fprintf(w, "  Split: %s (tolerance %.0f)  Axis: %s\n", s.Split, s.SplitTolerance, s.Axis)
	fmt.Fprintf(w, "  Merge overlap: %.2f  Body tolerance: %.0f\n", cfg.Sequence.MergeOverlap, cfg.Sequence.BodyTolerance)
}

func printResult(w io.Writer, pal *bands.Palette, res *pipeline.Result) {
	classifier := bands.NewClassifier(pal)

	fmt.Fprintf(w, "\nDetected %d regions:\n", len(res.Regions))
	fmt.Fprintf(w, "%-4s %20s %10s %20s %10s\n", "#", "Bounds", "Area", "HSV", "Color")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	for i, r := range res.Regions {
		name := "?"
		if l, ok := classifier.Classify(r.Sample); ok {
			name = l.String()
		}
		fmt.Fprintf(w, "%-4d %20s %10.0f %20s %10s\n", i, r.Bounds.Rectangle(),
			r.Area, fmt.Sprintf("(%.0f,%.0f,%.0f)", r.Sample.H, r.Sample.S, r.Sample.V), name)
	}

	seq := res.Sequence
	fmt.Fprintf(w, "\nBands: %d (unrecognized %d, body %d, merged %d)\n", len(seq.Bands), seq.Unrecognized, seq.Body, seq.Merged)
	for _, b := range seq.Bands {
		fmt.Fprintf(w, "  %d: %-7s %s\n", b.Position, b.Label, b.Region.Bounds.Rectangle())
	}

	if res.Err != nil {
		fmt.Fprintf(w, "\nResult: %s\n", report.ErrorText(res.Err))
		return
	}
	fmt.Fprintf(w, "\nResult: %s (%s)\n", report.Text(res.Reading), report.SI(res.Reading))
}
