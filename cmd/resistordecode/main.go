// Command resistordecode reads resistor values from images.
//
// With one image it prints the reading; with several it decodes them in
// parallel and prints one line per image in argument order. -watch decodes
// every image written into a directory until interrupted.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"resistor-reader/internal/config"
	"resistor-reader/internal/log"
	"resistor-reader/internal/pipeline"
	"resistor-reader/internal/segment"
	"resistor-reader/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to resistor image (PNG, JPEG, TIFF or BMP); more may follow as arguments")
	configPath := flag.String("config", "", "Tunables file (.yaml, .toml or .json)")
	axis := flag.String("axis", "", "Band axis override: x or y")
	split := flag.String("split", "", "Region split override: none or profile")
	preset := flag.Bool("eia", false, "Use the EIA palette (replaces any palette from -config)")
	asJSON := flag.Bool("json", false, "Print JSON records")
	si := flag.Bool("si", false, "Print values with SI prefixes (4.7 kΩ)")
	watchDir := flag.String("watch", "", "Decode every image written into this directory")
	workers := flag.Int("workers", 0, "Parallel decodes for a batch (0 = one per CPU)")
	debug := flag.Bool("debug", false, "Debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("resistordecode"))
		return
	}

	paths := flag.Args()
	if *imagePath != "" {
		paths = append([]string{*imagePath}, paths...)
	}
	if len(paths) == 0 && *watchDir == "" {
		fmt.Println("Usage: resistordecode [-config file] [-json] [-si] [-watch dir] [-image] <image>...")
		os.Exit(1)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := loadConfig(*configPath, *axis, *split, *preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	reader, err := pipeline.New(cfg, pipeline.WithLogger(log.GetSugaredLogger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create reader: %v\n", err)
		os.Exit(1)
	}

	out := newPrinter(os.Stdout, *asJSON, *si)

	if *watchDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watch(ctx, reader, *watchDir, out); err != nil {
			log.Errorf("watch %s: %v", *watchDir, err)
			os.Exit(1)
		}
		return
	}

	outcomes, err := decodeAll(context.Background(), reader, paths, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, o := range outcomes {
		out.print(o, len(paths) > 1)
		if o.Err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(2)
	}
}

func loadConfig(path, axis, split string, eia bool) (pipeline.Config, error) {
	file := config.File{}
	cfg := pipeline.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return pipeline.Config{}, err
		}
	}

	if axis != "" {
		a, err := segment.ParseAxis(axis)
		if err != nil {
			return pipeline.Config{}, err
		}
		file.Segment = &config.SegmentFile{Axis: &a}
	}
	if split != "" {
		s, err := segment.ParseSplitMode(split)
		if err != nil {
			return pipeline.Config{}, err
		}
		if file.Segment == nil {
			file.Segment = &config.SegmentFile{}
		}
		file.Segment.Split = &s
	}
	if eia {
		file.Palette = &config.PaletteFile{Preset: "eia"}
	}
	return file.Apply(cfg)
}

// printer writes outcomes as text lines or JSON records.
type printer struct {
	enc  *json.Encoder
	w    io.Writer
	si   bool
	json bool
}

func newPrinter(w io.Writer, asJSON, si bool) *printer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &printer{enc: enc, w: w, si: si, json: asJSON}
}
