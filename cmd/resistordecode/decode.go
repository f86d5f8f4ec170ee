package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"resistor-reader/internal/decode"
	"resistor-reader/internal/log"
	"resistor-reader/internal/pipeline"
	"resistor-reader/internal/report"
)

// outcome is the result of decoding one file. Err holds both load and
// decode failures so one bad file does not stop a batch.
type outcome struct {
	Path    string
	Reading decode.Reading
	Err     error
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func decodeFile(reader *pipeline.Reader, path string) outcome {
	img, err := loadImage(path)
	if err != nil {
		return outcome{Path: path, Err: err}
	}
	r, err := reader.DecodeImage(img)
	if err != nil {
		log.Debugw("decode failed", "path", path, "error", err)
	} else {
		log.Debugw("decoded", "path", path, "bands", report.Bands(r.Bands))
	}
	return outcome{Path: path, Reading: r, Err: err}
}

// decodeAll decodes paths concurrently with at most workers in flight
// (one per CPU when workers <= 0). Outcomes keep the order of paths.
func decodeAll(ctx context.Context, reader *pipeline.Reader, paths []string, workers int) ([]outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]outcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = decodeFile(reader, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (p *printer) print(o outcome, withSource bool) {
	if p.json {
		if err := p.enc.Encode(report.NewRecord(o.Path, o.Reading, o.Err)); err != nil {
			log.Errorf("failed to write record: %v", err)
		}
		return
	}

	if withSource {
		fmt.Fprintln(p.w, report.Line(o.Path, o.Reading, o.Err, p.si))
		return
	}
	switch {
	case o.Err != nil:
		fmt.Fprintln(p.w, report.ErrorText(o.Err))
	case p.si:
		fmt.Fprintln(p.w, report.SI(o.Reading))
	default:
		fmt.Fprintln(p.w, report.Text(o.Reading))
	}
}
