// Package pipeline composes segmentation, classification, sequencing and
// decoding into a single image-in, reading-out call.
package pipeline

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/decode"
	"resistor-reader/internal/segment"
	"resistor-reader/internal/sequence"
)

// minBands is the shortest sequence the decoder accepts.
const minBands = 4

// Reader decodes resistor images. It holds only read-only configuration
// and is safe for concurrent use by any number of goroutines.
type Reader struct {
	cfg        Config
	classifier *bands.Classifier
	log        *zap.SugaredLogger
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// New builds a Reader after validating cfg.
func New(cfg Config, opts ...Option) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	r := &Reader{
		cfg:        cfg,
		classifier: bands.NewClassifier(cfg.Palette),
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the reader's configuration.
func (r *Reader) Config() Config {
	return r.cfg
}

// Result holds every intermediate product of one decode, for diagnostics.
type Result struct {
	Regions  []segment.Region
	Sequence sequence.Result
	Reading  decode.Reading
	Err      error
}

// DecodeImage runs the full pipeline on one image. Domain failures come
// back as *decode.Error; anything else is an infrastructure error.
func (r *Reader) DecodeImage(img image.Image) (decode.Reading, error) {
	res, err := r.Inspect(img)
	if err != nil {
		return decode.Reading{}, err
	}
	return res.Reading, res.Err
}

// Inspect runs the pipeline and keeps the intermediate results. The
// returned error is only set when segmentation itself fails; the decode
// outcome is in Result.Err.
func (r *Reader) Inspect(img image.Image) (*Result, error) {
	regions, err := segment.Segment(img, r.cfg.Segment)
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}
	r.log.Debugw("segmented", "regions", len(regions))

	seq := sequence.Sequence(regions, r.classifier, r.cfg.Sequence)
	r.log.Debugw("sequenced",
		"bands", seq.Labels(),
		"unrecognized", seq.Unrecognized,
		"body", seq.Body,
		"merged", seq.Merged)

	res := &Result{Regions: regions, Sequence: seq}
	res.Reading, res.Err = r.decodeSequence(seq)
	if res.Err != nil {
		r.log.Debugw("decode failed", "error", res.Err)
	} else {
		r.log.Debugw("decoded", "ohms", res.Reading.Ohms, "tolerance", res.Reading.Tolerance)
	}
	return res, nil
}

// decodeSequence applies the empty/unrecognized checks before handing the
// labels to the decoder.
func (r *Reader) decodeSequence(seq sequence.Result) (decode.Reading, error) {
	n := len(seq.Bands)
	switch {
	case n == 0:
		return decode.Reading{}, &decode.Error{Kind: decode.NoBandsDetected, Unrecognized: seq.Unrecognized}
	case n < minBands && seq.Unrecognized > 0:
		return decode.Reading{}, &decode.Error{Kind: decode.UnrecognizedColor, Count: n, Unrecognized: seq.Unrecognized}
	}
	return decode.Decode(seq.Labels(), r.cfg.Palette)
}

// DecodeImage decodes img with the default configuration.
func DecodeImage(img image.Image) (decode.Reading, error) {
	r, err := New(DefaultConfig())
	if err != nil {
		return decode.Reading{}, err
	}
	return r.DecodeImage(img)
}
