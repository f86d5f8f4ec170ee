package pipeline

import (
	"fmt"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/segment"
	"resistor-reader/internal/sequence"
)

// Config is the full read-only configuration of a Reader.
type Config struct {
	Palette  *bands.Palette
	Segment  segment.Params
	Sequence sequence.Params
}

// DefaultConfig returns the stock tables and thresholds.
func DefaultConfig() Config {
	return Config{
		Palette:  bands.DefaultPalette(),
		Segment:  segment.DefaultParams(),
		Sequence: sequence.DefaultParams(),
	}
}

// Validate checks every part of the configuration. The band axis must
// agree between the segmenter and the sequencer.
func (c Config) Validate() error {
	if c.Palette == nil {
		return fmt.Errorf("no palette")
	}
	if err := c.Palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if err := c.Segment.Validate(); err != nil {
		return fmt.Errorf("segment: %w", err)
	}
	if err := c.Sequence.Validate(); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}
	if c.Segment.Axis != c.Sequence.Axis {
		return fmt.Errorf("band axis mismatch: segment %s, sequence %s", c.Segment.Axis, c.Sequence.Axis)
	}
	return nil
}

// WithAxis returns a copy of c with the band axis set in both stages.
func (c Config) WithAxis(a segment.Axis) Config {
	c.Segment.Axis = a
	c.Sequence.Axis = a
	return c
}
