// Package config loads pipeline tunables from a YAML, TOML or JSON file.
//
// Every field is optional; anything left out keeps the value from
// pipeline.DefaultConfig. A palette "ranges" list replaces the whole
// classification table, since its order is the tie-break between
// overlapping ranges.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/pipeline"
	"resistor-reader/internal/segment"
	"resistor-reader/pkg/colorutil"
)

// Format is a config file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return "yaml"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return FormatYAML, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
}

// File mirrors the on-disk layout.
type File struct {
	Segment  *SegmentFile  `yaml:"segment" toml:"segment" json:"segment"`
	Sequence *SequenceFile `yaml:"sequence" toml:"sequence" json:"sequence"`
	Palette  *PaletteFile  `yaml:"palette" toml:"palette" json:"palette"`
}

// SegmentFile overrides segment.Params.
type SegmentFile struct {
	MinArea             *float64           `yaml:"min_area" toml:"min_area" json:"min_area"`
	BlurKernel          *int               `yaml:"blur_kernel" toml:"blur_kernel" json:"blur_kernel"`
	BorderWidth         *int               `yaml:"border_width" toml:"border_width" json:"border_width"`
	BackgroundTolerance *float64           `yaml:"background_tolerance" toml:"background_tolerance" json:"background_tolerance"`
	Mask                *segment.MaskMode  `yaml:"mask" toml:"mask" json:"mask"`
	Split               *segment.SplitMode `yaml:"split" toml:"split" json:"split"`
	SplitTolerance      *float64           `yaml:"split_tolerance" toml:"split_tolerance" json:"split_tolerance"`
	Axis                *segment.Axis      `yaml:"axis" toml:"axis" json:"axis"`
}

// SequenceFile overrides sequence.Params. The axis is shared with the
// segmenter and set there.
type SequenceFile struct {
	MergeOverlap  *float64 `yaml:"merge_overlap" toml:"merge_overlap" json:"merge_overlap"`
	BodyTolerance *float64 `yaml:"body_tolerance" toml:"body_tolerance" json:"body_tolerance"`
}

// PaletteFile overrides the color tables.
type PaletteFile struct {
	// Preset is "default" or "eia".
	Preset string `yaml:"preset" toml:"preset" json:"preset"`

	Ranges []RangeFile `yaml:"ranges" toml:"ranges" json:"ranges"`

	// Codes is keyed by color name.
	Codes map[string]int `yaml:"codes" toml:"codes" json:"codes"`

	// Tolerances and TempCos are keyed by code, written as a string
	// ("-1") so every format can express them.
	Tolerances map[string]float64 `yaml:"tolerances" toml:"tolerances" json:"tolerances"`
	TempCos    map[string]float64 `yaml:"tempcos" toml:"tempcos" json:"tempcos"`
}

// RangeFile is one classification entry as [h, s, v] bounds.
type RangeFile struct {
	Label bands.Label `yaml:"label" toml:"label" json:"label"`
	Lower [3]float64  `yaml:"lower" toml:"lower" json:"lower"`
	Upper [3]float64  `yaml:"upper" toml:"upper" json:"upper"`
}

// Load reads path and applies it over the default configuration.
func Load(path string) (pipeline.Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return pipeline.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data and applies it over the default configuration.
func Parse(data []byte, format Format) (pipeline.Config, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &f)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if err != nil && len(bytes.TrimSpace(data)) == 0 {
			err = nil
		}
	}
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("parse %s config: %w", format, err)
	}
	return f.Apply(pipeline.DefaultConfig())
}

// Apply overlays f on base and validates the result.
func (f File) Apply(base pipeline.Config) (pipeline.Config, error) {
	cfg := base

	if s := f.Segment; s != nil {
		setFloat(&cfg.Segment.MinArea, s.MinArea)
		setInt(&cfg.Segment.BlurKernel, s.BlurKernel)
		setInt(&cfg.Segment.BorderWidth, s.BorderWidth)
		setFloat(&cfg.Segment.BackgroundTolerance, s.BackgroundTolerance)
		setFloat(&cfg.Segment.SplitTolerance, s.SplitTolerance)
		if s.Mask != nil {
			cfg.Segment.Mask = *s.Mask
		}
		if s.Split != nil {
			cfg.Segment.Split = *s.Split
		}
		if s.Axis != nil {
			cfg = cfg.WithAxis(*s.Axis)
		}
	}

	if s := f.Sequence; s != nil {
		setFloat(&cfg.Sequence.MergeOverlap, s.MergeOverlap)
		setFloat(&cfg.Sequence.BodyTolerance, s.BodyTolerance)
	}

	if f.Palette != nil {
		pal, err := f.Palette.build(cfg.Palette)
		if err != nil {
			return pipeline.Config{}, fmt.Errorf("palette: %w", err)
		}
		cfg.Palette = pal
	}

	if err := cfg.Validate(); err != nil {
		return pipeline.Config{}, err
	}
	return cfg, nil
}

// build returns a new palette; base is never modified.
func (p *PaletteFile) build(base *bands.Palette) (*bands.Palette, error) {
	var pal *bands.Palette
	switch strings.ToLower(p.Preset) {
	case "":
		pal = clonePalette(base)
	case "default":
		pal = bands.DefaultPalette()
	case "eia":
		pal = bands.EIAPalette()
	default:
		return nil, fmt.Errorf("unknown preset %q", p.Preset)
	}

	if len(p.Ranges) > 0 {
		pal.Ranges = make([]bands.ColorRange, len(p.Ranges))
		for i, r := range p.Ranges {
			pal.Ranges[i] = bands.ColorRange{
				Label: r.Label,
				Lower: colorutil.HSV{H: r.Lower[0], S: r.Lower[1], V: r.Lower[2]},
				Upper: colorutil.HSV{H: r.Upper[0], S: r.Upper[1], V: r.Upper[2]},
			}
		}
	}

	for name, code := range p.Codes {
		l, err := bands.ParseLabel(name)
		if err != nil {
			return nil, fmt.Errorf("codes: %w", err)
		}
		pal.Codes[l] = code
	}

	if p.Tolerances != nil {
		t, err := codeTable(p.Tolerances)
		if err != nil {
			return nil, fmt.Errorf("tolerances: %w", err)
		}
		pal.Tolerances = t
	}
	if p.TempCos != nil {
		t, err := codeTable(p.TempCos)
		if err != nil {
			return nil, fmt.Errorf("tempcos: %w", err)
		}
		pal.TempCos = t
	}
	return pal, nil
}

func codeTable(in map[string]float64) (map[int]float64, error) {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		code, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("code %q is not an integer", k)
		}
		out[code] = v
	}
	return out, nil
}

func clonePalette(p *bands.Palette) *bands.Palette {
	if p == nil {
		return bands.DefaultPalette()
	}
	c := &bands.Palette{
		Ranges:     append([]bands.ColorRange(nil), p.Ranges...),
		Codes:      make(map[bands.Label]int, len(p.Codes)),
		Tolerances: make(map[int]float64, len(p.Tolerances)),
	}
	for k, v := range p.Codes {
		c.Codes[k] = v
	}
	for k, v := range p.Tolerances {
		c.Tolerances[k] = v
	}
	if p.TempCos != nil {
		c.TempCos = make(map[int]float64, len(p.TempCos))
		for k, v := range p.TempCos {
			c.TempCos[k] = v
		}
	}
	return c
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
