package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/pipeline"
	"resistor-reader/internal/segment"
	"resistor-reader/internal/synth"
)

const yamlConfig = `
segment:
  min_area: 800
  blur_kernel: 9
  axis: vertical
  split: none
sequence:
  merge_overlap: 0.3
  body_tolerance: 25
palette:
  preset: eia
  codes:
    grey: 8
  tolerances:
    "-1": 5
    "-2": 10
    "1": 1
`

const tomlConfig = `
[segment]
min_area = 800.0
blur_kernel = 9
axis = "y"
split = "none"

[sequence]
merge_overlap = 0.3
body_tolerance = 25.0

[palette]
preset = "eia"

[palette.tolerances]
"-1" = 5.0
"-2" = 10.0
"1" = 1.0
`

const jsonConfig = `{
  "segment": {"min_area": 800, "blur_kernel": 9, "axis": "y", "split": "none"},
  "sequence": {"merge_overlap": 0.3, "body_tolerance": 25},
  "palette": {"preset": "eia", "tolerances": {"-1": 5, "-2": 10, "1": 1}}
}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatYAML, yamlConfig},
		{FormatTOML, tomlConfig},
		{FormatJSON, jsonConfig},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, 800.0, cfg.Segment.MinArea)
			assert.Equal(t, 9, cfg.Segment.BlurKernel)
			assert.Equal(t, segment.SplitNone, cfg.Segment.Split)
			assert.Equal(t, segment.AxisY, cfg.Segment.Axis)
			assert.Equal(t, segment.AxisY, cfg.Sequence.Axis)
			assert.Equal(t, 0.3, cfg.Sequence.MergeOverlap)
			assert.Equal(t, 25.0, cfg.Sequence.BodyTolerance)

			// Untouched fields keep their defaults.
			def := pipeline.DefaultConfig()
			assert.Equal(t, def.Segment.BackgroundTolerance, cfg.Segment.BackgroundTolerance)
			assert.Equal(t, def.Palette.Ranges, cfg.Palette.Ranges)

			assert.Equal(t, map[int]float64{-1: 5, -2: 10, 1: 1}, cfg.Palette.Tolerances)
			assert.Equal(t, bands.EIATempCos(), cfg.Palette.TempCos)
		})
	}
}

func TestParseRanges(t *testing.T) {
	data := `
palette:
  ranges:
    - label: red
      lower: [0, 100, 100]
      upper: [10, 255, 255]
    - label: gold
      lower: [15, 100, 100]
      upper: [30, 255, 255]
`
	cfg, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	require.Len(t, cfg.Palette.Ranges, 2)
	assert.Equal(t, bands.Red, cfg.Palette.Ranges[0].Label)
	assert.Equal(t, 100.0, cfg.Palette.Ranges[0].Lower.S)
	assert.Equal(t, bands.Gold, cfg.Palette.Ranges[1].Label)
	assert.Equal(t, 30.0, cfg.Palette.Ranges[1].Upper.H)
}

func TestParseDoesNotMutateDefaults(t *testing.T) {
	_, err := Parse([]byte("palette:\n  codes:\n    gold: -3\n  tolerances:\n    \"-3\": 5\n"), FormatYAML)
	require.NoError(t, err)

	code, _ := bands.DefaultPalette().Code(bands.Gold)
	assert.Equal(t, -1, code)
}

func TestBrownToleranceOverride(t *testing.T) {
	data := `
palette:
  tolerances:
    "-1": 5
    "-2": 10
    "1": 5
`
	cfg, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, cfg.Palette.TempCos)

	reader, err := pipeline.New(cfg)
	require.NoError(t, err)

	labels := []bands.Label{bands.Orange, bands.Orange, bands.Black, bands.Gold, bands.Brown, bands.Red}
	r, err := reader.DecodeImage(synth.Resistor(labels, synth.DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, 33.0, r.Ohms)
	assert.Equal(t, "±5%", r.ToleranceString())
	assert.Equal(t, "2 ppm/°C", r.TempCoString())
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultConfig().Segment, cfg.Segment)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   string
	}{
		{"inverted range", FormatYAML, "palette:\n  ranges:\n    - {label: red, lower: [20, 0, 0], upper: [10, 255, 255]}\n", "hue lower 20 > upper 10"},
		{"unknown label", FormatYAML, "palette:\n  ranges:\n    - {label: magenta, lower: [0, 0, 0], upper: [1, 1, 1]}\n", "magenta"},
		{"unknown code label", FormatJSON, `{"palette": {"codes": {"teal": 3}}}`, "teal"},
		{"bad code key", FormatTOML, "[palette.tolerances]\nx = 5.0\n", "not an integer"},
		{"even blur", FormatTOML, "[segment]\nblur_kernel = 4\n", "blur kernel"},
		{"unknown preset", FormatJSON, `{"palette": {"preset": "jis"}}`, "unknown preset"},
		{"unknown field", FormatYAML, "segment:\n  min_areaa: 3\n", "min_areaa"},
		{"negative body tolerance", FormatYAML, "sequence:\n  body_tolerance: -1\n", "body tolerance"},
		{"bad axis", FormatJSON, `{"segment": {"axis": "z"}}`, "band axis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reader.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800.0, cfg.Segment.MinArea)

	_, err = Load(filepath.Join(dir, "reader.ini"))
	assert.ErrorContains(t, err, "unsupported config extension")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
