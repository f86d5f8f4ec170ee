package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		want    HSV
	}{
		{"red", 255, 0, 0, HSV{H: 0, S: 255, V: 255}},
		{"yellow", 255, 255, 0, HSV{H: 30, S: 255, V: 255}},
		{"green", 0, 255, 0, HSV{H: 60, S: 255, V: 255}},
		{"blue", 0, 0, 255, HSV{H: 120, S: 255, V: 255}},
		{"black", 0, 0, 0, HSV{H: 0, S: 0, V: 0}},
		{"gray", 128, 128, 128, HSV{H: 0, S: 0, V: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.want.H, h, 0.01)
			assert.InDelta(t, tt.want.S, s, 0.01)
			assert.InDelta(t, tt.want.V, v, 0.01)
		})
	}
}

func TestHSVToRGBRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 150, G: 75, B: 0, A: 255},
		{R: 128, G: 0, B: 255, A: 255},
		{R: 180, G: 159, B: 57, A: 255},
		{R: 20, G: 20, B: 20, A: 255},
	} {
		hsv := FromColor(c)
		got := HSVToRGB(hsv.H, hsv.S, hsv.V)
		assert.InDelta(t, float64(c.R), float64(got.R), 1, "R of %v", c)
		assert.InDelta(t, float64(c.G), float64(got.G), 1, "G of %v", c)
		assert.InDelta(t, float64(c.B), float64(got.B), 1, "B of %v", c)
	}
}

func TestHueDistanceWraps(t *testing.T) {
	assert.Equal(t, 10.0, HueDistance(175, 5))
	assert.Equal(t, 10.0, HueDistance(5, 175))
	assert.Equal(t, 90.0, HueDistance(0, 90))
}

func TestDistanceIgnoresHueOfGrays(t *testing.T) {
	a := HSV{H: 0, S: 0, V: 200}
	b := HSV{H: 90, S: 0, V: 200}
	assert.Zero(t, Distance(a, b))
	assert.Greater(t, Distance(HSV{H: 0, S: 255, V: 255}, HSV{H: 60, S: 255, V: 255}), 100.0)
}
