package decode

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resistor-reader/internal/bands"
)

var digits = []bands.Label{
	bands.Black, bands.Brown, bands.Red, bands.Orange, bands.Yellow,
	bands.Green, bands.Blue, bands.Violet, bands.Gray, bands.White,
}

var multipliers = append(append([]bands.Label(nil), digits...), bands.Gold, bands.Silver)

func expected(sig, exp int) float64 {
	if exp >= 0 {
		return float64(sig) * math.Pow10(exp)
	}
	return float64(sig) / math.Pow10(-exp)
}

func TestDecodeSixBandBrownTolerance(t *testing.T) {
	labels := []bands.Label{bands.Orange, bands.Orange, bands.Black, bands.Gold, bands.Brown, bands.Red}

	// Brown has no tolerance in the default tables.
	_, err := Decode(labels, nil)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnsupportedColorForPosition, de.Kind)
	assert.Equal(t, 4, de.Position)
	assert.Equal(t, RoleTolerance, de.Role)
	assert.Equal(t, bands.Brown, de.Label)

	// With brown mapped to 5% and no tempco table the raw code is reported.
	pal := bands.DefaultPalette()
	pal.Tolerances[1] = 5
	r, err := Decode(labels, pal)
	require.NoError(t, err)
	assert.Equal(t, 33.0, r.Ohms)
	assert.Equal(t, "±5%", r.ToleranceString())
	assert.True(t, r.HasTempCo())
	assert.Equal(t, "2 ppm/°C", r.TempCoString())
}

func TestDecodeScenarios(t *testing.T) {
	tests := []struct {
		name    string
		labels  []bands.Label
		palette *bands.Palette
		ohms    float64
		tol     string
		tempco  string
	}{
		{
			name:   "4 band yellow violet red gold",
			labels: []bands.Label{bands.Yellow, bands.Violet, bands.Red, bands.Gold},
			ohms:   4700,
			tol:    "±5%",
		},
		{
			name:   "5 band brown black black brown gold",
			labels: []bands.Label{bands.Brown, bands.Black, bands.Black, bands.Brown, bands.Gold},
			ohms:   1000,
			tol:    "±5%",
		},
		{
			name:   "6 band with gold tolerance",
			labels: []bands.Label{bands.Orange, bands.Orange, bands.Black, bands.Gold, bands.Gold, bands.Red},
			ohms:   33,
			tol:    "±5%",
			tempco: "2 ppm/°C",
		},
		{
			name:    "6 band brown tolerance with EIA tables",
			labels:  []bands.Label{bands.Orange, bands.Orange, bands.Black, bands.Gold, bands.Brown, bands.Red},
			palette: bands.EIAPalette(),
			ohms:    33,
			tol:     "±1%",
			tempco:  "50 ppm/°C",
		},
		{
			name:   "silver multiplier and tolerance",
			labels: []bands.Label{bands.Green, bands.Blue, bands.Silver, bands.Silver},
			ohms:   0.56,
			tol:    "±10%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Decode(tt.labels, tt.palette)
			require.NoError(t, err)
			assert.Equal(t, tt.ohms, r.Ohms)
			assert.Equal(t, tt.tol, r.ToleranceString())
			assert.Equal(t, tt.labels, r.Bands)
			if tt.tempco != "" {
				assert.True(t, r.HasTempCo())
				assert.Equal(t, tt.tempco, r.TempCoString())
			} else {
				assert.False(t, r.HasTempCo())
			}
		})
	}
}

// Brown has no tolerance in the default tables.
func TestDecodeBrownToleranceRejectedByDefault(t *testing.T) {
	labels := []bands.Label{bands.Orange, bands.Orange, bands.Black, bands.Gold, bands.Brown, bands.Red}
	_, err := Decode(labels, nil)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnsupportedColorForPosition, de.Kind)
	assert.Equal(t, 4, de.Position)
	assert.Equal(t, RoleTolerance, de.Role)
	assert.Equal(t, bands.Brown, de.Label)
}

func TestDecodeFourBandFormula(t *testing.T) {
	pal := bands.DefaultPalette()
	for _, tol := range []bands.Label{bands.Gold, bands.Silver} {
		tolCode, _ := pal.Code(tol)
		wantTol, _ := pal.Tolerance(tolCode)
		for d0i, d0 := range digits {
			for d1i, d1 := range digits {
				for _, m := range multipliers {
					exp, _ := pal.Code(m)
					r, err := Decode([]bands.Label{d0, d1, m, tol}, pal)
					require.NoError(t, err)
					require.Equal(t, expected(d0i*10+d1i, exp), r.Ohms, "%v %v %v %v", d0, d1, m, tol)
					require.Equal(t, wantTol, r.Tolerance)
				}
			}
		}
	}
}

func TestDecodeFiveAndSixBandFormula(t *testing.T) {
	pal := bands.DefaultPalette()
	for d0i, d0 := range digits {
		for d1i, d1 := range digits {
			for d2i, d2 := range digits {
				for _, m := range multipliers {
					exp, _ := pal.Code(m)
					want := expected(d0i*100+d1i*10+d2i, exp)

					r, err := Decode([]bands.Label{d0, d1, d2, m, bands.Gold}, pal)
					require.NoError(t, err)
					require.Equal(t, want, r.Ohms)

					tc := digits[(d0i+d1i+d2i)%10]
					r6, err := Decode([]bands.Label{d0, d1, d2, m, bands.Silver, tc}, pal)
					require.NoError(t, err)
					require.Equal(t, want, r6.Ohms)
					require.Equal(t, 10.0, r6.Tolerance)
					require.Equal(t, float64((d0i+d1i+d2i)%10), r6.TempCo)
				}
			}
		}
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	labels := []bands.Label{bands.Red, bands.Red, bands.Orange, bands.Gold}
	a, errA := Decode(labels, nil)
	b, errB := Decode(labels, nil)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
	assert.Equal(t, math.Float64bits(a.Ohms), math.Float64bits(b.Ohms))

	// The reading does not alias the caller's slice.
	labels[0] = bands.Blue
	assert.Equal(t, bands.Red, a.Bands[0])
}

func TestDecodeInvalidBandCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 8} {
		labels := make([]bands.Label, n)
		for i := range labels {
			labels[i] = bands.Gold
		}
		_, err := Decode(labels, nil)
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, ErrInvalidBandCount), "n=%d", n)

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, n, de.Count)
	}
}

func TestDecodeUnsupportedColorForPosition(t *testing.T) {
	tests := []struct {
		name     string
		labels   []bands.Label
		position int
		role     Role
		label    bands.Label
	}{
		{
			name:     "gold as first digit",
			labels:   []bands.Label{bands.Gold, bands.Black, bands.Red, bands.Gold},
			position: 0,
			role:     RoleDigit,
			label:    bands.Gold,
		},
		{
			name:     "silver as third digit of five",
			labels:   []bands.Label{bands.Red, bands.Red, bands.Silver, bands.Black, bands.Gold},
			position: 2,
			role:     RoleDigit,
			label:    bands.Silver,
		},
		{
			name:     "digit color as tolerance",
			labels:   []bands.Label{bands.Red, bands.Red, bands.Red, bands.Red},
			position: 3,
			role:     RoleTolerance,
			label:    bands.Red,
		},
		{
			name:     "gold as temperature coefficient",
			labels:   []bands.Label{bands.Red, bands.Red, bands.Red, bands.Red, bands.Gold, bands.Gold},
			position: 5,
			role:     RoleTempCo,
			label:    bands.Gold,
		},
		{
			name:     "label outside the color set",
			labels:   []bands.Label{bands.Label(42), bands.Red, bands.Red, bands.Gold},
			position: 0,
			role:     RoleDigit,
			label:    bands.Label(42),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.labels, nil)
			require.True(t, errors.Is(err, ErrUnsupportedColorForPosition))

			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.position, de.Position)
			assert.Equal(t, tt.role, de.Role)
			assert.Equal(t, tt.label, de.Label)
			assert.NotEmpty(t, de.Error())
		})
	}
}

func TestDecodeMissingCode(t *testing.T) {
	pal := bands.DefaultPalette()
	delete(pal.Codes, bands.White)
	_, err := Decode([]bands.Label{bands.White, bands.Red, bands.Red, bands.Gold}, pal)
	assert.ErrorIs(t, err, ErrUnsupportedColorForPosition)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "no bands detected", (&Error{Kind: NoBandsDetected}).Error())
	assert.Equal(t, "invalid band count 3 (want 4, 5 or 6)", (&Error{Kind: InvalidBandCount, Count: 3}).Error())
	assert.Equal(t, "gold is not a valid digit color (band 1)",
		(&Error{Kind: UnsupportedColorForPosition, Role: RoleDigit, Label: bands.Gold}).Error())
	assert.Equal(t, "2 unrecognized regions left only 3 bands",
		(&Error{Kind: UnrecognizedColor, Count: 3, Unrecognized: 2}).Error())
	assert.False(t, errors.Is(&Error{Kind: NoBandsDetected}, ErrInvalidBandCount))
	assert.Equal(t, "UnsupportedColorForPosition", UnsupportedColorForPosition.String())
}
