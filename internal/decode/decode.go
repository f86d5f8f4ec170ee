// Package decode turns an ordered list of band colors into a resistance reading.
package decode

import (
	"math"
	"strconv"

	"resistor-reader/internal/bands"
)

// Reading is a decoded resistor value.
type Reading struct {
	Ohms      float64       `json:"ohms"`
	Tolerance float64       `json:"tolerance_percent"`
	TempCo    float64       `json:"tempco_ppm,omitempty"`
	Bands     []bands.Label `json:"bands"`
}

// HasTempCo reports whether the reading came from a 6-band resistor.
func (r Reading) HasTempCo() bool {
	return len(r.Bands) == 6
}

// ToleranceString renders the tolerance as "±5%".
func (r Reading) ToleranceString() string {
	return "±" + strconv.FormatFloat(r.Tolerance, 'f', -1, 64) + "%"
}

// TempCoString renders the temperature coefficient as "50 ppm/°C".
func (r Reading) TempCoString() string {
	return strconv.FormatFloat(r.TempCo, 'f', -1, 64) + " ppm/°C"
}

// layouts gives the role of each position for every supported band count.
var layouts = map[int][]Role{
	4: {RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance},
	5: {RoleDigit, RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance},
	6: {RoleDigit, RoleDigit, RoleDigit, RoleMultiplier, RoleTolerance, RoleTempCo},
}

// Decode validates and decodes a band sequence against pal. A nil palette
// uses bands.DefaultPalette. It returns *Error for every malformed input.
func Decode(labels []bands.Label, pal *bands.Palette) (Reading, error) {
	if pal == nil {
		pal = bands.DefaultPalette()
	}

	roles, ok := layouts[len(labels)]
	if !ok {
		return Reading{}, &Error{Kind: InvalidBandCount, Count: len(labels)}
	}

	var (
		significand int
		exponent    int
		reading     Reading
	)
	for pos, role := range roles {
		label := labels[pos]
		unsupported := &Error{Kind: UnsupportedColorForPosition, Position: pos, Role: role, Label: label}

		code, ok := pal.Code(label)
		if !ok {
			return Reading{}, unsupported
		}

		switch role {
		case RoleDigit:
			if code < 0 || code > 9 {
				return Reading{}, unsupported
			}
			significand = significand*10 + code
		case RoleMultiplier:
			exponent = code
		case RoleTolerance:
			tol, ok := pal.Tolerance(code)
			if !ok {
				return Reading{}, unsupported
			}
			reading.Tolerance = tol
		case RoleTempCo:
			tc, ok := pal.TempCo(code)
			if !ok {
				return Reading{}, unsupported
			}
			reading.TempCo = tc
		}
	}

	reading.Ohms = scale(significand, exponent)
	reading.Bands = append([]bands.Label(nil), labels...)
	return reading, nil
}

// scale returns sig * 10^exp. Negative exponents divide, which keeps
// 330 * 10^-1 at exactly 33.
func scale(sig, exp int) float64 {
	if exp >= 0 {
		return float64(sig) * math.Pow10(exp)
	}
	return float64(sig) / math.Pow10(-exp)
}
