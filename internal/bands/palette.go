package bands

import (
	"fmt"
	"sort"

	"resistor-reader/pkg/colorutil"
)

// ColorRange maps a label to an inclusive HSV box.
type ColorRange struct {
	Label Label         `json:"label" yaml:"label" toml:"label"`
	Lower colorutil.HSV `json:"lower" yaml:"lower" toml:"lower"`
	Upper colorutil.HSV `json:"upper" yaml:"upper" toml:"upper"`
}

// Contains reports whether s lies inside the range on all three channels.
func (r ColorRange) Contains(s colorutil.HSV) bool {
	for i := 0; i < 3; i++ {
		v := s.Channel(i)
		if v < r.Lower.Channel(i) || v > r.Upper.Channel(i) {
			return false
		}
	}
	return true
}

// Validate checks that the bounds are channel-wise ordered.
func (r ColorRange) Validate() error {
	if !r.Label.Valid() {
		return fmt.Errorf("range has invalid label %d", int(r.Label))
	}
	for i, ch := range []string{"hue", "saturation", "value"} {
		if r.Lower.Channel(i) > r.Upper.Channel(i) {
			return fmt.Errorf("%s range: %s lower %.0f > upper %.0f",
				r.Label, ch, r.Lower.Channel(i), r.Upper.Channel(i))
		}
	}
	return nil
}

// Palette holds the read-only tables used to classify and decode bands.
// A Palette is built once and shared by pointer; nothing mutates it after
// construction.
type Palette struct {
	// Ranges is tested first to last; the first match wins.
	Ranges []ColorRange

	// Codes maps each label to its digit. Negative codes are multiplier /
	// tolerance-only colors and never significant figures.
	Codes map[Label]int

	// Tolerances maps a code to its ± percentage.
	Tolerances map[int]float64

	// TempCos maps a code to ppm/°C. Nil means the raw code is reported.
	TempCos map[int]float64
}

func hsv(h, s, v float64) colorutil.HSV {
	return colorutil.HSV{H: h, S: s, V: v}
}

// DefaultRanges returns the classification table in priority order.
//
// Gold and silver come before brown and gray because their boxes sit almost
// entirely inside those; with the broader ranges first they could never match.
// Red owns a second box for the hue wrap at the top of the scale.
func DefaultRanges() []ColorRange {
	return []ColorRange{
		{Black, hsv(0, 0, 0), hsv(180, 255, 50)},
		{Silver, hsv(0, 0, 150), hsv(180, 20, 200)},
		{Gold, hsv(20, 150, 100), hsv(30, 200, 200)},
		{Brown, hsv(10, 100, 20), hsv(20, 255, 200)},
		{Red, hsv(0, 150, 50), hsv(10, 255, 255)},
		{Red, hsv(170, 150, 50), hsv(180, 255, 255)},
		{Orange, hsv(10, 200, 200), hsv(25, 255, 255)},
		{Yellow, hsv(25, 200, 200), hsv(35, 255, 255)},
		{Green, hsv(35, 100, 100), hsv(85, 255, 255)},
		{Blue, hsv(85, 150, 50), hsv(125, 255, 255)},
		{Violet, hsv(125, 50, 100), hsv(145, 255, 255)},
		{Gray, hsv(0, 0, 50), hsv(180, 50, 200)},
		{White, hsv(0, 0, 200), hsv(180, 30, 255)},
	}
}

// DefaultCodes returns the standard digit table; gold and silver carry the
// negative codes -1 and -2.
func DefaultCodes() map[Label]int {
	return map[Label]int{
		Black:  0,
		Brown:  1,
		Red:    2,
		Orange: 3,
		Yellow: 4,
		Green:  5,
		Blue:   6,
		Violet: 7,
		Gray:   8,
		White:  9,
		Gold:   -1,
		Silver: -2,
	}
}

// DefaultTolerances only defines the tolerance-only codes.
func DefaultTolerances() map[int]float64 {
	return map[int]float64{
		-1: 5,
		-2: 10,
	}
}

// EIATolerances is the full EIA-96 tolerance column.
func EIATolerances() map[int]float64 {
	return map[int]float64{
		1:  1,
		2:  2,
		5:  0.5,
		6:  0.25,
		7:  0.1,
		8:  0.05,
		-1: 5,
		-2: 10,
	}
}

// EIATempCos is the temperature coefficient column in ppm/°C.
func EIATempCos() map[int]float64 {
	return map[int]float64{
		0: 250,
		1: 100,
		2: 50,
		3: 15,
		4: 25,
		5: 20,
		6: 10,
		7: 5,
		8: 1,
	}
}

// DefaultPalette returns the tables used when nothing is configured.
func DefaultPalette() *Palette {
	return &Palette{
		Ranges:     DefaultRanges(),
		Codes:      DefaultCodes(),
		Tolerances: DefaultTolerances(),
	}
}

// EIAPalette is DefaultPalette with the EIA tolerance and tempco tables.
func EIAPalette() *Palette {
	p := DefaultPalette()
	p.Tolerances = EIATolerances()
	p.TempCos = EIATempCos()
	return p
}

// Code looks up the digit for l.
func (p *Palette) Code(l Label) (int, bool) {
	c, ok := p.Codes[l]
	return c, ok
}

// Tolerance looks up the ± percentage for a code.
func (p *Palette) Tolerance(code int) (float64, bool) {
	t, ok := p.Tolerances[code]
	return t, ok
}

// TempCo looks up the temperature coefficient for a digit code. Without a
// TempCos table the code itself is the coefficient.
func (p *Palette) TempCo(code int) (float64, bool) {
	if code < 0 || code > 9 {
		return 0, false
	}
	if p.TempCos == nil {
		return float64(code), true
	}
	tc, ok := p.TempCos[code]
	return tc, ok
}

// Validate checks every range and that each range label has a code.
func (p *Palette) Validate() error {
	if len(p.Ranges) == 0 {
		return fmt.Errorf("palette has no color ranges")
	}
	for i, r := range p.Ranges {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("range %d: %w", i, err)
		}
		if _, ok := p.Codes[r.Label]; !ok {
			return fmt.Errorf("range %d: no code for %s", i, r.Label)
		}
	}
	if len(p.Tolerances) == 0 {
		return fmt.Errorf("palette has no tolerance table")
	}
	return nil
}

// ToleranceLabels lists the labels that may occupy a tolerance position.
func (p *Palette) ToleranceLabels() []Label {
	var out []Label
	for l, c := range p.Codes {
		if _, ok := p.Tolerances[c]; ok {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
