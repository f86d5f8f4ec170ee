// Package bands defines the resistor color labels, the read-only lookup
// tables that give them meaning, and the ordered HSV classifier.
package bands

import (
	"fmt"
	"strings"
)

// Label is one of the fixed resistor band colors.
type Label int

const (
	Black Label = iota
	Brown
	Red
	Orange
	Yellow
	Green
	Blue
	Violet
	Gray
	White
	Gold
	Silver

	numLabels
)

var labelNames = [numLabels]string{
	Black:  "black",
	Brown:  "brown",
	Red:    "red",
	Orange: "orange",
	Yellow: "yellow",
	Green:  "green",
	Blue:   "blue",
	Violet: "violet",
	Gray:   "gray",
	White:  "white",
	Gold:   "gold",
	Silver: "silver",
}

// Labels returns every label in code order.
func Labels() []Label {
	out := make([]Label, numLabels)
	for i := range out {
		out[i] = Label(i)
	}
	return out
}

// Valid reports whether l is one of the defined labels.
func (l Label) Valid() bool {
	return l >= 0 && l < numLabels
}

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel parses a color name, case-insensitively. "grey" and "purple"
// are accepted as aliases.
func ParseLabel(s string) (Label, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "grey":
		return Gray, nil
	case "purple":
		return Violet, nil
	}
	for i, n := range labelNames {
		if n == name {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// ParseLabels parses a list of color names.
func ParseLabels(names []string) ([]Label, error) {
	out := make([]Label, 0, len(names))
	for _, n := range names {
		l, err := ParseLabel(n)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
