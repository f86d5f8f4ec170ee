// Package segment finds roughly uniform color regions in a resistor image.
package segment

import (
	"fmt"
	"strings"

	"resistor-reader/pkg/colorutil"
	"resistor-reader/pkg/geometry"
)

// Region is one candidate band: its bounding box, pixel area and mean HSV
// color. Regions are produced per image and not retained.
type Region struct {
	Bounds geometry.RectInt `json:"bounds"`
	Area   float64          `json:"area"`
	Sample colorutil.HSV    `json:"sample"`
}

// Axis is the image direction along which bands are laid out.
type Axis int

const (
	// AxisX means bands are vertical stripes ordered left to right.
	AxisX Axis = iota
	// AxisY means bands are horizontal stripes ordered top to bottom.
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Horizontal reports whether bands are ordered along X.
func (a Axis) Horizontal() bool {
	return a != AxisY
}

// ParseAxis accepts "x"/"horizontal" or "y"/"vertical".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "horizontal", "":
		return AxisX, nil
	case "y", "vertical":
		return AxisY, nil
	}
	return AxisX, fmt.Errorf("unknown band axis %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// MaskMode selects how the foreground mask is built.
type MaskMode int

const (
	// MaskForeground keeps pixels that differ from the estimated background.
	MaskForeground MaskMode = iota
	// MaskFull treats the whole frame as foreground.
	MaskFull
)

func (m MaskMode) String() string {
	if m == MaskFull {
		return "full"
	}
	return "foreground"
}

// ParseMaskMode accepts "foreground" or "full".
func ParseMaskMode(s string) (MaskMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "foreground", "":
		return MaskForeground, nil
	case "full":
		return MaskFull, nil
	}
	return MaskForeground, fmt.Errorf("unknown mask mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MaskMode) UnmarshalText(text []byte) error {
	v, err := ParseMaskMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m MaskMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// SplitMode selects whether contours are split into per-band runs.
type SplitMode int

const (
	// SplitNone yields one region per contour.
	SplitNone SplitMode = iota
	// SplitProfile cuts each contour into runs of uniform color along the band axis.
	SplitProfile
)

func (s SplitMode) String() string {
	if s == SplitProfile {
		return "profile"
	}
	return "none"
}

// ParseSplitMode accepts "none" or "profile".
func ParseSplitMode(s string) (SplitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SplitNone, nil
	case "profile":
		return SplitProfile, nil
	}
	return SplitNone, fmt.Errorf("unknown split mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SplitMode) UnmarshalText(text []byte) error {
	v, err := ParseSplitMode(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SplitMode) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
