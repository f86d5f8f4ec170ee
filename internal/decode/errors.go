package decode

import (
	"fmt"

	"resistor-reader/internal/bands"
)

// Kind classifies a decode failure.
type Kind int

const (
	// NoBandsDetected means segmentation and classification produced no bands.
	NoBandsDetected Kind = iota + 1
	// InvalidBandCount means the sequence length is not 4, 5 or 6.
	InvalidBandCount
	// UnsupportedColorForPosition means a label cannot occupy its position.
	UnsupportedColorForPosition
	// UnrecognizedColor means unclassifiable regions left too few bands.
	UnrecognizedColor
)

func (k Kind) String() string {
	switch k {
	case NoBandsDetected:
		return "NoBandsDetected"
	case InvalidBandCount:
		return "InvalidBandCount"
	case UnsupportedColorForPosition:
		return "UnsupportedColorForPosition"
	case UnrecognizedColor:
		return "UnrecognizedColor"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. They compare by Kind only.
var (
	ErrNoBandsDetected             = &Error{Kind: NoBandsDetected}
	ErrInvalidBandCount            = &Error{Kind: InvalidBandCount}
	ErrUnsupportedColorForPosition = &Error{Kind: UnsupportedColorForPosition}
	ErrUnrecognizedColor           = &Error{Kind: UnrecognizedColor}
)

// Role names what a band position encodes.
type Role int

const (
	RoleDigit Role = iota
	RoleMultiplier
	RoleTolerance
	RoleTempCo
)

func (r Role) String() string {
	switch r {
	case RoleDigit:
		return "digit"
	case RoleMultiplier:
		return "multiplier"
	case RoleTolerance:
		return "tolerance"
	case RoleTempCo:
		return "temperature coefficient"
	default:
		return "unknown"
	}
}

// Error is a structured decode failure. The fields that apply depend on Kind:
// Count for InvalidBandCount and UnrecognizedColor, Position/Role/Label for
// UnsupportedColorForPosition, Unrecognized for UnrecognizedColor.
type Error struct {
	Kind         Kind
	Count        int
	Position     int
	Role         Role
	Label        bands.Label
	Unrecognized int
}

func (e *Error) Error() string {
	switch e.Kind {
	case NoBandsDetected:
		return "no bands detected"
	case InvalidBandCount:
		return fmt.Sprintf("invalid band count %d (want 4, 5 or 6)", e.Count)
	case UnsupportedColorForPosition:
		return fmt.Sprintf("%s is not a valid %s color (band %d)", e.Label, e.Role, e.Position+1)
	case UnrecognizedColor:
		return fmt.Sprintf("%d unrecognized regions left only %d bands", e.Unrecognized, e.Count)
	default:
		return "decode error"
	}
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
