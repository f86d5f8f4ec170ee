// Package report renders readings and decode failures for people and tools.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/decode"
)

// Text renders a reading as "4700 Ω ±5%", adding ", 50 ppm/°C" for
// six-band readings.
func Text(r decode.Reading) string {
	return withTol(strconv.FormatFloat(r.Ohms, 'f', -1, 64)+" Ω", r)
}

// SI renders the value with an SI prefix, e.g. "4.7 kΩ ±5%".
func SI(r decode.Reading) string {
	return withTol(humanize.SIWithDigits(r.Ohms, 2, "Ω"), r)
}

func withTol(value string, r decode.Reading) string {
	s := value + " " + r.ToleranceString()
	if r.HasTempCo() {
		s += ", " + r.TempCoString()
	}
	return s
}

// ErrorText renders err as a short status line. Decode failures other than
// an empty frame read "Invalid Resistor" followed by the reason.
func ErrorText(err error) string {
	var de *decode.Error
	if !errors.As(err, &de) {
		return "Error: " + err.Error()
	}
	if de.Kind == decode.NoBandsDetected {
		return "No Resistor Detected"
	}
	return "Invalid Resistor: " + de.Error()
}

// Record is the JSON form of one decoded image.
type Record struct {
	Source    string   `json:"source,omitempty"`
	Ohms      *float64 `json:"ohms,omitempty"`
	Value     string   `json:"value,omitempty"`
	Tolerance *float64 `json:"tolerance_percent,omitempty"`
	TempCo    *float64 `json:"tempco_ppm,omitempty"`
	Bands     []string `json:"bands,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
}

// NewRecord builds a record from a decode outcome; err wins over r.
func NewRecord(source string, r decode.Reading, err error) Record {
	rec := Record{Source: source}
	if err != nil {
		rec.Error = err.Error()
		var de *decode.Error
		if errors.As(err, &de) {
			rec.ErrorKind = de.Kind.String()
		}
		return rec
	}

	ohms, tol := r.Ohms, r.Tolerance
	rec.Ohms = &ohms
	rec.Tolerance = &tol
	rec.Value = Text(r)
	if r.HasTempCo() {
		tc := r.TempCo
		rec.TempCo = &tc
	}
	rec.Bands = Names(r.Bands)
	return rec
}

// Names returns the color names of labels.
func Names(labels []bands.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

// Bands renders labels as "brown-black-red-gold".
func Bands(labels []bands.Label) string {
	return strings.Join(Names(labels), "-")
}

// Line renders one batch result as "<source>: <text or error>".
func Line(source string, r decode.Reading, err error, si bool) string {
	if err != nil {
		return fmt.Sprintf("%s: %s", source, ErrorText(err))
	}
	if si {
		return fmt.Sprintf("%s: %s", source, SI(r))
	}
	return fmt.Sprintf("%s: %s", source, Text(r))
}
