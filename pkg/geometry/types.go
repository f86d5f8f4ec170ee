// Package geometry provides basic geometric types used throughout the application.
package geometry

import "image"

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromRectangle converts an image.Rectangle (as returned by gocv.BoundingRect).
func FromRectangle(r image.Rectangle) RectInt {
	return RectInt{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rectangle converts back to an image.Rectangle.
func (r RectInt) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Area returns Width*Height.
func (r RectInt) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no pixels.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Span returns the half-open extent [Start, End) of r along the X axis when
// horizontal is true, otherwise along Y.
func (r RectInt) Span(horizontal bool) Span {
	if horizontal {
		return Span{Start: r.X, End: r.X + r.Width}
	}
	return Span{Start: r.Y, End: r.Y + r.Height}
}

// Union returns the smallest rectangle containing both rectangles.
func (r RectInt) Union(other RectInt) RectInt {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return RectInt{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Span is a half-open 1-D interval [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span, never negative.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Overlap returns the length shared by two spans.
func (s Span) Overlap(other Span) int {
	lo := max(s.Start, other.Start)
	hi := min(s.End, other.End)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// OverlapRatio returns the shared length as a fraction of the shorter span.
// Two empty spans have a ratio of 0.
func (s Span) OverlapRatio(other Span) float64 {
	shorter := min(s.Len(), other.Len())
	if shorter == 0 {
		return 0
	}
	return float64(s.Overlap(other)) / float64(shorter)
}

// Union returns the smallest span containing both spans.
func (s Span) Union(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}
