// Package sequence orders classified regions into a band list.
package sequence

import (
	"fmt"
	"sort"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/segment"
	"resistor-reader/pkg/colorutil"
)

// Classifier labels a color sample. *bands.Classifier satisfies it.
type Classifier interface {
	Classify(s colorutil.HSV) (bands.Label, bool)
}

// Params holds sequencing tunables.
type Params struct {
	Axis segment.Axis

	// MergeOverlap is the fraction of the shorter extent along the axis two
	// neighbouring regions must share to be treated as one physical band.
	MergeOverlap float64

	// BodyTolerance is the color distance within which an unrecognized
	// region counts as part of the resistor body rather than a lost band.
	BodyTolerance float64
}

// DefaultParams returns default sequencing parameters.
func DefaultParams() Params {
	return Params{
		Axis:          segment.AxisX,
		MergeOverlap:  0.5,
		BodyTolerance: 40,
	}
}

// Validate rejects an overlap threshold outside (0, 1] and a negative body
// tolerance.
func (p Params) Validate() error {
	if p.MergeOverlap <= 0 || p.MergeOverlap > 1 {
		return fmt.Errorf("merge overlap %.2f outside (0, 1]", p.MergeOverlap)
	}
	if p.BodyTolerance < 0 {
		return fmt.Errorf("body tolerance %.0f is negative", p.BodyTolerance)
	}
	return nil
}

// Band is a classified region at its final position.
type Band struct {
	Position int            `json:"position"`
	Label    bands.Label    `json:"label"`
	Region   segment.Region `json:"region"`
}

// Result is the ordered band list plus what was discarded to build it.
type Result struct {
	Bands        []Band
	Unrecognized int // regions no range matched, body excluded
	Body         int // unrecognized regions matching the body color
	Merged       int // regions folded into an overlapping neighbour
}

// Labels returns the band colors in order.
func (r Result) Labels() []bands.Label {
	out := make([]bands.Label, len(r.Bands))
	for i, b := range r.Bands {
		out[i] = b.Label
	}
	return out
}

// Sequence classifies regions, drops the unrecognized ones, sorts the rest
// along the band axis and merges neighbours that overlap along it. When two
// regions merge, the larger one's label and sample win and the bounds grow
// to cover both, so a band split into three pieces still collapses.
//
// The largest unrecognized region is taken as the resistor body when it is
// bigger than every band; unrecognized regions close to its color are
// counted in Body instead of Unrecognized.
func Sequence(regions []segment.Region, c Classifier, params Params) Result {
	var res Result
	horizontal := params.Axis.Horizontal()

	labeled := make([]Band, 0, len(regions))
	var unknown []segment.Region
	for _, r := range regions {
		l, ok := c.Classify(r.Sample)
		if !ok {
			unknown = append(unknown, r)
			continue
		}
		labeled = append(labeled, Band{Label: l, Region: r})
	}
	res.Unrecognized, res.Body = splitBody(unknown, labeled, params.BodyTolerance)

	sort.SliceStable(labeled, func(i, j int) bool {
		return labeled[i].Region.Bounds.Span(horizontal).Start < labeled[j].Region.Bounds.Span(horizontal).Start
	})

	for _, b := range labeled {
		n := len(res.Bands)
		if n == 0 {
			res.Bands = append(res.Bands, b)
			continue
		}
		prev := &res.Bands[n-1]
		if prev.Region.Bounds.Span(horizontal).OverlapRatio(b.Region.Bounds.Span(horizontal)) < params.MergeOverlap {
			res.Bands = append(res.Bands, b)
			continue
		}
		bounds := prev.Region.Bounds.Union(b.Region.Bounds)
		if b.Region.Area > prev.Region.Area {
			*prev = b
		}
		prev.Region.Bounds = bounds
		res.Merged++
	}

	for i := range res.Bands {
		res.Bands[i].Position = i
	}
	return res
}

// splitBody counts the unknown regions that are lost bands and those that
// belong to the body.
func splitBody(unknown []segment.Region, labeled []Band, tol float64) (lost, body int) {
	if len(unknown) == 0 {
		return 0, 0
	}

	largest := unknown[0]
	for _, r := range unknown[1:] {
		if r.Area > largest.Area {
			largest = r
		}
	}
	for _, b := range labeled {
		if b.Region.Area >= largest.Area {
			return len(unknown), 0
		}
	}

	for _, r := range unknown {
		if colorutil.Distance(r.Sample, largest.Sample) <= tol {
			body++
		}
	}
	return len(unknown) - body, body
}
