package segment

import (
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"resistor-reader/pkg/colorutil"
	"resistor-reader/pkg/geometry"
)

// splitProfile cuts one contour's bounding box into runs of uniform color
// along the band axis. The profile is taken over the central half of the
// cross axis, away from the body outline and specular edges.
//
// A run ends when the next slice's color is farther than SplitTolerance
// from the running mean of the run. Runs below MinArea are dropped.
func splitProfile(hsv gocv.Mat, rect image.Rectangle, params Params) []Region {
	horizontal := params.Axis.Horizontal()

	along, cross := rect.Dx(), rect.Dy()
	if !horizontal {
		along, cross = cross, along
	}
	if along == 0 || cross == 0 {
		return nil
	}

	c0, c1 := centralHalf(cross)
	// toRect maps [a0,a1) along the axis and [x0,x1) across it to image space.
	toRect := func(a0, a1, x0, x1 int) image.Rectangle {
		if horizontal {
			return image.Rect(rect.Min.X+a0, rect.Min.Y+x0, rect.Min.X+a1, rect.Min.Y+x1)
		}
		return image.Rect(rect.Min.X+x0, rect.Min.Y+a0, rect.Min.X+x1, rect.Min.Y+a1)
	}

	profile := make([]colorutil.HSV, along)
	hs := make([]float64, c1-c0)
	ss := make([]float64, c1-c0)
	vs := make([]float64, c1-c0)
	for a := 0; a < along; a++ {
		for i, c := 0, c0; c < c1; i, c = i+1, c+1 {
			var x, y int
			if horizontal {
				x, y = rect.Min.X+a, rect.Min.Y+c
			} else {
				x, y = rect.Min.X+c, rect.Min.Y+a
			}
			// HSV is 3 channels: H=0, S=1, V=2
			px := hsv.GetVecbAt(y, x)
			hs[i], ss[i], vs[i] = float64(px[0]), float64(px[1]), float64(px[2])
		}
		profile[a] = colorutil.HSV{H: stat.Mean(hs, nil), S: stat.Mean(ss, nil), V: stat.Mean(vs, nil)}
	}

	var regions []Region
	for _, r := range findRuns(profile, params.SplitTolerance) {
		bounds := geometry.FromRectangle(toRect(r.start, r.end, 0, cross))
		area := float64(bounds.Area())
		if area < params.MinArea {
			continue
		}
		regions = append(regions, Region{
			Bounds: bounds,
			Area:   area,
			Sample: meanHSV(hsv, toRect(r.start, r.end, c0, c1)),
		})
	}
	return regions
}

// centralHalf returns the middle half [lo, hi) of n, or all of n when it
// is too small to halve.
func centralHalf(n int) (int, int) {
	if n < 4 {
		return 0, n
	}
	return n / 4, n - n/4
}

type run struct {
	start, end int
	sum        colorutil.HSV
}

func (r run) mean() colorutil.HSV {
	n := float64(r.end - r.start)
	return colorutil.HSV{H: r.sum.H / n, S: r.sum.S / n, V: r.sum.V / n}
}

// findRuns groups consecutive profile samples whose color stays within
// tol of the running mean.
func findRuns(profile []colorutil.HSV, tol float64) []run {
	var runs []run
	var cur run
	for i, s := range profile {
		if cur.end > cur.start && colorutil.Distance(s, cur.mean()) > tol {
			runs = append(runs, cur)
			cur = run{start: i, end: i}
		}
		if cur.end == cur.start {
			cur.start = i
		}
		cur.end = i + 1
		cur.sum.H += s.H
		cur.sum.S += s.S
		cur.sum.V += s.V
	}
	if cur.end > cur.start {
		runs = append(runs, cur)
	}
	return runs
}
