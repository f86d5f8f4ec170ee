package segment

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"resistor-reader/pkg/colorutil"
	"resistor-reader/pkg/geometry"
)

// Segment finds candidate band regions in a Go image.
func Segment(img image.Image, params Params) ([]Region, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	mat, err := imageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	return SegmentMat(mat, params)
}

// SegmentMat finds candidate band regions in a BGR Mat:
//  1. convert to HSV for sampling
//  2. Gaussian blur to suppress single-pixel noise
//  3. build the foreground mask and find its external contours
//  4. drop contours smaller than MinArea
//  5. take each survivor's bounding box and mean HSV (or, with
//     SplitProfile, one region per uniform run along the band axis)
//
// The returned order is whatever FindContours produced; ordering is the
// sequencer's job. No surviving contour is not an error.
func SegmentMat(bgr gocv.Mat, params Params) ([]Region, error) {
	if bgr.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	if bgr.Channels() != 3 {
		return nil, fmt.Errorf("expected 3-channel BGR image, got %d channels", bgr.Channels())
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segment params: %w", err)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := params.BlurKernel
	gocv.GaussianBlur(bgr, &blurred, image.Point{k, k}, 0, 0, gocv.BorderDefault)

	mask := buildMask(blurred, params)
	defer mask.Close()

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var regions []Region
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < params.MinArea {
			continue
		}
		rect := gocv.BoundingRect(contour)

		if params.Split == SplitProfile {
			regions = append(regions, splitProfile(hsv, rect, params)...)
			continue
		}
		regions = append(regions, Region{
			Bounds: geometry.FromRectangle(rect),
			Area:   area,
			Sample: meanHSV(hsv, rect),
		})
	}
	return regions, nil
}

// buildMask returns a CV8U mask with 255 on foreground pixels.
func buildMask(blurred gocv.Mat, params Params) gocv.Mat {
	rows, cols := blurred.Rows(), blurred.Cols()
	if params.Mask == MaskFull {
		return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
	}

	bg := gocv.NewMatWithSizeFromScalar(estimateBackground(blurred, params.BorderWidth), rows, cols, gocv.MatTypeCV8UC3)
	defer bg.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, bg, &diff)

	// Background is every pixel within tolerance on all three channels.
	tol := params.BackgroundTolerance
	background := gocv.NewMat()
	defer background.Close()
	gocv.InRangeWithScalar(diff, gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(tol, tol, tol, 0), &background)

	mask := gocv.NewMat()
	gocv.BitwiseNot(background, &mask)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{5, 5})
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)

	return mask
}

// estimateBackground averages the four border strips of the image,
// weighting each strip by its pixel count.
func estimateBackground(img gocv.Mat, width int) gocv.Scalar {
	rows, cols := img.Rows(), img.Cols()
	width = min(width, max(1, rows/4), max(1, cols/4))

	strips := []image.Rectangle{
		image.Rect(0, 0, cols, width),
		image.Rect(0, rows-width, cols, rows),
		image.Rect(0, width, width, rows-width),
		image.Rect(cols-width, width, cols, rows-width),
	}

	var b, g, r, weights []float64
	for _, s := range strips {
		if s.Empty() {
			continue
		}
		roi := img.Region(s)
		m := roi.Mean()
		roi.Close()

		b = append(b, m.Val1)
		g = append(g, m.Val2)
		r = append(r, m.Val3)
		weights = append(weights, float64(s.Dx()*s.Dy()))
	}

	return gocv.NewScalar(stat.Mean(b, weights), stat.Mean(g, weights), stat.Mean(r, weights), 0)
}

// meanHSV returns the mean HSV color inside rect.
func meanHSV(hsv gocv.Mat, rect image.Rectangle) colorutil.HSV {
	rect = rect.Intersect(image.Rect(0, 0, hsv.Cols(), hsv.Rows()))
	if rect.Empty() {
		return colorutil.HSV{}
	}
	roi := hsv.Region(rect)
	defer roi.Close()
	m := roi.Mean()
	return colorutil.HSV{H: m.Val1, S: m.Val2, V: m.Val3}
}
