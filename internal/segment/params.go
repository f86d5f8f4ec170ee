package segment

import "fmt"

// Params holds segmentation tunables.
type Params struct {
	// MinArea drops contours (and profile runs) smaller than this many pixels.
	MinArea float64

	// BlurKernel is the Gaussian kernel size; must be odd.
	BlurKernel int

	Mask MaskMode

	// BorderWidth is the frame, in pixels, sampled to estimate the background.
	BorderWidth int

	// BackgroundTolerance is the per-channel BGR difference still treated as background.
	BackgroundTolerance float64

	Split SplitMode

	// SplitTolerance is the colorutil.Distance at which a profile run ends.
	SplitTolerance float64

	Axis Axis
}

// DefaultParams returns default segmentation parameters.
func DefaultParams() Params {
	return Params{
		MinArea:             500,
		BlurKernel:          15,
		Mask:                MaskForeground,
		BorderWidth:         4,
		BackgroundTolerance: 40,
		Split:               SplitProfile,
		SplitTolerance:      40,
		Axis:                AxisX,
	}
}

// WithMinArea returns a copy of params with a different area threshold.
func (p Params) WithMinArea(area float64) Params {
	p.MinArea = area
	return p
}

// WithBlur returns a copy of params with a different blur kernel.
func (p Params) WithBlur(kernel int) Params {
	p.BlurKernel = kernel
	return p
}

// WithMask returns a copy of params with a different mask mode.
func (p Params) WithMask(m MaskMode) Params {
	p.Mask = m
	return p
}

// WithSplit returns a copy of params with a different split mode.
func (p Params) WithSplit(s SplitMode) Params {
	p.Split = s
	return p
}

// WithAxis returns a copy of params with a different band axis.
func (p Params) WithAxis(a Axis) Params {
	p.Axis = a
	return p
}

// Validate rejects parameter sets the pipeline cannot run with.
func (p Params) Validate() error {
	if p.MinArea < 0 {
		return fmt.Errorf("min area %.0f is negative", p.MinArea)
	}
	if p.BlurKernel < 1 || p.BlurKernel%2 == 0 {
		return fmt.Errorf("blur kernel %d must be a positive odd number", p.BlurKernel)
	}
	if p.BorderWidth < 1 {
		return fmt.Errorf("border width %d must be at least 1", p.BorderWidth)
	}
	if p.BackgroundTolerance < 0 || p.BackgroundTolerance > 255 {
		return fmt.Errorf("background tolerance %.0f outside 0-255", p.BackgroundTolerance)
	}
	if p.SplitTolerance <= 0 {
		return fmt.Errorf("split tolerance %.0f must be positive", p.SplitTolerance)
	}
	return nil
}
