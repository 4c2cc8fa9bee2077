package thumbnail

// CanvasPlan is the geometry of one thumbnail: the source is resampled to
// Resample, then copied onto a Canvas-sized buffer at (OffsetX, OffsetY) reading
// from (CropX, CropY) of the resampled copy.
//
// Per axis at most one of offset and crop is non-zero, and the canvas is always
// Resample + 2*Offset - 2*Crop. An odd pad or crop difference therefore yields a
// canvas one pixel short of, or over, the requested box on that axis.
type CanvasPlan struct {
	Resample Dimensions `json:"resample"`
	Canvas   Dimensions `json:"canvas"`
	OffsetX  int        `json:"offset_x"`
	OffsetY  int        `json:"offset_y"`
	CropX    int        `json:"crop_x"`
	CropY    int        `json:"crop_y"`
}

// Extent is the canvas size implied by the symmetric offsets and crops.
func (p CanvasPlan) Extent() Dimensions {
	return Dimensions{
		Width:  p.Resample.Width + 2*p.OffsetX - 2*p.CropX,
		Height: p.Resample.Height + 2*p.OffsetY - 2*p.CropY,
	}
}

func (p CanvasPlan) Padded() bool {
	return p.OffsetX > 0 || p.OffsetY > 0
}

func (p CanvasPlan) Cropped() bool {
	return p.CropX > 0 || p.CropY > 0
}

func plainPlan(resample Dimensions) CanvasPlan {
	return CanvasPlan{Resample: resample, Canvas: resample}
}

// Fit resolves a box fit of original into a width x height box.
//
// With keepAspect the whole image is kept inside the box and the remainder is
// padded (contain). Without it the box is filled and the overflow is cropped
// from the centre (cover).
func Fit(original Dimensions, width, height int, keepAspect bool) CanvasPlan {
	var resample Dimensions

	if keepAspect {
		if original.Width == original.Height {
			side := min(width, height)
			resample = ByLongerSide(original, side, side)
		} else {
			resample = ByLongerSide(original, width, height)
			if width < resample.Width || height < resample.Height {
				resample = ByShorterSide(original, width, height)
			}
		}
	} else {
		if original.Width == original.Height {
			side := max(width, height)
			resample = ByShorterSide(original, side, side)
		} else {
			resample = ByShorterSide(original, width, height)
			if width > resample.Width || height > resample.Height {
				resample = ByLongerSide(original, width, height)
			}
		}
	}

	plan := CanvasPlan{Resample: resample}
	plan.OffsetX, plan.CropX = centre(width, resample.Width)
	plan.OffsetY, plan.CropY = centre(height, resample.Height)
	plan.Canvas = plan.Extent()
	return plan
}

// Square resolves a fit of original into a side x side square.
//
// With keepAspect the longer side is mapped onto the square and the shorter
// axis is padded. Without it the shorter side is mapped and the longer axis is
// centre-cropped.
func Square(original Dimensions, side int, keepAspect bool) CanvasPlan {
	var plan CanvasPlan

	if keepAspect {
		plan.Resample = ByLongerSide(original, side, side)
		if side > plan.Resample.Width {
			plan.OffsetX = (side - plan.Resample.Width) / 2
		}
		if side > plan.Resample.Height {
			plan.OffsetY = (side - plan.Resample.Height) / 2
		}
	} else {
		plan.Resample = ByShorterSide(original, side, side)
		plan.OffsetX, plan.CropX = centre(side, plan.Resample.Width)
		plan.OffsetY, plan.CropY = centre(side, plan.Resample.Height)
	}

	plan.Canvas = plan.Extent()
	return plan
}

// centre splits the difference between the requested and the resampled length
// into a padding offset or a crop origin.
func centre(requested, resampled int) (offset, crop int) {
	if requested < resampled {
		return 0, (resampled - requested) / 2
	}
	return (requested - resampled) / 2, 0
}
