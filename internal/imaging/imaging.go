package imaging

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Place draws src onto dst, scaled to w x h with its top-left corner at x,y
// and rotated by angle (radians) around the center of the target box.
func Place(dst draw.Image, src image.Image, x, y, w, h, angle float64) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || w <= 0 || h <= 0 {
		return
	}

	sx := w / float64(sb.Dx())
	sy := h / float64(sb.Dy())
	scale := Matrix{
		sx, 0, x - float64(sb.Min.X)*sx,
		0, sy, y - float64(sb.Min.Y)*sy,
		0, 0, 1,
	}
	m := Multiply(RotationAround(angle, x+w/2, y+h/2), scale)

	draw.BiLinear.Transform(dst, m.Aff3(), src, sb, draw.Over, nil)
}

// ApplyOpacity applies the given opacity (0.0..1.0) to the given image.
// This method returns a new image where the alpha channel is a combination
// of the source alpha and the opacity.
func ApplyOpacity(i image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return i
	}
	alpha := uint8(math.Round(255 * math.Max(0, opacity)))
	mask := image.NewUniform(color.Alpha{alpha})

	rect := i.Bounds()
	dst := image.NewRGBA(rect)
	draw.DrawMask(dst, rect, i, rect.Min, mask, image.Point{}, draw.Over)
	return dst
}
