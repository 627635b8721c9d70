package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/imaging"
)

// PNG renders a single page and writes it as PNG to the given writer.
func (c *Context) PNG(p *adplan.Page, w io.Writer) error {
	return png.Encode(w, c.Raster(p))
}

// Raster renders a single page to an image.
func (c *Context) Raster(p *adplan.Page) *image.RGBA {
	rect := image.Rect(0, 0, int(math.Ceil(c.Width*c.Scale)), int(math.Ceil(c.Height*c.Scale)))
	dst := image.NewRGBA(rect)
	if c.Background != nil {
		draw.Draw(dst, rect, image.NewUniform(c.Background), image.Point{}, draw.Src)
	}

	p.Render(newRaster(c, dst))
	return dst
}

// raster is an adplan.Canvas that paints onto an RGBA image.
type raster struct {
	ctx *Context
	dst *image.RGBA
	gc  *draw2dimg.GraphicContext
}

func newRaster(c *Context, dst *image.RGBA) *raster {
	gc := draw2dimg.NewGraphicContext(dst)
	gc.Scale(c.Scale, c.Scale)
	gc.SetLineCap(draw2d.RoundCap)
	gc.SetLineJoin(draw2d.RoundJoin)
	return &raster{ctx: c, dst: dst, gc: gc}
}

func (r *raster) Path(pts []adplan.Point, closed bool, s adplan.Style) {
	if len(pts) == 0 {
		return
	}

	gc := r.gc
	gc.Save()
	defer gc.Restore()

	col := toRGBA(s.Color)
	gc.SetStrokeColor(col)
	gc.SetFillColor(col)
	w := lineWidth(s.Width)
	gc.SetLineWidth(w)
	gc.SetLineDash(dash(s.Dash), 0)

	gc.BeginPath()
	if len(pts) == 1 {
		draw2dkit.Circle(gc, float64(pts[0].X), float64(pts[0].Y), w/2)
		gc.Fill()
		return
	}

	gc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		gc.LineTo(float64(p.X), float64(p.Y))
	}
	if closed {
		gc.Close()
	}

	if closed && s.Fill {
		gc.FillStroke()
	} else {
		gc.Stroke()
	}
}

// Text uses a fixed bitmap face; the font size only affects wrapping.
func (r *raster) Text(pos adplan.Point, text string, size, wrap float32, c adplan.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  r.dst,
		Src:  image.NewUniform(toRGBA(c)),
		Face: face,
	}

	x := float64(pos.X) * r.ctx.Scale
	y := float64(pos.Y)*r.ctx.Scale + float64(face.Ascent)
	cols := 0
	if wrap > 0 {
		cols = int(float64(wrap) * r.ctx.Scale / float64(face.Advance))
	}

	for _, line := range wrapLines(text, cols) {
		d.Dot = fixed.P(int(x), int(y))
		d.DrawString(line)
		y += float64(face.Height)
	}
}

func (r *raster) Image(path string, pos, size adplan.Point, rotation, opacity float32) {
	img := r.ctx.resolve(path)
	if img == nil {
		// placeholder for unresolved images
		r.Path([]adplan.Point{pos, {X: pos.X + size.X, Y: pos.Y}, pos.Add(size), {X: pos.X, Y: pos.Y + size.Y}},
			true, adplan.Style{Color: adplan.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, Width: 1})
		return
	}

	s := r.ctx.Scale
	img = imaging.ApplyOpacity(img, float64(opacity))
	imaging.Place(r.dst, img,
		float64(pos.X)*s, float64(pos.Y)*s,
		float64(size.X)*s, float64(size.Y)*s,
		float64(rotation)*math.Pi/180)
}

// wrapLines breaks text at whitespace so that no line exceeds cols runes.
// Words longer than a line are split. cols <= 0 only splits at newlines.
func wrapLines(text string, cols int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if cols <= 0 {
			lines = append(lines, para)
			continue
		}

		line := ""
		for _, word := range strings.Fields(para) {
			for utf8.RuneCountInString(word) > cols {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				runes := []rune(word)
				lines = append(lines, string(runes[:cols]))
				word = string(runes[cols:])
			}

			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= cols:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

var _ adplan.Canvas = (*raster)(nil)
