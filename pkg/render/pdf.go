package render

import (
	"bytes"
	"image/png"
	"io"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// PDF renders all pages of a plan to a PDF document, one PDF page per
// plan page. The result is written to the given writer.
func (c *Context) PDF(p *adplan.Plan, w io.Writer) error {
	logging.Debug("Render PDF for plan %q with %d pages", p.Name, p.NumPages())
	pdf := c.setupPDF(p)

	for i, pg := range p.Pages {
		pdf.AddPage()
		c.pdfBackground(pdf)
		pg.Render(&pdfCanvas{ctx: c, pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")})
		if !pdf.Ok() {
			return adplan.Wrap(pdf.Error(), "render page %d", i)
		}
	}

	return pdf.Output(w)
}

func (c *Context) setupPDF(p *adplan.Plan) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: c.Width, Ht: c.Height},
	})

	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("{totalPages}")
	pdf.SetProducer("adplan", true)
	pdf.SetTitle(p.Name, true)
	pdf.SetCreator("adplan "+p.Producer.String(), true)

	pdf.SetFooterFunc(func() {
		pdf.SetFont("helvetica", "", 8)
		pdf.SetTextColor(127, 127, 127)
		pdf.SetAlpha(1, "Normal")
		pg := p.Pages[pdf.PageNo()-1]
		pdf.Text(12, c.Height-12, pdf.UnicodeTranslatorFromDescriptor("")(
			pg.Name+"  |  "+p.Name))
	})

	return pdf
}

func (c *Context) pdfBackground(pdf *gofpdf.Fpdf) {
	if c.Background == nil {
		return
	}
	r, g, b, _ := c.Background.RGBA()
	pdf.SetFillColor(int(r>>8), int(g>>8), int(b>>8))
	pdf.Rect(0, 0, c.Width, c.Height, "F")
}

// pdfCanvas is an adplan.Canvas that draws on the current PDF page.
type pdfCanvas struct {
	ctx *Context
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func rgb(c adplan.Color) (int, int, int) {
	col := toRGBA(adplan.Color{R: c.R, G: c.G, B: c.B, A: 1})
	return int(col.R), int(col.G), int(col.B)
}

func (p *pdfCanvas) setColor(c adplan.Color) {
	r, g, b := rgb(c)
	p.pdf.SetDrawColor(r, g, b)
	p.pdf.SetFillColor(r, g, b)
	p.pdf.SetTextColor(r, g, b)
	p.pdf.SetAlpha(float64(toRGBA(c).A)/255, "Normal")
}

func (p *pdfCanvas) Path(pts []adplan.Point, closed bool, s adplan.Style) {
	if len(pts) == 0 {
		return
	}

	pdf := p.pdf
	p.setColor(s.Color)
	w := lineWidth(s.Width)
	pdf.SetLineWidth(w)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.SetDashPattern(dash(s.Dash), 0)
	defer pdf.SetDashPattern([]float64{}, 0)

	if len(pts) == 1 {
		pdf.Circle(float64(pts[0].X), float64(pts[0].Y), w/2, "F")
		return
	}

	pdf.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, pt := range pts[1:] {
		pdf.LineTo(float64(pt.X), float64(pt.Y))
	}
	if closed {
		pdf.ClosePath()
	}

	style := "D"
	if closed && s.Fill {
		style = "DF"
	}
	pdf.DrawPath(style)
}

func (p *pdfCanvas) Text(pos adplan.Point, text string, size, wrap float32, c adplan.Color) {
	pdf := p.pdf
	p.setColor(c)
	pdf.SetFont("helvetica", "", float64(size))

	lineHeight := float64(size) * 1.2
	if wrap > 0 {
		pdf.SetXY(float64(pos.X), float64(pos.Y))
		pdf.MultiCell(float64(wrap), lineHeight, p.tr(text), "", "L", false)
		return
	}

	y := float64(pos.Y) + float64(size)
	for _, line := range wrapLines(text, 0) {
		pdf.Text(float64(pos.X), y, p.tr(line))
		y += lineHeight
	}
}

func (p *pdfCanvas) Image(path string, pos, size adplan.Point, rotation, opacity float32) {
	pdf := p.pdf
	x, y := float64(pos.X), float64(pos.Y)
	w, h := float64(size.X), float64(size.Y)

	pdf.TransformBegin()
	defer pdf.TransformEnd()
	// PDF rotates counter-clockwise, page coordinates point down
	pdf.TransformRotate(-float64(rotation), x+w/2, y+h/2)

	img := p.ctx.resolve(path)
	if img == nil {
		p.setColor(adplan.Color{R: 0.5, G: 0.5, B: 0.5, A: 1})
		pdf.SetLineWidth(1)
		pdf.Rect(x, y, w, h, "D")
		return
	}

	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	if err != nil {
		logging.Warning("Cannot encode image %q: %v", path, err)
		return
	}

	name := uuid.New().String()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.SetAlpha(float64(toRGBA(adplan.Color{A: opacity}).A)/255, "Normal")
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

var _ adplan.Canvas = (*pdfCanvas)(nil)
