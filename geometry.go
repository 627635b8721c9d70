package adplan

import (
	"math"
	"unicode/utf8"

	"github.com/akeil/adplan/internal/imaging"
)

// Geometry is the variant specific payload of a drawable.
// The set of implementations is closed; each maps to exactly one Kind.
type Geometry interface {
	Kind() Kind
	clone() Geometry
	translate(d Point)
	hit(p Point, r float32, filled bool) bool
	bounds() Rect
	render(c Canvas, s Style)
}

// number of segments used to approximate curves
const curveSegments = 64

// Stroke is a freehand line.
//
// An empty point list is canonically nil, for Stroke as well as DashedPath,
// Laser and Polygon: Clone and decoding never yield an empty non-nil slice.
type Stroke struct {
	Points []Point
}

func (s *Stroke) Kind() Kind        { return KindStroke }
func (s *Stroke) clone() Geometry   { return &Stroke{Points: copyPoints(s.Points)} }
func (s *Stroke) translate(d Point) { translatePoints(s.Points, d) }
func (s *Stroke) bounds() Rect      { return boundsOf(s.Points) }
func (s *Stroke) render(c Canvas, st Style) {
	st.Fill = false
	c.Path(s.Points, false, st)
}
func (s *Stroke) hit(p Point, r float32, filled bool) bool {
	return nearPolyline(p, s.Points, false, r)
}

// Line is a straight line segment.
type Line struct {
	Start Point
	End   Point
}

func (l *Line) Kind() Kind        { return KindLine }
func (l *Line) clone() Geometry   { c := *l; return &c }
func (l *Line) translate(d Point) { l.Start, l.End = l.Start.Add(d), l.End.Add(d) }
func (l *Line) bounds() Rect      { return boundsOf([]Point{l.Start, l.End}) }
func (l *Line) render(c Canvas, s Style) {
	s.Fill = false
	c.Path([]Point{l.Start, l.End}, false, s)
}
func (l *Line) hit(p Point, r float32, filled bool) bool {
	return distSegment(p, l.Start, l.End) <= r
}

// Rectangle is defined by two corners and rotated around its center.
type Rectangle struct {
	Min Point
	Max Point
	// Rotation in degrees.
	Rotation float32
}

func (b *Rectangle) Kind() Kind        { return KindRectangle }
func (b *Rectangle) clone() Geometry   { c := *b; return &c }
func (b *Rectangle) translate(d Point) { b.Min, b.Max = b.Min.Add(d), b.Max.Add(d) }
func (b *Rectangle) bounds() Rect      { return boundsOf(b.corners()) }
func (b *Rectangle) render(c Canvas, s Style) {
	c.Path(b.corners(), true, s)
}
func (b *Rectangle) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, b.corners(), r, filled)
}

func (b *Rectangle) corners() []Point {
	return rotatedBox(b.Min, b.Max, b.Rotation)
}

// Circle is defined by center and radius.
type Circle struct {
	Center Point
	Radius float32
}

func (o *Circle) Kind() Kind        { return KindCircle }
func (o *Circle) clone() Geometry   { c := *o; return &c }
func (o *Circle) translate(d Point) { o.Center = o.Center.Add(d) }
func (o *Circle) bounds() Rect {
	return Rect{
		Min: Point{o.Center.X - o.Radius, o.Center.Y - o.Radius},
		Max: Point{o.Center.X + o.Radius, o.Center.Y + o.Radius},
	}
}
func (o *Circle) render(c Canvas, s Style) {
	c.Path(ellipsePoints(o.Center, o.Radius, o.Radius, 0), true, s)
}
func (o *Circle) hit(p Point, r float32, filled bool) bool {
	d := dist(p, o.Center)
	if filled && d <= o.Radius {
		return true
	}
	return abs32(d-o.Radius) <= r
}

// Ellipse is defined by center and two radii, rotated around its center.
type Ellipse struct {
	Center   Point
	RadiusX  float32
	RadiusY  float32
	Rotation float32
}

func (e *Ellipse) Kind() Kind        { return KindEllipse }
func (e *Ellipse) clone() Geometry   { c := *e; return &c }
func (e *Ellipse) translate(d Point) { e.Center = e.Center.Add(d) }
func (e *Ellipse) bounds() Rect      { return boundsOf(e.outline()) }
func (e *Ellipse) render(c Canvas, s Style) {
	c.Path(e.outline(), true, s)
}
func (e *Ellipse) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, e.outline(), r, filled)
}

func (e *Ellipse) outline() []Point {
	return ellipsePoints(e.Center, e.RadiusX, e.RadiusY, e.Rotation)
}

// Arrow is a line with an arrow head at End.
type Arrow struct {
	Start    Point
	End      Point
	HeadSize float32
}

func (a *Arrow) Kind() Kind        { return KindArrow }
func (a *Arrow) clone() Geometry   { c := *a; return &c }
func (a *Arrow) translate(d Point) { a.Start, a.End = a.Start.Add(d), a.End.Add(d) }
func (a *Arrow) bounds() Rect {
	l, r := a.head()
	return boundsOf([]Point{a.Start, a.End, l, r})
}
func (a *Arrow) render(c Canvas, s Style) {
	s.Fill = false
	c.Path([]Point{a.Start, a.End}, false, s)
	l, r := a.head()
	c.Path([]Point{l, a.End, r}, false, s)
}
func (a *Arrow) hit(p Point, r float32, filled bool) bool {
	if distSegment(p, a.Start, a.End) <= r {
		return true
	}
	left, right := a.head()
	return distSegment(p, left, a.End) <= r || distSegment(p, right, a.End) <= r
}

// head returns the two outer points of the arrow head.
func (a *Arrow) head() (Point, Point) {
	angle := math.Atan2(float64(a.End.Y-a.Start.Y), float64(a.End.X-a.Start.X))
	const spread = math.Pi / 6
	size := float64(a.HeadSize)
	l := Point{
		a.End.X - float32(size*math.Cos(angle-spread)),
		a.End.Y - float32(size*math.Sin(angle-spread)),
	}
	r := Point{
		a.End.X - float32(size*math.Cos(angle+spread)),
		a.End.Y - float32(size*math.Sin(angle+spread)),
	}
	return l, r
}

// Cone is an isosceles triangle opening from Apex in direction Rotation.
type Cone struct {
	Apex      Point
	Length    float32
	BaseWidth float32
	// Rotation in degrees, 0 points along the positive x-axis.
	Rotation float32
}

func (k *Cone) Kind() Kind        { return KindCone }
func (k *Cone) clone() Geometry   { c := *k; return &c }
func (k *Cone) translate(d Point) { k.Apex = k.Apex.Add(d) }
func (k *Cone) bounds() Rect      { return boundsOf(k.outline()) }
func (k *Cone) render(c Canvas, s Style) {
	c.Path(k.outline(), true, s)
}
func (k *Cone) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, k.outline(), r, filled)
}

func (k *Cone) outline() []Point {
	m := imaging.RotationAround(rad(k.Rotation), float64(k.Apex.X), float64(k.Apex.Y))
	bx := float64(k.Apex.X + k.Length)
	half := float64(k.BaseWidth / 2)
	return []Point{
		k.Apex,
		apply(m, bx, float64(k.Apex.Y)-half),
		apply(m, bx, float64(k.Apex.Y)+half),
	}
}

// DashedPath is a polyline drawn with a dash pattern.
type DashedPath struct {
	Points []Point
	Dash   float32
	Gap    float32
}

func (p *DashedPath) Kind() Kind        { return KindDashedPath }
func (p *DashedPath) translate(d Point) { translatePoints(p.Points, d) }
func (p *DashedPath) bounds() Rect      { return boundsOf(p.Points) }
func (p *DashedPath) clone() Geometry {
	c := *p
	c.Points = copyPoints(p.Points)
	return &c
}
func (p *DashedPath) render(c Canvas, s Style) {
	s.Fill = false
	if p.Dash > 0 {
		s.Dash = []float32{p.Dash, p.Gap}
	}
	c.Path(p.Points, false, s)
}
func (p *DashedPath) hit(pt Point, r float32, filled bool) bool {
	return nearPolyline(pt, p.Points, false, r)
}

// Triangle is defined by its three vertices.
type Triangle struct {
	A Point
	B Point
	C Point
}

func (t *Triangle) Kind() Kind      { return KindTriangle }
func (t *Triangle) clone() Geometry { c := *t; return &c }
func (t *Triangle) translate(d Point) {
	t.A, t.B, t.C = t.A.Add(d), t.B.Add(d), t.C.Add(d)
}
func (t *Triangle) bounds() Rect { return boundsOf([]Point{t.A, t.B, t.C}) }
func (t *Triangle) render(c Canvas, s Style) {
	c.Path([]Point{t.A, t.B, t.C}, true, s)
}
func (t *Triangle) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, []Point{t.A, t.B, t.C}, r, filled)
}

// Pie is a circle sector starting at StartAngle, spanning Sweep degrees.
type Pie struct {
	Center     Point
	Radius     float32
	StartAngle float32
	Sweep      float32
}

func (p *Pie) Kind() Kind        { return KindPie }
func (p *Pie) clone() Geometry   { c := *p; return &c }
func (p *Pie) translate(d Point) { p.Center = p.Center.Add(d) }
func (p *Pie) bounds() Rect      { return boundsOf(p.outline()) }
func (p *Pie) render(c Canvas, s Style) {
	c.Path(p.outline(), true, s)
}
func (p *Pie) hit(pt Point, r float32, filled bool) bool {
	return hitClosed(pt, p.outline(), r, filled)
}

// outline never has more than curveSegments arcs; sweeps beyond a full
// turn are drawn as a full circle.
func (p *Pie) outline() []Point {
	sweep := float64(p.Sweep)
	switch {
	case math.IsNaN(sweep):
		sweep = 0
	case sweep > 360:
		sweep = 360
	case sweep < -360:
		sweep = -360
	}

	n := int(math.Ceil(math.Abs(sweep) / 360 * curveSegments))
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+2)
	pts = append(pts, p.Center)
	start := rad(p.StartAngle)
	step := sweep * (math.Pi / 180) / float64(n)
	for i := 0; i <= n; i++ {
		a := start + step*float64(i)
		pts = append(pts, Point{
			p.Center.X + p.Radius*float32(math.Cos(a)),
			p.Center.Y + p.Radius*float32(math.Sin(a)),
		})
	}
	return pts
}

// Image references an external image resource placed in a box.
type Image struct {
	// Path identifies the image resource; resolving it is up to the canvas.
	Path     string
	Position Point
	Size     Point
	Rotation float32
}

func (i *Image) Kind() Kind        { return KindImage }
func (i *Image) clone() Geometry   { c := *i; return &c }
func (i *Image) translate(d Point) { i.Position = i.Position.Add(d) }
func (i *Image) bounds() Rect      { return boundsOf(i.corners()) }
func (i *Image) render(c Canvas, s Style) {
	c.Image(i.Path, i.Position, i.Size, i.Rotation, s.Color.A)
}
func (i *Image) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, i.corners(), r, true)
}

func (i *Image) corners() []Point {
	return rotatedBox(i.Position, i.Position.Add(i.Size), i.Rotation)
}

// Text is a label with its top-left corner at Position.
type Text struct {
	Text     string
	Position Point
	FontSize float32
	// WrapWidth limits the line width; zero disables wrapping.
	WrapWidth float32
}

// average glyph width and line height relative to the font size
const (
	glyphWidth  = 0.6
	lineSpacing = 1.2
)

func (t *Text) Kind() Kind        { return KindText }
func (t *Text) clone() Geometry   { c := *t; return &c }
func (t *Text) translate(d Point) { t.Position = t.Position.Add(d) }
func (t *Text) bounds() Rect {
	w, h := t.extent()
	return Rect{Min: t.Position, Max: Point{t.Position.X + w, t.Position.Y + h}}
}
func (t *Text) render(c Canvas, s Style) {
	c.Text(t.Position, t.Text, t.FontSize, t.WrapWidth, s.Color)
}
func (t *Text) hit(p Point, r float32, filled bool) bool {
	b := t.bounds()
	b.Min = Point{b.Min.X - r, b.Min.Y - r}
	b.Max = Point{b.Max.X + r, b.Max.Y + r}
	return b.Contains(p)
}

// extent estimates the size of the rendered text block.
func (t *Text) extent() (float32, float32) {
	w := float32(utf8.RuneCountInString(t.Text)) * t.FontSize * glyphWidth
	lines := float32(1)
	if t.WrapWidth > 0 && w > t.WrapWidth {
		lines = float32(math.Ceil(float64(w / t.WrapWidth)))
		w = t.WrapWidth
	}
	return w, lines * t.FontSize * lineSpacing
}

// Laser is a transient multi-point beam. Lifetime is the fade out time in
// seconds.
type Laser struct {
	Points   []Point
	Lifetime float32
}

func (l *Laser) Kind() Kind        { return KindLaser }
func (l *Laser) translate(d Point) { translatePoints(l.Points, d) }
func (l *Laser) bounds() Rect      { return boundsOf(l.Points) }
func (l *Laser) clone() Geometry {
	return &Laser{Points: copyPoints(l.Points), Lifetime: l.Lifetime}
}
func (l *Laser) render(c Canvas, s Style) {
	s.Fill = false
	c.Path(l.Points, false, s)
}
func (l *Laser) hit(p Point, r float32, filled bool) bool {
	return nearPolyline(p, l.Points, false, r)
}

// Polygon is a closed shape through its points.
type Polygon struct {
	Points []Point
}

func (g *Polygon) Kind() Kind        { return KindPolygon }
func (g *Polygon) clone() Geometry   { return &Polygon{Points: copyPoints(g.Points)} }
func (g *Polygon) translate(d Point) { translatePoints(g.Points, d) }
func (g *Polygon) bounds() Rect      { return boundsOf(g.Points) }
func (g *Polygon) render(c Canvas, s Style) {
	c.Path(g.Points, true, s)
}
func (g *Polygon) hit(p Point, r float32, filled bool) bool {
	return hitClosed(p, g.Points, r, filled)
}

// NewGeometry returns an empty payload for the given kind, or nil if the
// kind is unknown.
func NewGeometry(k Kind) Geometry {
	switch k {
	case KindStroke:
		return &Stroke{}
	case KindLine:
		return &Line{}
	case KindRectangle:
		return &Rectangle{}
	case KindCircle:
		return &Circle{}
	case KindEllipse:
		return &Ellipse{}
	case KindArrow:
		return &Arrow{}
	case KindCone:
		return &Cone{}
	case KindDashedPath:
		return &DashedPath{}
	case KindTriangle:
		return &Triangle{}
	case KindPie:
		return &Pie{}
	case KindImage:
		return &Image{}
	case KindText:
		return &Text{}
	case KindLaser:
		return &Laser{}
	case KindPolygon:
		return &Polygon{}
	default:
		return nil
	}
}
