package adplan

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxPoints is the maximum number of points in a single point list.
const MaxPoints = 50000

// Kind is the variant tag of a drawable. The numeric value is written as a
// single byte in the binary format and must never be renumbered.
type Kind uint8

const (
	KindStroke Kind = iota
	KindLine
	KindRectangle
	KindCircle
	KindEllipse
	KindArrow
	KindCone
	KindDashedPath
	KindTriangle
	KindPie
	KindImage
	KindText
	KindLaser
	KindPolygon

	numKinds
)

var kindNames = [numKinds]string{
	KindStroke:     "Stroke",
	KindLine:       "Line",
	KindRectangle:  "Rectangle",
	KindCircle:     "Circle",
	KindEllipse:    "Ellipse",
	KindArrow:      "Arrow",
	KindCone:       "Cone",
	KindDashedPath: "DashedPath",
	KindTriangle:   "Triangle",
	KindPie:        "Pie",
	KindImage:      "Image",
	KindText:       "Text",
	KindLaser:      "Laser",
	KindPolygon:    "Polygon",
}

// Known reports whether k is one of the defined variants.
func (k Kind) Known() bool {
	return k < numKinds
}

func (k Kind) String() string {
	if !k.Known() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Point is a 2D coordinate in page units.
type Point struct {
	X float32
	Y float32
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Color is an RGBA color with components in the range 0..1.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// Drawable is one visual object on a page.
//
// The variant is determined by the concrete type of Shape; Kind() returns
// the matching tag.
type Drawable struct {
	// ID is stable across clones and encode/decode round trips.
	ID uuid.UUID
	// Name is an optional display name.
	Name  string
	Color Color
	// Thickness is the unscaled stroke width.
	Thickness float32
	Filled    bool
	Locked    bool
	Shape     Geometry
}

// New creates a drawable for the given shape with a fresh ID.
func New(shape Geometry) *Drawable {
	return &Drawable{
		ID:        uuid.New(),
		Color:     White,
		Thickness: 2,
		Shape:     shape,
	}
}

// Kind returns the variant tag of this drawable.
func (d *Drawable) Kind() Kind {
	return d.Shape.Kind()
}

// Clone creates a deep copy. Point lists of the copy have their own backing
// arrays; the ID is preserved.
func (d *Drawable) Clone() *Drawable {
	c := *d
	if d.Shape != nil {
		c.Shape = d.Shape.clone()
	}
	return &c
}

// Translate moves the drawable by delta.
func (d *Drawable) Translate(delta Point) {
	d.Shape.translate(delta)
}

// HitTest reports whether p touches this drawable. The outline counts as
// hit within tolerance plus half the thickness; filled shapes are also hit
// on their interior.
func (d *Drawable) HitTest(p Point, tolerance float32) bool {
	r := tolerance + d.Thickness/2
	if r < 0 {
		r = 0
	}
	return d.Shape.hit(p, r, d.Filled)
}

// Bounds returns the axis aligned bounding box of the geometry.
func (d *Drawable) Bounds() Rect {
	return d.Shape.bounds()
}

// Render paints the drawable onto the given canvas.
func (d *Drawable) Render(c Canvas) {
	s := Style{
		Color: d.Color,
		Width: d.Thickness,
		Fill:  d.Filled,
	}
	d.Shape.render(c, s)
}

// DisplayName returns the name or, if unset, the name of the variant.
func (d *Drawable) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Kind().String()
}

// Rect is an axis aligned rectangle.
type Rect struct {
	Min Point
	Max Point
}

// Contains reports whether p lies within r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Style describes how a path is painted.
type Style struct {
	Color Color
	Width float32
	Fill  bool
	// Dash holds alternating dash and gap lengths; empty for solid lines.
	Dash []float32
}

// Canvas is a render target for drawables.
type Canvas interface {
	// Path draws a polyline, closed if requested.
	Path(points []Point, closed bool, s Style)
	// Text draws a label with its top-left corner at pos. A wrap width of
	// zero disables wrapping.
	Text(pos Point, text string, size, wrap float32, c Color)
	// Image draws the referenced image into the box at pos with the given
	// size, rotated by rotation degrees around the box center.
	Image(path string, pos, size Point, rotation float32, opacity float32)
}
