package adplan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Canvas that remembers what was drawn.
type recorder struct {
	paths  [][]Point
	closed []bool
	styles []Style
	texts  []string
	images []string
}

func (r *recorder) Path(points []Point, closed bool, s Style) {
	r.paths = append(r.paths, points)
	r.closed = append(r.closed, closed)
	r.styles = append(r.styles, s)
}

func (r *recorder) Text(pos Point, text string, size, wrap float32, c Color) {
	r.texts = append(r.texts, text)
}

func (r *recorder) Image(path string, pos, size Point, rotation, opacity float32) {
	r.images = append(r.images, path)
}

func allShapes() []Geometry {
	return []Geometry{
		&Stroke{Points: []Point{{0, 0}, {10, 0}, {10, 10}}},
		&Line{Start: Point{0, 0}, End: Point{10, 10}},
		&Rectangle{Min: Point{0, 0}, Max: Point{20, 10}, Rotation: 15},
		&Circle{Center: Point{5, 5}, Radius: 5},
		&Ellipse{Center: Point{5, 5}, RadiusX: 8, RadiusY: 3, Rotation: 30},
		&Arrow{Start: Point{0, 0}, End: Point{20, 0}, HeadSize: 4},
		&Cone{Apex: Point{0, 0}, Length: 20, BaseWidth: 10, Rotation: 90},
		&DashedPath{Points: []Point{{0, 0}, {5, 5}}, Dash: 2, Gap: 1},
		&Triangle{A: Point{0, 0}, B: Point{10, 0}, C: Point{5, 8}},
		&Pie{Center: Point{0, 0}, Radius: 10, StartAngle: 0, Sweep: 90},
		&Image{Path: "img/a.png", Position: Point{1, 2}, Size: Point{30, 20}, Rotation: 45},
		&Text{Text: "Boss", Position: Point{10, 20}, FontSize: 16},
		&Laser{Points: []Point{{1, 1}, {2, 2}, {3, 1}}, Lifetime: 1.5},
		&Polygon{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
	}
}

func TestKindsCoverAllShapes(t *testing.T) {
	shapes := allShapes()
	require.Len(t, shapes, int(numKinds))

	for i, s := range shapes {
		assert.Equal(t, Kind(i), s.Kind())
		assert.IsType(t, s, NewGeometry(s.Kind()))
	}
	assert.Nil(t, NewGeometry(numKinds))
	assert.False(t, Kind(200).Known())
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func TestCloneIsDeep(t *testing.T) {
	for _, s := range allShapes() {
		d := New(s)
		d.Name = "shape"
		c := d.Clone()

		assert.Equal(t, d, c, "clone of %v differs", d.Kind())
		assert.NotSame(t, d.Shape, c.Shape)
		assert.Equal(t, d.ID, c.ID)
	}
}

func TestClonePointsIndependent(t *testing.T) {
	d := New(&Stroke{Points: []Point{{1, 1}, {2, 2}}})
	c := d.Clone()

	c.Shape.(*Stroke).Points[0] = Point{99, 99}
	c.Translate(Point{5, 5})
	c.Color = Black

	assert.Equal(t, Point{1, 1}, d.Shape.(*Stroke).Points[0])
	assert.Equal(t, Point{2, 2}, d.Shape.(*Stroke).Points[1])
	assert.Equal(t, White, d.Color)
}

func TestTranslate(t *testing.T) {
	for _, s := range allShapes() {
		d := New(s)
		before := d.Bounds()
		d.Translate(Point{10, -5})
		after := d.Bounds()

		assert.InDelta(t, before.Min.X+10, after.Min.X, 1e-3, "%v", d.Kind())
		assert.InDelta(t, before.Min.Y-5, after.Min.Y, 1e-3, "%v", d.Kind())
	}
}

func TestHitTest(t *testing.T) {
	rect := New(&Rectangle{Min: Point{0, 0}, Max: Point{100, 50}})
	rect.Thickness = 2

	assert.True(t, rect.HitTest(Point{50, 0.5}, 0), "edge")
	assert.False(t, rect.HitTest(Point{50, 25}, 1), "interior of outline only rect")
	rect.Filled = true
	assert.True(t, rect.HitTest(Point{50, 25}, 0), "interior of filled rect")
	assert.False(t, rect.HitTest(Point{150, 25}, 5), "outside")

	line := New(&Line{Start: Point{0, 0}, End: Point{10, 0}})
	line.Thickness = 0
	assert.True(t, line.HitTest(Point{5, 2}, 2))
	assert.False(t, line.HitTest(Point{5, 3}, 2))
	assert.False(t, line.HitTest(Point{13, 0}, 2))

	circle := New(&Circle{Center: Point{0, 0}, Radius: 10})
	assert.True(t, circle.HitTest(Point{10, 0}, 0))
	assert.False(t, circle.HitTest(Point{0, 0}, 0))

	text := New(&Text{Text: "Boss", Position: Point{10, 20}, FontSize: 16})
	assert.True(t, text.HitTest(Point{12, 25}, 0))
	assert.False(t, text.HitTest(Point{0, 0}, 0))

	empty := New(&Stroke{})
	assert.False(t, empty.HitTest(Point{0, 0}, 10))

	dot := New(&Stroke{Points: []Point{{3, 3}}})
	assert.True(t, dot.HitTest(Point{3, 4}, 0))
}

func TestHitTestRotated(t *testing.T) {
	// a thin, long box rotated upright
	r := New(&Rectangle{Min: Point{-50, -1}, Max: Point{50, 1}, Rotation: 90})
	r.Filled = true
	r.Thickness = 0

	assert.True(t, r.HitTest(Point{0, 40}, 0))
	assert.False(t, r.HitTest(Point{40, 0}, 0))

	cone := New(&Cone{Apex: Point{0, 0}, Length: 10, BaseWidth: 4, Rotation: 90})
	cone.Filled = true
	assert.True(t, cone.HitTest(Point{0, 8}, 0))
	assert.False(t, cone.HitTest(Point{8, 0}, 0))
}

func TestRender(t *testing.T) {
	var rec recorder
	for _, s := range allShapes() {
		New(s).Render(&rec)
	}

	assert.Equal(t, []string{"Boss"}, rec.texts)
	assert.Equal(t, []string{"img/a.png"}, rec.images)
	// the arrow draws shaft and head separately
	assert.Len(t, rec.paths, int(numKinds)-2+1)

	var dashed int
	for _, s := range rec.styles {
		if len(s.Dash) > 0 {
			dashed++
			assert.Equal(t, []float32{2, 1}, s.Dash)
		}
	}
	assert.Equal(t, 1, dashed)
}

func TestDisplayName(t *testing.T) {
	d := New(&Circle{Radius: 1})
	assert.Equal(t, "Circle", d.DisplayName())
	d.Name = "Target"
	assert.Equal(t, "Target", d.DisplayName())
}

func TestPieSweepIsBounded(t *testing.T) {
	full := New(&Pie{Radius: 5, Sweep: 360})
	for _, sweep := range []float32{3.6e10, -3.6e10, float32(math.Inf(1)), float32(math.NaN())} {
		p := &Pie{Radius: 5, Sweep: sweep}
		d := New(p)

		assert.LessOrEqual(t, len(p.outline()), curveSegments+2, "sweep %v", sweep)

		// must return without allocating per degree
		d.HitTest(Point{5, 0}, 1)
		d.Render(&recorder{})

		if !math.IsNaN(float64(sweep)) {
			b := d.Bounds()
			fb := full.Bounds()
			assert.InDelta(t, fb.Min.X, b.Min.X, 1e-3, "sweep %v", sweep)
			assert.InDelta(t, fb.Max.Y, b.Max.Y, 1e-3, "sweep %v", sweep)
			assert.True(t, d.HitTest(Point{5, 0}, 1), "sweep %v", sweep)
		}
	}

	// a huge finite sweep is still a valid pie
	require.NoError(t, New(&Pie{Radius: 5, Sweep: 3.6e10}).Validate())
}
