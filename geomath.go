package adplan

import (
	"math"

	"github.com/akeil/adplan/internal/imaging"
)

func rad(deg float32) float64 {
	return float64(deg) * (math.Pi / 180)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func dist(a, b Point) float32 {
	return float32(math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)))
}

// distSegment is the distance from p to the segment a-b.
func distSegment(p, a, b Point) float32 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}

	t := (float64(p.X-a.X)*dx + float64(p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	proj := Point{a.X + float32(t*dx), a.Y + float32(t*dy)}
	return dist(p, proj)
}

func nearPolyline(p Point, pts []Point, closed bool, r float32) bool {
	switch len(pts) {
	case 0:
		return false
	case 1:
		return dist(p, pts[0]) <= r
	}

	for i := 1; i < len(pts); i++ {
		if distSegment(p, pts[i-1], pts[i]) <= r {
			return true
		}
	}
	if closed {
		return distSegment(p, pts[len(pts)-1], pts[0]) <= r
	}
	return false
}

// insidePolygon uses the even-odd rule.
func insidePolygon(p Point, pts []Point) bool {
	in := false
	j := len(pts) - 1
	for i := 0; i < len(pts); i++ {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}

func hitClosed(p Point, pts []Point, r float32, filled bool) bool {
	if filled && len(pts) > 2 && insidePolygon(p, pts) {
		return true
	}
	return nearPolyline(p, pts, true, r)
}

func copyPoints(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	c := make([]Point, len(pts))
	copy(c, pts)
	return c
}

func translatePoints(pts []Point, d Point) {
	for i := range pts {
		pts[i] = pts[i].Add(d)
	}
}

func boundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	b := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = float32(math.Min(float64(b.Min.X), float64(p.X)))
		b.Min.Y = float32(math.Min(float64(b.Min.Y), float64(p.Y)))
		b.Max.X = float32(math.Max(float64(b.Max.X), float64(p.X)))
		b.Max.Y = float32(math.Max(float64(b.Max.Y), float64(p.Y)))
	}
	return b
}

func apply(m imaging.Matrix, x, y float64) Point {
	tx, ty := m.Apply(x, y)
	return Point{float32(tx), float32(ty)}
}

// rotatedBox returns the four corners of the box min-max, rotated by deg
// around its center.
func rotatedBox(min, max Point, deg float32) []Point {
	corners := []Point{min, {max.X, min.Y}, max, {min.X, max.Y}}
	if deg == 0 {
		return corners
	}

	cx := float64(min.X+max.X) / 2
	cy := float64(min.Y+max.Y) / 2
	m := imaging.RotationAround(rad(deg), cx, cy)
	for i, c := range corners {
		corners[i] = apply(m, float64(c.X), float64(c.Y))
	}
	return corners
}

func ellipsePoints(c Point, rx, ry, deg float32) []Point {
	m := imaging.RotationAround(rad(deg), float64(c.X), float64(c.Y))
	pts := make([]Point, curveSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / curveSegments
		x := float64(c.X) + float64(rx)*math.Cos(a)
		y := float64(c.Y) + float64(ry)*math.Sin(a)
		pts[i] = apply(m, x, y)
	}
	return pts
}
