package adplan

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Validate checks the plan and all pages and drawables for valid data.
// Returns an error if invalid data is found, nil if everything is fine.
func (p *Plan) Validate() error {
	if len(p.Pages) == 0 {
		return NewValidationError("plan must have at least one page")
	}

	for i, pg := range p.Pages {
		err := pg.Validate()
		if err != nil {
			return Wrap(err, "page %d", i)
		}
	}

	return nil
}

// Validate checks a page and all drawables on it.
func (p *Page) Validate() error {
	seen := make(map[uuid.UUID]bool, len(p.Drawables))
	for i, d := range p.Drawables {
		if d == nil {
			return NewValidationError("drawable %d is nil", i)
		}
		err := d.Validate()
		if err != nil {
			return Wrap(err, "drawable %d", i)
		}
		if seen[d.ID] {
			return NewValidationError("duplicate drawable id %v", d.ID)
		}
		seen[d.ID] = true
	}
	return nil
}

// Validate checks a single drawable.
func (d *Drawable) Validate() error {
	if d.ID == uuid.Nil {
		return NewValidationError("drawable has no id")
	}

	if d.Shape == nil {
		return NewValidationError("drawable has no geometry")
	}
	if !d.Kind().Known() {
		return NewValidationError("unknown kind %v", d.Kind())
	}

	if !finite(d.Thickness) || d.Thickness < 0 {
		return NewValidationError("invalid thickness: %v", d.Thickness)
	}

	for _, c := range []float32{d.Color.R, d.Color.G, d.Color.B, d.Color.A} {
		if !finite(c) || c < 0 || c > 1 {
			return NewValidationError("invalid color component: %v", c)
		}
	}

	return validateGeometry(d.Shape)
}

func validateGeometry(g Geometry) error {
	switch s := g.(type) {
	case *Stroke:
		return validatePoints(s.Points)
	case *DashedPath:
		if s.Dash < 0 || s.Gap < 0 {
			return NewValidationError("invalid dash pattern: %v/%v", s.Dash, s.Gap)
		}
		return validatePoints(s.Points)
	case *Laser:
		if s.Lifetime < 0 {
			return NewValidationError("invalid lifetime: %v", s.Lifetime)
		}
		return validatePoints(s.Points)
	case *Polygon:
		return validatePoints(s.Points)
	case *Circle:
		return nonNegative("radius", s.Radius)
	case *Ellipse:
		if err := nonNegative("x-radius", s.RadiusX); err != nil {
			return err
		}
		return nonNegative("y-radius", s.RadiusY)
	case *Pie:
		if !finite(s.StartAngle) || !finite(s.Sweep) {
			return NewValidationError("invalid pie angles: %v/%v", s.StartAngle, s.Sweep)
		}
		return nonNegative("radius", s.Radius)
	case *Arrow:
		return nonNegative("head size", s.HeadSize)
	case *Cone:
		if err := nonNegative("length", s.Length); err != nil {
			return err
		}
		return nonNegative("base width", s.BaseWidth)
	case *Image:
		if s.Path == "" {
			return NewValidationError("image without path")
		}
		if err := nonNegative("width", s.Size.X); err != nil {
			return err
		}
		return nonNegative("height", s.Size.Y)
	case *Text:
		if !finite(s.FontSize) || s.FontSize <= 0 {
			return NewValidationError("invalid font size: %v", s.FontSize)
		}
		return nonNegative("wrap width", s.WrapWidth)
	case *Line, *Rectangle, *Triangle:
		return nil
	default:
		return fmt.Errorf("unsupported geometry %T", g)
	}
}

func validatePoints(pts []Point) error {
	if len(pts) > MaxPoints {
		return NewValidationError("too many points: %d (max %d)", len(pts), MaxPoints)
	}
	for _, p := range pts {
		if !finite(p.X) || !finite(p.Y) {
			return NewValidationError("invalid point: %v", p)
		}
	}
	return nil
}

func nonNegative(what string, v float32) error {
	if !finite(v) || v < 0 {
		return NewValidationError("invalid %v: %v", what, v)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
