package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// WriteDrawable writes a single drawable record in the current format.
func WriteDrawable(w io.Writer, d *adplan.Drawable) error {
	wr := newWriter(w)
	writeDrawable(wr, d, PageFormatVersion)
	return wr.err
}

// ReadDrawable reads a single drawable record written with the given page
// format version. Records with an unknown tag yield an
// adplan.UnknownVariantError; the position of r is undefined afterwards.
func ReadDrawable(r *bytes.Reader, version int32) (*adplan.Drawable, error) {
	return readDrawable(reader{r}, version)
}

func writeDrawable(w *writer, d *adplan.Drawable, version int32) {
	if d == nil {
		w.fail(errors.New("nil drawable"))
		return
	}
	if d.Shape == nil {
		w.fail(fmt.Errorf("drawable %v has no geometry", d.ID))
		return
	}

	w.write(uint8(d.Kind()))
	w.write(d.Color)
	w.write(d.Thickness)
	w.write(d.Filled)
	w.write(d.ID)
	if has(fieldName, version) {
		w.writeString("name", d.Name)
	}
	if has(fieldLocked, version) {
		w.write(d.Locked)
	}

	writeGeometry(w, d.Shape)
}

func writeGeometry(w *writer, g adplan.Geometry) {
	switch s := g.(type) {
	case *adplan.Stroke:
		w.writePoints(s.Points)
	case *adplan.Polygon:
		w.writePoints(s.Points)
	case *adplan.DashedPath:
		w.writePoints(s.Points)
		w.write([]float32{s.Dash, s.Gap})
	case *adplan.Laser:
		w.writePoints(s.Points)
		w.write(s.Lifetime)
	case *adplan.Line:
		w.write([]adplan.Point{s.Start, s.End})
	case *adplan.Arrow:
		w.write([]adplan.Point{s.Start, s.End})
		w.write(s.HeadSize)
	case *adplan.Rectangle:
		w.write([]adplan.Point{s.Min, s.Max})
		w.write(s.Rotation)
	case *adplan.Circle:
		w.write(s.Center)
		w.write(s.Radius)
	case *adplan.Ellipse:
		w.write(s.Center)
		w.write([]float32{s.RadiusX, s.RadiusY, s.Rotation})
	case *adplan.Cone:
		w.write(s.Apex)
		w.write([]float32{s.Length, s.BaseWidth, s.Rotation})
	case *adplan.Triangle:
		w.write([]adplan.Point{s.A, s.B, s.C})
	case *adplan.Pie:
		w.write(s.Center)
		w.write([]float32{s.Radius, s.StartAngle, s.Sweep})
	case *adplan.Image:
		w.writeString("image path", s.Path)
		w.write([]adplan.Point{s.Position, s.Size})
		w.write(s.Rotation)
	case *adplan.Text:
		w.writeString("text", s.Text)
		w.write(s.Position)
		w.write([]float32{s.FontSize, s.WrapWidth})
	default:
		w.fail(fmt.Errorf("unsupported geometry %T", g))
	}
}

func readDrawable(r reader, version int32) (*adplan.Drawable, error) {
	var tag uint8
	err := r.read("tag", &tag)
	if err != nil {
		return nil, err
	}

	kind := adplan.Kind(tag)
	shape := adplan.NewGeometry(kind)
	if shape == nil {
		logging.Warning("Drop record with unknown tag %d", tag)
		return nil, adplan.UnknownVariantError{Tag: tag}
	}

	err = r.need(commonSize, "common fields")
	if err != nil {
		return nil, err
	}

	d := &adplan.Drawable{Shape: shape}
	// r.need guarantees these reads succeed
	r.read("color", &d.Color)
	r.read("thickness", &d.Thickness)
	r.read("filled", &d.Filled)
	r.read("unique id", &d.ID)

	if has(fieldName, version) {
		d.Name, err = r.readString("name")
		if err != nil {
			return nil, err
		}
	} else {
		d.Name = kind.String()
	}

	if has(fieldLocked, version) {
		err = r.read("locked", &d.Locked)
		if err != nil {
			return nil, err
		}
	}

	err = readGeometry(r, shape)
	if err != nil {
		return nil, fmt.Errorf("%v payload: %w", kind, err)
	}

	return d, nil
}

func readGeometry(r reader, g adplan.Geometry) error {
	var err error
	switch s := g.(type) {
	case *adplan.Stroke:
		s.Points, err = r.readPoints()
	case *adplan.Polygon:
		s.Points, err = r.readPoints()
	case *adplan.DashedPath:
		s.Points, err = r.readPoints()
		if err == nil {
			err = r.readFloats("dash pattern", &s.Dash, &s.Gap)
		}
	case *adplan.Laser:
		s.Points, err = r.readPoints()
		if err == nil {
			err = r.read("lifetime", &s.Lifetime)
		}
	case *adplan.Line:
		err = readVertices(r, "line", &s.Start, &s.End)
	case *adplan.Arrow:
		err = readVertices(r, "arrow", &s.Start, &s.End)
		if err == nil {
			err = r.read("head size", &s.HeadSize)
		}
	case *adplan.Rectangle:
		err = readVertices(r, "corners", &s.Min, &s.Max)
		if err == nil {
			err = r.read("rotation", &s.Rotation)
		}
	case *adplan.Circle:
		err = readVertices(r, "center", &s.Center)
		if err == nil {
			err = r.read("radius", &s.Radius)
		}
	case *adplan.Ellipse:
		err = readVertices(r, "center", &s.Center)
		if err == nil {
			err = r.readFloats("ellipse", &s.RadiusX, &s.RadiusY, &s.Rotation)
		}
	case *adplan.Cone:
		err = readVertices(r, "apex", &s.Apex)
		if err == nil {
			err = r.readFloats("cone", &s.Length, &s.BaseWidth, &s.Rotation)
		}
	case *adplan.Triangle:
		err = readVertices(r, "vertices", &s.A, &s.B, &s.C)
	case *adplan.Pie:
		err = readVertices(r, "center", &s.Center)
		if err == nil {
			err = r.readFloats("pie", &s.Radius, &s.StartAngle, &s.Sweep)
		}
	case *adplan.Image:
		s.Path, err = r.readString("image path")
		if err == nil {
			err = readVertices(r, "image box", &s.Position, &s.Size)
		}
		if err == nil {
			err = r.read("rotation", &s.Rotation)
		}
	case *adplan.Text:
		s.Text, err = r.readString("text")
		if err == nil {
			err = readVertices(r, "position", &s.Position)
		}
		if err == nil {
			err = r.readFloats("text", &s.FontSize, &s.WrapWidth)
		}
	default:
		err = fmt.Errorf("unsupported geometry %T", g)
	}
	return err
}

func readVertices(r reader, what string, pts ...*adplan.Point) error {
	for _, p := range pts {
		err := r.read(what, p)
		if err != nil {
			return err
		}
	}
	return nil
}
