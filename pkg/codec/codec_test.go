package codec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/adplan"
)

func sampleDrawables() []*adplan.Drawable {
	shapes := []adplan.Geometry{
		&adplan.Stroke{Points: []adplan.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}},
		&adplan.Stroke{},
		&adplan.Line{Start: adplan.Point{X: 1, Y: 2}, End: adplan.Point{X: 3, Y: 4}},
		&adplan.Rectangle{Min: adplan.Point{X: 0, Y: 0}, Max: adplan.Point{X: 20, Y: 10}, Rotation: 15},
		&adplan.Circle{Center: adplan.Point{X: 5, Y: 5}, Radius: 5},
		&adplan.Ellipse{Center: adplan.Point{X: 5, Y: 5}, RadiusX: 8, RadiusY: 3, Rotation: 30},
		&adplan.Arrow{Start: adplan.Point{X: 0, Y: 0}, End: adplan.Point{X: 20, Y: 0}, HeadSize: 4},
		&adplan.Cone{Apex: adplan.Point{X: 1, Y: 1}, Length: 20, BaseWidth: 10, Rotation: 90},
		&adplan.DashedPath{Points: []adplan.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}, Dash: 2, Gap: 1},
		&adplan.Triangle{A: adplan.Point{X: 0, Y: 0}, B: adplan.Point{X: 10, Y: 0}, C: adplan.Point{X: 5, Y: 8}},
		&adplan.Pie{Center: adplan.Point{X: 0, Y: 0}, Radius: 10, StartAngle: -45, Sweep: 90},
		&adplan.Image{Path: "maps/floor-1.png", Position: adplan.Point{X: 1, Y: 2}, Size: adplan.Point{X: 30, Y: 20}, Rotation: 45},
		&adplan.Text{Text: "Zürich ✓", Position: adplan.Point{X: 10, Y: 20}, FontSize: 16, WrapWidth: 120},
		&adplan.Laser{Points: []adplan.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 1}}, Lifetime: 1.5},
		&adplan.Polygon{Points: []adplan.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}},
	}

	drawables := make([]*adplan.Drawable, len(shapes))
	for i, s := range shapes {
		d := adplan.New(s)
		d.Color = adplan.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
		d.Thickness = float32(i) + 0.5
		d.Filled = i%2 == 0
		d.Locked = i%3 == 0
		if i%4 == 0 {
			d.Name = "shape " + s.Kind().String()
		}
		drawables[i] = d
	}
	return drawables
}

func TestRoundTripPage(t *testing.T) {
	in := sampleDrawables()

	data, err := MarshalPage(in)
	require.NoError(t, err)

	out, err := ReadPage(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRoundTripMaxPoints(t *testing.T) {
	pts := make([]adplan.Point, adplan.MaxPoints)
	for i := range pts {
		pts[i] = adplan.Point{X: float32(i), Y: float32(-i)}
	}
	in := []*adplan.Drawable{adplan.New(&adplan.Polygon{Points: pts})}

	data, err := MarshalPage(in)
	require.NoError(t, err)

	out, err := ReadPage(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	in[0].Shape.(*adplan.Polygon).Points = append(pts, adplan.Point{})
	_, err = MarshalPage(in)
	assert.Error(t, err, "writing more than the maximum number of points")
}

func TestRoundTripEmptyPage(t *testing.T) {
	data, err := MarshalPage(nil)
	require.NoError(t, err)
	assert.Len(t, data, 8)

	out, err := ReadPage(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScenarioStrokeAndLabel(t *testing.T) {
	stroke := adplan.New(&adplan.Stroke{Points: []adplan.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}})
	stroke.Color = adplan.White
	stroke.Thickness = 2
	label := adplan.New(&adplan.Text{Text: "Boss", Position: adplan.Point{X: 10, Y: 20}, FontSize: 16})

	buf := &bytes.Buffer{}
	require.NoError(t, writePage(buf, []*adplan.Drawable{stroke, label}, 3))

	out, err := ReadPage(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, out, 2)

	s := out[0]
	assert.Equal(t, adplan.KindStroke, s.Kind())
	assert.Equal(t, stroke.ID, s.ID)
	assert.Equal(t, adplan.White, s.Color)
	assert.Equal(t, float32(2), s.Thickness)
	assert.Equal(t, []adplan.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}, s.Shape.(*adplan.Stroke).Points)
	assert.False(t, s.Locked)

	l := out[1]
	assert.Equal(t, label.ID, l.ID)
	require.IsType(t, &adplan.Text{}, l.Shape)
	text := l.Shape.(*adplan.Text)
	assert.Equal(t, "Boss", text.Text)
	assert.Equal(t, adplan.Point{X: 10, Y: 20}, text.Position)
	assert.Equal(t, float32(16), text.FontSize)
	assert.False(t, l.Locked)
}

func TestReadOlderVersions(t *testing.T) {
	d := adplan.New(&adplan.Circle{Center: adplan.Point{X: 1, Y: 1}, Radius: 3})
	d.Name = "target"
	d.Locked = true
	in := []*adplan.Drawable{d}

	buf := &bytes.Buffer{}
	require.NoError(t, writePage(buf, in, 1))
	out, err := ReadPage(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Circle", out[0].Name, "v1 records default to the kind name")
	assert.False(t, out[0].Locked)
	assert.Equal(t, d.Shape, out[0].Shape)
	assert.Equal(t, d.ID, out[0].ID)

	buf.Reset()
	require.NoError(t, writePage(buf, in, 2))
	out, err = ReadPage(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "target", out[0].Name)
	assert.False(t, out[0].Locked, "v2 records have no locked flag")
}

func TestReadPageNewerVersion(t *testing.T) {
	data, err := MarshalPage(sampleDrawables())
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(data, uint32(PageFormatVersion+1))

	out, err := ReadPage(data)
	assert.Empty(t, out)
	assert.True(t, adplan.IsFormatError(err), "unexpected error %v", err)
}

func pageHeader(version, count int32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, uint32(version))
	binary.LittleEndian.PutUint32(b[4:], uint32(count))
	return b
}

func TestReadPageCountCap(t *testing.T) {
	for _, count := range []int32{-1, MaxDrawables + 1, 0x7fffffff} {
		out, err := ReadPage(pageHeader(PageFormatVersion, count))
		assert.Empty(t, out)
		assert.True(t, adplan.IsCorrupt(err), "count %d: unexpected error %v", count, err)
	}
}

func TestReadPagePartial(t *testing.T) {
	// declares more records than present
	in := sampleDrawables()[:3]
	data, err := MarshalPage(in)
	require.NoError(t, err)
	binary.LittleEndian.PutUint32(data[4:], 5)

	out, err := ReadPage(data)
	assert.True(t, adplan.IsTruncated(err), "unexpected error %v", err)
	assert.Equal(t, in, out)
}

func TestReadPageUnknownTag(t *testing.T) {
	in := sampleDrawables()[:3]
	data, err := MarshalPage(in)
	require.NoError(t, err)

	first := &bytes.Buffer{}
	require.NoError(t, WriteDrawable(first, in[0]))
	data[8+first.Len()] = 200

	out, err := ReadPage(data)
	assert.True(t, adplan.IsUnknownVariant(err), "unexpected error %v", err)
	assert.Equal(t, in[:1], out, "records after an unknown tag are not recoverable")
}

func TestReadPageTruncated(t *testing.T) {
	in := sampleDrawables()
	data, err := MarshalPage(in)
	require.NoError(t, err)

	for n := 0; n < len(data); n++ {
		out, err := ReadPage(data[:n])
		require.Error(t, err, "truncated at %d", n)
		require.True(t, len(out) < len(in), "truncated at %d", n)
		assert.Equal(t, in[:len(out)], append([]*adplan.Drawable{}, out...), "truncated at %d", n)
	}
}

func TestReadDrawablePointCap(t *testing.T) {
	d := adplan.New(&adplan.Stroke{Points: []adplan.Point{{X: 1, Y: 1}}})
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDrawable(buf, d))
	data := buf.Bytes()

	// point count is the last field before the single point
	at := len(data) - 8 - 4
	binary.LittleEndian.PutUint32(data[at:], adplan.MaxPoints+1)
	_, err := ReadDrawable(bytes.NewReader(data), PageFormatVersion)
	assert.True(t, adplan.IsCorrupt(err), "unexpected error %v", err)

	// within the cap but larger than the input
	binary.LittleEndian.PutUint32(data[at:], 1000)
	_, err = ReadDrawable(bytes.NewReader(data), PageFormatVersion)
	assert.True(t, adplan.IsCorrupt(err), "unexpected error %v", err)
}

func TestReadDrawableShortCommonBlock(t *testing.T) {
	_, err := ReadDrawable(bytes.NewReader([]byte{byte(adplan.KindLine), 0, 0}), PageFormatVersion)
	assert.True(t, adplan.IsTruncated(err), "unexpected error %v", err)
}

func TestWriteDrawableWithoutShape(t *testing.T) {
	err := WriteDrawable(&bytes.Buffer{}, &adplan.Drawable{ID: uuid.New()})
	assert.Error(t, err)
}

func TestWriteNilDrawable(t *testing.T) {
	list := []*adplan.Drawable{adplan.New(&adplan.Circle{Radius: 1}), nil}

	_, err := MarshalPage(list)
	assert.Error(t, err)

	_, err = EncodeClipboard(list)
	assert.Error(t, err)

	assert.Error(t, WriteDrawable(&bytes.Buffer{}, nil))
}

func TestRoundTripEmptyPointLists(t *testing.T) {
	in := []*adplan.Drawable{
		adplan.New(&adplan.Stroke{Points: []adplan.Point{}}),
		adplan.New(&adplan.DashedPath{Points: []adplan.Point{}, Dash: 2, Gap: 1}),
		adplan.New(&adplan.Laser{Points: []adplan.Point{}, Lifetime: 1}),
		adplan.New(&adplan.Polygon{Points: []adplan.Point{}}),
	}
	canonical := adplan.CloneAll(in)

	data, err := MarshalPage(in)
	require.NoError(t, err)
	nilData, err := MarshalPage(canonical)
	require.NoError(t, err)
	assert.Equal(t, nilData, data, "empty and nil point lists encode the same")

	out, err := ReadPage(data)
	require.NoError(t, err)
	// decoded lists are nil, the same as a clone
	assert.Equal(t, canonical, out)
	assert.Nil(t, out[0].Shape.(*adplan.Stroke).Points)
}

func TestIDs(t *testing.T) {
	in := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	data, err := MarshalIDs(in)
	require.NoError(t, err)
	assert.Len(t, data, 4+3*16)

	out, err := ReadIDs(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	out, err = ReadIDs(data[:len(data)-1])
	assert.True(t, adplan.IsCorrupt(err), "unexpected error %v", err)
	assert.Empty(t, out)

	out, err = ReadIDs(pageHeader(MaxIDs+1, 0)[:4])
	assert.True(t, adplan.IsCorrupt(err), "unexpected error %v", err)
	assert.Empty(t, out)

	_, err = ReadIDs(nil)
	assert.True(t, adplan.IsTruncated(err), "unexpected error %v", err)

	_, err = MarshalIDs(make([]uuid.UUID, MaxIDs+1))
	assert.Error(t, err)
}

func TestClipboard(t *testing.T) {
	in := sampleDrawables()
	text, err := EncodeClipboard(in)
	require.NoError(t, err)

	out, err := DecodeClipboard("  " + text + "\n")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeClipboard("hello")
	assert.ErrorIs(t, err, ErrNoClipboardData)
	_, err = DecodeClipboard("adplan:%%%")
	assert.ErrorIs(t, err, ErrNoClipboardData)
}
