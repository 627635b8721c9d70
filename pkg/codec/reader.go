package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/akeil/adplan"
)

var endianess = binary.LittleEndian

// reader is a bounds-checked cursor over untrusted input.
// Every failed read is reported as adplan.ErrTruncated.
type reader struct {
	*bytes.Reader
}

func newReader(data []byte) reader {
	return reader{bytes.NewReader(data)}
}

func truncated(what string) error {
	return fmt.Errorf("failed to read %v: %w", what, adplan.ErrTruncated)
}

// need checks that at least n bytes are left.
func (r reader) need(n int, what string) error {
	if r.Len() < n {
		return truncated(what)
	}
	return nil
}

// read reads a fixed-size value.
func (r reader) read(what string, v interface{}) error {
	err := binary.Read(r, endianess, v)
	if err != nil {
		return truncated(what)
	}
	return nil
}

func (r reader) readInt32(what string) (int32, error) {
	var n int32
	err := r.read(what, &n)
	return n, err
}

// readCount reads an i32 count and checks it against max and against the
// number of remaining bytes, given the size of a single element.
func (r reader) readCount(what string, max int32, elemSize int) (int, error) {
	n, err := r.readInt32(what)
	if err != nil {
		return 0, err
	}

	if n < 0 || n > max {
		return 0, adplan.CorruptSizeError{What: what, Size: int64(n), Max: int64(max)}
	}

	if elemSize > 0 && int64(n)*int64(elemSize) > int64(r.Len()) {
		return 0, adplan.CorruptSizeError{What: what, Size: int64(n), Max: int64(r.Len() / elemSize)}
	}

	return int(n), nil
}

func (r reader) readString(what string) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", truncated(what + " length")
	}

	if n > MaxStringLen || n > uint64(r.Len()) {
		return "", adplan.CorruptSizeError{What: what + " length", Size: clamp(n), Max: int64(r.Len())}
	}

	buf := make([]byte, n)
	_, err = io.ReadFull(r, buf)
	if err != nil {
		return "", truncated(what)
	}
	return string(buf), nil
}

func (r reader) readID() (uuid.UUID, error) {
	var id uuid.UUID
	err := r.read("unique id", &id)
	return id, err
}

func (r reader) readPoint(what string) (adplan.Point, error) {
	var p adplan.Point
	err := r.read(what, &p)
	return p, err
}

// readPoints reads a point-count-prefixed point array.
// Zero-length arrays are returned as nil.
func (r reader) readPoints() ([]adplan.Point, error) {
	n, err := r.readCount("point count", adplan.MaxPoints, pointSize)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	pts := make([]adplan.Point, n)
	err = r.read("points", pts)
	if err != nil {
		return nil, err
	}
	return pts, nil
}

// readFloats reads consecutive f32 values into the given targets.
func (r reader) readFloats(what string, v ...*float32) error {
	for _, f := range v {
		err := r.read(what, f)
		if err != nil {
			return err
		}
	}
	return nil
}

func clamp(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}
