package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/akeil/adplan"
)

// writer stores the first error and skips all writes after it.
type writer struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) write(v interface{}) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.w, endianess, v)
}

func (w *writer) writeBytes(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *writer) writeString(what, s string) {
	if len(s) > MaxStringLen {
		w.fail(fmt.Errorf("%v too long: %d bytes (max %d)", what, len(s), MaxStringLen))
		return
	}

	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], uint64(len(s)))
	w.writeBytes(buf[:n])
	w.writeBytes([]byte(s))
}

func (w *writer) writePoints(pts []adplan.Point) {
	if len(pts) > adplan.MaxPoints {
		w.fail(fmt.Errorf("too many points: %d (max %d)", len(pts), adplan.MaxPoints))
		return
	}
	w.write(int32(len(pts)))
	if len(pts) > 0 {
		w.write(pts)
	}
}
