package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// MarshalPage returns the binary representation of a drawable list.
func MarshalPage(drawables []*adplan.Drawable) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WritePage(buf, drawables)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WritePage writes the drawable list in the current page format.
func WritePage(w io.Writer, drawables []*adplan.Drawable) error {
	return writePage(w, drawables, PageFormatVersion)
}

func writePage(w io.Writer, drawables []*adplan.Drawable, version int32) error {
	if len(drawables) > MaxDrawables {
		return fmt.Errorf("too many drawables: %d (max %d)", len(drawables), MaxDrawables)
	}

	wr := newWriter(w)
	wr.write(version)
	wr.write(int32(len(drawables)))
	for _, d := range drawables {
		writeDrawable(wr, d, version)
	}
	return wr.err
}

// ReadPage decodes a page blob.
//
// A newer format version or an invalid drawable count yields no drawables.
// Otherwise records are decoded in order until the first failure; the
// records read so far are returned together with the error. An unknown tag
// also ends decoding because records carry no length of their own and the
// start of the next record cannot be found.
func ReadPage(data []byte) ([]*adplan.Drawable, error) {
	r := newReader(data)

	version, err := r.readInt32("page format version")
	if err != nil {
		return nil, err
	}
	if version < 1 || version > PageFormatVersion {
		logging.Warning("Skip page with format version %d", version)
		return nil, adplan.UnsupportedVersionError{
			What:    "page",
			Version: int64(version),
			Max:     int64(PageFormatVersion),
		}
	}

	count, err := r.readCount("drawable count", MaxDrawables, 0)
	if err != nil {
		logging.Warning("Skip page: %v", err)
		return nil, err
	}
	logging.Debug("Read page v%d with %d drawables", version, count)

	var drawables []*adplan.Drawable
	for i := 0; i < count; i++ {
		d, err := readDrawable(r, version)
		if err != nil {
			logging.Warning("Stop reading page at record %d of %d: %v", i, count, err)
			return drawables, adplan.Wrap(err, "record %d", i)
		}
		drawables = append(drawables, d)
	}

	if r.Len() > 0 {
		logging.Debug("Ignore %d trailing bytes after page", r.Len())
	}

	return drawables, nil
}
