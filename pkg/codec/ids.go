package codec

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// MarshalIDs encodes a list of drawable identifiers, e.g. for a batched
// delete.
func MarshalIDs(ids []uuid.UUID) ([]byte, error) {
	if len(ids) > MaxIDs {
		return nil, fmt.Errorf("too many ids: %d (max %d)", len(ids), MaxIDs)
	}

	buf := &bytes.Buffer{}
	w := newWriter(buf)
	w.write(int32(len(ids)))
	for _, id := range ids {
		w.write(id)
	}
	if w.err != nil {
		return nil, w.err
	}
	return buf.Bytes(), nil
}

// ReadIDs decodes a list of identifiers. The count is checked against
// MaxIDs and the input size before anything is allocated.
func ReadIDs(data []byte) ([]uuid.UUID, error) {
	r := newReader(data)
	n, err := r.readCount("id count", MaxIDs, idSize)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i], err = r.readID()
		if err != nil {
			return ids[:i], err
		}
	}
	return ids, nil
}
