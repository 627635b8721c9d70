// Package codec reads and writes drawables, pages and plans in the binary
// plan format.
//
// All values are little-endian; floats are 32-bit IEEE-754. Strings are
// prefixed with their byte length as an unsigned varint.
//
// Decoding never trusts a size field: counts and lengths are checked against
// fixed caps and the remaining input before anything is allocated. Decoders
// return whatever they could read together with an error describing why
// they stopped.
package codec

import "math"

const (
	// Signature starts every plan file.
	Signature = "ADPN"

	// PlanFormatVersion is the plan container version written by this package.
	PlanFormatVersion uint32 = 1
	// PageFormatVersion is the page/record version written by this package.
	PageFormatVersion int32 = 3

	// MaxDrawables is the maximum number of drawables on one page.
	MaxDrawables = 10000
	// MaxPages is the maximum number of pages in one plan.
	MaxPages = 1000
	// MaxIDs is the maximum number of identifiers in an id list.
	MaxIDs = MaxDrawables
	// MaxStringLen is the maximum byte length of any string.
	MaxStringLen = 1 << 20
)

const (
	pointSize = 8
	idSize    = 16
	// tag excluded: color, thickness, filled, id
	commonSize = 4*4 + 4 + 1 + idSize
	// page blobs are bounded by the remaining input only
	maxPageBlob = math.MaxInt32
)

// field names an optional record field that was added in a later version.
type field int

const (
	fieldName field = iota
	fieldLocked
)

// introduced lists the page format version in which each optional field
// first appeared. Older records are decoded with defaults.
var introduced = map[field]int32{
	fieldName:   2,
	fieldLocked: 3,
}

func has(f field, version int32) bool {
	return version >= introduced[f]
}
