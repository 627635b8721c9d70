package adplan

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := errors.New("some error")
	if IsNotFound(err) {
		t.Log("custom error type NotFound is wrongly recognized")
		t.Fail()
	}

	err = NewNotFound("plan %q", "x")
	if !IsNotFound(err) {
		t.Log("custom error type NotFound is not recognized")
		t.Fail()
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := Wrap(ErrTruncated, "read page %d", 2)
	if !IsTruncated(wrapped) {
		t.Errorf("wrapped truncation error not recognized: %v", wrapped)
	}
	if IsCorrupt(wrapped) {
		t.Errorf("truncation error classified as corrupt")
	}

	corrupt := fmt.Errorf("page: %w", CorruptSizeError{What: "drawable count", Size: -1, Max: 10000})
	if !IsCorrupt(corrupt) {
		t.Errorf("corrupt size error not recognized: %v", corrupt)
	}

	if !IsFormatError(ErrNotAPlanFile) {
		t.Errorf("bad signature is a format error")
	}
	if !IsFormatError(UnsupportedVersionError{What: "plan", Version: 9, Max: 1}) {
		t.Errorf("unsupported version is a format error")
	}
	if !IsUnknownVariant(Wrap(UnknownVariantError{Tag: 200}, "record 3")) {
		t.Errorf("unknown variant error not recognized")
	}
}

func TestStatus(t *testing.T) {
	if s := Status(nil); s != "ok" {
		t.Errorf("unexpected status for nil error: %q", s)
	}
	if s := Status(ErrNotAPlanFile); s != "not a plan file" {
		t.Errorf("unexpected status: %q", s)
	}
}
