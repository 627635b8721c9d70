package codec

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/akeil/adplan"
)

// clipboardPrefix marks clipboard text that holds drawables.
const clipboardPrefix = "adplan:"

// ErrNoClipboardData is returned for clipboard text without drawables.
var ErrNoClipboardData = errors.New("clipboard text holds no drawables")

// EncodeClipboard returns a text representation of the drawables that can
// be placed on the system clipboard.
func EncodeClipboard(drawables []*adplan.Drawable) (string, error) {
	blob, err := MarshalPage(drawables)
	if err != nil {
		return "", err
	}
	return clipboardPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// DecodeClipboard decodes text created by EncodeClipboard. Like ReadPage,
// it may return a partial result with an error.
func DecodeClipboard(text string) ([]*adplan.Drawable, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, clipboardPrefix) {
		return nil, ErrNoClipboardData
	}

	blob, err := base64.StdEncoding.DecodeString(text[len(clipboardPrefix):])
	if err != nil {
		return nil, adplan.Wrap(ErrNoClipboardData, "%v", err)
	}
	return ReadPage(blob)
}
