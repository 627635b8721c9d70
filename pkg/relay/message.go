package relay

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/pkg/codec"
)

// MessageType identifies the payload of a relay message.
type MessageType uint8

const (
	// PageReplace carries a page blob that replaces the page content.
	PageReplace MessageType = 1
	// DeleteIDs carries an identifier list of drawables to remove.
	DeleteIDs MessageType = 2
)

func (t MessageType) String() string {
	switch t {
	case PageReplace:
		return "page-replace"
	case DeleteIDs:
		return "delete-ids"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

const (
	headerSize = 5
	// MaxMessageSize is the default limit for incoming frames.
	MaxMessageSize = 16 << 20
)

// Message is a single relay message.
//
// On the wire it is encoded as u8 type, little endian i32 page index and the
// payload blob.
type Message struct {
	Type MessageType
	Page int32
	Data []byte
}

// NewPageMessage creates a message that replaces the content of a page.
func NewPageMessage(page int, drawables []*adplan.Drawable) (Message, error) {
	data, err := codec.MarshalPage(drawables)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: PageReplace, Page: int32(page), Data: data}, nil
}

// NewDeleteMessage creates a message that removes drawables from a page.
func NewDeleteMessage(page int, ids []uuid.UUID) (Message, error) {
	data, err := codec.MarshalIDs(ids)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: DeleteIDs, Page: int32(page), Data: data}, nil
}

// Drawables decodes the payload of a PageReplace message.
func (m Message) Drawables() ([]*adplan.Drawable, error) {
	if m.Type != PageReplace {
		return nil, fmt.Errorf("%v message has no page data", m.Type)
	}
	return codec.ReadPage(m.Data)
}

// IDs decodes the payload of a DeleteIDs message.
func (m Message) IDs() ([]uuid.UUID, error) {
	if m.Type != DeleteIDs {
		return nil, fmt.Errorf("%v message has no id list", m.Type)
	}
	return codec.ReadIDs(m.Data)
}

// Apply applies the message to the given page.
func (m Message) Apply(p *adplan.Page) error {
	switch m.Type {
	case PageReplace:
		d, err := m.Drawables()
		if d != nil || err == nil {
			p.Drawables = d
		}
		return err
	case DeleteIDs:
		ids, err := m.IDs()
		p.Remove(ids...)
		return err
	default:
		return fmt.Errorf("cannot apply %v", m.Type)
	}
}

// Marshal encodes the message to its binary form.
func (m Message) Marshal() []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(m.Data))
	buf.WriteByte(byte(m.Type))
	binary.Write(&buf, binary.LittleEndian, m.Page)
	buf.Write(m.Data)
	return buf.Bytes()
}

// Unmarshal decodes a binary message.
func Unmarshal(data []byte) (Message, error) {
	var m Message
	if len(data) < headerSize {
		return m, adplan.Wrap(adplan.ErrTruncated, "message header")
	}

	m.Type = MessageType(data[0])
	switch m.Type {
	case PageReplace, DeleteIDs:
	default:
		return m, fmt.Errorf("unknown message type %d", data[0])
	}

	m.Page = int32(binary.LittleEndian.Uint32(data[1:headerSize]))
	if m.Page < 0 || m.Page >= codec.MaxPages {
		return m, adplan.CorruptSizeError{What: "page index", Size: int64(m.Page), Max: codec.MaxPages - 1}
	}
	m.Data = data[headerSize:]
	return m, nil
}
