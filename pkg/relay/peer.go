// Package relay exchanges page content with other clients over a
// websocket connection.
//
// Messages are binary frames (see Message). The peer only transports them;
// applying received messages to a plan is left to the caller.
package relay

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/akeil/adplan"
	"github.com/akeil/adplan/internal/logging"
)

// ErrNotConnected is returned when sending on a peer without a connection.
var ErrNotConnected = errors.New("not connected")

const closeTimeout = time.Second

// MessageHandler is called for each message received from the relay.
// It is called from the read goroutine of the peer.
type MessageHandler func(Message)

// Peer is a client connection to a relay server.
type Peer struct {
	// ReadLimit is the maximum size of an incoming message in bytes.
	// Larger messages end the connection.
	ReadLimit int64

	url    string
	header http.Header
	conn   *websocket.Conn
	done   chan struct{}
	hdl    MessageHandler
	mx     sync.Mutex
}

// NewPeer creates a peer for the given websocket URL. The header is sent
// with the handshake and may be nil.
func NewPeer(url string, header http.Header) *Peer {
	return &Peer{
		ReadLimit: MaxMessageSize,
		url:       url,
		header:    header,
	}
}

// OnMessage sets the handler for incoming messages.
// It must be set before Connect.
func (p *Peer) OnMessage(f MessageHandler) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.hdl = f
}

// Connect dials the relay and starts reading messages.
func (p *Peer) Connect() error {
	p.mx.Lock()
	defer p.mx.Unlock()
	if p.conn != nil {
		return errors.New("already connected")
	}

	logging.Info("Connecting to relay at %q", p.url)
	conn, res, err := websocket.DefaultDialer.Dial(p.url, p.header)
	if err != nil {
		if res != nil {
			return fmt.Errorf("websocket connection failed with status %v: %w", res.StatusCode, err)
		}
		return err
	}

	limit := p.ReadLimit
	if limit <= 0 {
		limit = MaxMessageSize
	}
	conn.SetReadLimit(limit)
	p.conn = conn
	p.done = make(chan struct{})
	go p.read(conn, p.done, p.hdl)

	return nil
}

// Done is closed when the connection ends.
func (p *Peer) Done() <-chan struct{} {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.done
}

// Send writes a single message.
func (p *Peer) Send(m Message) error {
	p.mx.Lock()
	defer p.mx.Unlock()
	if p.conn == nil {
		return ErrNotConnected
	}

	logging.Debug("Send %v for page %d (%d bytes)", m.Type, m.Page, len(m.Data))
	return p.conn.WriteMessage(websocket.BinaryMessage, m.Marshal())
}

// SendPage sends the full content of a page.
func (p *Peer) SendPage(page int, drawables []*adplan.Drawable) error {
	m, err := NewPageMessage(page, drawables)
	if err != nil {
		return err
	}
	return p.Send(m)
}

// SendDelete sends a list of drawable IDs to remove from a page.
func (p *Peer) SendDelete(page int, ids ...uuid.UUID) error {
	m, err := NewDeleteMessage(page, ids)
	if err != nil {
		return err
	}
	return p.Send(m)
}

// Close sends a close message and waits for the server to end the
// connection.
func (p *Peer) Close() error {
	p.mx.Lock()
	conn, done := p.conn, p.done
	if conn == nil {
		p.mx.Unlock()
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := conn.WriteMessage(websocket.CloseMessage, msg)
	p.mx.Unlock()
	if err != nil {
		logging.Warning("Failed to send close message: %v", err)
	}

	// wait for server to close the connection (or timeout)
	select {
	case <-done:
	case <-time.After(closeTimeout):
	}

	p.mx.Lock()
	defer p.mx.Unlock()
	p.conn = nil
	return conn.Close()
}

func (p *Peer) read(conn *websocket.Conn, done chan struct{}, hdl MessageHandler) {
	defer close(done)
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				logging.Warning("Relay connection lost: %v", err)
			} else {
				logging.Debug("Relay connection closed: %v", err)
			}
			return
		}
		if kind != websocket.BinaryMessage {
			logging.Debug("Ignore non-binary relay message")
			continue
		}

		m, err := Unmarshal(data)
		if err != nil {
			logging.Warning("Drop relay message: %v", err)
			continue
		}
		if hdl != nil {
			hdl(m)
		}
	}
}
