package relay

import (
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/adplan"
)

// echoServer sends every message back to the client.
func echoServer(t *testing.T) *httptest.Server {
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(kind, data); err != nil {
				return
			}
		}
	}))
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestPeer(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	h := http.Header{}
	h.Set("X-Token", "secret")
	p := NewPeer(wsURL(srv), h)

	received := make(chan Message, 4)
	p.OnMessage(func(m Message) { received <- m })
	require.NoError(t, p.Connect())
	assert.Error(t, p.Connect())

	d := adplan.New(&adplan.Circle{Center: adplan.Point{X: 5, Y: 5}, Radius: 3})
	require.NoError(t, p.SendPage(2, []*adplan.Drawable{d}))

	m := receive(t, received)
	assert.Equal(t, PageReplace, m.Type)
	assert.Equal(t, int32(2), m.Page)
	drawables, err := m.Drawables()
	require.NoError(t, err)
	require.Len(t, drawables, 1)
	assert.Equal(t, d.ID, drawables[0].ID)

	require.NoError(t, p.SendDelete(0, d.ID))
	m = receive(t, received)
	assert.Equal(t, DeleteIDs, m.Type)
	ids, err := m.IDs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d.ID}, ids)

	p.Close()
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("connection not closed")
	}
	assert.Equal(t, ErrNotConnected, p.Send(m))
}

func TestPeerDropsBadMessages(t *testing.T) {
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte("hello"))
		conn.WriteMessage(websocket.BinaryMessage, []byte{9, 0, 0, 0, 0})
		good, _ := NewDeleteMessage(1, nil)
		conn.WriteMessage(websocket.BinaryMessage, good.Marshal())
		conn.ReadMessage()
	}))
	defer srv.Close()

	p := NewPeer(wsURL(srv), nil)
	received := make(chan Message, 4)
	p.OnMessage(func(m Message) { received <- m })
	require.NoError(t, p.Connect())
	defer p.Close()

	m := receive(t, received)
	assert.Equal(t, DeleteIDs, m.Type)
	assert.Equal(t, int32(1), m.Page)
}

func TestPeerRejectsOversizedMessages(t *testing.T) {
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		big, _ := NewDeleteMessage(0, nil)
		big.Data = make([]byte, 2048)
		conn.WriteMessage(websocket.BinaryMessage, big.Marshal())
		conn.ReadMessage()
	}))
	defer srv.Close()

	p := NewPeer(wsURL(srv), nil)
	assert.Equal(t, int64(MaxMessageSize), p.ReadLimit)
	p.ReadLimit = 1024

	received := make(chan Message, 1)
	p.OnMessage(func(m Message) { received <- m })
	require.NoError(t, p.Connect())
	defer p.Close()

	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("connection not closed after oversized message")
	}
	assert.Empty(t, received)
}

func TestConnectFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewPeer(wsURL(srv), nil)
	assert.Error(t, p.Connect())
	assert.Equal(t, ErrNotConnected, p.SendDelete(0))
}

func TestMessageMarshal(t *testing.T) {
	m := Message{Type: PageReplace, Page: 7, Data: []byte{1, 2, 3}}
	b := m.Marshal()
	assert.Equal(t, []byte{1, 7, 0, 0, 0, 1, 2, 3}, b)

	u, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, m, u)
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte{1, 0, 0})
	assert.True(t, adplan.IsTruncated(err))

	_, err = Unmarshal([]byte{3, 0, 0, 0, 0})
	assert.Error(t, err)

	neg := make([]byte, 5)
	neg[0] = byte(DeleteIDs)
	binary.LittleEndian.PutUint32(neg[1:], 0xffffffff)
	_, err = Unmarshal(neg)
	assert.True(t, adplan.IsCorrupt(err))
}

func TestApply(t *testing.T) {
	a := adplan.New(&adplan.Line{End: adplan.Point{X: 1, Y: 1}})
	b := adplan.New(&adplan.Line{End: adplan.Point{X: 2, Y: 2}})
	page := adplan.NewPage("p")
	page.Add(a, b)

	del, err := NewDeleteMessage(0, []uuid.UUID{a.ID})
	require.NoError(t, err)
	require.NoError(t, del.Apply(page))
	require.Equal(t, 1, page.Len())
	assert.Equal(t, b.ID, page.Drawables[0].ID)

	c := adplan.New(&adplan.Circle{Radius: 4})
	rep, err := NewPageMessage(0, []*adplan.Drawable{c})
	require.NoError(t, err)
	require.NoError(t, rep.Apply(page))
	require.Equal(t, 1, page.Len())
	assert.Equal(t, c.ID, page.Drawables[0].ID)

	_, err = rep.IDs()
	assert.Error(t, err)
	_, err = del.Drawables()
	assert.Error(t, err)
}
