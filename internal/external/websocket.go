package external

import (
	"net"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ekkehard/priamosbasic/internal/errors"
)

// wsConn adapts a *websocket.Conn to the net.Conn interface CONNECT/
// SEND/RECV$ already operate on, so the socket handle table in
// external.go never has to special-case WebSocket peers: Write/Read
// simply move one whole text frame per call instead of a raw byte
// stream.
//
// Grounded on the example pack's internal/network.WebSocketConn
// (sentra-language-sentra), which wraps gorilla/websocket the same
// way for its own connection table.
type wsConn struct {
	*websocket.Conn
}

func (w *wsConn) Read(p []byte) (int, error) {
	_, data, err := w.Conn.ReadMessage()
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	return n, nil
}

func (w *wsConn) Write(p []byte) (int, error) {
	if err := w.Conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetDeadline has no single-call equivalent on websocket.Conn (only
// separate read/write deadlines); CONNECT/SEND/RECV$ never call it, so
// it is a no-op rather than forwarding to both.
func (w *wsConn) SetDeadline(t time.Time) error { return nil }

// ConnectWebSocket dials a ws://or wss:// URL and registers the
// resulting connection in the same handle table net.Dial-backed
// CONNECT uses, so SEND/RECV$/CLOSE work identically regardless of
// transport.
func (c *Collaborators) ConnectWebSocket(rawURL string) (int64, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return 0, errors.Wrap(err, errors.Syntax, "CONNECT %s: %v", rawURL, err)
	}
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(rawURL, nil)
	if err != nil {
		return 0, errors.Wrap(err, errors.Interpret, "CONNECT %s: %v", rawURL, err)
	}

	var adapted net.Conn = &wsConn{Conn: conn}
	id := c.allocID()
	c.mu.Lock()
	c.conns[id] = adapted
	c.mu.Unlock()
	return id, nil
}
