package external

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/value"
)

func call(t *testing.T, fn *value.Function, args ...value.Value) []value.Value {
	t.Helper()
	res, err := fn.Call(args)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	return res
}

func TestFileOpenWriteCloseRoundTrip(t *testing.T) {
	c := New()
	b := make(map[token.Code]*value.Function)
	c.Register(b)

	path := filepath.Join(t.TempDir(), "prog.dat")

	res := call(t, b[token.KwOpen], value.NewStr(path), value.NewStr("W"))
	id := res[0]

	f, err := c.getFile(id.GetInt())
	if err != nil {
		t.Fatalf("getFile: %v", err)
	}
	if _, err := f.WriteString("X"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}

	call(t, b[token.KwClose], id)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "X" {
		t.Fatalf("file contents = %q, want %q", data, "X")
	}
}

func TestCwdReturnsWorkingDirectory(t *testing.T) {
	c := New()
	b := make(map[token.Code]*value.Function)
	c.Register(b)

	want, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	res := call(t, b[token.KwCwdS])
	if got := res[0].GetStr(false); got != want {
		t.Fatalf("CWD$ = %q, want %q", got, want)
	}
}

func TestBindListenAcceptConnectSendRecv(t *testing.T) {
	c := New()
	b := make(map[token.Code]*value.Function)
	c.Register(b)

	res := call(t, b[token.KwBind], value.NewStr("127.0.0.1"), value.NewInt(0))
	listenID := res[0]

	c.mu.Lock()
	l := c.listens[listenID.GetInt()]
	c.mu.Unlock()
	addr := l.Addr().(*net.TCPAddr)

	call(t, b[token.KwListen], listenID)

	acceptDone := make(chan []value.Value, 1)
	go func() {
		acceptDone <- call(t, b[token.KwAccept], listenID)
	}()

	connRes := call(t, b[token.KwConnect], value.NewStr("127.0.0.1"), value.NewInt(int64(addr.Port)))
	clientID := connRes[0]

	serverRes := <-acceptDone
	serverID := serverRes[0]

	call(t, b[token.KwSend], clientID, value.NewStr("hi"))

	recvRes := call(t, b[token.KwRecvS], serverID, value.NewInt(2))
	if got := recvRes[0].GetStr(false); got != "hi" {
		t.Fatalf("RECV$ = %q, want %q", got, "hi")
	}

	call(t, b[token.KwClose], clientID)
	call(t, b[token.KwClose], serverID)
	call(t, b[token.KwClose], listenID)
}

// TestSQLRoundTrip exercises the optional SQL collaborator against an
// in-memory sqlite3 database, the same handle-table discipline as the
// file/socket built-ins above but proving out mattn/go-sqlite3 (and,
// by the same Open/Exec/QueryRow/Close surface, the mysql/postgres/
// mssql drivers blank-imported alongside it).
func TestSQLRoundTrip(t *testing.T) {
	s := NewSQL()

	id, err := s.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close(id)

	if _, err := s.Exec(id, "CREATE TABLE greetings (word TEXT)"); err != nil {
		t.Fatalf("Exec CREATE: %v", err)
	}
	if _, err := s.Exec(id, "INSERT INTO greetings (word) VALUES (?)", "hello"); err != nil {
		t.Fatalf("Exec INSERT: %v", err)
	}

	row, err := s.QueryRow(id, "SELECT word FROM greetings WHERE word = ?", "hello")
	if err != nil {
		t.Fatalf("QueryRow: %v", err)
	}
	if len(row) != 1 || row[0] != "hello" {
		t.Fatalf("QueryRow = %v, want [hello]", row)
	}
}

// TestConnectWebSocketEchoRoundTrip exercises ConnectWebSocket against
// a local gorilla/websocket echo server, proving the CONNECT/SEND/
// RECV$ handle table interoperates with a real WebSocket peer through
// the wsConn net.Conn adapter.
func TestConnectWebSocketEchoRoundTrip(t *testing.T) {
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade: %v", err)
			return
		}
		defer conn.Close()
		typ, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.WriteMessage(typ, data)
	}))
	defer srv.Close()

	c := New()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"

	id, err := c.ConnectWebSocket(wsURL)
	if err != nil {
		t.Fatalf("ConnectWebSocket: %v", err)
	}

	c.mu.Lock()
	conn := c.conns[id]
	c.mu.Unlock()

	if _, err := conn.Write([]byte("ping")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	buf := make([]byte, 32)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := string(buf[:n]); got != "ping" {
		t.Fatalf("echoed = %q, want %q", got, "ping")
	}
	conn.Close()
}
