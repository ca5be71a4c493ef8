// Package external implements the External Collaborators component
// (§4.Q of SPEC_FULL.md, expanding spec.md §1's out-of-scope list):
// the file, directory, and socket built-ins that back the keyword
// table's I/O-flavored function keywords. Each is registered as an
// ordinary *value.Function so the evaluator and dispatcher are
// completely unaware these handlers do real I/O instead of pure
// computation — the same closure-registration shape builtins.go uses
// for ASC/SIN/LEFT$.
//
// The small-integer handle table guarded by a mutex is grounded on
// the example pack's internal/database.DBManager and
// internal/network.NetworkModule (sentra-language-sentra): both keep
// a map from a caller-visible ID to a live connection/file struct
// behind a sync.RWMutex, rather than returning the raw *os.File/
// net.Conn to script code.
package external

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/token"
	"github.com/ekkehard/priamosbasic/internal/value"
)

// Collaborators owns every live file/socket handle this interpreter
// session has opened, plus the CHDIR/PUSHDIR directory stack. The
// zero value is ready to use.
type Collaborators struct {
	mu      sync.Mutex
	files   map[int64]*os.File
	conns   map[int64]net.Conn
	listens map[int64]net.Listener
	nextID  int64
	dirStk  []string
}

// New returns an empty collaborator set.
func New() *Collaborators {
	return &Collaborators{
		files:   make(map[int64]*os.File),
		conns:   make(map[int64]net.Conn),
		listens: make(map[int64]net.Listener),
	}
}

func (c *Collaborators) allocID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

// Register installs every collaborator-backed keyword into b, the
// same builtin table newBuiltins() returns. The interpreter consults
// that table only for function-family keywords inside expressions, so
// CWD$, SOCKETV4/SOCKETV6, ACCEPT, RECV$, HOSTNAME$, DOMAIN$, IPV4$,
// IPV6$ and WHERE$ become callable from BASIC; the statement-family
// entries (OPEN, CLOSE, INPUT, REWIND, SEEK, DIR, CHDIR, PUSHDIR,
// POPDIR, BIND, LISTEN, CONNECT, SEND) are stored but not reached,
// and those statements report "not implemented" either way. Callers
// that want the function-family keywords to stay unimplemented (the
// isolation property SPEC_FULL.md §8 requires) simply skip calling
// Register.
func (c *Collaborators) Register(b map[token.Code]*value.Function) {
	fn := func(code token.Code, name string, min, max int, h value.Handler) {
		b[code] = value.NewFunction(value.FuncBuiltin, name, min, max, h)
	}

	fn(token.KwOpen, "OPEN", 2, 2, c.open)
	fn(token.KwClose, "CLOSE", 1, 1, c.closeHandle)
	fn(token.KwInput, "INPUT", 1, 1, c.input)
	fn(token.KwRewind, "REWIND", 1, 1, c.rewind)
	fn(token.KwSeek, "SEEK", 2, 2, c.seek)

	fn(token.KwDir, "DIR", 0, 1, c.dir)
	fn(token.KwChdir, "CHDIR", 1, 1, c.chdir)
	fn(token.KwPushdir, "PUSHDIR", 1, 1, c.pushdir)
	fn(token.KwPopdir, "POPDIR", 0, 0, c.popdir)
	fn(token.KwCwdS, "CWD$", 0, 0, c.cwd)

	fn(token.KwSocketv4, "SOCKETV4", 0, 0, c.socketPlaceholder)
	fn(token.KwSocketv6, "SOCKETV6", 0, 0, c.socketPlaceholder)
	fn(token.KwBind, "BIND", 2, 2, c.bind)
	fn(token.KwListen, "LISTEN", 1, 1, c.listen)
	fn(token.KwConnect, "CONNECT", 2, 2, c.connect)
	fn(token.KwAccept, "ACCEPT", 1, 1, c.accept)
	fn(token.KwSend, "SEND", 2, 2, c.send)
	fn(token.KwRecvS, "RECV$", 2, 2, c.recv)

	fn(token.KwHostnameS, "HOSTNAME$", 0, 0, c.hostname)
	fn(token.KwDomainS, "DOMAIN$", 0, 0, c.domain)
	fn(token.KwIpv4S, "IPV4$", 0, 1, c.ipv4)
	fn(token.KwIpv6S, "IPV6$", 0, 1, c.ipv6)
	fn(token.KwWhereS, "WHERE$", 1, 1, c.where)
}

func argStr(v value.Value) string { return v.GetStr(false) }

// --- file built-ins -------------------------------------------------

func (c *Collaborators) open(call *value.CallArgs) error {
	path := argStr(call.Args[0])
	mode := argStr(call.Args[1])

	var flag int
	switch mode {
	case "R":
		flag = os.O_RDONLY
	case "W":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "A":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return errors.New(errors.Syntax, "OPEN mode must be R, W or A, got %q", mode)
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "OPEN %s: %v", path, err)
	}

	id := c.allocID()
	c.mu.Lock()
	c.files[id] = f
	c.mu.Unlock()
	call.Results = append(call.Results, value.NewInt(id))
	return nil
}

func (c *Collaborators) getFile(id int64) (*os.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.files[id]
	if !ok {
		return nil, errors.New(errors.Interpret, "file handle #%d not open", id)
	}
	return f, nil
}

func (c *Collaborators) closeHandle(call *value.CallArgs) error {
	id := call.Args[0].GetInt()

	c.mu.Lock()
	if f, ok := c.files[id]; ok {
		delete(c.files, id)
		c.mu.Unlock()
		return f.Close()
	}
	if conn, ok := c.conns[id]; ok {
		delete(c.conns, id)
		c.mu.Unlock()
		return conn.Close()
	}
	if l, ok := c.listens[id]; ok {
		delete(c.listens, id)
		c.mu.Unlock()
		return l.Close()
	}
	c.mu.Unlock()
	return errors.New(errors.Interpret, "handle #%d not open", id)
}

func (c *Collaborators) input(call *value.CallArgs) error {
	f, err := c.getFile(call.Args[0].GetInt())
	if err != nil {
		return err
	}
	buf := make([]byte, 1)
	n, err := f.Read(buf)
	if n == 0 {
		call.Results = append(call.Results, value.NewStr(""))
		return nil
	}
	if err != nil && err.Error() != "EOF" {
		return errors.Wrap(err, errors.Interpret, "INPUT: %v", err)
	}
	call.Results = append(call.Results, value.NewStr(string(buf[:n])))
	return nil
}

func (c *Collaborators) rewind(call *value.CallArgs) error {
	f, err := c.getFile(call.Args[0].GetInt())
	if err != nil {
		return err
	}
	_, err = f.Seek(0, io.SeekStart)
	return err
}

func (c *Collaborators) seek(call *value.CallArgs) error {
	f, err := c.getFile(call.Args[0].GetInt())
	if err != nil {
		return err
	}
	_, err = f.Seek(call.Args[1].GetInt(), io.SeekStart)
	return err
}

// --- directory built-ins --------------------------------------------

func (c *Collaborators) dir(call *value.CallArgs) error {
	path := "."
	if len(call.Args) == 1 {
		path = argStr(call.Args[0])
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "DIR %s: %v", path, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	call.Results = append(call.Results, value.NewInt(int64(len(names))))
	return nil
}

func (c *Collaborators) chdir(call *value.CallArgs) error {
	return os.Chdir(argStr(call.Args[0]))
}

func (c *Collaborators) pushdir(call *value.CallArgs) error {
	cur, err := os.Getwd()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.dirStk = append(c.dirStk, cur)
	c.mu.Unlock()
	return os.Chdir(argStr(call.Args[0]))
}

func (c *Collaborators) popdir(call *value.CallArgs) error {
	c.mu.Lock()
	if len(c.dirStk) == 0 {
		c.mu.Unlock()
		return errors.New(errors.Interpret, "POPDIR: directory stack empty")
	}
	top := c.dirStk[len(c.dirStk)-1]
	c.dirStk = c.dirStk[:len(c.dirStk)-1]
	c.mu.Unlock()
	return os.Chdir(top)
}

func (c *Collaborators) cwd(call *value.CallArgs) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	call.Results = append(call.Results, value.NewStr(wd))
	return nil
}

// --- socket built-ins ------------------------------------------------

// socketPlaceholder satisfies SOCKETV4/SOCKETV6, which in the original
// dialect merely select an address family for a subsequent BIND/
// CONNECT; this implementation lets net.Dial/net.Listen infer the
// family from the address string instead, so the call is a no-op that
// simply returns a fresh handle slot reservation of 0.
func (c *Collaborators) socketPlaceholder(call *value.CallArgs) error {
	call.Results = append(call.Results, value.NewInt(0))
	return nil
}

func (c *Collaborators) bind(call *value.CallArgs) error {
	addr := fmt.Sprintf("%s:%d", argStr(call.Args[0]), call.Args[1].GetInt())
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "BIND %s: %v", addr, err)
	}
	id := c.allocID()
	c.mu.Lock()
	c.listens[id] = l
	c.mu.Unlock()
	call.Results = append(call.Results, value.NewInt(id))
	return nil
}

func (c *Collaborators) listen(call *value.CallArgs) error {
	// The listener is already listening once BIND succeeds (net.Listen
	// binds and listens in one call); LISTEN just validates the handle.
	id := call.Args[0].GetInt()
	c.mu.Lock()
	_, ok := c.listens[id]
	c.mu.Unlock()
	if !ok {
		return errors.New(errors.Interpret, "listener #%d not bound", id)
	}
	return nil
}

func (c *Collaborators) accept(call *value.CallArgs) error {
	id := call.Args[0].GetInt()
	c.mu.Lock()
	l, ok := c.listens[id]
	c.mu.Unlock()
	if !ok {
		return errors.New(errors.Interpret, "listener #%d not bound", id)
	}
	conn, err := l.Accept()
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "ACCEPT: %v", err)
	}
	newID := c.allocID()
	c.mu.Lock()
	c.conns[newID] = conn
	c.mu.Unlock()
	call.Results = append(call.Results, value.NewInt(newID))
	return nil
}

func (c *Collaborators) connect(call *value.CallArgs) error {
	addr := fmt.Sprintf("%s:%d", argStr(call.Args[0]), call.Args[1].GetInt())
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "CONNECT %s: %v", addr, err)
	}
	id := c.allocID()
	c.mu.Lock()
	c.conns[id] = conn
	c.mu.Unlock()
	call.Results = append(call.Results, value.NewInt(id))
	return nil
}

func (c *Collaborators) getConn(id int64) (net.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn, ok := c.conns[id]
	if !ok {
		return nil, errors.New(errors.Interpret, "connection #%d not open", id)
	}
	return conn, nil
}

func (c *Collaborators) send(call *value.CallArgs) error {
	conn, err := c.getConn(call.Args[0].GetInt())
	if err != nil {
		return err
	}
	n, err := conn.Write([]byte(argStr(call.Args[1])))
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "SEND: %v", err)
	}
	call.Results = append(call.Results, value.NewInt(int64(n)))
	return nil
}

func (c *Collaborators) recv(call *value.CallArgs) error {
	conn, err := c.getConn(call.Args[0].GetInt())
	if err != nil {
		return err
	}
	n := int(call.Args[1].GetInt())
	if n <= 0 {
		call.Results = append(call.Results, value.NewStr(""))
		return nil
	}
	buf := make([]byte, n)
	got, err := conn.Read(buf)
	if err != nil && got == 0 {
		return errors.Wrap(err, errors.Interpret, "RECV$: %v", err)
	}
	call.Results = append(call.Results, value.NewStr(string(buf[:got])))
	return nil
}

// --- address/name built-ins ------------------------------------------

func (c *Collaborators) hostname(call *value.CallArgs) error {
	h, err := os.Hostname()
	if err != nil {
		return err
	}
	call.Results = append(call.Results, value.NewStr(h))
	return nil
}

func (c *Collaborators) domain(call *value.CallArgs) error {
	h, err := os.Hostname()
	if err != nil {
		return err
	}
	call.Results = append(call.Results, value.NewStr(h))
	return nil
}

func firstAddr(wantV6 bool) (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		isV4 := ipNet.IP.To4() != nil
		if isV4 == !wantV6 {
			return ipNet.IP.String(), nil
		}
	}
	return "", errors.New(errors.Interpret, "no matching network address found")
}

func (c *Collaborators) ipv4(call *value.CallArgs) error {
	if len(call.Args) == 1 {
		addrs, err := net.LookupHost(argStr(call.Args[0]))
		if err != nil {
			return errors.Wrap(err, errors.Interpret, "IPV4$: %v", err)
		}
		call.Results = append(call.Results, value.NewStr(addrs[0]))
		return nil
	}
	ip, err := firstAddr(false)
	if err != nil {
		return err
	}
	call.Results = append(call.Results, value.NewStr(ip))
	return nil
}

func (c *Collaborators) ipv6(call *value.CallArgs) error {
	if len(call.Args) == 1 {
		addrs, err := net.LookupHost(argStr(call.Args[0]))
		if err != nil {
			return errors.Wrap(err, errors.Interpret, "IPV6$: %v", err)
		}
		call.Results = append(call.Results, value.NewStr(addrs[0]))
		return nil
	}
	ip, err := firstAddr(true)
	if err != nil {
		return err
	}
	call.Results = append(call.Results, value.NewStr(ip))
	return nil
}

func (c *Collaborators) where(call *value.CallArgs) error {
	names, err := net.LookupAddr(argStr(call.Args[0]))
	if err != nil {
		return errors.Wrap(err, errors.Interpret, "WHERE$: %v", err)
	}
	if len(names) == 0 {
		call.Results = append(call.Results, value.NewStr(""))
		return nil
	}
	call.Results = append(call.Results, value.NewStr(names[0]))
	return nil
}
