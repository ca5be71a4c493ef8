package external

import (
	"database/sql"
	"sync"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ekkehard/priamosbasic/internal/errors"
)

// SQL is an optional collaborator demonstrating the same
// closure-registration pattern against database/sql. It is never
// wired into the keyword table automatically — SQL is not a keyword
// spec.md defines — but a host program may register it itself under a
// SUB name (§4.H's FN-reference machinery) to give PriamosBASIC
// scripts database access without the core ever depending on a SQL
// driver.
//
// Grounded on the example pack's internal/database.DBManager
// (sentra-language-sentra), trimmed to the single connect/query/close
// surface a BASIC built-in needs instead of that package's broader
// scan/credential-testing API.
type SQL struct {
	mu    sync.Mutex
	conns map[int64]*sql.DB
	next  int64
}

// NewSQL returns an empty SQL collaborator.
func NewSQL() *SQL {
	return &SQL{conns: make(map[int64]*sql.DB)}
}

// Open connects to driver (one of "sqlite3", "mysql", "postgres",
// "sqlserver") using dsn and returns a handle for QueryRow/Exec/Close.
func (s *SQL) Open(driver, dsn string) (int64, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return 0, errors.Wrap(err, errors.Interpret, "SQL OPEN %s: %v", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return 0, errors.Wrap(err, errors.Interpret, "SQL OPEN %s: %v", driver, err)
	}

	s.mu.Lock()
	s.next++
	id := s.next
	s.conns[id] = db
	s.mu.Unlock()
	return id, nil
}

func (s *SQL) get(id int64) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.conns[id]
	if !ok {
		return nil, errors.New(errors.Interpret, "SQL handle #%d not open", id)
	}
	return db, nil
}

// Exec runs a statement that returns no rows (INSERT/UPDATE/DELETE/DDL).
func (s *SQL) Exec(id int64, query string, args ...any) (int64, error) {
	db, err := s.get(id)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(query, args...)
	if err != nil {
		return 0, errors.Wrap(err, errors.Interpret, "SQL EXEC: %v", err)
	}
	return res.RowsAffected()
}

// QueryRow runs a query and returns the first row's columns as
// strings, the shape a PriamosBASIC built-in can hand back as a
// comma-separated Str result.
func (s *SQL) QueryRow(id int64, query string, args ...any) ([]string, error) {
	db, err := s.get(id)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.Interpret, "SQL QUERY: %v", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		return nil, nil
	}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, errors.Wrap(err, errors.Interpret, "SQL SCAN: %v", err)
	}
	out := make([]string, len(cols))
	for i, v := range vals {
		out[i] = v.String
	}
	return out, nil
}

// Close releases a SQL handle.
func (s *SQL) Close(id int64) error {
	s.mu.Lock()
	db, ok := s.conns[id]
	if ok {
		delete(s.conns, id)
	}
	s.mu.Unlock()
	if !ok {
		return errors.New(errors.Interpret, "SQL handle #%d not open", id)
	}
	return db.Close()
}
