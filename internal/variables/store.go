// Package variables implements the Variable Store (§4.H): a thin
// name -> Value wrapper over the chained hash table (component C).
package variables

import (
	"github.com/ekkehard/priamosbasic/internal/hashtable"
	"github.com/ekkehard/priamosbasic/internal/value"
)

// Store holds a single interpreter's variable bindings.
type Store struct {
	tbl *hashtable.Table
}

// New returns an empty variable store.
func New() *Store {
	return &Store{tbl: hashtable.New()}
}

// Add inserts name -> v, returning false without modifying the store
// if name is already bound.
func (s *Store) Add(name string, v value.Value) bool {
	key := []byte(name)
	if s.tbl.Find(key) != nil {
		return false
	}
	s.tbl.Insert(&hashtable.Entry{Key: key, Payload: v})
	return true
}

// Remove deletes name's binding, reporting whether it existed.
func (s *Store) Remove(name string) bool {
	e := s.tbl.Find([]byte(name))
	if e == nil {
		return false
	}
	s.tbl.Remove(e)
	return true
}

// Find returns name's bound value, or nil if unbound.
func (s *Store) Find(name string) value.Value {
	e := s.tbl.Find([]byte(name))
	if e == nil {
		return nil
	}
	return e.Payload.(value.Value)
}

// Clear removes every binding.
func (s *Store) Clear() {
	s.tbl.Clear()
}
