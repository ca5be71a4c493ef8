// Package hashtable implements PriamosBASIC's chained hash table
// (§4.C): a fixed 1024-bucket table keyed by arbitrary byte slices, with
// the bit-mixing function §4.C specifies verbatim. It backs both the
// variable store (component H) and associative arrays (component G).
//
// The entry/bucket shape is grounded on the teacher's
// internal/interp/runtime.Environment (a name-keyed store with chained
// parent lookup); this package trades the teacher's generic map for the
// spec's bespoke chained hash, since §4.C's mixing function and fixed
// bucket count are load-bearing for §8's hash-bucket test.
package hashtable

// Size is the fixed bucket count (§4.C).
const Size = 1024

// Entry is one chained hash node. Payload is opaque to the table; the
// two collaborators using this package (variable store, associative
// arrays) store their own value alongside the key via Payload.
type Entry struct {
	Key     []byte
	Payload any
	next    *Entry
}

// Table is a chained hash table of Size buckets.
type Table struct {
	buckets [Size]*Entry
	counts  [Size]int
	total   int
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Hash computes the bucket index for key using §4.C's mixing function.
// All arithmetic wraps modulo 2^32.
func Hash(key []byte) uint32 {
	var v1 uint32 = 0xFA720BA3
	var v2 uint32 = 0xD920F8BE
	var v3 uint32 = 0x7A915F24
	v := v1 ^ v2
	for _, b := range key {
		v = v + uint32(b)
		v1 = v1 - v
		v2 = v2 ^ v1
		v3 = v3 + v2
		v = v - v3
	}
	return v % Size
}

// Insert prepends entry to its bucket without checking for duplicates;
// callers deduplicate via Find first.
func (t *Table) Insert(e *Entry) {
	idx := Hash(e.Key)
	e.next = t.buckets[idx]
	t.buckets[idx] = e
	t.counts[idx]++
	t.total++
}

// Find returns the first entry whose key equals key, or nil.
func (t *Table) Find(key []byte) *Entry {
	idx := Hash(key)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if string(e.Key) == string(key) {
			return e
		}
	}
	return nil
}

// Remove deletes the first entry matching target (by pointer identity)
// from its bucket's chain.
func (t *Table) Remove(target *Entry) {
	idx := Hash(target.Key)
	var prev *Entry
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e == target {
			if prev == nil {
				t.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			t.counts[idx]--
			t.total--
			return
		}
		prev = e
	}
}

// Clear empties every bucket.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
		t.counts[i] = 0
	}
	t.total = 0
}

// Total returns the number of live entries.
func (t *Table) Total() int { return t.total }

// Coverage returns the fraction of buckets holding at least one entry,
// for debugging/diagnostics.
func (t *Table) Coverage() float64 {
	used := 0
	for _, c := range t.counts {
		if c > 0 {
			used++
		}
	}
	return float64(used) / float64(Size)
}
