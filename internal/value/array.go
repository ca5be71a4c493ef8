package value

import (
	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/hashtable"
)

// ElemKind names the scalar type an array's cells hold; array-of-array
// and array-of-function are rejected at creation (§4.G).
type ElemKind int

const (
	ElemInt ElemKind = iota
	ElemReal
	ElemStr
)

func zeroCell(kind ElemKind) Value {
	switch kind {
	case ElemReal:
		return NewReal(0)
	case ElemStr:
		return NewStr("")
	default:
		return NewInt(0)
	}
}

// StaticArray is a fixed-shape multidimensional array with row-major
// linear addressing computed once at creation.
type StaticArray struct {
	base
	Kind  ElemKind
	Dims  []int
	coefs []int
	Cells []Value
}

// NewStaticArray builds a zero-initialized static array of the given
// per-dimension sizes.
func NewStaticArray(kind ElemKind, dims []int) (*StaticArray, error) {
	total := 1
	coefs := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		coefs[i] = total
		total *= dims[i]
	}
	if total <= 0 {
		return nil, errors.New(errors.ArrayTooLarge, "array dimensions must be positive")
	}
	cells := make([]Value, total)
	for i := range cells {
		cells[i] = zeroCell(kind)
	}
	return &StaticArray{Kind: kind, Dims: dims, coefs: coefs, Cells: cells}, nil
}

func (a *StaticArray) Type() string   { return "StaticArray" }
func (a *StaticArray) String() string { return "[static array]" }

// At resolves ndims index values to a cell, enforcing bounds.
func (a *StaticArray) At(idx []Value) (Value, error) {
	if len(idx) != len(a.Dims) {
		return nil, errors.New(errors.DimensionCount, "expected %d dimensions, got %d", len(a.Dims), len(idx))
	}
	offset := 0
	for i, v := range idx {
		if !isIntOrReal(v) {
			return nil, errors.New(errors.BadSubscript, "subscript %d must be Int or Real", i)
		}
		ix := int(v.GetInt())
		if ix < 0 || ix >= a.Dims[i] {
			return nil, errors.New(errors.BadSubscript, "index #%d out of range", i)
		}
		offset += ix * a.coefs[i]
	}
	return a.Cells[offset], nil
}

// DynamicArray is a one-dimensional array that grows on demand.
type DynamicArray struct {
	base
	Kind   ElemKind
	Cells  []Value
	Filled int
}

// NewDynamicArray returns an empty dynamic array with the given
// initial capacity reservation.
func NewDynamicArray(kind ElemKind, capacity int) *DynamicArray {
	return &DynamicArray{Kind: kind, Cells: make([]Value, 0, capacity)}
}

func (a *DynamicArray) Type() string   { return "DynamicArray" }
func (a *DynamicArray) String() string { return "[dynamic array]" }

// At resolves a single index, growing capacity and default-filling
// intervening cells as needed (§4.G).
func (a *DynamicArray) At(index int) (Value, error) {
	if index < 0 {
		return nil, errors.New(errors.BadSubscript, "negative index %d", index)
	}
	if index >= cap(a.Cells) {
		newCap := cap(a.Cells) * 2
		if index+1 > newCap {
			newCap = index + 1
		}
		if newCap == 0 {
			newCap = index + 1
		}
		grown := make([]Value, len(a.Cells), newCap)
		copy(grown, a.Cells)
		a.Cells = grown
	}
	if index >= a.Filled {
		for len(a.Cells) <= index {
			a.Cells = append(a.Cells, zeroCell(a.Kind))
		}
		a.Filled = index + 1
	}
	return a.Cells[index], nil
}

// AssocArray is a one-dimensional array keyed by Int/Real/Str,
// backed by the chained hash table (component C) mapping encoded key
// bytes to a cell index.
type AssocArray struct {
	base
	Kind   ElemKind
	Cells  []Value
	Filled int
	idx    *hashtable.Table
}

// NewAssocArray returns an empty associative array.
func NewAssocArray(kind ElemKind) *AssocArray {
	return &AssocArray{Kind: kind, idx: hashtable.New()}
}

// At resolves key to its cell, appending a new default cell on first
// reference (§4.G); insertion order is observable via Filled.
func (a *AssocArray) At(key Value) (Value, error) {
	kb := keyBytes(key)
	if kb == nil {
		return nil, errors.New(errors.BadSubscript, "associative index must be Int, Real, or Str")
	}
	if e := a.idx.Find(kb); e != nil {
		return a.Cells[e.Payload.(int)], nil
	}
	if a.Filled >= cap(a.Cells) {
		newCap := cap(a.Cells) * 2
		if newCap == 0 {
			newCap = 8
		}
		grown := make([]Value, len(a.Cells), newCap)
		copy(grown, a.Cells)
		a.Cells = grown
	}
	cellIdx := a.Filled
	a.Cells = append(a.Cells, zeroCell(a.Kind))
	a.Filled++
	a.idx.Insert(&hashtable.Entry{Key: kb, Payload: cellIdx})
	return a.Cells[cellIdx], nil
}

func (a *AssocArray) Type() string   { return "AssocArray" }
func (a *AssocArray) String() string { return "[assoc array]" }
