// Package arg models the type-erased argument destination store described
// in spec.md §3 ("Argument value model", "Argument store", "Visited-args
// bitset").
package arg

import (
	"fmt"

	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// Kind tags the variant of destination a Value points at. This is the Go
// substitute for the source's function-template overloading (spec.md §9,
// "Polymorphism over argument kinds"): one enum, dispatched once, instead
// of a method hierarchy.
type Kind int

const (
	KindNone Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindStringView
	KindBytes
	KindPointer
	KindCustom
)

// KindRune and KindByte do not exist as separate tags: Go declares
// `rune`/`int32` and `byte`/`uint8` as aliases for the identical type, so
// a *rune destination classifies as KindInt32 and a *byte destination as
// KindUint8 — the same as any other int32/uint8 destination. Whether such
// a destination is read as a character or as a number is decided by the
// field's presentation type at dispatch time (internal/driver), not by
// the destination's static Go type, mirroring how fmt.Scan picks between
// %c and %d by verb rather than by the operand's reflect.Kind.

// ScanState is the minimal cursor a custom Scanner destination is given:
// enough to read and unread one code point at a time and to skip
// whitespace, mirroring fmt.ScanState from the teacher (_examples/Go-zh-go.old/src/pkg/fmt/scan.go)
// scaled down to this library's buffer model. internal/driver supplies the
// concrete implementation; it is declared here, not there, so that a
// Scanner implementation outside this module's internal tree can still
// name the interface via the root package's re-exported alias.
type ScanState interface {
	ReadRune() (r rune, size int, err error)
	UnreadRune() error
	SkipSpace()
}

// Scanner is implemented by any destination that wants to parse its own
// replacement field, mirroring fmt.Scanner from the teacher.
type Scanner interface {
	ScanFrom(state ScanState) error
}

// StringView is a borrowed view into the scan source: the destination kind
// selected by passing a *StringView instead of a *string. It can only be
// populated when the source buffer is contiguous and its code-unit width
// matches, per spec.md §4.7.
type StringView struct {
	s string
}

// String returns the borrowed text. Valid only while the original source
// data is alive, matching spec.md §3's "Outputs ... must outlive" rule.
func (v *StringView) String() string { return v.s }

func (v *StringView) set(s string) { v.s = s }

// Value is one entry of the argument Store: a destination kind plus the
// pointer to mutate.
type Value struct {
	Kind Kind
	Ptr  interface{}
}

// Store is the immutable-for-the-scan ordered sequence of destinations,
// plus the visited-args bitset the driver consults to enforce "each
// supplied argument visited exactly once" (spec.md §4.8).
type Store struct {
	values  []Value
	visited []bool
}

// NewStore classifies each destination's Kind and builds a Store. It never
// touches the underlying data (spec.md §3, "mutably borrows each
// destination" happens later, during scanning).
func NewStore(dests []interface{}) (*Store, *scnerr.Error) {
	values := make([]Value, len(dests))
	for i, d := range dests {
		k, err := kindOf(d)
		if err != nil {
			return nil, err
		}
		values[i] = Value{Kind: k, Ptr: d}
	}
	return &Store{values: values, visited: make([]bool, len(dests))}, nil
}

// Len returns the number of destinations.
func (s *Store) Len() int { return len(s.values) }

// Get returns the id'th destination.
func (s *Store) Get(id int) (Value, bool) {
	if id < 0 || id >= len(s.values) {
		return Value{}, false
	}
	return s.values[id], true
}

// MarkVisited records that id was visited, returning false if it had
// already been visited (a duplicate reference to the same arg_id, which
// spec.md §4.8 says is an invalid_format_string error).
func (s *Store) MarkVisited(id int) bool {
	if id < 0 || id >= len(s.visited) {
		return false
	}
	if s.visited[id] {
		return false
	}
	s.visited[id] = true
	return true
}

// UnvisitedID returns the lowest-indexed destination that was never
// visited, for the "argument list not exhausted" check at end of format.
func (s *Store) UnvisitedID() (int, bool) {
	for i, v := range s.visited {
		if !v {
			return i, true
		}
	}
	return 0, false
}

func kindOf(d interface{}) (Kind, *scnerr.Error) {
	switch d.(type) {
	case *int8:
		return KindInt8, nil
	case *int16:
		return KindInt16, nil
	case *int32:
		return KindInt32, nil
	case *int64:
		return KindInt64, nil
	case *int:
		return KindInt, nil
	case *uint8:
		return KindUint8, nil
	case *uint16:
		return KindUint16, nil
	case *uint32:
		return KindUint32, nil
	case *uint64:
		return KindUint64, nil
	case *uint:
		return KindUint, nil
	case *float32:
		return KindFloat32, nil
	case *float64:
		return KindFloat64, nil
	case *bool:
		return KindBool, nil
	case *string:
		return KindString, nil
	case *StringView:
		return KindStringView, nil
	case *[]byte:
		return KindBytes, nil
	case *uintptr:
		return KindPointer, nil
	case Scanner:
		return KindCustom, nil
	default:
		return KindNone, scnerr.Newf(scnerr.CodeInvalidFormatString, "unsupported destination type %T", d)
	}
}

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	names := [...]string{
		"none", "int8", "int16", "int32", "int64", "int",
		"uint8", "uint16", "uint32", "uint64", "uint",
		"float32", "float64", "bool",
		"string", "string-view", "bytes", "pointer", "custom",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SetStringView is used by internal/reader to populate a borrowed view
// without exposing the unexported field outside this package's family.
func SetStringView(v *StringView, s string) { v.set(s) }
