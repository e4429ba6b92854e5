// Package driver implements the scan loop of spec.md §4.8: it walks the
// parsed format events against the argument store, dispatching each
// replacement field to the matching primitive reader and matching each
// literal run against the input exactly. It is the Go analogue of
// fmt/scan.go's doScan (_examples/Go-zh-go.old/src/pkg/fmt/scan.go), generalized from fmt's
// fixed verb set to the spec's arg-id/spec-driven dispatch.
package driver

import (
	"unicode/utf8"

	"github.com/eliaskosunen/scn-go/internal/arg"
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/charutil"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
	"github.com/eliaskosunen/scn-go/internal/reader"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// Run executes one scan: format drives the literal/field event sequence,
// store holds the argument destinations, loc and localized select which
// locale convention (if any) the 'L' flag pulls in. It returns the number
// of arguments successfully filled and, on failure, the error that
// stopped the scan — matching spec.md §6's "partial success" result
// shape, where a caller can always tell how far a scan got.
func Run(b *buffer.Buffer, events []format.Event, store *arg.Store, loc *locale.Locale, localized bool) (filled int, err *scnerr.Error) {
	for _, ev := range events {
		switch ev.Kind {
		case format.EventLiteral:
			if e := matchLiteral(b, ev.Literal); e != nil {
				return filled, e
			}
			b.Commit(b.Position())
		case format.EventField:
			if e := runField(b, ev, store, loc, localized); e != nil {
				return filled, e
			}
			filled++
			b.Commit(b.Position())
		}
	}
	if id, ok := store.UnvisitedID(); ok {
		return filled, scnerr.Newf(scnerr.CodeInvalidFormatString, "argument %d was never referenced by the format string", id)
	}
	return filled, nil
}

// matchLiteral consumes code points from b that must equal lit exactly,
// except that any run of whitespace in lit matches any run (including
// zero-length, at end of input) of whitespace in the input — spec.md
// §4.8's "literal text matches verbatim, except whitespace which matches
// any amount of whitespace" rule, mirrored from fmt/scan.go's skipSpace
// handling of format-string spaces.
func matchLiteral(b *buffer.Buffer, lit string) *scnerr.Error {
	i := 0
	for i < len(lit) {
		r, w := decodeLitRune(lit[i:])
		if charutil.IsSpace(r) {
			for i < len(lit) {
				r2, w2 := decodeLitRune(lit[i:])
				if !charutil.IsSpace(r2) {
					break
				}
				i += w2
			}
			skipInputWhitespace(b)
			continue
		}
		got, _, ok, e := b.Get()
		if e != nil {
			return e
		}
		if !ok || got != r {
			return scnerr.Newf(scnerr.CodeInvalidLiteral, "expected literal %q", lit[i:])
		}
		i += w
	}
	return nil
}

func skipInputWhitespace(b *buffer.Buffer) {
	for {
		r, _, ok, _ := b.Peek()
		if !ok || !charutil.IsSpace(r) {
			return
		}
		b.Get()
	}
}

func decodeLitRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

// runField resolves ev's argument id against store, validates the
// presentation type against the destination's kind, rewinds to the
// field's start position on any failure (spec.md §4.8's "a failed field
// leaves the buffer positioned at the start of that field"), and
// dispatches to the matching reader.
func runField(b *buffer.Buffer, ev format.Event, store *arg.Store, loc *locale.Locale, localized bool) *scnerr.Error {
	v, ok := store.Get(ev.ArgID)
	if !ok {
		return scnerr.Newf(scnerr.CodeInvalidFormatString, "argument id %d out of range", ev.ArgID)
	}
	if !store.MarkVisited(ev.ArgID) {
		return scnerr.Newf(scnerr.CodeInvalidFormatString, "argument id %d referenced more than once", ev.ArgID)
	}
	if err := format.ValidateForKind(v.Kind, ev.Specs); err != nil {
		return err
	}

	start := b.Position()
	implicit := ev.Specs.Type != format.TypeCharacter && ev.Specs.Type != format.TypeEscapedCharacter

	if ev.Specs.Localized && !localized {
		return scnerr.New(scnerr.CodeInvalidFormatString, "'L' flag used without a localized scan")
	}

	err := dispatch(b, ev.Specs, v, loc, implicit)
	if err != nil {
		b.Rewind(start)
		return err
	}
	return nil
}

func dispatch(b *buffer.Buffer, specs format.Specs, v arg.Value, loc *locale.Locale, implicit bool) *scnerr.Error {
	switch v.Kind {
	case arg.KindInt8:
		return scanIntInto(b, specs, 8, loc, implicit, v.Ptr.(*int8), func(p *int8, x int64) { *p = int8(x) })
	case arg.KindInt16:
		return scanIntInto(b, specs, 16, loc, implicit, v.Ptr.(*int16), func(p *int16, x int64) { *p = int16(x) })
	case arg.KindInt32:
		if specs.Type == format.TypeCharacter || specs.Type == format.TypeEscapedCharacter {
			r, err := reader.ScanChar(b)
			if err != nil {
				return err
			}
			*(v.Ptr.(*int32)) = r
			return nil
		}
		return scanIntInto(b, specs, 32, loc, implicit, v.Ptr.(*int32), func(p *int32, x int64) { *p = int32(x) })
	case arg.KindInt64:
		return scanIntInto(b, specs, 64, loc, implicit, v.Ptr.(*int64), func(p *int64, x int64) { *p = x })
	case arg.KindInt:
		return scanIntInto(b, specs, 64, loc, implicit, v.Ptr.(*int), func(p *int, x int64) { *p = int(x) })
	case arg.KindUint8:
		if specs.Type == format.TypeCharacter || specs.Type == format.TypeEscapedCharacter {
			by, err := reader.ScanByte(b)
			if err != nil {
				return err
			}
			*(v.Ptr.(*uint8)) = by
			return nil
		}
		return scanUintInto(b, specs, 8, loc, implicit, v.Ptr.(*uint8), func(p *uint8, x uint64) { *p = uint8(x) })
	case arg.KindUint16:
		return scanUintInto(b, specs, 16, loc, implicit, v.Ptr.(*uint16), func(p *uint16, x uint64) { *p = uint16(x) })
	case arg.KindUint32:
		return scanUintInto(b, specs, 32, loc, implicit, v.Ptr.(*uint32), func(p *uint32, x uint64) { *p = uint32(x) })
	case arg.KindUint64:
		return scanUintInto(b, specs, 64, loc, implicit, v.Ptr.(*uint64), func(p *uint64, x uint64) { *p = x })
	case arg.KindUint:
		return scanUintInto(b, specs, 64, loc, implicit, v.Ptr.(*uint), func(p *uint, x uint64) { *p = uint(x) })
	case arg.KindFloat32:
		f, err := reader.ScanFloat(b, specs, 32, loc, implicit)
		if err != nil {
			return err
		}
		*(v.Ptr.(*float32)) = float32(f)
		return nil
	case arg.KindFloat64:
		f, err := reader.ScanFloat(b, specs, 64, loc, implicit)
		if err != nil {
			return err
		}
		*(v.Ptr.(*float64)) = f
		return nil
	case arg.KindBool:
		bo, err := reader.ScanBool(b, loc, specs.Localized, implicit)
		if err != nil {
			return err
		}
		*(v.Ptr.(*bool)) = bo
		return nil
	case arg.KindString, arg.KindStringView, arg.KindBytes:
		start, end, err := reader.ScanString(b, specs, implicit)
		if err != nil {
			return err
		}
		return reader.FillStringOutput(b, start, end, v)
	case arg.KindPointer:
		return scanPointer(b, v)
	case arg.KindCustom:
		return runCustomScanner(b, v)
	}
	return scnerr.Newf(scnerr.CodeInvalidFormatString, "unsupported destination kind %s", v.Kind)
}

func scanIntInto[T any](b *buffer.Buffer, specs format.Specs, bitSize int, loc *locale.Locale, implicit bool, dst *T, store func(*T, int64)) *scnerr.Error {
	x, err := reader.ScanInt(b, specs, bitSize, loc, implicit)
	if err != nil {
		return err
	}
	store(dst, x)
	return nil
}

func scanUintInto[T any](b *buffer.Buffer, specs format.Specs, bitSize int, loc *locale.Locale, implicit bool, dst *T, store func(*T, uint64)) *scnerr.Error {
	x, err := reader.ScanUint(b, specs, bitSize, loc, implicit)
	if err != nil {
		return err
	}
	store(dst, x)
	return nil
}

// scanPointer reads a "0x"-prefixed hexadecimal address literal into a
// uintptr destination, per spec.md §4.2's 'p' presentation type. It never
// dereferences the value; the scanned address is opaque data, exactly as
// spec.md's Non-goals require ("no attempt to validate that a scanned
// pointer value denotes a live object").
func scanPointer(b *buffer.Buffer, v arg.Value) *scnerr.Error {
	skipInputWhitespace(b)
	start := b.Position()
	if !matchLiteralPrefix(b, "0x") && !matchLiteralPrefix(b, "0X") {
		return scnerr.New(scnerr.CodeInvalidScannedValue, "expected a \"0x\"-prefixed pointer literal")
	}
	digitsStart := b.Position()
	for {
		r, _, ok, _ := b.Peek()
		if !ok {
			break
		}
		if _, valid := charutil.DigitValue(r, 16); !valid {
			break
		}
		b.Get()
	}
	if b.Position() == digitsStart {
		b.Rewind(start)
		return scnerr.New(scnerr.CodeInvalidScannedValue, "expected at least one hex digit after \"0x\"")
	}
	tok, _ := b.Slice(digitsStart, b.Position())
	var addr uint64
	for i := 0; i < len(tok); i++ {
		d, _ := charutil.DigitValue(rune(tok[i]), 16)
		addr = addr<<4 | uint64(d)
	}
	*(v.Ptr.(*uintptr)) = uintptr(addr)
	return nil
}

func matchLiteralPrefix(b *buffer.Buffer, s string) bool {
	start := b.Position()
	for i := 0; i < len(s); i++ {
		r, _, ok, _ := b.Peek()
		if !ok || r != rune(s[i]) {
			b.Rewind(start)
			return false
		}
		b.Get()
	}
	return true
}

// scannerState is the concrete implementation of arg.ScanState passed to a
// user-defined Scanner's ScanFrom, giving it the same peek/get/rewind
// primitives the built-in readers use.
type scannerState struct {
	b          *buffer.Buffer
	lastPos    int
	lastPosSet bool
}

func (s *scannerState) ReadRune() (r rune, size int, err error) {
	s.lastPos = s.b.Position()
	s.lastPosSet = true
	rr, sz, ok, e := s.b.Get()
	if e != nil {
		return 0, 0, e
	}
	if !ok {
		return 0, 0, scnerr.New(scnerr.CodeEndOfInput, "end of input")
	}
	return rr, sz, nil
}

func (s *scannerState) UnreadRune() error {
	if !s.lastPosSet {
		return scnerr.New(scnerr.CodeIOError, "UnreadRune called without a prior ReadRune")
	}
	if e := s.b.Rewind(s.lastPos); e != nil {
		return e
	}
	s.lastPosSet = false
	return nil
}

func (s *scannerState) SkipSpace() {
	skipInputWhitespace(s.b)
}

func runCustomScanner(b *buffer.Buffer, v arg.Value) *scnerr.Error {
	scanner := v.Ptr.(arg.Scanner)
	if err := scanner.ScanFrom(&scannerState{b: b}); err != nil {
		if se, ok := err.(*scnerr.Error); ok {
			return se
		}
		return scnerr.Newf(scnerr.CodeInvalidScannedValue, "%v", err)
	}
	return nil
}
