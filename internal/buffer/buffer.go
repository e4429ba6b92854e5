// Package buffer implements the scan buffer of spec.md §3 and §4.1: a
// uniform view over a source exposing peek/get, a monotonic position, and
// rewind/commit. Grounded on bufio.Reader's fill/Peek/ReadRune/UnreadRune
// (_examples/Go-zh-go.old/src/pkg/bufio/bufio.go) and on fmt/scan.go's readRune adapter
// (_examples/Go-zh-go.old/src/pkg/fmt/scan.go), generalized into the three concrete shapes
// spec.md §3 names instead of bufio's single "reader with one pushback
// slot" shape.
package buffer

import (
	"bufio"
	"io"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// Kind identifies which of the three concrete shapes a Buffer wraps.
type Kind int

const (
	// KindContiguous wraps an in-memory byte slice owned externally.
	KindContiguous Kind = iota
	// KindIterator wraps a sequential io.Reader, with an internal putback
	// history standing in for spec.md §3's "two iterators" range.
	KindIterator
	// KindStdio wraps a locked C-stdio-like handle (*os.File), spilling
	// into the same putback history as KindIterator once locked.
	KindStdio
)

// Buffer is the scan buffer variant described in spec.md §4.1 and §9
// ("Scan buffer as variant, not virtual class"): one struct, tagged by
// Kind, instead of an interface with per-shape implementations, so peek
// does not pay for a vtable indirection on the hot path.
type Buffer struct {
	kind Kind

	// KindContiguous
	data []byte

	// KindIterator / KindStdio
	src     io.Reader
	history []byte // bytes read from src and not yet committed
	base    int    // absolute position history[0] corresponds to

	// common
	pos int
	eof bool

	unlock func() // called by the release func NewStdio returns, for KindStdio
}

// NewFromBytes wraps a contiguous byte slice. The caller retains ownership
// of b; the Buffer never mutates it.
func NewFromBytes(b []byte) *Buffer {
	return &Buffer{kind: KindContiguous, data: b}
}

// NewFromString wraps a contiguous string.
func NewFromString(s string) *Buffer {
	return NewFromBytes([]byte(s))
}

// NewFromReader wraps an arbitrary io.Reader as the KindIterator shape.
func NewFromReader(r io.Reader) *Buffer {
	return &Buffer{kind: KindIterator, src: r}
}

// stdinMu is the process-wide lock guarding os.Stdin, standing in for the
// "platform lock" spec.md §5's stdin path describes. It is the only
// package-level mutable state in this package, and it protects exactly one
// handle.
var stdinMu sync.Mutex

// NewStdio wraps r (typically os.Stdin) as the KindStdio shape, acquiring
// mu for the duration of the returned Buffer's life. Call the returned
// release function when the scan using this buffer returns, even on the
// error path — spec.md §5 requires the lock to be released "via a scoped
// guard that also runs on early return paths".
func NewStdio(r io.Reader, mu *sync.Mutex) (*Buffer, func()) {
	mu.Lock()
	b := &Buffer{kind: KindStdio, src: r, unlock: mu.Unlock}
	return b, func() {
		if b.unlock != nil {
			b.unlock()
			b.unlock = nil
		}
	}
}

// StdinMutex exposes the package-wide stdin lock so the root package's
// Input entry point can guard os.Stdin consistently with NewStdio's
// contract.
func StdinMutex() *sync.Mutex { return &stdinMu }

// IsContiguous reports whether a span starting at Position() can be
// exposed as a single slice right now (spec.md §4.1).
func (b *Buffer) IsContiguous() bool {
	if b.kind == KindContiguous {
		return true
	}
	// KindIterator/KindStdio only look contiguous when history holds no
	// bytes and the cursor sits at its base: before the first read, or
	// right after a Commit that trimmed all of history. Whenever history
	// holds read-but-uncommitted bytes (the putback standing in for the
	// underlying reader's private buffer), this reports false.
	return len(b.history) == 0 && b.pos == b.base
}

// ContiguousSpan returns the bytes from the current position onward, valid
// only when IsContiguous reports true.
func (b *Buffer) ContiguousSpan() ([]byte, bool) {
	if b.kind != KindContiguous {
		return nil, false
	}
	return b.data[b.pos:], true
}

// Position returns the current read position, in code units (bytes, for
// this byte-oriented implementation).
func (b *Buffer) Position() int { return b.pos }

// Slice materializes the code units in [start, end). For the contiguous
// shape this borrows directly from the caller-owned backing array with no
// copy (spec.md §4.7's string-view output case); the returned string must
// not outlive that array. For the iterator/stdio shapes it copies out of
// the not-yet-committed putback history, which is the best this shape can
// offer: those code units have no single backing array to borrow from.
func (b *Buffer) Slice(start, end int) (string, bool) {
	if start < 0 || start > end {
		return "", false
	}
	if b.kind == KindContiguous {
		if end > len(b.data) {
			return "", false
		}
		sub := b.data[start:end]
		if len(sub) == 0 {
			return "", true
		}
		return unsafe.String(&sub[0], len(sub)), true
	}
	if start < b.base || end > b.frontier() {
		return "", false
	}
	return string(b.history[start-b.base : end-b.base]), true
}

func (b *Buffer) frontier() int { return b.base + len(b.history) }

// ensure reads one more byte from src and appends it to history, extending
// the frontier by one. It returns false at end-of-source.
func (b *Buffer) ensure() (bool, *scnerr.Error) {
	if b.kind == KindContiguous || b.eof {
		return false, nil
	}
	br, ok := b.src.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(b.src)
		b.src = br
	}
	bs, err := br.ReadByte()
	if err != nil {
		if err == io.EOF {
			b.eof = true
			return false, nil
		}
		return false, scnerr.Newf(scnerr.CodeIOError, "%v", err)
	}
	b.history = append(b.history, bs)
	return true, nil
}

// Peek returns the code point at the current position without advancing.
func (b *Buffer) Peek() (r rune, size int, ok bool, err *scnerr.Error) {
	return b.decodeAt(b.pos)
}

func (b *Buffer) decodeAt(pos int) (rune, int, bool, *scnerr.Error) {
	switch b.kind {
	case KindContiguous:
		if pos >= len(b.data) {
			return 0, 0, false, nil
		}
		r, size := utf8.DecodeRune(b.data[pos:])
		return r, size, true, nil
	default:
		// Decode up to utf8.UTFMax bytes starting at pos, pulling more
		// from src into history as needed.
		var buf [utf8.UTFMax]byte
		n := 0
		for n < utf8.UTFMax {
			idx := pos + n
			if idx >= b.frontier() {
				if idx != b.pos+n {
					// Only the read cursor is allowed to pull new bytes;
					// peeking ahead of pos is not supported by this
					// buffer and indicates an internal misuse.
					break
				}
				more, e := b.readAhead(idx)
				if e != nil {
					return 0, 0, false, e
				}
				if !more {
					break
				}
			}
			buf[n] = b.history[idx-b.base]
			n++
			if utf8.FullRune(buf[:n]) {
				break
			}
		}
		if n == 0 {
			return 0, 0, false, nil
		}
		r, size := utf8.DecodeRune(buf[:n])
		return r, size, true, nil
	}
}

// readAhead pulls one more byte into history so that idx becomes readable.
func (b *Buffer) readAhead(idx int) (bool, *scnerr.Error) {
	for b.frontier() <= idx {
		ok, err := b.ensure()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Get returns the code point at the current position and advances past it.
func (b *Buffer) Get() (r rune, size int, ok bool, err *scnerr.Error) {
	r, size, ok, err = b.Peek()
	if ok {
		b.pos += size
	}
	return
}

// Rewind repositions the buffer to any position previously observed (i.e.
// at or below the current high-water mark), per spec.md §4.1. For the
// iterator and stdio shapes, rewinding below the last committed position
// is rejected: the putback_buffer no longer holds those code units. The
// contiguous shape ignores Commit and can rewind to any earlier position.
func (b *Buffer) Rewind(to int) *scnerr.Error {
	if to > b.pos {
		return scnerr.New(scnerr.CodeIOError, "cannot rewind forward of the current position")
	}
	if b.kind != KindContiguous && to < b.base {
		return scnerr.New(scnerr.CodeIOError, "rewind target already committed")
	}
	b.pos = to
	return nil
}

// Commit declares that positions before to will never be rewound to,
// allowing the putback history to be trimmed.
func (b *Buffer) Commit(to int) {
	if b.kind == KindContiguous {
		return
	}
	if to <= b.base {
		return
	}
	if to > b.frontier() {
		to = b.frontier()
	}
	drop := to - b.base
	b.history = b.history[drop:]
	b.base = to
}
