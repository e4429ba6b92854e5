package reader

import (
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// ScanChar reads a single code point with no whitespace skipping, per
// spec.md §4.6: the 'c' presentation type is the one place a leading
// space is significant data, not a separator.
func ScanChar(b *buffer.Buffer) (rune, *scnerr.Error) {
	r, _, ok, err := b.Get()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, scnerr.New(scnerr.CodeEndOfInput, "expected a character, got end of input")
	}
	return r, nil
}

// ScanByte reads a single raw byte with no decoding and no whitespace
// skipping, for *byte destinations (spec.md §4.6's byte-span case scaled
// down to width one).
func ScanByte(b *buffer.Buffer) (byte, *scnerr.Error) {
	span, ok := b.ContiguousSpan()
	if ok {
		if len(span) == 0 {
			return 0, scnerr.New(scnerr.CodeEndOfInput, "expected a byte, got end of input")
		}
		r, _, _, err := b.Get()
		if err != nil {
			return 0, err
		}
		return byte(r), nil
	}
	r, _, ok2, err := b.Get()
	if err != nil {
		return 0, err
	}
	if !ok2 {
		return 0, scnerr.New(scnerr.CodeEndOfInput, "expected a byte, got end of input")
	}
	return byte(r), nil
}

// ScanByteSpan fills dst with exactly len(dst) raw bytes, per spec.md
// §4.6's fixed-width byte/rune span reader. A short read is reported as
// end_of_input with dst left partially filled, mirroring io.ReadFull's
// documented behavior, which _examples/Go-zh-go.old/src/pkg/bufio/bufio.go builds on.
func ScanByteSpan(b *buffer.Buffer, dst []byte) (int, *scnerr.Error) {
	for i := range dst {
		r, _, ok, err := b.Get()
		if err != nil {
			return i, err
		}
		if !ok {
			return i, scnerr.New(scnerr.CodeEndOfInput, "short read filling byte span")
		}
		dst[i] = byte(r)
	}
	return len(dst), nil
}

// ScanRuneSpan fills dst with exactly len(dst) decoded code points.
func ScanRuneSpan(b *buffer.Buffer, dst []rune) (int, *scnerr.Error) {
	for i := range dst {
		r, _, ok, err := b.Get()
		if err != nil {
			return i, err
		}
		if !ok {
			return i, scnerr.New(scnerr.CodeEndOfInput, "short read filling rune span")
		}
		dst[i] = r
	}
	return len(dst), nil
}
