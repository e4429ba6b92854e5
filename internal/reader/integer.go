// Package reader implements the primitive argument-kind readers of
// spec.md §4.3–§4.7: integer, float, bool, char/char-span, and string.
// Grounded on fmt/scan.go's scanInt/scanUint/scanBasePrefix/scanNumber
// (_examples/Go-zh-go.old/src/pkg/fmt/scan.go) and strconv/atoi.go's overflow-safe accumulation
// (_examples/Go-zh-go.old/src/strconv/atoi.go), generalized to the spec's explicit base
// selection, thousands-grouping, and overflow/underflow error codes.
package reader

import (
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/charutil"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// digitScan is the result of the shared digit-scanning core used by both
// ScanInt and ScanUint.
type digitScan struct {
	negative bool
	base     int
	digits   string // digit characters only, separators stripped
}

func baseFor(t format.Type, arbitraryBase int) (base int, explicit bool) {
	switch t {
	case format.TypeIntBinary:
		return 2, true
	case format.TypeIntOctal:
		return 8, true
	case format.TypeIntHex:
		return 16, true
	case format.TypeIntDecimal, format.TypeIntUnsigned:
		return 10, true
	case format.TypeIntArbitraryBase:
		return arbitraryBase, true
	default:
		return 10, false
	}
}

// detectBase consumes a "0x"/"0X"/"0b"/"0B"/"0o"/"0O" prefix, or a bare
// leading "0" followed by an octal digit '0'-'7' (legacy octal), returning the
// detected base. Called only when no explicit base was requested (type
// int-generic or none), per spec.md §4.3 step 3.
func detectBase(b *buffer.Buffer) int {
	start := b.Position()
	r, _, ok, _ := b.Peek()
	if !ok || r != '0' {
		return 10
	}
	b.Get()
	r2, _, ok2, _ := b.Peek()
	if ok2 {
		switch r2 {
		case 'x', 'X':
			b.Get()
			return 16
		case 'b', 'B':
			b.Get()
			return 2
		case 'o', 'O':
			b.Get()
			return 8
		}
		if r2 >= '0' && r2 <= '7' {
			return 8
		}
	}
	b.Rewind(start)
	return 10
}

// scanDigits reads an optional sign, determines the base, and accumulates
// the run of valid digits (stripping any thousands separators when
// localized), per spec.md §4.3 steps 1-4 and 6.
func scanDigits(b *buffer.Buffer, specs format.Specs, loc *locale.Locale, implicit bool, unsignedDest bool) (digitScan, *scnerr.Error) {
	if implicit {
		skipWhitespace(b)
	}

	r, _, ok, _ := b.Peek()
	negative := false
	if ok && charutil.IsSign(r) {
		b.Get()
		negative = r == '-'
	}
	if negative && unsignedDest {
		return digitScan{}, scnerr.New(scnerr.CodeInvalidScannedValue, "unsigned destination cannot accept a '-' sign")
	}

	base, explicit := baseFor(specs.Type, specs.ArbitraryBase)
	if !explicit {
		base = detectBase(b)
	}

	var digits []byte
	var groupBreaks []int // digit-index (from start) where a separator was consumed

	if base == 10 && !specs.Localized {
		if fast := swarASCIIDigitRun(b); fast != nil {
			digits = fast
		}
	}

	for {
		r, _, ok, _ := b.Peek()
		if !ok {
			break
		}
		if specs.Localized && r == loc.ThousandsSep() {
			b.Get()
			groupBreaks = append(groupBreaks, len(digits))
			continue
		}
		if _, valid := charutil.DigitValue(r, base); !valid {
			break
		}
		b.Get()
		digits = append(digits, byte(r))
	}

	if len(digits) == 0 {
		if _, _, more, _ := b.Peek(); !more {
			return digitScan{}, scnerr.New(scnerr.CodeEndOfInput, "expected at least one digit, got end of input")
		}
		return digitScan{}, scnerr.New(scnerr.CodeInvalidScannedValue, "expected at least one digit")
	}

	if specs.Localized && len(groupBreaks) > 0 {
		if !validateGrouping(groupBreaks, len(digits), loc.Grouping()) {
			return digitScan{}, scnerr.New(scnerr.CodeInvalidScannedValue, "thousands separators do not match locale grouping")
		}
	}

	return digitScan{negative: negative, base: base, digits: string(digits)}, nil
}

// validateGrouping reports whether separator breakpoints (digit-index
// positions, ascending, counted from the most significant digit) are
// consistent with grouping (least-significant-group-first, last entry
// repeating), per spec.md §4.3 step 6 and the GLOSSARY's "Grouping" entry.
func validateGrouping(breaks []int, totalDigits int, grouping []int) bool {
	bounds := append(append([]int{}, breaks...), totalDigits)
	widthsMSDFirst := make([]int, len(bounds))
	prev := 0
	for i, bnd := range bounds {
		widthsMSDFirst[i] = bnd - prev
		prev = bnd
	}
	n := len(widthsMSDFirst)
	if len(grouping) == 0 {
		return n <= 1
	}
	lsd := make([]int, n)
	for i, w := range widthsMSDFirst {
		lsd[n-1-i] = w
	}
	for i := 0; i < n; i++ {
		want := grouping[len(grouping)-1]
		if i < len(grouping) {
			want = grouping[i]
		}
		if want <= 0 {
			return false
		}
		if i == n-1 {
			if lsd[i] > want {
				return false
			}
		} else if lsd[i] != want {
			return false
		}
	}
	return true
}

// accumulateUnsigned parses digits in the given base into a uint64,
// reporting overflow with a per-digit check before each multiply and each
// add (there is no separate digit-count pre-check), mirroring
// strconv.ParseUint's "cutoff"/"cutlim" idiom from
// _examples/Go-zh-go.old/src/strconv/atoi.go.
func accumulateUnsigned(digits string, base int) (uint64, bool) {
	var n uint64
	maxVal := ^uint64(0)
	cutoff := maxVal/uint64(base) + 1
	for i := 0; i < len(digits); i++ {
		v, _ := charutil.DigitValue(rune(digits[i]), base)
		if n >= cutoff {
			return 0, false
		}
		n *= uint64(base)
		d := uint64(v)
		if n+d < n {
			return 0, false
		}
		n += d
	}
	return n, true
}

func bitMaskOK(v uint64, bitSize int, signed bool, negative bool) (overflow bool, code scnerr.Code) {
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	if !signed {
		if bitSize == 64 {
			return false, 0
		}
		if v>>uint(bitSize) != 0 {
			return true, scnerr.CodeValuePositiveOverflow
		}
		return false, 0
	}
	var limit uint64
	if negative {
		limit = uint64(1) << uint(bitSize-1)
	} else {
		limit = uint64(1)<<uint(bitSize-1) - 1
	}
	if v > limit {
		if negative {
			return true, scnerr.CodeValueNegativeOverflow
		}
		return true, scnerr.CodeValuePositiveOverflow
	}
	return false, 0
}

// ScanInt implements the signed-integer reader. On failure the buffer is
// rewound to where the call started.
func ScanInt(b *buffer.Buffer, specs format.Specs, bitSize int, loc *locale.Locale, implicit bool) (int64, *scnerr.Error) {
	start := b.Position()
	ds, err := scanDigits(b, specs, loc, implicit, false)
	if err != nil {
		b.Rewind(start)
		return 0, err
	}
	u, ok := accumulateUnsigned(ds.digits, ds.base)
	if !ok {
		code := scnerr.CodeValuePositiveOverflow
		if ds.negative {
			code = scnerr.CodeValueNegativeOverflow
		}
		b.Rewind(start)
		return 0, scnerr.Newf(code, "integer overflow on token %q", ds.digits)
	}
	if overflow, code := bitMaskOK(u, bitSize, true, ds.negative); overflow {
		b.Rewind(start)
		return 0, scnerr.Newf(code, "integer overflow on token %q", ds.digits)
	}
	v := int64(u)
	if ds.negative {
		v = -v
	}
	return v, nil
}

// ScanUint implements the unsigned-integer reader.
func ScanUint(b *buffer.Buffer, specs format.Specs, bitSize int, loc *locale.Locale, implicit bool) (uint64, *scnerr.Error) {
	ds, err := scanDigits(b, specs, loc, implicit, true)
	if err != nil {
		return 0, err
	}
	u, ok := accumulateUnsigned(ds.digits, ds.base)
	if !ok {
		return 0, scnerr.Newf(scnerr.CodeValuePositiveOverflow, "unsigned integer overflow on token %q", ds.digits)
	}
	if overflow, code := bitMaskOK(u, bitSize, false, false); overflow {
		return 0, scnerr.Newf(code, "unsigned integer overflow on token %q", ds.digits)
	}
	return u, nil
}

// swarASCIIDigitRun is the scaled-down stand-in for the "SWAR-parses 8
// ASCII digits at a time" fast path spec.md §4.3 calls for (see
// SPEC_FULL.md, "Number preparation / fast-path digit classification"):
// when the buffer exposes a contiguous span, consume the maximal run of
// ASCII decimal digits from it in one pass instead of one Get() per digit.
func swarASCIIDigitRun(b *buffer.Buffer) []byte {
	span, ok := b.ContiguousSpan()
	if !ok {
		return nil
	}
	n := 0
	for n < len(span) && span[n] >= '0' && span[n] <= '9' {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, span[:n])
	for i := 0; i < n; i++ {
		b.Get()
	}
	return out
}
