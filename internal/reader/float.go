package reader

import (
	"strconv"
	"strings"

	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/charutil"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// ScanFloat implements the floating-point reader of spec.md §4.4. bitSize
// is 32 or 64, selecting which precision to parse in directly (per §4.4
// step 6's "scan in the precision of the result" rationale, carried over
// from fmt/scan.go's convertFloat/scanComplex split in _examples/Go-zh-go.old/src/pkg/fmt/scan.go).
func ScanFloat(b *buffer.Buffer, specs format.Specs, bitSize int, loc *locale.Locale, implicit bool) (float64, *scnerr.Error) {
	if implicit {
		skipWhitespace(b)
	}

	start := b.Position()
	negative := false
	if r, _, ok, _ := b.Peek(); ok && charutil.IsSign(r) {
		b.Get()
		negative = r == '-'
	}

	if kind, ok := tryClassifySpecial(b); ok {
		if !floatTypeAllows(specs.Type, kind) {
			b.Rewind(start)
			return 0, scnerr.New(scnerr.CodeInvalidScannedValue, "special float form not permitted by presentation type")
		}
		switch kind {
		case specialInf:
			if negative {
				return negInf, nil
			}
			return posInf, nil
		case specialNaN:
			return nan(), nil
		}
	}

	tok, isHex, hasExponent, err := scanFiniteToken(b, specs, loc)
	if err != nil {
		return 0, err
	}
	if tok == "" {
		b.Rewind(start)
		return 0, scnerr.New(scnerr.CodeInvalidScannedValue, "expected at least one significand digit")
	}
	if !floatFormAllowed(specs.Type, isHex, hasExponent) {
		return 0, scnerr.New(scnerr.CodeInvalidScannedValue, "float form not permitted by presentation type")
	}

	full := tok
	if negative {
		full = "-" + tok
	}
	v, perr := strconv.ParseFloat(full, bitSize)
	if perr != nil {
		if ne, ok := perr.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			if negative {
				return v, scnerr.Newf(scnerr.CodeValueNegativeOverflow, "float overflow on token %q", full)
			}
			return v, scnerr.Newf(scnerr.CodeValuePositiveOverflow, "float overflow on token %q", full)
		}
		return 0, scnerr.Newf(scnerr.CodeInvalidScannedValue, "malformed float token %q", full)
	}
	return v, nil
}

type specialKind int

const (
	specialNone specialKind = iota
	specialInf
	specialNaN
)

// tryClassifySpecial matches "inf"/"infinity" and "nan" (optionally
// followed by "(payload)") case-insensitively, per spec.md §4.4 step 3.
// NaN payloads are recognized and consumed but not preserved: Go's
// float64 NaN carries no payload bits accessible via the standard
// library, so math.NaN() is returned regardless of the payload text (a
// deliberate, documented narrowing — see DESIGN.md).
func tryClassifySpecial(b *buffer.Buffer) (specialKind, bool) {
	start := b.Position()
	if matchCaseless(b, "infinity") || matchCaseless(b, "inf") {
		return specialInf, true
	}
	if matchCaseless(b, "nan") {
		if r, _, ok, _ := b.Peek(); ok && r == '(' {
			ps := b.Position()
			b.Get()
			for {
				r, _, ok, _ := b.Peek()
				if !ok {
					b.Rewind(ps)
					break
				}
				if r == ')' {
					b.Get()
					break
				}
				if !isPayloadChar(r) {
					b.Rewind(ps)
					break
				}
				b.Get()
			}
		}
		return specialNaN, true
	}
	b.Rewind(start)
	return specialNone, false
}

func isPayloadChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// matchCaseless consumes word case-insensitively, rewinding on mismatch.
func matchCaseless(b *buffer.Buffer, word string) bool {
	start := b.Position()
	for _, want := range word {
		r, _, ok, _ := b.Peek()
		if !ok || lower(r) != lower(want) {
			b.Rewind(start)
			return false
		}
		b.Get()
	}
	return true
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// scanFiniteToken accumulates the significand and optional exponent of a
// finite floating-point literal, handling the localized decimal point and
// grouping per spec.md §4.4 step 5, and returns the token re-written with
// '.' as the decimal point so strconv.ParseFloat can consume it directly.
func scanFiniteToken(b *buffer.Buffer, specs format.Specs, loc *locale.Locale) (tok string, isHex bool, hasExponent bool, err *scnerr.Error) {
	var out strings.Builder

	if r, _, ok, _ := b.Peek(); ok && r == '0' {
		save := b.Position()
		b.Get()
		if r2, _, ok2, _ := b.Peek(); ok2 && (r2 == 'x' || r2 == 'X') {
			b.Get()
			isHex = true
			out.WriteString("0x")
		} else {
			b.Rewind(save)
		}
	}

	decimalPoint := byte('.')
	thousandsSep := rune(-1)
	if specs.Localized {
		decimalPoint = 0 // sentinel: compare against loc.DecimalPoint() instead
		thousandsSep = loc.ThousandsSep()
	}

	var groupBreaks []int
	digitCount := 0

	consumeDigits := func() {
		for {
			r, _, ok, _ := b.Peek()
			if !ok {
				return
			}
			if specs.Localized && r == thousandsSep {
				b.Get()
				groupBreaks = append(groupBreaks, digitCount)
				continue
			}
			valid := charutil.IsASCIIDigit(r)
			if isHex {
				_, valid = charutil.DigitValue(r, 16)
			}
			if !valid {
				return
			}
			b.Get()
			out.WriteRune(r)
			digitCount++
		}
	}
	consumeDigits()

	isDecimalPoint := func(r rune) bool {
		if decimalPoint == 0 {
			return r == loc.DecimalPoint()
		}
		return r == rune(decimalPoint)
	}

	if r, _, ok, _ := b.Peek(); ok && isDecimalPoint(r) {
		b.Get()
		out.WriteByte('.')
		consumeDigits()
	}

	if specs.Localized && len(groupBreaks) > 0 {
		intDigits := digitCount
		if idx := strings.IndexByte(out.String(), '.'); idx >= 0 {
			intDigits = idx
			if isHex {
				intDigits -= 2
			}
		}
		filtered := groupBreaks[:0:0]
		for _, g := range groupBreaks {
			if g <= intDigits {
				filtered = append(filtered, g)
			}
		}
		if len(filtered) > 0 && !validateGrouping(filtered, intDigits, loc.Grouping()) {
			return "", false, false, scnerr.New(scnerr.CodeInvalidScannedValue, "thousands separators do not match locale grouping")
		}
	}

	expMarkers := "eE"
	if isHex {
		expMarkers = "pP"
	}
	if r, _, ok, _ := b.Peek(); ok && strings.ContainsRune(expMarkers, r) {
		save := b.Position()
		b.Get()
		out.WriteRune(r)
		if r2, _, ok2, _ := b.Peek(); ok2 && charutil.IsSign(r2) {
			b.Get()
			out.WriteRune(r2)
		}
		expStart := out.Len()
		for {
			r3, _, ok3, _ := b.Peek()
			if !ok3 || !charutil.IsASCIIDigit(r3) {
				break
			}
			b.Get()
			out.WriteRune(r3)
		}
		if out.Len() == expStart {
			b.Rewind(save)
			out.Reset()
			return "", false, false, scnerr.New(scnerr.CodeInvalidScannedValue, "malformed exponent")
		}
		hasExponent = true
	}

	return out.String(), isHex, hasExponent, nil
}

func floatTypeAllows(t format.Type, kind specialKind) bool {
	switch t {
	case format.TypeFloatHex:
		return false
	default:
		return true
	}
}

// floatFormAllowed implements spec.md §4.4 step 7's per-type restrictions.
func floatFormAllowed(t format.Type, isHex, hasExponent bool) bool {
	switch t {
	case format.TypeFloatHex:
		return isHex
	case format.TypeFloatFixed:
		return !isHex && !hasExponent
	case format.TypeFloatScientific:
		return !isHex && hasExponent
	case format.TypeFloatGeneral, format.TypeNone:
		return true
	default:
		return true
	}
}

var posInf = parseInfLiteral(false)
var negInf = parseInfLiteral(true)

func parseInfLiteral(neg bool) float64 {
	v, _ := strconv.ParseFloat(map[bool]string{false: "+Inf", true: "-Inf"}[neg], 64)
	return v
}

func nan() float64 {
	v, _ := strconv.ParseFloat("NaN", 64)
	return v
}
