package reader

import (
	"github.com/eliaskosunen/scn-go/internal/arg"
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/charutil"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// ScanString implements the string readers of spec.md §4.7: by default a
// whitespace-delimited word; under the charset type, a run of code points
// accepted by the scanset; under the regex type, a single regexp match
// anchored at the current position; and, when specs.HasWidth, a run
// bounded by display width rather than a plain code-point count, using
// the same column-width table the print side would consult.
//
// It returns the token's [start, end) byte range in b so the caller
// (internal/driver) can decide between an owned copy and a borrowed
// StringView via FillStringOutput.
func ScanString(b *buffer.Buffer, specs format.Specs, implicit bool) (start, end int, err *scnerr.Error) {
	switch specs.Type {
	case format.TypeCharset:
		return scanCharset(b, specs)
	case format.TypeRegex, format.TypeRegexEscaped:
		return scanRegex(b, specs)
	default:
		return scanWord(b, specs, implicit)
	}
}

func scanWord(b *buffer.Buffer, specs format.Specs, implicit bool) (int, int, *scnerr.Error) {
	if implicit {
		skipWhitespace(b)
	}
	start := b.Position()

	widthBudget := -1
	if specs.HasWidth {
		widthBudget = specs.Width
	}

	for {
		r, _, ok, e := b.Peek()
		if e != nil {
			return start, b.Position(), e
		}
		if !ok || charutil.IsSpace(r) {
			break
		}
		if widthBudget >= 0 {
			w := charutil.Default(r)
			if w > widthBudget {
				break
			}
			widthBudget -= w
		}
		b.Get()
	}

	end := b.Position()
	if end == start {
		return start, end, scnerr.New(scnerr.CodeInvalidScannedValue, "expected a non-empty token")
	}
	return start, end, nil
}

func scanCharset(b *buffer.Buffer, specs format.Specs) (int, int, *scnerr.Error) {
	start := b.Position()
	for {
		r, _, ok, e := b.Peek()
		if e != nil {
			return start, b.Position(), e
		}
		if !ok || !specs.Charset.Match(r) {
			break
		}
		b.Get()
	}
	end := b.Position()
	if end == start {
		return start, end, scnerr.New(scnerr.CodeInvalidScannedValue, "scanset matched no code points")
	}
	return start, end, nil
}

// scanRegex matches specs.RegexPattern anchored at the current position.
// It requires a contiguous buffer: Go's regexp package has no streaming
// match API, so a non-contiguous source (an io.Reader- or stdio-backed
// Buffer) cannot be matched against without first materializing an
// unbounded amount of lookahead. This is a deliberate, documented
// narrowing from the fully general source model (see DESIGN.md).
func scanRegex(b *buffer.Buffer, specs format.Specs) (int, int, *scnerr.Error) {
	start := b.Position()
	span, ok := b.ContiguousSpan()
	if !ok {
		return start, start, scnerr.New(scnerr.CodeInvalidScannedValue, "regex presentation type requires a contiguous source")
	}
	re, rerr := specs.Regexp()
	if rerr != nil {
		return start, start, scnerr.Newf(scnerr.CodeInvalidFormatString, "invalid regex: %v", rerr)
	}
	loc := re.FindIndex(span)
	if loc == nil || loc[0] != 0 {
		return start, start, scnerr.New(scnerr.CodeInvalidScannedValue, "input does not match regex")
	}
	for i := 0; i < loc[1]; {
		_, size, _, e := b.Get()
		if e != nil {
			return start, b.Position(), e
		}
		if size == 0 {
			break
		}
		i += size
	}
	return start, b.Position(), nil
}

// FillStringOutput copies b's [start,end) token into *dst, or, for
// StringView destinations backed by a contiguous source, borrows it
// directly via arg.SetStringView, matching spec.md §4.7's "string_view
// output avoids the copy when the source is contiguous and its code-unit
// width matches" rule. A StringView destination over a non-contiguous
// source fails with invalid_scanned_value.
func FillStringOutput(b *buffer.Buffer, start, end int, v arg.Value) *scnerr.Error {
	switch v.Kind {
	case arg.KindStringView:
		if _, contiguous := b.ContiguousSpan(); !contiguous {
			return scnerr.New(scnerr.CodeInvalidScannedValue, "string view destination requires a contiguous source")
		}
		sv := v.Ptr.(*arg.StringView)
		s, ok := b.Slice(start, end)
		if !ok {
			return scnerr.New(scnerr.CodeIOError, "string view target range no longer available")
		}
		arg.SetStringView(sv, s)
		return nil
	case arg.KindString:
		s, ok := b.Slice(start, end)
		if !ok {
			return scnerr.New(scnerr.CodeIOError, "non-contiguous string materialization not supported by this reader path")
		}
		*(v.Ptr.(*string)) = s
		return nil
	case arg.KindBytes:
		s, ok := b.Slice(start, end)
		if !ok {
			return scnerr.New(scnerr.CodeIOError, "non-contiguous byte materialization not supported by this reader path")
		}
		*(v.Ptr.(*[]byte)) = []byte(s)
		return nil
	default:
		return scnerr.Newf(scnerr.CodeInvalidFormatString, "cannot fill string output into %s destination", v.Kind)
	}
}
