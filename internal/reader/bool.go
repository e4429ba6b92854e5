package reader

import (
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/locale"
	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

// ScanBool implements spec.md §4.5: a leading '0' or '1' is read
// numerically; otherwise the textual spellings are matched. §9 resolves
// the ambiguity the distillation left open by making a localized bool
// scan always use textual mode, matching the majority of the reference
// implementations it surveyed, so localized is also treated as implying
// text here even though it never reaches a digit check.
func ScanBool(b *buffer.Buffer, loc *locale.Locale, localized, implicit bool) (bool, *scnerr.Error) {
	if implicit {
		skipWhitespace(b)
	}

	start := b.Position()

	if !localized {
		if r, _, ok, _ := b.Peek(); ok && (r == '0' || r == '1') {
			b.Get()
			return r == '1', nil
		}
	}

	trueName := "true"
	falseName := "false"
	if localized {
		trueName = loc.TrueName()
		falseName = loc.FalseName()
	}

	if matchExact(b, trueName) {
		return true, nil
	}
	if matchExact(b, falseName) {
		return false, nil
	}

	b.Rewind(start)
	return false, scnerr.Newf(scnerr.CodeInvalidScannedValue, "expected %q or %q", trueNameOrDigit(localized, trueName), falseNameOrDigit(localized, falseName))
}

// matchExact consumes word with exact-case comparison, rewinding on
// mismatch. Unlike matchCaseless (reserved for float's "inf"/"infinity"/
// "nan"), true/false spellings are matched case-sensitively per spec.md
// §4.5, mirroring original_source's read_matching_string (not its
// _nocase variant) for bool.
func matchExact(b *buffer.Buffer, word string) bool {
	start := b.Position()
	for _, want := range word {
		r, _, ok, _ := b.Peek()
		if !ok || r != want {
			b.Rewind(start)
			return false
		}
		b.Get()
	}
	return true
}

func trueNameOrDigit(localized bool, name string) string {
	if localized {
		return name
	}
	return "1/" + name
}

func falseNameOrDigit(localized bool, name string) string {
	if localized {
		return name
	}
	return "0/" + name
}
