package scn

import (
	"golang.org/x/text/language"

	"github.com/eliaskosunen/scn-go/internal/locale"
)

// Locale is the opaque handle ScanLocalized consults for decimal point,
// thousands separator, grouping, true/false spellings, and digit/space
// classification (spec.md §9, "Locale").
type Locale = locale.Locale

// DefaultLocale is the classic ("C"-like) locale used implicitly by Scan,
// ScanValue, and Input: '.' decimal point, ',' grouping in threes, and
// "true"/"false" spellings.
func DefaultLocale() *Locale { return locale.Default() }

// NewLocale builds a custom locale. A nil isSpace or isDigit falls back to
// DefaultLocale's classifiers; a nil grouping falls back to []int{3}.
func NewLocale(tag language.Tag, decimalPoint, thousandsSep rune, grouping []int, trueName, falseName string, isSpace, isDigit func(rune) bool) *Locale {
	return locale.New(tag, decimalPoint, thousandsSep, grouping, trueName, falseName, isSpace, isDigit)
}

// LocaleForTag returns a Locale seeded from a small built-in table of
// common BCP-47 tags (German, French, English, Hindi), falling back to
// DefaultLocale's conventions for unrecognized tags.
func LocaleForTag(tag language.Tag) *Locale { return locale.LocaleForTag(tag) }
