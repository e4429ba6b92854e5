// Package locale models the opaque locale handle passed to ScanLocalized,
// per spec.md §9 ("pass a locale handle ... No process-wide locale state").
package locale

import (
	"unicode"

	"golang.org/x/text/language"
)

// Locale exposes exactly the primitives spec.md §9 lists: decimal point,
// thousands separator, grouping descriptor, space/digit classification and
// true/false names. It carries a real BCP-47 language.Tag so a caller can
// identify which locale it is, even though the classification functions
// below are what the readers actually consult.
type Locale struct {
	Tag language.Tag

	decimalPoint rune
	thousandsSep rune
	grouping     []int // group sizes, least-significant group first; last entry repeats
	trueName     string
	falseName    string

	isSpace func(rune) bool
	isDigit func(rune) bool
}

// DecimalPoint returns the code point used as the radix point.
func (l *Locale) DecimalPoint() rune { return l.decimalPoint }

// ThousandsSep returns the code point used to separate digit groups.
func (l *Locale) ThousandsSep() rune { return l.thousandsSep }

// Grouping returns the grouping descriptor: group sizes from the least
// significant group; the final entry repeats indefinitely toward the most
// significant group, which may be shorter than the descriptor demands.
func (l *Locale) Grouping() []int { return l.grouping }

// TrueName and FalseName are the textual spellings accepted by the bool
// reader when L is in effect.
func (l *Locale) TrueName() string  { return l.trueName }
func (l *Locale) FalseName() string { return l.falseName }

// IsSpace and IsDigit classify a code point under this locale.
func (l *Locale) IsSpace(r rune) bool { return l.isSpace(r) }
func (l *Locale) IsDigit(r rune) bool { return l.isDigit(r) }

// Default is the classic ("C"-like) locale: '.' decimal point, ',' grouping
// separator in groups of three, Unicode whitespace/digit classification,
// and "true"/"false" names. It is used whenever a scan is not explicitly
// localized and is also the fallback seed for LocaleForTag.
func Default() *Locale {
	return &Locale{
		Tag:          language.Und,
		decimalPoint: '.',
		thousandsSep: ',',
		grouping:     []int{3},
		trueName:     "true",
		falseName:    "false",
		isSpace:      unicode.IsSpace,
		isDigit:      unicode.IsDigit,
	}
}

// New builds a fully custom locale. Any zero-valued classifier function
// falls back to the Default locale's behavior.
func New(tag language.Tag, decimalPoint, thousandsSep rune, grouping []int, trueName, falseName string, isSpace, isDigit func(rune) bool) *Locale {
	d := Default()
	if isSpace == nil {
		isSpace = d.isSpace
	}
	if isDigit == nil {
		isDigit = d.isDigit
	}
	if grouping == nil {
		grouping = d.grouping
	}
	return &Locale{
		Tag:          tag,
		decimalPoint: decimalPoint,
		thousandsSep: thousandsSep,
		grouping:     grouping,
		trueName:     trueName,
		falseName:    falseName,
		isSpace:      isSpace,
		isDigit:      isDigit,
	}
}

// knownTagLocales seeds a handful of real-world locale conventions keyed by
// BCP-47 tag, enough to demonstrate LocaleForTag without pulling in CLDR
// data tables (out of scope per spec.md §1, "Unicode tables shipped as
// data").
var knownTagLocales = map[string]struct {
	decimalPoint, thousandsSep rune
	grouping                   []int
}{
	"de": {',', '.', []int{3}},
	"fr": {',', ' ', []int{3}},
	"en": {'.', ',', []int{3}},
	"hi": {'.', ',', []int{3, 2}}, // Indian digit grouping: 3, then pairs of 2
}

// LocaleForTag returns a Locale seeded from a small built-in table of
// BCP-47 tags, falling back to Default for unrecognized tags. It exists so
// ScanLocalized callers can write LocaleForTag(language.German) instead of
// hand-assembling grouping descriptors for common cases.
func LocaleForTag(tag language.Tag) *Locale {
	base, _ := tag.Base()
	if conv, ok := knownTagLocales[base.String()]; ok {
		return New(tag, conv.decimalPoint, conv.thousandsSep, conv.grouping, "true", "false", nil, nil)
	}
	return New(tag, '.', ',', []int{3}, "true", "false", nil, nil)
}
