package format

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/eliaskosunen/scn-go/internal/scnerr"
)

var errRangeOrder = errors.New("scanset range end before start")

// EventKind distinguishes the two kinds of event Parse emits.
type EventKind int

const (
	EventLiteral EventKind = iota
	EventField
)

// Event is one unit of a parsed format string: either a contiguous literal
// run or a single replacement field.
type Event struct {
	Kind    EventKind
	Literal string // valid when Kind == EventLiteral
	ArgID   int    // valid when Kind == EventField
	Specs   Specs  // valid when Kind == EventField
}

// Parse consumes format once, emitting the ordered event sequence spec.md
// §4.2 describes: literal-text events and replacement-field events. It
// validates the arg-id policy (all-auto or all-explicit, never mixed) but
// does not know how many arguments are actually supplied — that check
// happens in internal/driver, which has the argument Store.
func Parse(format string) ([]Event, error) {
	var events []Event
	var literal strings.Builder
	autoID := 0
	sawAuto := false
	sawExplicit := false

	flush := func() {
		if literal.Len() > 0 {
			events = append(events, Event{Kind: EventLiteral, Literal: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(format) {
		r, w := utf8.DecodeRuneInString(format[i:])
		switch r {
		case '{':
			if i+w < len(format) && format[i+w] == '{' {
				literal.WriteByte('{')
				i += w + 1
				continue
			}
			flush()
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, scnerr.New(scnerr.CodeInvalidFormatString, "unterminated replacement field")
			}
			body := format[i+w : i+end]
			argID, explicit, specs, err := parseField(body)
			if err != nil {
				return nil, err
			}
			if explicit {
				sawExplicit = true
			} else {
				sawAuto = true
				argID = autoID
				autoID++
			}
			if sawAuto && sawExplicit {
				return nil, scnerr.New(scnerr.CodeInvalidFormatString, "cannot mix automatic and explicit argument indexing")
			}
			events = append(events, Event{Kind: EventField, ArgID: argID, Specs: specs})
			i += end + 1
		case '}':
			if i+w < len(format) && format[i+w] == '}' {
				literal.WriteByte('}')
				i += w + 1
				continue
			}
			return nil, scnerr.New(scnerr.CodeInvalidFormatString, "unmatched '}' in format string")
		default:
			literal.WriteString(format[i : i+w])
			i += w
		}
	}
	flush()
	return events, nil
}

// MustParse is Parse but panics on error. It exists to let a package-level
// var initializer approximate spec.md §9's "compile-time format checking"
// note: misuse surfaces at program-init time rather than at first call.
func MustParse(format string) []Event {
	events, err := Parse(format)
	if err != nil {
		panic(err)
	}
	return events
}

// parseField parses the body of a "{...}" replacement field (with the
// braces already stripped) per the grammar:
//
//	field := [ arg_id ] [ ':' spec ]
//	spec  := [ fill align ] [ width ] [ 'L' ] [ type ]
func parseField(body string) (argID int, explicit bool, specs Specs, err error) {
	colon := strings.IndexByte(body, ':')
	idPart := body
	specPart := ""
	if colon >= 0 {
		idPart = body[:colon]
		specPart = body[colon+1:]
	}
	if idPart != "" {
		n, e := strconv.Atoi(idPart)
		if e != nil || n < 0 {
			return 0, false, Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "invalid argument id %q", idPart)
		}
		argID, explicit = n, true
	}

	specs, err = parseSpec(specPart)
	return argID, explicit, specs, err
}

func isAlignChar(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

func alignOf(r rune) Align {
	switch r {
	case '<':
		return AlignLeft
	case '>':
		return AlignRight
	case '^':
		return AlignCenter
	}
	return AlignNone
}

func parseSpec(spec string) (Specs, error) {
	var s Specs
	pos := 0

	// [ fill align ]
	if pos < len(spec) {
		r1, w1 := utf8.DecodeRuneInString(spec[pos:])
		if r1 == '{' {
			return Specs{}, scnerr.New(scnerr.CodeInvalidFormatString, "'{' cannot be used as a fill character")
		}
		if pos+w1 < len(spec) {
			r2, w2 := utf8.DecodeRuneInString(spec[pos+w1:])
			// '[' is never a fill character: it always opens a scanset,
			// so "[^a-z]" is an inverted scanset, not fill '[' align '^'.
			if isAlignChar(r2) && r1 != '[' {
				s.Fill, s.HasFill, s.Align = r1, true, alignOf(r2)
				pos += w1 + w2
			} else if isAlignChar(r1) {
				s.Fill, s.HasFill, s.Align = ' ', true, alignOf(r1)
				pos += w1
			}
		} else if isAlignChar(r1) {
			s.Fill, s.HasFill, s.Align = ' ', true, alignOf(r1)
			pos += w1
		}
	}

	// [ width ]
	widthStart := pos
	for pos < len(spec) && spec[pos] >= '0' && spec[pos] <= '9' {
		pos++
	}
	if pos > widthStart {
		w, err := strconv.Atoi(spec[widthStart:pos])
		if err != nil {
			return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "invalid width %q", spec[widthStart:pos])
		}
		s.Width, s.HasWidth = w, true
	}

	// [ 'L' ]
	if pos < len(spec) && spec[pos] == 'L' {
		s.Localized = true
		pos++
	}

	// [ type ]
	if pos >= len(spec) {
		return s, nil
	}

	rest := spec[pos:]
	switch {
	case rest[0] == '[':
		if !strings.HasSuffix(rest, "]") {
			return Specs{}, scnerr.New(scnerr.CodeInvalidFormatString, "unterminated scanset")
		}
		cs, err := parseCharsetBody(rest[1 : len(rest)-1])
		if err != nil {
			return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "invalid scanset: %v", err)
		}
		s.Type = TypeCharset
		s.Charset = cs
		return s, nil
	case rest[0] == '/':
		pattern, flags, escaped, err := parseRegexTail(rest[1:])
		if err != nil {
			return Specs{}, err
		}
		if escaped {
			s.Type = TypeRegexEscaped
		} else {
			s.Type = TypeRegex
		}
		s.RegexPattern = pattern
		s.RegexFlags = flags
		return s, nil
	case rest[0] == 'r' || rest[0] == 'R':
		if len(rest) != 3 || !isASCIIDigitByte(rest[1]) || !isASCIIDigitByte(rest[2]) {
			return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "invalid arbitrary base selector %q (want r<nn>)", rest)
		}
		base, _ := strconv.Atoi(rest[1:3])
		if base < 2 || base > 36 {
			return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "arbitrary base %d out of range 2..36", base)
		}
		s.Type = TypeIntArbitraryBase
		s.ArbitraryBase = base
		return s, nil
	}

	if len(rest) != 1 {
		return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "unrecognized presentation type %q", rest)
	}
	t, ok := typeChars[rest[0]]
	if !ok {
		return Specs{}, scnerr.Newf(scnerr.CodeInvalidFormatString, "unrecognized presentation type %q", rest)
	}
	s.Type = t
	return s, nil
}

var typeChars = map[byte]Type{
	'b': TypeIntBinary,
	'd': TypeIntDecimal,
	'o': TypeIntOctal,
	'x': TypeIntHex,
	'X': TypeIntHex,
	'i': TypeIntGeneric,
	'u': TypeIntUnsigned,
	'f': TypeFloatFixed,
	'e': TypeFloatScientific,
	'g': TypeFloatGeneral,
	'a': TypeFloatHex,
	'A': TypeFloatHex,
	's': TypeString,
	'c': TypeCharacter,
	'C': TypeEscapedCharacter,
	'p': TypePointer,
}

func isASCIIDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// parseRegexTail parses the remainder of a "/pat/flags" presentation type,
// given the text after the opening '/'. It supports a backslash-escaped
// delimiter ("\/") inside the pattern, in which case the parsed field is
// reported as the regex-escaped presentation type (spec.md §3's
// regex-escaped entry).
func parseRegexTail(tail string) (pattern string, flags RegexFlags, escaped bool, err error) {
	var b strings.Builder
	i := 0
	for i < len(tail) {
		if tail[i] == '\\' && i+1 < len(tail) && tail[i+1] == '/' {
			b.WriteByte('/')
			escaped = true
			i += 2
			continue
		}
		if tail[i] == '/' {
			flagStr := tail[i+1:]
			for _, f := range flagStr {
				switch f {
				case 'm':
					flags |= RegexMultiline
				case 's':
					flags |= RegexSingleline
				case 'i':
					flags |= RegexNoCase
				case 'n':
					flags |= RegexNoCapture
				default:
					return "", 0, false, scnerr.Newf(scnerr.CodeInvalidFormatString, "unknown regex flag %q", string(f))
				}
			}
			return b.String(), flags, escaped, nil
		}
		b.WriteByte(tail[i])
		i++
	}
	return "", 0, false, scnerr.New(scnerr.CodeInvalidFormatString, "unterminated regex presentation type")
}
