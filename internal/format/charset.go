package format

import (
	"strings"
	"unicode/utf8"
)

// parseCharsetBody parses the body of a "[...]" scanset (the text between
// the brackets, with the trailing ']' already stripped) into a Charset. It
// implements spec.md §4.2's scanset grammar: leading '^' inverts, a leading
// ']' is a literal, 'a-z' denotes a range, and the range end must be >= the
// range start or the format string is invalid.
func parseCharsetBody(body string) (Charset, error) {
	var cs Charset
	if strings.HasPrefix(body, "^") {
		cs.Inverted = true
		body = body[1:]
	}

	runes := []rune(body)
	i := 0
	first := true
	var nonASCII strings.Builder

	add := func(r rune) {
		if r < 128 {
			cs.Literals.set(r)
		} else {
			cs.HasNonASCII = true
		}
	}
	addRange := func(lo, hi rune) error {
		if hi < lo {
			return errRangeOrder
		}
		if lo < 128 {
			hiASCII := hi
			if hiASCII > 127 {
				hiASCII = 127
			}
			for r := lo; r <= hiASCII; r++ {
				cs.Literals.set(r)
			}
		}
		if hi >= 128 {
			cs.HasNonASCII = true
			if nonASCII.Len() > 0 {
				nonASCII.WriteByte(',')
			}
			loNA := lo
			if loNA < 128 {
				loNA = 128
			}
			nonASCII.WriteRune(loNA)
			nonASCII.WriteByte('-')
			nonASCII.WriteRune(hi)
		}
		return nil
	}

	for i < len(runes) {
		r := runes[i]
		if r == ']' && first {
			add(r)
			i++
			first = false
			continue
		}
		first = false
		// range?
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] != ']' {
			if err := addRange(r, runes[i+2]); err != nil {
				return Charset{}, err
			}
			i += 3
			continue
		}
		add(r)
		if r >= 128 {
			if nonASCII.Len() > 0 {
				nonASCII.WriteByte(',')
			}
			nonASCII.WriteRune(r)
		}
		i++
	}

	cs.CharsetString = nonASCII.String()
	return cs, nil
}

// matchNonASCII scans the comma-separated list of single code points and
// "lo-hi" ranges built by parseCharsetBody, looking for r. It is the "slow
// path" spec.md §4.7 describes for scansets containing non-ASCII members.
func matchNonASCII(spec string, r rune) bool {
	if spec == "" {
		return false
	}
	for _, part := range strings.Split(spec, ",") {
		if dash := strings.IndexByte(part, '-'); dash > 0 {
			lo, szLo := utf8.DecodeRuneInString(part[:dash])
			hi, szHi := utf8.DecodeRuneInString(part[dash+1:])
			if szLo > 0 && szHi > 0 && r >= lo && r <= hi {
				return true
			}
			continue
		}
		if pr, _ := utf8.DecodeRuneInString(part); pr == r {
			return true
		}
	}
	return false
}
