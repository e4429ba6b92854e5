package format

import (
	"testing"
)

func TestParseLiteralsAndFields(t *testing.T) {
	cases := []struct {
		name   string
		format string
		want   []Event
	}{
		{
			name:   "plain literal",
			format: "hello",
			want:   []Event{{Kind: EventLiteral, Literal: "hello"}},
		},
		{
			name:   "escaped braces",
			format: "{{x}}",
			want:   []Event{{Kind: EventLiteral, Literal: "{x}"}},
		},
		{
			name:   "auto fields",
			format: "{} {}",
			want: []Event{
				{Kind: EventField, ArgID: 0},
				{Kind: EventLiteral, Literal: " "},
				{Kind: EventField, ArgID: 1},
			},
		},
		{
			name:   "explicit fields out of order",
			format: "{1}{0}",
			want: []Event{
				{Kind: EventField, ArgID: 1},
				{Kind: EventField, ArgID: 0},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.format)
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.format, err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("Parse(%q) = %d events, want %d (%v)", c.format, len(got), len(c.want), got)
			}
			for i := range got {
				if got[i].Kind != c.want[i].Kind || got[i].Literal != c.want[i].Literal || got[i].ArgID != c.want[i].ArgID {
					t.Errorf("event %d = %+v, want %+v", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestParseMixedIndexingRejected(t *testing.T) {
	if _, err := Parse("{0}{}"); err == nil {
		t.Fatal("expected an error mixing explicit and automatic argument indexing")
	}
}

func TestParseUnterminatedField(t *testing.T) {
	if _, err := Parse("{d"); err == nil {
		t.Fatal("expected an error for an unterminated replacement field")
	}
}

func TestParseSpecFillAlignWidthType(t *testing.T) {
	_, _, specs, err := parseFieldForTest("*^10d")
	if err != nil {
		t.Fatalf("parseField: %v", err)
	}
	if !specs.HasFill || specs.Fill != '*' {
		t.Errorf("fill = %q, %v, want '*' true", specs.Fill, specs.HasFill)
	}
	if specs.Align != AlignCenter {
		t.Errorf("align = %v, want AlignCenter", specs.Align)
	}
	if !specs.HasWidth || specs.Width != 10 {
		t.Errorf("width = %v, %v, want 10 true", specs.Width, specs.HasWidth)
	}
	if specs.Type != TypeIntDecimal {
		t.Errorf("type = %v, want TypeIntDecimal", specs.Type)
	}
}

func TestParseLocalizedFlag(t *testing.T) {
	_, _, specs, err := parseFieldForTest("Ld")
	if err != nil {
		t.Fatalf("parseField: %v", err)
	}
	if !specs.Localized {
		t.Error("expected Localized to be true")
	}
	if specs.Type != TypeIntDecimal {
		t.Errorf("type = %v, want TypeIntDecimal", specs.Type)
	}
}

func TestParseArbitraryBase(t *testing.T) {
	_, _, specs, err := parseFieldForTest("r16")
	if err != nil {
		t.Fatalf("parseField: %v", err)
	}
	if specs.Type != TypeIntArbitraryBase || specs.ArbitraryBase != 16 {
		t.Errorf("got type=%v base=%d, want arbitrary base 16", specs.Type, specs.ArbitraryBase)
	}
}

func TestParseCharsetInversionAndRange(t *testing.T) {
	_, _, specs, err := parseFieldForTest("[^a-z]")
	if err != nil {
		t.Fatalf("parseField: %v", err)
	}
	if specs.Type != TypeCharset || !specs.Charset.Inverted {
		t.Fatalf("got %+v, want inverted charset", specs.Charset)
	}
	if specs.Charset.Match('m') {
		t.Error("'m' should not match inverted [^a-z]")
	}
	if !specs.Charset.Match('M') {
		t.Error("'M' should match inverted [^a-z]")
	}
}

func TestParseRegexEscapedDelimiter(t *testing.T) {
	_, _, specs, err := parseFieldForTest(`/a\/b/i`)
	if err != nil {
		t.Fatalf("parseField: %v", err)
	}
	if specs.Type != TypeRegexEscaped {
		t.Errorf("type = %v, want TypeRegexEscaped", specs.Type)
	}
	if specs.RegexPattern != "a/b" {
		t.Errorf("pattern = %q, want %q", specs.RegexPattern, "a/b")
	}
	if specs.RegexFlags&RegexNoCase == 0 {
		t.Error("expected the 'i' flag to be set")
	}
}

// parseFieldForTest is a thin wrapper over the unexported parseField, kept
// in this file so the table-driven cases above can exercise the spec
// parser directly without going through Parse's literal/field splitting.
// spec is the text after the ':' of a field with no arg_id.
func parseFieldForTest(spec string) (int, bool, Specs, error) {
	return parseField(":" + spec)
}
