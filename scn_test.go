package scn

import (
	"math"
	"testing"

	"golang.org/x/text/language"
)

func TestScanMultipleValues(t *testing.T) {
	var i int
	var d float64
	var s string
	var b bool
	res, err := Scan("42 3.14 foobar true", "{} {} {} {}", &i, &d, &s, &b)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if i != 42 || d != 3.14 || s != "foobar" || !b {
		t.Fatalf("got i=%d d=%v s=%q b=%v", i, d, s, b)
	}
	if res.Position != 19 {
		t.Fatalf("Position = %d, want 19", res.Position)
	}
}

func TestScanExplicitBasePrefixes(t *testing.T) {
	var a, b2, c uint32
	res, err := Scan("0xff 077 0b101", "{:i} {:i} {:i}", &a, &b2, &c)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if a != 255 || b2 != 63 || c != 5 {
		t.Fatalf("got a=%d b=%d c=%d", a, b2, c)
	}
	if res.Position != 14 {
		t.Fatalf("Position = %d, want 14", res.Position)
	}
}

func TestScanIntegerOverflowReportsPosition(t *testing.T) {
	var i int32
	res, err := Scan("9999999999999999999", "{}", &i)
	if err == nil {
		t.Fatal("expected a value_positive_overflow error")
	}
	if res.Position != 0 {
		t.Fatalf("Position = %d, want 0", res.Position)
	}
}

func TestScanCharsetThenDecimal(t *testing.T) {
	var s string
	var n int
	res, err := Scan("abc123", "{:[a-z]}{:d}", &s, &n)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if s != "abc" || n != 123 {
		t.Fatalf("got s=%q n=%d", s, n)
	}
	if res.Position != 6 {
		t.Fatalf("Position = %d, want 6", res.Position)
	}
}

func TestScanLocalizedGroupingThousands(t *testing.T) {
	loc := NewLocale(language.Und, '.', ',', []int{3}, "true", "false", nil, nil)
	var n uint32
	res, err := ScanLocalized(loc, "1,234,567", "{:Ld}", &n)
	if err != nil {
		t.Fatalf("ScanLocalized: %v", err)
	}
	if n != 1234567 {
		t.Fatalf("n = %d, want 1234567", n)
	}
	if res.Position != 9 {
		t.Fatalf("Position = %d, want 9", res.Position)
	}
}

func TestScanLocalizedIrregularGrouping(t *testing.T) {
	loc := NewLocale(language.Und, '.', ',', []int{1, 2}, "true", "false", nil, nil)
	var n uint32
	res, err := ScanLocalized(loc, "1,23,45,6", "{:Ld}", &n)
	if err != nil {
		t.Fatalf("ScanLocalized: %v", err)
	}
	if n != 123456 {
		t.Fatalf("n = %d, want 123456", n)
	}
	if res.Position != 9 {
		t.Fatalf("Position = %d, want 9", res.Position)
	}
}

func TestScanInfinity(t *testing.T) {
	var f float64
	res, err := Scan("inf", "{}", &f)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !math.IsInf(f, 1) {
		t.Fatalf("f = %v, want +Inf", f)
	}
	if res.Position != 3 {
		t.Fatalf("Position = %d, want 3", res.Position)
	}
}

func TestScanStringViewBorrowsSource(t *testing.T) {
	source := "foo bar"
	var sv StringView
	res, err := Scan(source, "{}", &sv)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if sv.String() != "foo" {
		t.Fatalf("StringView = %q, want %q", sv.String(), "foo")
	}
	if res.Position != 3 {
		t.Fatalf("Position = %d, want 3", res.Position)
	}
}

func TestScanCharacterTypeDisambiguatesRuneFromInt32(t *testing.T) {
	// rune and int32 are the same Go type, so the 'c' presentation type is
	// what decides whether "5" is read as the character '5' or the number 5.
	var ch rune
	if _, err := Scan("5", "{:c}", &ch); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if ch != '5' {
		t.Fatalf("ch = %q, want '5'", ch)
	}

	var n int32
	if _, err := Scan("5", "{}", &n); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
}

func TestScanByteCharacterType(t *testing.T) {
	var b byte
	if _, err := Scan("A", "{:c}", &b); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if b != 'A' {
		t.Fatalf("b = %q, want 'A'", b)
	}
}

func TestScanValueConvenience(t *testing.T) {
	n, res, err := ScanValue[int]("42")
	if err != nil {
		t.Fatalf("ScanValue: %v", err)
	}
	if n != 42 {
		t.Fatalf("n = %d, want 42", n)
	}
	if res.Position != 2 {
		t.Fatalf("Position = %d, want 2", res.Position)
	}
}

func TestScanMismatchedLiteralReportsInvalidLiteral(t *testing.T) {
	var n int
	_, err := Scan("xyz", "abc{}", &n)
	if err == nil {
		t.Fatal("expected an invalid_literal error")
	}
	if err.(*Error).Code != CodeInvalidLiteral {
		t.Fatalf("code = %v, want CodeInvalidLiteral", err.(*Error).Code)
	}
}

func TestScanDuplicateArgIDRejected(t *testing.T) {
	var a, b int
	_, err := Scan("1 2", "{0} {0}", &a, &b)
	if err == nil {
		t.Fatal("expected an invalid_format_string error for a duplicate argument id")
	}
}

func TestScanExhaustedSourceIsIdempotent(t *testing.T) {
	var n int
	src := ""
	_, err1 := Scan(src, "{}", &n)
	_, err2 := Scan(src, "{}", &n)
	if err1 == nil || err2 == nil {
		t.Fatal("expected end_of_input on both scans of an exhausted source")
	}
	if err1.(*Error).Code != err2.(*Error).Code {
		t.Fatalf("codes differ between repeated scans: %v vs %v", err1, err2)
	}
}
