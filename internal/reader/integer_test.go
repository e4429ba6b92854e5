package reader

import (
	"testing"

	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
)

func TestScanIntDecimal(t *testing.T) {
	b := buffer.NewFromString("-123 rest")
	v, err := ScanInt(b, format.Specs{}, 32, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanInt: %v", err)
	}
	if v != -123 {
		t.Fatalf("ScanInt = %d, want -123", v)
	}
}

func TestScanUintBasePrefixes(t *testing.T) {
	cases := []struct {
		src  string
		want uint64
	}{
		{"0xff", 255},
		{"077", 63},
		{"0b101", 5},
	}
	for _, c := range cases {
		b := buffer.NewFromString(c.src)
		v, err := ScanUint(b, format.Specs{Type: format.TypeIntGeneric}, 32, locale.Default(), true)
		if err != nil {
			t.Fatalf("ScanUint(%q): %v", c.src, err)
		}
		if v != c.want {
			t.Errorf("ScanUint(%q) = %d, want %d", c.src, v, c.want)
		}
	}
}

func TestScanIntOverflow(t *testing.T) {
	b := buffer.NewFromString("9999999999999999999")
	_, err := ScanInt(b, format.Specs{}, 32, locale.Default(), true)
	if err == nil {
		t.Fatal("expected a positive overflow error")
	}
	if b.Position() != 0 {
		t.Fatalf("position after overflow = %d, want 0 (rewound)", b.Position())
	}
}

func TestScanUintRejectsSign(t *testing.T) {
	b := buffer.NewFromString("-5")
	if _, err := ScanUint(b, format.Specs{}, 32, locale.Default(), true); err == nil {
		t.Fatal("expected an error scanning a '-' sign into an unsigned destination")
	}
}

func TestScanIntLocalizedGrouping(t *testing.T) {
	loc := locale.New(locale.Default().Tag, '.', ',', []int{3}, "true", "false", nil, nil)
	b := buffer.NewFromString("1,234,567")
	v, err := ScanUint(b, format.Specs{Type: format.TypeIntDecimal, Localized: true}, 32, loc, true)
	if err != nil {
		t.Fatalf("ScanUint: %v", err)
	}
	if v != 1234567 {
		t.Fatalf("ScanUint = %d, want 1234567", v)
	}
}

func TestScanIntLocalizedGroupingMismatch(t *testing.T) {
	loc := locale.New(locale.Default().Tag, '.', ',', []int{3}, "true", "false", nil, nil)
	b := buffer.NewFromString("12,34,567")
	if _, err := ScanUint(b, format.Specs{Type: format.TypeIntDecimal, Localized: true}, 32, loc, true); err == nil {
		t.Fatal("expected a grouping-mismatch error")
	}
}

func TestScanIntIrregularGroupingAccepted(t *testing.T) {
	loc := locale.New(locale.Default().Tag, '.', ',', []int{1, 2}, "true", "false", nil, nil)
	b := buffer.NewFromString("1,23,45,6")
	v, err := ScanUint(b, format.Specs{Type: format.TypeIntDecimal, Localized: true}, 32, loc, true)
	if err != nil {
		t.Fatalf("ScanUint: %v", err)
	}
	if v != 123456 {
		t.Fatalf("ScanUint = %d, want 123456", v)
	}
}
