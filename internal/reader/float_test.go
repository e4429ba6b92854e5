package reader

import (
	"math"
	"testing"

	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/format"
	"github.com/eliaskosunen/scn-go/internal/locale"
)

func TestScanFloatBasic(t *testing.T) {
	b := buffer.NewFromString("3.14 rest")
	v, err := ScanFloat(b, format.Specs{}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if v != 3.14 {
		t.Fatalf("ScanFloat = %v, want 3.14", v)
	}
}

func TestScanFloatInfinity(t *testing.T) {
	b := buffer.NewFromString("inf")
	v, err := ScanFloat(b, format.Specs{}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if !math.IsInf(v, 1) {
		t.Fatalf("ScanFloat = %v, want +Inf", v)
	}
	if b.Position() != 3 {
		t.Fatalf("position = %d, want 3", b.Position())
	}
}

func TestScanFloatNegativeInfinity(t *testing.T) {
	b := buffer.NewFromString("-infinity")
	v, err := ScanFloat(b, format.Specs{}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if !math.IsInf(v, -1) {
		t.Fatalf("ScanFloat = %v, want -Inf", v)
	}
}

func TestScanFloatNaN(t *testing.T) {
	b := buffer.NewFromString("nan(123)")
	v, err := ScanFloat(b, format.Specs{}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if !math.IsNaN(v) {
		t.Fatalf("ScanFloat = %v, want NaN", v)
	}
}

func TestScanFloatScientific(t *testing.T) {
	b := buffer.NewFromString("6.02e23")
	v, err := ScanFloat(b, format.Specs{Type: format.TypeFloatScientific}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if v != 6.02e23 {
		t.Fatalf("ScanFloat = %v, want 6.02e23", v)
	}
}

func TestScanFloatFixedRejectsExponent(t *testing.T) {
	b := buffer.NewFromString("1.5e10")
	if _, err := ScanFloat(b, format.Specs{Type: format.TypeFloatFixed}, 64, locale.Default(), true); err == nil {
		t.Fatal("expected the fixed presentation type to reject an exponent")
	}
}

func TestScanFloatHex(t *testing.T) {
	b := buffer.NewFromString("0x1.8p3")
	v, err := ScanFloat(b, format.Specs{Type: format.TypeFloatHex}, 64, locale.Default(), true)
	if err != nil {
		t.Fatalf("ScanFloat: %v", err)
	}
	if v != 12 {
		t.Fatalf("ScanFloat = %v, want 12", v)
	}
}
