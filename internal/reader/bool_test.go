package reader

import (
	"testing"

	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/locale"
)

func TestScanBoolNumeric(t *testing.T) {
	b := buffer.NewFromString("1")
	v, err := ScanBool(b, locale.Default(), false, true)
	if err != nil {
		t.Fatalf("ScanBool: %v", err)
	}
	if !v {
		t.Fatal("ScanBool(\"1\") = false, want true")
	}
}

func TestScanBoolTextual(t *testing.T) {
	b := buffer.NewFromString("true")
	v, err := ScanBool(b, locale.Default(), false, true)
	if err != nil {
		t.Fatalf("ScanBool: %v", err)
	}
	if !v {
		t.Fatal("ScanBool(\"true\") = false, want true")
	}
}

func TestScanBoolRejectsGarbage(t *testing.T) {
	b := buffer.NewFromString("maybe")
	if _, err := ScanBool(b, locale.Default(), false, true); err == nil {
		t.Fatal("expected an error scanning \"maybe\" as a bool")
	}
}

func TestScanBoolLocalizedText(t *testing.T) {
	loc := locale.New(locale.Default().Tag, '.', ',', nil, "vrai", "faux", nil, nil)
	b := buffer.NewFromString("vrai")
	v, err := ScanBool(b, loc, true, true)
	if err != nil {
		t.Fatalf("ScanBool: %v", err)
	}
	if !v {
		t.Fatal("ScanBool(\"vrai\") = false, want true")
	}
}
