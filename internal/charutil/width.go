package charutil

import "github.com/mattn/go-runewidth"

// WidthFunc estimates the display width, in columns, of a single code
// point. It is the "algorithm selector" spec.md §4.9 calls for.
type WidthFunc func(rune) int

// specWidthRanges mirrors spec.md §4.9's literal table: code points in
// these [lo, hi] ranges (inclusive) are width 2, everything else is width
// 1. This is the default algorithm and is deliberately not delegated to
// any library, because it is a bespoke table (it includes the two emoji
// blocks explicitly called out by the spec) rather than the published
// East Asian Width property — see DESIGN.md for why go-runewidth is kept
// as an alternative selectable algorithm instead of the default.
var specWidthRanges = [][2]rune{
	{0x1100, 0x115F},
	{0x2329, 0x232A},
	{0x2E80, 0xA4CF}, // excluding 0x303F, handled specially below
	{0xAC00, 0xD7A3},
	{0xF900, 0xFAFF},
	{0xFE10, 0xFE19},
	{0xFE30, 0xFE6F},
	{0xFF00, 0xFF60},
	{0xFFE0, 0xFFE6},
	{0x20000, 0x2FFFD},
	{0x30000, 0x3FFFD},
	{0x1F300, 0x1F64F},
	{0x1F900, 0x1F9FF},
}

// SpecWidth implements the exact table from spec.md §4.9: 2 for the ranges
// above, 1 otherwise. Invalid encodings are the caller's concern (a
// replacement rune utf8.RuneError is simply given width 1 here).
func SpecWidth(r rune) int {
	if r == 0x303F {
		return 1
	}
	for _, rng := range specWidthRanges {
		if r < rng[0] {
			continue
		}
		if r <= rng[1] {
			return 2
		}
	}
	return 1
}

// RuneWidth delegates to github.com/mattn/go-runewidth's wcwidth-compatible
// table. Selecting it instead of SpecWidth trades exact spec conformance
// for compatibility with terminal emulators' own width accounting.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Default is the width algorithm the string reader uses unless a caller
// substitutes one, satisfying spec.md §4.9's "default being a fixed
// East-Asian-Width-like mapping".
var Default WidthFunc = SpecWidth
