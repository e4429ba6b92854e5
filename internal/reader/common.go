package reader

import (
	"github.com/eliaskosunen/scn-go/internal/buffer"
	"github.com/eliaskosunen/scn-go/internal/charutil"
)

// skipWhitespace advances past a run of Unicode whitespace, used before
// any reader that scans in "implicit" (non-character, non-charset) mode,
// per spec.md §4.3's "skips leading whitespace, unless the presentation
// type is 'c'" rule and its float/bool/generic-string analogues. It is the
// one whitespace-skipping primitive shared by every primitive reader,
// grounded on fmt/scan.go's skipSpace (_examples/Go-zh-go.old/src/pkg/fmt/scan.go).
func skipWhitespace(b *buffer.Buffer) {
	for {
		r, _, ok, _ := b.Peek()
		if !ok || !charutil.IsSpace(r) {
			return
		}
		b.Get()
	}
}
