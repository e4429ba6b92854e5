package buffer

import (
	"strings"
	"testing"
)

func TestContiguousPeekGet(t *testing.T) {
	b := NewFromString("abc")
	r, _, ok, err := b.Peek()
	if err != nil || !ok || r != 'a' {
		t.Fatalf("Peek() = %q, %v, %v, want 'a' true nil", r, ok, err)
	}
	if b.Position() != 0 {
		t.Fatalf("Peek must not advance position, got %d", b.Position())
	}
	r, _, ok, err = b.Get()
	if err != nil || !ok || r != 'a' {
		t.Fatalf("Get() = %q, %v, %v, want 'a' true nil", r, ok, err)
	}
	if b.Position() != 1 {
		t.Fatalf("Position() = %d, want 1", b.Position())
	}
}

func TestContiguousEndOfInput(t *testing.T) {
	b := NewFromString("")
	_, _, ok, err := b.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("Get() on empty buffer should report ok=false")
	}
}

func TestRewindAndReread(t *testing.T) {
	b := NewFromString("hello")
	b.Get()
	b.Get()
	mark := b.Position()
	r1, _, _, _ := b.Get()
	if err := b.Rewind(mark); err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	r2, _, _, _ := b.Get()
	if r1 != r2 {
		t.Fatalf("re-read after rewind = %q, want %q", r2, r1)
	}
}

func TestRewindForwardRejected(t *testing.T) {
	b := NewFromString("hello")
	if err := b.Rewind(3); err == nil {
		t.Fatal("expected an error rewinding forward of the current position")
	}
}

func TestIteratorReadsLikeContiguous(t *testing.T) {
	b := NewFromReader(strings.NewReader("xyz"))
	var got []rune
	for {
		r, _, ok, err := b.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, r)
	}
	if string(got) != "xyz" {
		t.Fatalf("got %q, want %q", string(got), "xyz")
	}
}

func TestIteratorRewind(t *testing.T) {
	b := NewFromReader(strings.NewReader("abcdef"))
	b.Get()
	b.Get()
	mark := b.Position()
	b.Get()
	b.Get()
	if err := b.Rewind(mark); err != nil {
		t.Fatalf("Rewind: %v", err)
	}
	r, _, ok, err := b.Get()
	if err != nil || !ok || r != 'c' {
		t.Fatalf("Get() after rewind = %q, %v, %v, want 'c' true nil", r, ok, err)
	}
}

func TestCommitPreventsRewindBehind(t *testing.T) {
	b := NewFromReader(strings.NewReader("abcdef"))
	b.Get()
	b.Get()
	b.Commit(b.Position())
	if err := b.Rewind(0); err == nil {
		t.Fatal("expected an error rewinding before a committed position")
	}
}

func TestSliceBorrowsContiguousNoCopy(t *testing.T) {
	s := "the quick brown fox"
	b := NewFromString(s)
	got, ok := b.Slice(4, 9)
	if !ok || got != "quick" {
		t.Fatalf("Slice(4, 9) = %q, %v, want %q true", got, ok, "quick")
	}
}

func TestEmbeddedNULIsNotATerminator(t *testing.T) {
	b := NewFromBytes([]byte("ab\x00cd"))
	var got []byte
	for {
		r, _, ok, err := b.Get()
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, byte(r))
	}
	if string(got) != "ab\x00cd" {
		t.Fatalf("got %q, want the embedded NUL preserved", got)
	}
}
