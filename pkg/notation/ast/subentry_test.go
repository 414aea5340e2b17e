package ast

import (
	"errors"
	"slices"
	"testing"
)

func TestNewRedirect(t *testing.T) {
	r, err := NewRedirect("good", "cmp", "irr")
	if err != nil {
		t.Fatalf("NewRedirect() failed: %v", err)
	}
	if r.Target() != "good" {
		t.Errorf("Target() = %q, want %q", r.Target(), "good")
	}
	if !slices.Equal(r.Types(), []string{"cmp", "irr"}) {
		t.Errorf("Types() = %v, want [cmp irr]", r.Types())
	}
	if !r.HasType("irr") || r.HasType("pl") {
		t.Error("HasType() mismatch")
	}
	if got := r.String(); got != ">(cmp,irr)good" {
		t.Errorf("String() = %q, want %q", got, ">(cmp,irr)good")
	}

	types := r.Types()
	types[0] = "changed"
	if r.Types()[0] != "cmp" {
		t.Error("Types() should return a copy")
	}
}

func TestNewRedirect_Invalid(t *testing.T) {
	tests := []struct {
		target string
		types  []string
	}{
		{"", nil},
		{" good", nil},
		{"(x)good", nil},
		{"go|od", nil},
		{"go>od", nil},
		{"a,b", nil},
		{"good", []string{""}},
		{"good", []string{"a,b"}},
		{"good", []string{"[x]"}},
	}

	for _, tt := range tests {
		if _, err := NewRedirect(tt.target, tt.types...); !errors.Is(err, ErrInvalidRedirect) {
			t.Errorf("NewRedirect(%q, %q) error = %v, want ErrInvalidRedirect", tt.target, tt.types, err)
		}
	}
}

func TestSubEntry_Forms(t *testing.T) {
	plain, err := NewSubEntry("abandoned")
	if err != nil {
		t.Fatalf("NewSubEntry() failed: %v", err)
	}
	if text, ok := plain.Text(); !ok || text != "abandoned" {
		t.Errorf("Text() = (%q, %v), want (abandoned, true)", text, ok)
	}
	if plain.IsRedirect() || plain.Redirect() != nil {
		t.Error("plain sub-entry should not redirect")
	}

	pure, err := NewRedirectSubEntry("rise", "sp")
	if err != nil {
		t.Fatalf("NewRedirectSubEntry() failed: %v", err)
	}
	if _, ok := pure.Text(); ok {
		t.Error("pure redirect should have no text")
	}
	if !pure.IsRedirect() {
		t.Error("IsRedirect() = false, want true")
	}
	if got := pure.String(); got != ">(sp)rise" {
		t.Errorf("String() = %q, want %q", got, ">(sp)rise")
	}

	r, _ := NewRedirect("go")
	linked, err := NewLinkedSubEntry("went", r)
	if err != nil {
		t.Fatalf("NewLinkedSubEntry() failed: %v", err)
	}
	if linked.IsRedirect() {
		t.Error("sub-entry with text should not be a pure redirect")
	}
	if got := linked.String(); got != "went>go" {
		t.Errorf("String() = %q, want %q", got, "went>go")
	}

	if _, err := NewLinkedSubEntry("went", nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("NewLinkedSubEntry(nil) error = %v, want ErrInvalidState", err)
	}
}

func TestNewSubEntry_Invalid(t *testing.T) {
	for _, text := range []string{"", " x", "a,b", "a|b", "a>b", "[a]", "a(", "a(b>>c)"} {
		if _, err := NewSubEntry(text); !errors.Is(err, ErrInvalidState) {
			t.Errorf("NewSubEntry(%q) error = %v, want ErrInvalidState", text, err)
		}
	}
}

func TestNewSubEntry_NestedMarker(t *testing.T) {
	s, err := NewSubEntry("b(c>d)")
	if err != nil {
		t.Fatalf("NewSubEntry() failed: %v", err)
	}
	if s.IsRedirect() || s.Redirect() != nil {
		t.Error("a '>' inside parentheses should not make a redirect")
	}
	if got := s.String(); got != "b(c>d)" {
		t.Errorf("String() = %q, want %q", got, "b(c>d)")
	}
}

func TestSubEntry_Shortcut(t *testing.T) {
	tests := []struct {
		headword string
		text     string
		want     string
	}{
		{"work", "work out", "~ out"},
		{"work", "work", "~"},
		{"work", "workout", "workout"},
		{"over", "overdo", "overdo"},
		{"work", "hard work", "hard work"},
		{"set", "set\tup", "~\tup"},
	}

	for _, tt := range tests {
		e, _ := NewEntry(tt.headword)
		_ = e.AddSubEntry(tt.text)
		got, ok := e.SubEntries()[0].Shortcut("~")
		if !ok || got != tt.want {
			t.Errorf("Shortcut(%q under %q) = (%q, %v), want (%q, true)", tt.text, tt.headword, got, ok, tt.want)
		}
	}

	detached, _ := NewSubEntry("work out")
	if _, ok := detached.Shortcut("~"); ok {
		t.Error("detached sub-entry should have no shortcut")
	}

	e, _ := NewEntry("rose")
	_ = e.AddRedirectSubEntry("rise", "sp")
	if _, ok := e.SubEntries()[0].Shortcut("~"); ok {
		t.Error("pure redirect should have no shortcut")
	}
}

func TestAnnotation_String(t *testing.T) {
	if got := (Annotation{Key: "irregular", Value: Flag()}).String(); got != "irregular" {
		t.Errorf("String() = %q, want %q", got, "irregular")
	}
	if got := (Annotation{Key: "sp", Value: Text("ran")}).String(); got != "sp:ran" {
		t.Errorf("String() = %q, want %q", got, "sp:ran")
	}
	if got := Flag().String(); got != "true" {
		t.Errorf("Flag().String() = %q, want %q", got, "true")
	}
}
