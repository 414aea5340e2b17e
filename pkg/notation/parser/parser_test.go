package parser

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
)

func TestParseLine_Normal(t *testing.T) {
	entry, err := ParseLine("run[sp:ran,pp:run,irregular]|run out,runner,term(a,b)")
	if err != nil {
		t.Fatalf("ParseLine() failed: %v", err)
	}

	if entry.Headword() != "run" {
		t.Errorf("Headword() = %q, want %q", entry.Headword(), "run")
	}
	if entry.IsRedirect() {
		t.Error("IsRedirect() = true, want false")
	}

	sp, ok := entry.Annotation("sp")
	if !ok || sp.String() != "ran" {
		t.Errorf("Annotation(sp) = (%q, %v), want (ran, true)", sp, ok)
	}
	flag, ok := entry.Annotation("irregular")
	if !ok || !flag.IsFlag() {
		t.Errorf("Annotation(irregular) = (%q, %v), want flag", flag, ok)
	}

	var texts []string
	for _, s := range entry.SubEntries() {
		text, _ := s.Text()
		texts = append(texts, text)
		if s.Parent() != entry {
			t.Errorf("sub-entry %q has wrong parent", text)
		}
	}
	want := []string{"run out", "runner", "term(a,b)"}
	if !slices.Equal(texts, want) {
		t.Errorf("sub-entries = %q, want %q", texts, want)
	}
}

func TestParseLine_Redirection(t *testing.T) {
	tests := []struct {
		line   string
		head   string
		target string
		types  []string
	}{
		{"better>>good", "better", "good", nil},
		{"better>>(cmp)good", "better", "good", []string{"cmp"}},
		{"better >> (cmp, irr) good", "better", "good", []string{"cmp", "irr"}},
		{"children>>(pl)child", "children", "child", []string{"pl"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			entry, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine() failed: %v", err)
			}
			if !entry.IsRedirect() {
				t.Fatal("IsRedirect() = false, want true")
			}
			if entry.Headword() != tt.head {
				t.Errorf("Headword() = %q, want %q", entry.Headword(), tt.head)
			}
			r := entry.Redirect()
			if r.Target() != tt.target {
				t.Errorf("Target() = %q, want %q", r.Target(), tt.target)
			}
			if !slices.Equal(r.Types(), tt.types) && !(len(tt.types) == 0 && len(r.Types()) == 0) {
				t.Errorf("Types() = %q, want %q", r.Types(), tt.types)
			}
		})
	}
}

func TestParseLine_SubEntryRedirects(t *testing.T) {
	entry, err := ParseLine("go[sp:went]|went>(sp)go,>(pp)gone,goer")
	if err != nil {
		t.Fatalf("ParseLine() failed: %v", err)
	}

	subs := entry.SubEntries()
	if len(subs) != 3 {
		t.Fatalf("len(SubEntries()) = %d, want 3", len(subs))
	}

	linked := subs[0]
	if text, ok := linked.Text(); !ok || text != "went" {
		t.Errorf("subs[0].Text() = (%q, %v), want (went, true)", text, ok)
	}
	if linked.IsRedirect() {
		t.Error("sub-entry with text and redirect should not be a pure redirect")
	}
	if linked.Redirect() == nil || linked.Redirect().Target() != "go" || !linked.Redirect().HasType("sp") {
		t.Errorf("subs[0].Redirect() = %v, want >(sp)go", linked.Redirect())
	}

	pure := subs[1]
	if !pure.IsRedirect() {
		t.Error("subs[1].IsRedirect() = false, want true")
	}
	if pure.Redirect().Target() != "gone" {
		t.Errorf("subs[1] target = %q, want %q", pure.Redirect().Target(), "gone")
	}

	if subs[2].Redirect() != nil {
		t.Error("subs[2] should be plain text")
	}
}

func TestParseLine_NestedSubRedirectMarker(t *testing.T) {
	entry, err := ParseLine("a|b(c>d)>(rel)e")
	if err != nil {
		t.Fatalf("ParseLine() failed: %v", err)
	}
	sub := entry.SubEntries()[0]
	if text, _ := sub.Text(); text != "b(c>d)" {
		t.Errorf("Text() = %q, want %q", text, "b(c>d)")
	}
	if sub.Redirect() == nil || sub.Redirect().Target() != "e" || !sub.Redirect().HasType("rel") {
		t.Errorf("Redirect() = %v, want >(rel)e", sub.Redirect())
	}
}

func TestParseLine_WhitespaceNormalized(t *testing.T) {
	entry, err := ParseLine("  run [ sp : ran , irregular ] | run out , runner  ")
	if err != nil {
		t.Fatalf("ParseLine() failed: %v", err)
	}
	want := "run[sp:ran,irregular]|run out,runner"
	if got := entry.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseLine_DuplicateAnnotationKey(t *testing.T) {
	entry, err := ParseLine("run[sp:ran,pp:run,sp:runned]")
	if err != nil {
		t.Fatalf("ParseLine() failed: %v", err)
	}
	if got := entry.String(); got != "run[sp:runned,pp:run]" {
		t.Errorf("String() = %q, want %q", got, "run[sp:runned,pp:run]")
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want nerrors.ErrorType
	}{
		{"empty", "", nerrors.ErrorTypeEmptyInput},
		{"whitespace", "   \t", nerrors.ErrorTypeEmptyInput},
		{"unclosed bracket", "run[sp:ran", nerrors.ErrorTypeMismatchedBrackets},
		{"stray close bracket", "run]", nerrors.ErrorTypeMismatchedBrackets},
		{"leading separator", "|run", nerrors.ErrorTypeMissingHeadwordText},
		{"annotation only", "[sp:ran]", nerrors.ErrorTypeMissingHeadwordText},
		{"redirect without headword", ">>good", nerrors.ErrorTypeMissingHeadwordText},
		{"text after block", "run[sp:ran]x", nerrors.ErrorTypeMalformedAnnotation},
		{"empty block", "run[]", nerrors.ErrorTypeEmptyAnnotationBlock},
		{"blank block", "run[  ]", nerrors.ErrorTypeEmptyAnnotationBlock},
		{"empty key", "run[:ran]", nerrors.ErrorTypeEmptyAnnotationKey},
		{"empty list item", "run[sp:ran,,pp:run]", nerrors.ErrorTypeEmptyAnnotationKey},
		{"empty value", "run[sp:]", nerrors.ErrorTypeEmptyAnnotationValue},
		{"invalid key", "run[s-p:ran]", nerrors.ErrorTypeInvalidAnnotationKey},
		{"bracket in value", "run[sp:[x]]", nerrors.ErrorTypeInvalidAnnotationValue},
		{"unbalanced value", "run[sp:a(b]", nerrors.ErrorTypeInvalidAnnotationValue},
		{"unopened paren in value", "rise[note:x)]", nerrors.ErrorTypeInvalidAnnotationValue},
		{"unclosed paren in value", "rise[note:see (a]", nerrors.ErrorTypeInvalidAnnotationValue},
		{"redirect at end", "run>>", nerrors.ErrorTypeMalformedRedirection},
		{"redirect with annotations", "run[sp:ran]>>walk", nerrors.ErrorTypeMalformedRedirection},
		{"redirect with sub-entries", "run|x>>walk", nerrors.ErrorTypeMalformedRedirection},
		{"unclosed types", "ran>>(sp", nerrors.ErrorTypeMalformedRedirection},
		{"empty type", "ran>>()run", nerrors.ErrorTypeMalformedRedirection},
		{"types without target", "ran>>(sp)", nerrors.ErrorTypeEmptyRedirectTarget},
		{"trailing separator", "run|", nerrors.ErrorTypeEmptySubEntry},
		{"empty sub-entry", "run|a,,b", nerrors.ErrorTypeEmptySubEntry},
		{"bare sub redirect", "run|>", nerrors.ErrorTypeEmptyRedirectTarget},
		{"text with bare redirect", "run|ran>", nerrors.ErrorTypeEmptyRedirectTarget},
		{"comment headword", "#run|x", nerrors.ErrorTypeInvalidHeadword},
		{"marker in headword", "ru>n|x", nerrors.ErrorTypeInvalidHeadword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ParseLine(tt.line)
			if err == nil {
				t.Fatalf("ParseLine(%q) = %q, want %s error", tt.line, entry, tt.want)
			}
			if got := nerrors.KindOf(err); got != tt.want {
				t.Errorf("ParseLine(%q) kind = %s, want %s (%v)", tt.line, got, tt.want, err)
			}
			if !errors.Is(err, nerrors.Kind(tt.want)) {
				t.Errorf("errors.Is(err, Kind(%s)) = false", tt.want)
			}
			if !nerrors.KindOf(err).IsParse() {
				t.Errorf("kind %s should be a parse error", nerrors.KindOf(err))
			}
		})
	}
}

func TestParseLine_ErrorDetails(t *testing.T) {
	_, err := ParseLine("run[sp:ran")
	var perr *nerrors.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if perr.Input != "run[sp:ran" {
		t.Errorf("Input = %q, want the offending line", perr.Input)
	}
	if perr.Suggestion == "" {
		t.Error("mismatched brackets should carry a suggestion")
	}

	_, err = ParseLine("run[past-tense:ran]")
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if !strings.Contains(perr.Suggestion, "past_tense") {
		t.Errorf("Suggestion = %q, want it to propose past_tense", perr.Suggestion)
	}
	if perr.Location.Column != 5 {
		t.Errorf("Column = %d, want 5", perr.Location.Column)
	}
}

func TestParser_MaxLineLength(t *testing.T) {
	p := NewParser().WithMaxLineLength(10)
	if _, err := p.ParseLine("supercalifragilistic"); nerrors.KindOf(err) != nerrors.ErrorTypeLineTooLong {
		t.Errorf("ParseLine() kind = %s, want %s", nerrors.KindOf(err), nerrors.ErrorTypeLineTooLong)
	}
	if _, err := p.ParseLine("short"); err != nil {
		t.Errorf("ParseLine(short) failed: %v", err)
	}

	unlimited := NewParser().WithMaxLineLength(0)
	if _, err := unlimited.ParseLine(strings.Repeat("a", DefaultMaxLineLength+1)); err != nil {
		t.Errorf("unlimited parser rejected a long line: %v", err)
	}
}

func TestRoundTrip_CanonicalLines(t *testing.T) {
	lines := []string{
		"run",
		"run[sp:ran]",
		"run[sp:ran,pp:run,irregular]|run out,runner",
		"work|work out,workout,~",
		"go|went>(sp)go,>(pp)gone",
		"better>>good",
		"better>>(cmp)good",
		"better>>(cmp,irr)good",
		"term|term(a,b),other",
		"a|b(c>d)",
		"a|b(c>d)>(rel)e,f",
		"naïve[lang:fr]|naïveté",
		"set|set up:now",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			entry, err := ParseLine(line)
			if err != nil {
				t.Fatalf("ParseLine() failed: %v", err)
			}
			if got := entry.String(); got != line {
				t.Errorf("String() = %q, want %q", got, line)
			}
			again, err := ParseLine(entry.String())
			if err != nil {
				t.Fatalf("re-parse failed: %v", err)
			}
			if !again.Equal(entry) {
				t.Errorf("re-parsed entry %q differs from %q", again, entry)
			}
		})
	}
}

func TestRoundTrip_BuiltEntries(t *testing.T) {
	build := func(t *testing.T, fn func(*ast.Entry) error) *ast.Entry {
		t.Helper()
		e, err := ast.NewEntry("root")
		if err != nil {
			t.Fatal(err)
		}
		if err := fn(e); err != nil {
			t.Fatal(err)
		}
		return e
	}

	entries := []*ast.Entry{
		build(t, func(e *ast.Entry) error { return nil }),
		build(t, func(e *ast.Entry) error {
			return e.SetAnnotations(
				ast.Annotation{Key: "sp", Value: ast.Text("rooted")},
				ast.Annotation{Key: "note", Value: ast.Text("a:b (c,d)")},
				ast.Annotation{Key: "rare", Value: ast.Flag()},
			)
		}),
		build(t, func(e *ast.Entry) error {
			if err := e.AddSubEntries("root out", "rootless", "f(x,y)"); err != nil {
				return err
			}
			return e.AddRedirectSubEntry("radix", "lat", "syn")
		}),
		build(t, func(e *ast.Entry) error { return e.SetRedirect("radix", "syn") }),
	}

	for _, e := range entries {
		parsed, err := ParseLine(e.String())
		if err != nil {
			t.Fatalf("ParseLine(%q) failed: %v", e.String(), err)
		}
		if !parsed.Equal(e) {
			t.Errorf("round trip of %q produced %q", e, parsed)
		}
	}
}

func TestMustParseLine_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseLine() should panic on invalid input")
		}
	}()
	MustParseLine("run[")
}
