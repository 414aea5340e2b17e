package validator

import (
	"slices"
	"strings"
	"testing"

	"mercator-hq/lexicon/pkg/notation/ast"
	nerrors "mercator-hq/lexicon/pkg/notation/errors"
	"mercator-hq/lexicon/pkg/notation/parser"
)

func parseAll(t *testing.T, lines ...string) []*ast.Entry {
	t.Helper()
	entries := make([]*ast.Entry, 0, len(lines))
	for _, line := range lines {
		e, err := parser.ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q) failed: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestValidate_Clean(t *testing.T) {
	entries := parseAll(t,
		"run[sp:ran]|run out,runner,run",
		"ran>>(sp)run",
		"walk|walker,>(syn)run",
	)

	v := NewValidator()
	if err := v.Validate(entries); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if errs := v.ValidateAll(entries); errs == nil || errs.HasErrors() {
		t.Errorf("ValidateAll() = %v, want an empty list", errs)
	}
	if err := v.Validate(nil); err != nil {
		t.Errorf("Validate(nil) = %v, want nil", err)
	}
}

func TestCheckDuplicates(t *testing.T) {
	entries := parseAll(t, "run", "walk", "run|runner", "walk>>stroll", "talk")

	errs := NewValidator().CheckDuplicates(entries)
	if errs.Count() != 2 {
		t.Fatalf("Count() = %d, want 2: %v", errs.Count(), errs.Messages())
	}
	first := errs.Errors[0]
	if first.Type != nerrors.ErrorTypeDuplicateHeadword || first.Input != "run" {
		t.Errorf("first error = %s %q, want duplicate_headword run", first.Type, first.Input)
	}
	if !strings.Contains(first.Message, "entry #1") || !strings.Contains(first.Message, "entry #3") {
		t.Errorf("Message = %q, want both positions", first.Message)
	}
}

func TestCheckDuplicates_UsesLocations(t *testing.T) {
	entries := parseAll(t, "run", "run")
	entries[0].Location = ast.Location{File: "a.lex", Line: 1}
	entries[1].Location = ast.Location{File: "a.lex", Line: 4}

	err := NewValidator().ValidateDuplicates(entries)
	if err == nil {
		t.Fatal("ValidateDuplicates() = nil, want an error")
	}
	if !strings.Contains(err.Error(), "a.lex:1, a.lex:4") {
		t.Errorf("Error() = %q, want both locations", err.Error())
	}
}

func TestCheckRoles(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
		input string
	}{
		{
			name:  "headword is sub-entry of another",
			lines: []string{"run|walk", "walk"},
			want:  1,
			input: "walk",
		},
		{
			name:  "normal and redirection",
			lines: []string{"run", "run>>walk"},
			want:  1,
			input: "run",
		},
		{
			name:  "sub-entry claimed twice",
			lines: []string{"run|stride", "walk|stride"},
			want:  1,
			input: "stride",
		},
		{
			name:  "self listing is allowed",
			lines: []string{"run|run,runner"},
			want:  0,
		},
		{
			name:  "repeated sub-entry under one headword",
			lines: []string{"run|runner,runner"},
			want:  0,
		},
		{
			name:  "redirect sub-entries are not roles",
			lines: []string{"run|>walk", "walk"},
			want:  0,
		},
		{
			name:  "redirection headword as sub-entry",
			lines: []string{"run|ran", "ran>>run"},
			want:  1,
			input: "ran",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewValidator().CheckRoles(parseAll(t, tt.lines...))
			if errs.Count() != tt.want {
				t.Fatalf("Count() = %d, want %d: %v", errs.Count(), tt.want, errs.Messages())
			}
			if tt.want == 0 {
				return
			}
			first := errs.First()
			if first.Type != nerrors.ErrorTypeRoleConflict {
				t.Errorf("Type = %s, want %s", first.Type, nerrors.ErrorTypeRoleConflict)
			}
			if first.Input != tt.input {
				t.Errorf("Input = %q, want %q", first.Input, tt.input)
			}
		})
	}
}

func TestCheckRoles_ChainNamesOwners(t *testing.T) {
	errs := NewValidator().CheckRoles(parseAll(t, "run|stride", "walk|stride", "pace|stride"))
	first := errs.First()
	if first == nil {
		t.Fatal("CheckRoles() found nothing")
	}
	if !slices.Equal(first.Chain, []string{"run", "walk", "pace"}) {
		t.Errorf("Chain = %q, want [run walk pace]", first.Chain)
	}
}

func TestCheckDependencies(t *testing.T) {
	entries := parseAll(t,
		"a|b",
		"b|c",
		"c|a",
		"d|e",
		"e",
	)

	errs := NewValidator().CheckDependencies(entries)
	if errs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1: %v", errs.Count(), errs.Messages())
	}
	cycle := errs.First()
	if cycle.Type != nerrors.ErrorTypeCircularDependency {
		t.Errorf("Type = %s, want %s", cycle.Type, nerrors.ErrorTypeCircularDependency)
	}
	if !slices.Equal(cycle.Chain, []string{"a", "b", "c", "a"}) {
		t.Errorf("Chain = %q, want [a b c a]", cycle.Chain)
	}
	if cycle.Message != "Circular dependency: a -> b -> c -> a" {
		t.Errorf("Message = %q", cycle.Message)
	}
}

func TestCheckDependencies_IgnoresSelfAndRedirects(t *testing.T) {
	entries := parseAll(t,
		"a|a,b",
		"b|>a",
		"c|x>a",
	)
	if errs := NewValidator().CheckDependencies(entries); errs.HasErrors() {
		t.Errorf("CheckDependencies() = %v, want none", errs.Messages())
	}
}

func TestCheckDependencies_TwoCycles(t *testing.T) {
	entries := parseAll(t, "a|b", "b|a", "c|d", "d|c")
	errs := NewValidator().CheckDependencies(entries)
	if errs.Count() != 2 {
		t.Errorf("Count() = %d, want 2: %v", errs.Count(), errs.Messages())
	}
}

func TestCheckRedirections(t *testing.T) {
	entries := parseAll(t,
		"A>>B",
		"B>>C",
		"C>>A",
		"x>>y",
		"y>>z",
	)

	errs := NewValidator().CheckRedirections(entries)
	if errs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1: %v", errs.Count(), errs.Messages())
	}
	cycle := errs.First()
	if cycle.Type != nerrors.ErrorTypeCircularRedirection {
		t.Errorf("Type = %s, want %s", cycle.Type, nerrors.ErrorTypeCircularRedirection)
	}
	if cycle.Message != "Circular redirection: A -> B -> C -> A" {
		t.Errorf("Message = %q, want %q", cycle.Message, "Circular redirection: A -> B -> C -> A")
	}
}

func TestCheckRedirections_SelfLoop(t *testing.T) {
	errs := NewValidator().CheckRedirections(parseAll(t, "a>>a"))
	if errs.Count() != 1 || !slices.Equal(errs.First().Chain, []string{"a", "a"}) {
		t.Errorf("CheckRedirections() = %v, want a -> a", errs.Messages())
	}
}

func TestCheckRedirections_TailIntoCycle(t *testing.T) {
	errs := NewValidator().CheckRedirections(parseAll(t, "t>>a", "a>>b", "b>>a"))
	if errs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1: %v", errs.Count(), errs.Messages())
	}
	if !slices.Equal(errs.First().Chain, []string{"a", "b", "a"}) {
		t.Errorf("Chain = %q, want [a b a]", errs.First().Chain)
	}
}

func TestValidate_Order(t *testing.T) {
	entries := parseAll(t, "run", "run", "a|b", "b|a")

	err := NewValidator().Validate(entries)
	if got := nerrors.KindOf(err); got != nerrors.ErrorTypeDuplicateHeadword {
		t.Errorf("Validate() kind = %s, want duplicates first", got)
	}

	all := NewValidator().ValidateAll(entries)
	if all.HasErrorType(nerrors.ErrorTypeCircularDependency) {
		t.Error("ValidateAll() should skip cycle passes while duplicates remain")
	}

	// A dependency cycle always implies a role conflict, so only
	// redirection cycles reach the cycle passes here.
	all = NewValidator().ValidateAll(parseAll(t, "run", "x>>y", "y>>x"))
	if all.Count() != 1 || !all.HasErrorType(nerrors.ErrorTypeCircularRedirection) {
		t.Errorf("ValidateAll() = %v, want one circular redirection", all.Messages())
	}

	all = NewValidator().ValidateAll(parseAll(t, "a|b", "b|a"))
	if !all.HasErrorType(nerrors.ErrorTypeRoleConflict) || all.HasErrorType(nerrors.ErrorTypeCircularDependency) {
		t.Errorf("ValidateAll() = %v, want role conflicts only", all.Messages())
	}
}

func TestValidateIndividualPasses(t *testing.T) {
	v := NewValidator()
	if err := v.ValidateRoles(parseAll(t, "run|walk", "walk")); err == nil {
		t.Error("ValidateRoles() = nil, want an error")
	}
	if err := v.ValidateDependencies(parseAll(t, "a|b", "b|a")); err == nil {
		t.Error("ValidateDependencies() = nil, want an error")
	}
	if err := v.ValidateRedirections(parseAll(t, "a>>b", "b>>a")); err == nil {
		t.Error("ValidateRedirections() = nil, want an error")
	}
}

func TestValidateAll_SelfListedSubEntry(t *testing.T) {
	errs := NewValidator().ValidateAll(parseAll(t, "run|run", "work|work out,work"))
	if errs.HasErrors() {
		t.Errorf("ValidateAll() = %v, want none", errs.Messages())
	}
}
