package rules

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestQualify(t *testing.T) {
	tests := []struct {
		name           string
		description    string
		exclude        []string
		wantOK         bool
		wantViolations []string
	}{
		{
			name:        "story link present and no open todos",
			description: "story: https://pivotaltracker.com/story/show/42\nAll done",
			wantOK:      true,
		},
		{
			name:           "missing story link",
			description:    "Just a description\nwith two lines",
			wantOK:         false,
			wantViolations: []string{"should have story link"},
		},
		{
			name:           "open todo item",
			description:    "story: https://pivotaltracker.com/story/show/42\n- [ ] finish this",
			wantOK:         false,
			wantViolations: []string{"all todos should be done"},
		},
		{
			name:        "both rules violated in registry order",
			description: "No link here\n- [ ] todo item",
			wantOK:      false,
			wantViolations: []string{
				"should have story link",
				"all todos should be done",
			},
		},
		{
			name:        "checked todos pass",
			description: "story: https://pivotaltracker.com/story/show/42\n- [x] done item",
			wantOK:      true,
		},
		{
			name:           "empty description",
			description:    "",
			wantOK:         false,
			wantViolations: []string{"should have story link"},
		},
		{
			name:           "excluding story suppresses its violation",
			description:    "No link here",
			exclude:        []string{"story"},
			wantOK:         true,
			wantViolations: nil,
		},
		{
			name:        "excluding all rules trivially passes",
			description: "- [ ] todo item",
			exclude:     []string{"story", "todo"},
			wantOK:      true,
		},
	}

	set := DefaultSet()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := set.Qualify(tt.description, tt.exclude)
			if err != nil {
				t.Fatalf("Qualify() error = %v", err)
			}
			if result.OK != tt.wantOK {
				t.Errorf("Qualify() OK = %t, want %t", result.OK, tt.wantOK)
			}
			if !reflect.DeepEqual(result.Violations, tt.wantViolations) {
				t.Errorf("Qualify() violations = %v, want %v", result.Violations, tt.wantViolations)
			}
		})
	}
}

func TestQualifyUnknownExclusion(t *testing.T) {
	set := DefaultSet()

	_, err := set.Qualify("whatever", []string{"nonsense"})
	if !errors.Is(err, ErrUnknownRule) {
		t.Errorf("Qualify() error = %v, want ErrUnknownRule", err)
	}
}

func TestQualifyIdempotent(t *testing.T) {
	set := DefaultSet()
	description := "No link\n- [ ] open item"

	first, err := set.Qualify(description, nil)
	if err != nil {
		t.Fatalf("Qualify() error = %v", err)
	}
	second, err := set.Qualify(description, nil)
	if err != nil {
		t.Fatalf("Qualify() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Qualify() not idempotent: %v vs %v", first, second)
	}
}

func TestRuleValidateQuantifiers(t *testing.T) {
	anyRule := Rule{
		Name:        "any",
		Description: "at least one line has x",
		Quantifier:  Any,
		Predicate:   func(line string) bool { return strings.Contains(line, "x") },
	}
	allRule := Rule{
		Name:        "all",
		Description: "every line has x",
		Quantifier:  All,
		Predicate:   func(line string) bool { return strings.Contains(line, "x") },
	}

	tests := []struct {
		name         string
		rule         Rule
		lines        []string
		wantViolated bool
	}{
		{"any satisfied by one line", anyRule, []string{"a", "bx", "c"}, false},
		{"any violated when no line matches", anyRule, []string{"a", "b"}, true},
		{"all satisfied by every line", allRule, []string{"x", "xx"}, false},
		{"all violated by one line", allRule, []string{"x", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, violated := tt.rule.Validate(tt.lines)
			if violated != tt.wantViolated {
				t.Errorf("Validate() violated = %t, want %t", violated, tt.wantViolated)
			}
			if violated && desc != tt.rule.Description {
				t.Errorf("Validate() description = %q, want %q", desc, tt.rule.Description)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	set := NewSet()
	rule := Rule{Name: "dup", Description: "d", Quantifier: Any, Predicate: func(string) bool { return true }}

	if err := set.Register(rule); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := set.Register(rule); err == nil {
		t.Error("Register() expected error for duplicate name")
	}
}

func TestDefaultSetOrder(t *testing.T) {
	got := DefaultSet().Names()
	want := []string{"story", "todo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
