// Package rules defines the pull request description rule set and its
// evaluation engine. Rules are registered once at startup and never mutated.
package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRule indicates an exclusion referenced a rule name that is not
// in the set.
var ErrUnknownRule = errors.New("unknown rule")

// Quantifier decides how the per-line predicate results of a rule are
// reduced into a pass/fail verdict.
type Quantifier int

const (
	// Any passes when at least one line satisfies the predicate.
	Any Quantifier = iota
	// All passes only when every line satisfies the predicate.
	All
)

// String returns the quantifier name.
func (q Quantifier) String() string {
	switch q {
	case Any:
		return "any"
	case All:
		return "all"
	default:
		return fmt.Sprintf("quantifier(%d)", int(q))
	}
}

// reduce applies the quantifier to a sequence of predicate results.
func (q Quantifier) reduce(results []bool) bool {
	switch q {
	case Any:
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	case All:
		for _, r := range results {
			if !r {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Rule is a named predicate over description lines. Description is the
// human-readable violation text reported when the rule fails.
type Rule struct {
	Name        string
	Description string
	Quantifier  Quantifier
	Predicate   func(line string) bool
}

// Validate applies the rule's predicate to every line and reduces the
// results with the rule's quantifier. It returns the rule description and
// true when the rule is violated.
func (r Rule) Validate(lines []string) (string, bool) {
	results := make([]bool, len(lines))
	for i, line := range lines {
		results[i] = r.Predicate(line)
	}
	if r.Quantifier.reduce(results) {
		return "", false
	}
	return r.Description, true
}

// Result is the outcome of qualifying a description against a rule set.
// OK is true iff Violations is empty.
type Result struct {
	OK         bool
	Violations []string
}

// Set is an ordered, name-keyed rule registry. Evaluation order is
// registration order.
type Set struct {
	names []string
	rules map[string]Rule
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{rules: make(map[string]Rule)}
}

// Register adds a rule to the set. Registering a duplicate name returns an
// error; rule names are unique within a set.
func (s *Set) Register(r Rule) error {
	if _, ok := s.rules[r.Name]; ok {
		return fmt.Errorf("rule %q already registered", r.Name)
	}
	s.names = append(s.names, r.Name)
	s.rules[r.Name] = r
	return nil
}

// Names returns the rule names in registration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Get retrieves a rule by name.
func (s *Set) Get(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Qualify splits the description into lines and evaluates every rule not
// named in exclude, collecting violations in registration order.
//
// An exclusion naming a rule absent from the set is a configuration error,
// not a silent no-op.
func (s *Set) Qualify(description string, exclude []string) (Result, error) {
	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		if _, ok := s.rules[name]; !ok {
			return Result{}, fmt.Errorf("exclude rule %q: %w", name, ErrUnknownRule)
		}
		excluded[name] = struct{}{}
	}

	lines := strings.Split(description, "\n")

	var violations []string
	for _, name := range s.names {
		if _, skip := excluded[name]; skip {
			continue
		}
		if desc, violated := s.rules[name].Validate(lines); violated {
			violations = append(violations, desc)
		}
	}

	return Result{OK: len(violations) == 0, Violations: violations}, nil
}

// DefaultSet returns the standard rule registry applied to pull request
// descriptions:
//
//   - story: at least one line carries a "story: " tracker link
//   - todo: no line contains an unchecked "- [ ]" item
func DefaultSet() *Set {
	s := NewSet()
	// Registration cannot fail here; the names are distinct literals.
	_ = s.Register(Rule{
		Name:        "story",
		Description: "should have story link",
		Quantifier:  Any,
		Predicate: func(line string) bool {
			return strings.Contains(line, "story: ")
		},
	})
	_ = s.Register(Rule{
		Name:        "todo",
		Description: "all todos should be done",
		Quantifier:  All,
		Predicate: func(line string) bool {
			return !strings.Contains(line, "- [ ]")
		},
	})
	return s
}
