// Package flags extracts beach-safety flag phrases from page text and
// normalizes them to canonical codes.
package flags

import "strings"

// Canonical flag codes.
const (
	Green     = "green"
	Yellow    = "yellow"
	Purple    = "purple"
	SingleRed = "single_red"
	DoubleRed = "double_red"
)

// Alias maps a set of exact phrases to one canonical code.
type Alias struct {
	Canonical string
	Phrases   []string
}

// SubstringRule maps any phrase containing all of its words to a canonical
// code.
type SubstringRule struct {
	Canonical string
	Words     []string
}

// Rules is a normalization table: exact aliases are consulted first, then
// the substring rules in order. Injected into callers so tests can swap the
// table without touching the components.
type Rules struct {
	Aliases    []Alias
	Substrings []SubstringRule
}

// DefaultRules returns the table for Panama City Beach flag phrasing. An
// unqualified "red" maps to single_red, the common phrasing outside
// full-closure days.
func DefaultRules() Rules {
	return Rules{
		Aliases: []Alias{
			{Canonical: Green, Phrases: []string{"green", "green flag"}},
			{Canonical: Yellow, Phrases: []string{"yellow", "yellow flag"}},
			{Canonical: Purple, Phrases: []string{"purple", "purple flag"}},
			{Canonical: SingleRed, Phrases: []string{"single red", "single red flag", "red flag"}},
			{Canonical: DoubleRed, Phrases: []string{"double red", "double red flag"}},
		},
		Substrings: []SubstringRule{
			{Canonical: DoubleRed, Words: []string{"double", "red"}},
			{Canonical: SingleRed, Words: []string{"single", "red"}},
			{Canonical: SingleRed, Words: []string{"red"}},
			{Canonical: Yellow, Words: []string{"yellow"}},
			{Canonical: Green, Words: []string{"green"}},
			{Canonical: Purple, Words: []string{"purple"}},
		},
	}
}

// Normalize maps a raw phrase to a canonical code, or "" when neither an
// alias nor a substring rule applies. Total over any input; canonical codes
// normalize to themselves.
func (r Rules) Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range r.Aliases {
		for _, p := range a.Phrases {
			if s == p {
				return a.Canonical
			}
		}
	}
	for _, rule := range r.Substrings {
		if containsAll(s, rule.Words) {
			return rule.Canonical
		}
	}
	return ""
}

func containsAll(s string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}
