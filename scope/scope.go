// Package scope implements parsing and hierarchical matching of OAuth scope strings.
//
// Scopes are whitespace-delimited tokens. A token may be hierarchical, using "/"
// as a separator (e.g. "profile/email"). A granted token satisfies a requested
// token when the two are equal or when the granted token is an ancestor of the
// requested one ("profile" satisfies "profile/email", never the reverse).
package scope

import (
	"encoding/json"
	"errors"
	"strings"
)

const separator = "/"

// Set is an ordered, de-duplicated list of scope tokens.
type Set []string

// Parse normalizes whitespace-delimited scope strings into a Set.
// Blank tokens are dropped and the order of first appearance is kept.
func Parse(values ...string) Set {
	set := Set{}
	seen := make(map[string]struct{})
	for _, v := range values {
		for _, token := range strings.Fields(v) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			set = append(set, token)
		}
	}
	return set
}

// String returns the scopes joined by single spaces.
func (s Set) String() string {
	return strings.Join(s, " ")
}

// IsEmpty reports whether the set has no tokens.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Contains reports whether token is present verbatim.
func (s Set) Contains(token string) bool {
	for _, t := range s {
		if t == token {
			return true
		}
	}
	return false
}

// Satisfies reports whether s grants every scope in requested.
func (s Set) Satisfies(requested Set) bool {
	return Matches(s, requested)
}

// Matches reports whether every requested scope is satisfied by at least one
// granted scope. An empty requested set always matches.
func Matches(granted, requested Set) bool {
	for _, req := range requested {
		if !anyGrants(granted, req) {
			return false
		}
	}
	return true
}

// MatchesString is Matches over whitespace-delimited strings.
func MatchesString(granted, requested string) bool {
	return Matches(Parse(granted), Parse(requested))
}

func anyGrants(granted Set, requested string) bool {
	for _, g := range granted {
		if grants(g, requested) {
			return true
		}
	}
	return false
}

func grants(granted, requested string) bool {
	if granted == requested {
		return true
	}
	return strings.HasPrefix(requested, granted+separator)
}

// MarshalJSON encodes the set as a JSON array.
func (s Set) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts either a whitespace-delimited string or an array of strings.
func (s *Set) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Parse(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("scope must be a string or an array of strings")
	}
	*s = Parse(list...)
	return nil
}
