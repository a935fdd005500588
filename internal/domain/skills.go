package domain

import (
	"slices"
	"strings"
)

// Skills is a canonical (trimmed, lower-cased, sorted, unique) set of skill names.
type Skills struct {
	names []string
}

func NewSkills(names ...string) Skills {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return Skills{names: slices.Compact(out)}
}

func (s Skills) Has(name string) bool {
	_, ok := slices.BinarySearch(s.names, strings.ToLower(strings.TrimSpace(name)))
	return ok
}

// ContainsAll reports whether every skill in required is present in s.
func (s Skills) ContainsAll(required Skills) bool {
	for _, n := range required.names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

func (s Skills) Equal(other Skills) bool { return slices.Equal(s.names, other.names) }

func (s Skills) Values() []string { return slices.Clone(s.names) }

func (s Skills) Len() int { return len(s.names) }

func (s Skills) String() string { return strings.Join(s.names, ",") }
