package resolve

import (
	"iter"
	"strings"
)

type Named interface {
	DisplayName() string
}

type Expander interface {
	Expand(acronym string) (string, bool)
}

// Strategy finds a unit for an already normalized query
type Strategy[T Named] func(units iter.Seq[T], query string) (T, bool)

// Strategies in precedence order
func Strategies[T Named]() []Strategy[T] {
	return []Strategy[T]{
		ExactMatch[T],
		SubstringScan[T],
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ExpandAcronym substitutes the canonical name for a known acronym. The substitution
// happens at most once.
func ExpandAcronym(acronyms Expander, query string) string {
	if acronyms == nil {
		return query
	}
	name, ok := acronyms.Expand(query)
	if !ok {
		return query
	}
	return strings.ToLower(name)
}

func ExactMatch[T Named](units iter.Seq[T], query string) (T, bool) {
	for unit := range units {
		if strings.ToLower(unit.DisplayName()) == query {
			return unit, true
		}
	}
	var zero T
	return zero, false
}

// SubstringScan returns the first unit, in iteration order, whose name contains the query
func SubstringScan[T Named](units iter.Seq[T], query string) (T, bool) {
	for unit := range units {
		if strings.Contains(strings.ToLower(unit.DisplayName()), query) {
			return unit, true
		}
	}
	var zero T
	return zero, false
}

// Resolve maps a free-form name, acronym or name fragment onto a unit.
// An empty query never matches.
func Resolve[T Named](units iter.Seq[T], acronyms Expander, query string) (T, bool) {
	query = normalize(query)
	if query == "" {
		var zero T
		return zero, false
	}

	query = ExpandAcronym(acronyms, query)

	for _, strategy := range Strategies[T]() {
		if unit, ok := strategy(units, query); ok {
			return unit, true
		}
	}

	var zero T
	return zero, false
}
