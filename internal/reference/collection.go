package reference

import "iter"

type Kind int

const (
	Characters Kind = iota
	Ships
	Abilities
	Gear
)

var allKinds = []Kind{Characters, Ships, Abilities, Gear}

func (k Kind) String() string {
	switch k {
	case Characters:
		return "characters"
	case Ships:
		return "ships"
	case Abilities:
		return "abilities"
	case Gear:
		return "gear"
	default:
		return "unknown"
	}
}

// Collection is an immutable id -> record mapping that remembers the order the
// records were fetched in.
type Collection[T any] struct {
	order []string
	byID  map[string]T
}

// NOTE: A repeated id replaces the earlier record but keeps the earlier position
func NewCollection[T any](records []T, idOf func(T) string) Collection[T] {
	order := make([]string, 0, len(records))
	byID := make(map[string]T, len(records))
	for _, record := range records {
		id := idOf(record)
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = record
	}
	return Collection[T]{
		order: order,
		byID:  byID,
	}
}

func (c Collection[T]) Get(id string) (T, bool) {
	record, ok := c.byID[id]
	return record, ok
}

func (c Collection[T]) Len() int {
	return len(c.order)
}

// All yields the records in fetch order
func (c Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, id := range c.order {
			if !yield(c.byID[id]) {
				return
			}
		}
	}
}
