package reference

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrStale = errors.New("reference data is stale")

// FetchError is returned when a refresh could not fetch every collection.
// Nothing from the failed refresh is installed.
type FetchError struct {
	Kinds []Kind
	// Set when a previously installed snapshot is still being served
	Stale bool
	Err   error
}

func (e *FetchError) Error() string {
	kinds := make([]string, len(e.Kinds))
	for i, kind := range e.Kinds {
		kinds[i] = kind.String()
	}

	msg := fmt.Sprintf("failed to fetch reference data (%s): %v", strings.Join(kinds, ", "), e.Err)
	if e.Stale {
		return fmt.Sprintf("%s: %s", ErrStale.Error(), msg)
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Stale {
		return []error{ErrStale, e.Err}
	}
	return []error{e.Err}
}

func (e *FetchError) Failed(kind Kind) bool {
	return slices.Contains(e.Kinds, kind)
}

func (e *FetchError) asStale() *FetchError {
	return &FetchError{
		Kinds: slices.Clone(e.Kinds),
		Stale: true,
		Err:   e.Err,
	}
}
