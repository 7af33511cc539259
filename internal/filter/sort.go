package filter

import (
	"cmp"
	"slices"

	"github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"
)

// sortStable orders items by key in the requested direction. Equal keys keep input order and
// SortOff leaves the slice untouched.
func sortStable[T any, K cmp.Ordered](items []T, dir domain.SortDirection, key func(T) K) {
	if dir != domain.SortAsc && dir != domain.SortDesc {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if dir == domain.SortDesc {
			return -c
		}
		return c
	})
}

func containsOrEmpty[T comparable](set []T, v T) bool {
	return len(set) == 0 || slices.Contains(set, v)
}
