// Package projection provides pull-based, predicate-filtered read views over a backing collection.
package projection

import (
	"fmt"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// Predicate selects the entries a view exposes.
type Predicate[T any] func(T) bool

// All accepts every entry.
func All[T any](T) bool { return true }

// View re-reads its source on every access, so it always reflects the backing collection's
// current contents under the installed predicate.
type View[T any] struct {
	source    func() []T
	predicate Predicate[T]
}

// NewView builds a view showing everything the source returns.
func NewView[T any](source func() []T) *View[T] {
	return &View[T]{source: source, predicate: All[T]}
}

// SetPredicate installs a new filter; nil resets to showing all entries.
func (v *View[T]) SetPredicate(predicate Predicate[T]) {
	if predicate == nil {
		predicate = All[T]
	}
	v.predicate = predicate
}

// Items returns the entries currently matching the predicate, in source order.
func (v *View[T]) Items() []T {
	var out []T
	for _, item := range v.source() {
		if v.predicate(item) {
			out = append(out, item)
		}
	}
	return out
}

// Len counts the entries currently visible.
func (v *View[T]) Len() int { return len(v.Items()) }

// Get returns the i-th visible entry.
func (v *View[T]) Get(i int) (T, error) {
	items := v.Items()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0, %d)", domainerrors.ErrIndexOutOfRange, i, len(items))
	}
	return items[i], nil
}
