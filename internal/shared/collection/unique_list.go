// Package collection provides the unique-by-identity list backing the person and product collections.
package collection

import (
	"fmt"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// UniqueList keeps entries in insertion order and rejects identity collisions.
// It is not safe for concurrent use.
type UniqueList[T any] struct {
	items       []T
	same        func(a, b T) bool
	errDup      error
	errNotFound error
}

// NewUniqueList builds an empty list using same as the identity predicate. errDuplicate and
// errNotFound are returned on collisions and misses so each entity type surfaces its own sentinel.
func NewUniqueList[T any](same func(a, b T) bool, errDuplicate, errNotFound error) *UniqueList[T] {
	if errDuplicate == nil {
		errDuplicate = domainerrors.ErrDuplicateEntity
	}
	if errNotFound == nil {
		errNotFound = domainerrors.ErrEntityNotFound
	}
	return &UniqueList[T]{same: same, errDup: errDuplicate, errNotFound: errNotFound}
}

// Len returns the number of entries.
func (l *UniqueList[T]) Len() int { return len(l.items) }

// IndexOf returns the position of the first entry with the same identity, or -1.
func (l *UniqueList[T]) IndexOf(item T) int {
	for i, existing := range l.items {
		if l.same(existing, item) {
			return i
		}
	}
	return -1
}

// Contains reports whether an entry with the same identity is present.
func (l *UniqueList[T]) Contains(item T) bool {
	return l.IndexOf(item) >= 0
}

// Add appends item unless its identity is already taken.
func (l *UniqueList[T]) Add(item T) error {
	if l.Contains(item) {
		return l.errDup
	}
	l.items = append(l.items, item)
	return nil
}

// Delete removes the entry with item's identity.
func (l *UniqueList[T]) Delete(item T) error {
	idx := l.IndexOf(item)
	if idx < 0 {
		return l.errNotFound
	}
	l.items = append(l.items[:idx:idx], l.items[idx+1:]...)
	return nil
}

// Get returns the entry at position i in insertion order.
func (l *UniqueList[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, fmt.Errorf("%w: %d not in [0, %d)", domainerrors.ErrIndexOutOfRange, i, len(l.items))
	}
	return l.items[i], nil
}

// Edit replaces target with replacement in place. Replacing an entry with one of the same
// identity is always allowed; colliding with a different entry is not.
func (l *UniqueList[T]) Edit(target, replacement T) error {
	idx := l.IndexOf(target)
	if idx < 0 {
		return l.errNotFound
	}
	if !l.same(target, replacement) && l.Contains(replacement) {
		return l.errDup
	}
	l.items[idx] = replacement
	return nil
}

// ReplaceAll swaps the whole contents, rejecting input that holds two entries of the same identity.
func (l *UniqueList[T]) ReplaceAll(items []T) error {
	for i := 0; i < len(items)-1; i++ {
		for j := i + 1; j < len(items); j++ {
			if l.same(items[i], items[j]) {
				return l.errDup
			}
		}
	}
	l.items = append([]T(nil), items...)
	return nil
}

// Find returns the first entry matching pred.
func (l *UniqueList[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range l.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the entries in insertion order.
func (l *UniqueList[T]) Items() []T {
	return append([]T(nil), l.items...)
}
