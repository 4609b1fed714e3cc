// Package optimistic keeps list screens responsive: local state changes
// before server confirmation, reconciled or rolled back on response.
package optimistic

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// tempPrefix namespaces locally minted ids so they can never collide with
// server-assigned ones.
const tempPrefix = "temp-"

// NewTempID mints a placeholder id for a staged create.
func NewTempID() string {
	return tempPrefix + uuid.NewString()
}

func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempPrefix)
}

// List is an ordered, newest-first mirror of a server-side collection. The
// id func extracts the identifier from a record; records staged locally must
// carry a NewTempID value there.
type List[T any] struct {
	id    func(T) string
	items []T
}

func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// Reset replaces local state with a server reload. Used at load time and as
// delete-failure reconciliation.
func (l *List[T]) Reset(items []T) {
	l.items = append([]T(nil), items...)
}

// Items returns the current ordered view.
func (l *List[T]) Items() []T {
	return l.items
}

func (l *List[T]) Len() int { return len(l.items) }

func (l *List[T]) Get(id string) (T, bool) {
	for i := range l.items {
		if l.id(l.items[i]) == id {
			return l.items[i], true
		}
	}
	var zero T
	return zero, false
}

// StageCreate prepends a placeholder record ahead of the create request.
// The record must carry a temp id.
func (l *List[T]) StageCreate(item T) error {
	if !IsTempID(l.id(item)) {
		return fmt.Errorf("staged record id %q is not a temp id", l.id(item))
	}
	l.items = append([]T{item}, l.items...)
	return nil
}

// CommitCreate swaps the placeholder for the server-returned record: the
// temp record is removed and the real one inserted at head. Any stale record
// already carrying the server id is dropped so no two records ever share a
// resolved id.
func (l *List[T]) CommitCreate(tempID string, server T) {
	serverID := l.id(server)
	kept := l.items[:0]
	for i := range l.items {
		id := l.id(l.items[i])
		if id == tempID || id == serverID {
			continue
		}
		kept = append(kept, l.items[i])
	}
	l.items = append([]T{server}, kept...)
}

// RollbackCreate drops the placeholder after a failed create, restoring the
// list to its prior order.
func (l *List[T]) RollbackCreate(tempID string) {
	l.Remove(tempID)
}

// Replace substitutes the record with the given id in place. Updates carry
// no placeholder; failures leave prior state untouched.
func (l *List[T]) Replace(id string, item T) bool {
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes by id, returning whether anything was removed.
func (l *List[T]) Remove(id string) bool {
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}
