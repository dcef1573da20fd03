// Package store holds the persistence layer: one generic CRUD contract over
// integer-keyed records and two interchangeable engines behind it, a
// transient in-memory one and a durable file-backed one. Both engines must
// behave identically; store_test.go runs the same contract suite against
// each.
package store

// Record is anything the store can persist. WithKey returns a copy of the
// record carrying the given id; records are treated as immutable values.
type Record[T any] interface {
	Key() int
	WithKey(id int) T
}

// Store is the CRUD contract shared by both engines.
//
// Every miss is reported as an error wrapping apperr.ErrNotFound; the store
// never returns a zero value to mean "absent".
type Store[T Record[T]] interface {
	// Create inserts the item. A zero key means "assign the next unique
	// id"; ids grow monotonically and are never reused, even after
	// deletes. A non-zero key that is already present fails with
	// apperr.ErrAlreadyExists.
	Create(item T) (T, error)

	// Get returns the item with the given id.
	Get(id int) (T, error)

	// First returns the first item matching pred in insertion order.
	First(pred func(T) bool) (T, error)

	// List returns all items matching pred in insertion order. A nil pred
	// matches everything.
	List(pred func(T) bool) ([]T, error)

	// Update replaces the whole record with the matching id.
	Update(item T) error

	// Delete removes the item with the given id.
	Delete(id int) error

	// DeleteAll clears the store. It always succeeds.
	DeleteAll() error
}

// startID is the first id each kind hands out. Ids only ever count up from
// here.
const startID = 1000
