package domain

import "context"

// Store is the backing database. Each implementation (SQLite, MongoDB)
// owns its own migration strategy, keeping the entire backend swappable
// through configuration.
type Store interface {
	Users() UserRepository
	Trips() TripRepository
	Files() FileStore
	Migrate(ctx context.Context) error
	Close() error
}
