package domain

import (
	"context"
	"time"
)

// Trip is a user-owned journal record of one journey. OwnerID is set once
// at creation; every read, update, and delete compares it against the
// acting user.
type Trip struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Photos      []string
	Tags        []string
	Companions  []string
	Budget      *float64
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TripFilter narrows a ListByOwner query. Search is a case-insensitive
// substring match on title or destination. Tags is conjunctive: a trip
// matches only if its tag set contains every requested tag.
type TripFilter struct {
	Search string
	Tags   []string
}

// TripRepository defines persistence operations for trips. ListByOwner
// returns trips sorted by start date descending, ties broken by ID
// ascending.
type TripRepository interface {
	Create(ctx context.Context, trip *Trip) error
	GetByID(ctx context.Context, id string) (*Trip, error)
	ListByOwner(ctx context.Context, ownerID string, filter TripFilter) ([]Trip, error)
	Update(ctx context.Context, trip *Trip) error
	Delete(ctx context.Context, id string) error
}
