package mongo_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/tripvault/tripvault/internal/domain"
	"github.com/tripvault/tripvault/internal/repository/mongo"
)

// Verify that *mongo.Store implements domain.Store at compile time.
var _ domain.Store = (*mongo.Store)(nil)

// newTestStore connects to the MongoDB given by MONGODB_TEST_URI, or skips
// the test when no instance is available.
func newTestStore(t *testing.T) *mongo.Store {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set; skipping MongoDB integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("tripvault_test_%d", time.Now().UnixNano())
	store, err := mongo.New(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{Name: "First", Email: "dup@example.com", PasswordHash: "hash"}
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &domain.User{Name: "Second", Email: "dup@example.com", PasswordHash: "hash"}
	if err := store.Users().Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestTripRepository_ListByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := &domain.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "hash"}
	if err := store.Users().Create(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	beach := &domain.Trip{
		OwnerID:     owner.ID,
		Title:       "Beach Week",
		Description: "d",
		Destination: "Lisbon",
		StartDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"beach", "surf"},
	}
	city := &domain.Trip{
		OwnerID:     owner.ID,
		Title:       "Museum Marathon",
		Description: "d",
		Destination: "Vienna",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"city"},
	}
	for _, trip := range []*domain.Trip{beach, city} {
		if err := store.Trips().Create(ctx, trip); err != nil {
			t.Fatalf("create trip: %v", err)
		}
	}

	t.Run("sorted by start date descending", func(t *testing.T) {
		got, err := store.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 2 || got[0].Title != "Beach Week" {
			t.Fatalf("unexpected order %v", got)
		}
	})

	t.Run("regex search is case-insensitive", func(t *testing.T) {
		got, err := store.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{Search: "vIeNnA"})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 1 || got[0].Destination != "Vienna" {
			t.Fatalf("expected the Vienna trip, got %v", got)
		}
	})

	t.Run("$all tag filter is conjunctive", func(t *testing.T) {
		got, err := store.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{Tags: []string{"beach", "surf"}})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Beach Week" {
			t.Fatalf("expected only the fully tagged trip, got %v", got)
		}
	})
}
