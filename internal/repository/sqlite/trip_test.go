package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tripvault/tripvault/internal/domain"
	"github.com/tripvault/tripvault/internal/repository/sqlite"
)

func newTrip(ownerID, title string, start time.Time) *domain.Trip {
	return &domain.Trip{
		OwnerID:     ownerID,
		Title:       title,
		Description: "A repository test trip.",
		Destination: "Porto",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
		Photos:      []string{"https://example.com/porto.jpg"},
		Tags:        []string{"wine", "coast"},
		Companions:  []string{"Jo"},
		Notes:       "Riverside hotel.",
	}
}

func createTrip(t *testing.T, db *sqlite.DB, trip *domain.Trip) *domain.Trip {
	t.Helper()
	if err := db.Trips().Create(context.Background(), trip); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func TestTripRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "tripowner@example.com")

	budget := 640.50
	trip := newTrip(owner.ID, "Douro Valley", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	trip.Budget = &budget
	createTrip(t, db, trip)

	got, err := db.Trips().GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if got.Title != "Douro Valley" || got.OwnerID != owner.ID {
		t.Fatalf("unexpected trip %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "wine" {
		t.Fatalf("JSON tag column must round-trip, got %v", got.Tags)
	}
	if len(got.Photos) != 1 || len(got.Companions) != 1 {
		t.Fatalf("JSON list columns must round-trip, got photos=%v companions=%v", got.Photos, got.Companions)
	}
	if got.Budget == nil || *got.Budget != 640.50 {
		t.Fatalf("expected budget 640.50, got %v", got.Budget)
	}
	if !got.StartDate.Equal(trip.StartDate) {
		t.Fatalf("expected start date %v, got %v", trip.StartDate, got.StartDate)
	}
}

func TestTripRepository_NullBudget(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "nullbudget@example.com")

	trip := createTrip(t, db, newTrip(owner.ID, "No Budget", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))

	got, err := db.Trips().GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Budget != nil {
		t.Fatalf("expected nil budget, got %v", got.Budget)
	}
}

func TestTripRepository_ListByOwner_FilterAndSort(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "listowner@example.com")
	other := createUser(t, db, "otherowner@example.com")

	early := newTrip(owner.ID, "Early Trip", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	late := newTrip(owner.ID, "Late Trip", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	late.Destination = "Kyoto"
	late.Tags = []string{"asia"}
	foreign := newTrip(other.ID, "Foreign Trip", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))

	for _, trip := range []*domain.Trip{early, late, foreign} {
		createTrip(t, db, trip)
	}

	t.Run("owner scope and sort order", func(t *testing.T) {
		got, err := db.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 trips, got %d", len(got))
		}
		if got[0].Title != "Late Trip" || got[1].Title != "Early Trip" {
			t.Fatalf("expected start-date descending, got %s then %s", got[0].Title, got[1].Title)
		}
	})

	t.Run("search on destination", func(t *testing.T) {
		got, err := db.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{Search: "KYOTO"})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Late Trip" {
			t.Fatalf("expected the Kyoto trip, got %v", got)
		}
	})

	t.Run("conjunctive tags", func(t *testing.T) {
		got, err := db.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{Tags: []string{"wine", "coast"}})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Early Trip" {
			t.Fatalf("expected only the fully tagged trip, got %v", got)
		}

		got, err = db.Trips().ListByOwner(ctx, owner.ID, domain.TripFilter{Tags: []string{"wine", "asia"}})
		if err != nil {
			t.Fatalf("ListByOwner: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("no trip carries both wine and asia, got %v", got)
		}
	})
}

func TestTripRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "mutowner@example.com")

	trip := createTrip(t, db, newTrip(owner.ID, "Mutable", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))

	trip.Title = "Renamed"
	trip.Tags = []string{"renamed"}
	if err := db.Trips().Update(ctx, trip); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Trips().GetByID(ctx, trip.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Renamed" || len(got.Tags) != 1 || got.Tags[0] != "renamed" {
		t.Fatalf("update did not persist, got %+v", got)
	}

	if err := db.Trips().Delete(ctx, trip.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Trips().GetByID(ctx, trip.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTripRepository_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	missing := &domain.Trip{
		ID:          "00000000-0000-0000-0000-000000000000",
		OwnerID:     "whoever",
		Title:       "Ghost",
		Description: "d",
		Destination: "d",
		StartDate:   time.Now(),
		EndDate:     time.Now(),
	}
	if err := db.Trips().Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := db.Trips().Delete(ctx, missing.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
