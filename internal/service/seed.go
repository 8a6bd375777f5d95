package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripvault/tripvault/internal/domain"
)

// sampleTrips returns the two example trips inserted for every new account
// so the first dashboard view is not empty.
func sampleTrips(ownerID string) []domain.Trip {
	return []domain.Trip{
		{
			OwnerID:     ownerID,
			Title:       "Welcome: Explore Kyoto",
			Destination: "Kyoto, Japan",
			Description: "This is a sample trip. You can see details, edit it, or click the delete button.",
			StartDate:   time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
			Photos:      []string{"https://d3e1m60ptf1oym.cloudfront.net/d7de27b3-c9fe-4f1b-a9f3-ca88750115f5/M28265-FR-01_uxga.jpg"},
			Tags:        []string{"sample", "asia", "photography"},
			Companions:  []string{},
		},
		{
			OwnerID:     ownerID,
			Title:       "Sample: Amalfi Coast",
			Destination: "Amalfi, Italy",
			Description: `Click the "+ Add New Trip" button in the header to create your own travel diary entries.`,
			StartDate:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
			Photos:      []string{"https://placehold.co/400x250/a7c7e7/000080?text=Amalfi+Coast"},
			Tags:        []string{"sample", "beach", "food"},
			Companions:  []string{},
		},
	}
}

// seedSampleTrips inserts the sample trips for a freshly registered user.
// Failures must not fail the registration itself, so they are logged and
// swallowed.
func (s *AuthService) seedSampleTrips(ctx context.Context, ownerID string) {
	for _, trip := range sampleTrips(ownerID) {
		if err := s.trips.Create(ctx, &trip); err != nil {
			slog.Warn("seed sample trip", "owner", ownerID, "title", trip.Title, "error", err)
			return
		}
	}
}
