package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tripvault/tripvault/internal/domain"
)

// maxPhotos is the most photo URLs a trip can carry.
const maxPhotos = 5

// TripService enforces per-record ownership and performs trip CRUD.
type TripService struct {
	trips domain.TripRepository
}

// NewTripService creates a new TripService.
func NewTripService(trips domain.TripRepository) *TripService {
	return &TripService{trips: trips}
}

// CreateTripInput carries the fields for a new trip. Tags and Companions
// arrive as comma-separated text, as typed into the client forms.
type CreateTripInput struct {
	Title       string
	Description string
	Destination string
	StartDate   string
	EndDate     string
	Photos      []string
	Tags        string
	Companions  string
	Budget      *float64
	Notes       string
}

// UpdateTripInput carries a partial update. Empty strings on the required
// text/date fields keep the stored value; nil pointers on the optional
// fields keep the stored value, non-nil overwrite it. Tags and Companions,
// when present, replace the whole stored list. Photos are not updatable.
type UpdateTripInput struct {
	Title       string
	Description string
	Destination string
	StartDate   string
	EndDate     string
	Tags        *string
	Companions  *string
	Budget      *float64
	Notes       *string
}

// Create stores a new trip owned by ownerID.
func (s *TripService) Create(ctx context.Context, ownerID string, input CreateTripInput) (*domain.Trip, error) {
	if input.Title == "" || input.Description == "" || input.Destination == "" {
		return nil, fmt.Errorf("%w: title, description, and destination are required", domain.ErrInvalidInput)
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date: %v", domain.ErrInvalidInput, err)
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date: %v", domain.ErrInvalidInput, err)
	}

	if len(input.Photos) > maxPhotos {
		return nil, fmt.Errorf("%w: at most %d photos allowed", domain.ErrInvalidInput, maxPhotos)
	}
	if input.Budget != nil && *input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrInvalidInput)
	}

	trip := &domain.Trip{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Destination: input.Destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Photos:      input.Photos,
		Tags:        splitCSV(input.Tags),
		Companions:  splitCSV(input.Companions),
		Budget:      input.Budget,
		Notes:       input.Notes,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return trip, nil
}

// List returns all trips owned by ownerID, optionally narrowed by a
// case-insensitive substring search on title or destination and by a
// conjunctive comma-separated tag filter. Results are sorted by start date
// descending, ties broken by ID ascending.
func (s *TripService) List(ctx context.Context, ownerID, search, tagsCSV string) ([]domain.Trip, error) {
	filter := domain.TripFilter{
		Search: strings.TrimSpace(search),
		Tags:   splitCSV(tagsCSV),
	}
	trips, err := s.trips.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// GetByID returns a single trip. The existence check runs before the
// ownership check so that a missing trip and a foreign trip stay
// distinguishable (404 vs 401).
func (s *TripService) GetByID(ctx context.Context, ownerID, tripID string) (*domain.Trip, error) {
	trip, err := s.fetchOwned(ctx, ownerID, tripID)
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Update applies a partial update to an owned trip and returns the stored
// result.
func (s *TripService) Update(ctx context.Context, ownerID, tripID string, input UpdateTripInput) (*domain.Trip, error) {
	trip, err := s.fetchOwned(ctx, ownerID, tripID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		trip.Title = input.Title
	}
	if input.Description != "" {
		trip.Description = input.Description
	}
	if input.Destination != "" {
		trip.Destination = input.Destination
	}
	if input.StartDate != "" {
		startDate, err := parseDate(input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start date: %v", domain.ErrInvalidInput, err)
		}
		trip.StartDate = startDate
	}
	if input.EndDate != "" {
		endDate, err := parseDate(input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end date: %v", domain.ErrInvalidInput, err)
		}
		trip.EndDate = endDate
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			return nil, fmt.Errorf("%w: budget must not be negative", domain.ErrInvalidInput)
		}
		trip.Budget = input.Budget
	}
	if input.Notes != nil {
		trip.Notes = *input.Notes
	}
	if input.Tags != nil {
		trip.Tags = splitCSV(*input.Tags)
	}
	if input.Companions != nil {
		trip.Companions = splitCSV(*input.Companions)
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return trip, nil
}

// Delete removes an owned trip.
func (s *TripService) Delete(ctx context.Context, ownerID, tripID string) error {
	if _, err := s.fetchOwned(ctx, ownerID, tripID); err != nil {
		return err
	}
	return s.trips.Delete(ctx, tripID)
}

// fetchOwned loads a trip by ID and verifies ownership: malformed ID →
// ErrInvalidID, missing → ErrNotFound, foreign owner → ErrForbidden.
func (s *TripService) fetchOwned(ctx context.Context, ownerID, tripID string) (*domain.Trip, error) {
	if _, err := uuid.Parse(tripID); err != nil {
		return nil, fmt.Errorf("%w: trip id", domain.ErrInvalidID)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return trip, nil
}

// splitCSV splits comma-separated text into trimmed items, dropping empties.
func splitCSV(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// parseDate accepts the client's plain date form values as well as full
// RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
