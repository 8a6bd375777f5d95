package handler

import (
	"time"

	"github.com/tripvault/tripvault/internal/domain"
)

// TripDTO is the JSON representation of a trip.
type TripDTO struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
	Companions  []string `json:"companions"`
	Budget      *float64 `json:"budget,omitempty"`
	Notes       string   `json:"notes"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toTripDTO(t *domain.Trip) TripDTO {
	return TripDTO{
		ID:          t.ID,
		Owner:       t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Destination: t.Destination,
		StartDate:   t.StartDate.Format(time.RFC3339),
		EndDate:     t.EndDate.Format(time.RFC3339),
		Photos:      emptyIfNil(t.Photos),
		Tags:        emptyIfNil(t.Tags),
		Companions:  emptyIfNil(t.Companions),
		Budget:      t.Budget,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTripDTOs(trips []domain.Trip) []TripDTO {
	dtos := make([]TripDTO, len(trips))
	for i := range trips {
		dtos[i] = toTripDTO(&trips[i])
	}
	return dtos
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
