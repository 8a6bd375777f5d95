package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tripvault/tripvault/internal/domain"
	"github.com/tripvault/tripvault/internal/service"
)

// TripHandler handles trip CRUD requests. Every route requires an
// authenticated user; ownership is enforced by the service.
type TripHandler struct {
	trips *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Photos      []string `json:"photos"`
	Tags        string   `json:"tags"`
	Companions  string   `json:"companions"`
	Budget      *float64 `json:"budget"`
	Notes       string   `json:"notes"`
}

type updateTripRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Tags        *string  `json:"tags"`
	Companions  *string  `json:"companions"`
	Budget      *float64 `json:"budget"`
	Notes       *string  `json:"notes"`
}

// HandleCreate stores a new trip for the authenticated user.
// POST /api/trips
func (h *TripHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createTripRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip, err := h.trips.Create(r.Context(), user.ID, service.CreateTripInput{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Photos:      req.Photos,
		Tags:        req.Tags,
		Companions:  req.Companions,
		Budget:      req.Budget,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeTripError(w, "create trip", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripDTO(trip))
}

// HandleList returns the authenticated user's trips, optionally filtered.
// GET /api/trips?search=&tags=
func (h *TripHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	trips, err := h.trips.List(r.Context(), user.ID, r.URL.Query().Get("search"), r.URL.Query().Get("tags"))
	if err != nil {
		h.writeTripError(w, "list trips", err)
		return
	}

	writeJSON(w, http.StatusOK, toTripDTOs(trips))
}

// HandleGet returns a single owned trip.
// GET /api/trips/{id}
func (h *TripHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	trip, err := h.trips.GetByID(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		h.writeTripError(w, "get trip", err)
		return
	}

	writeJSON(w, http.StatusOK, toTripDTO(trip))
}

// HandleUpdate applies a partial update to an owned trip.
// PUT /api/trips/{id}
func (h *TripHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req updateTripRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip, err := h.trips.Update(r.Context(), user.ID, r.PathValue("id"), service.UpdateTripInput{
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        req.Tags,
		Companions:  req.Companions,
		Budget:      req.Budget,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeTripError(w, "update trip", err)
		return
	}

	writeJSON(w, http.StatusOK, toTripDTO(trip))
}

// HandleDelete removes an owned trip.
// DELETE /api/trips/{id}
func (h *TripHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.trips.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		h.writeTripError(w, "delete trip", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Trip removed"})
}

// writeTripError maps service errors onto the REST taxonomy. An ownership
// violation is reported as 401 to match the original API surface.
func (h *TripHandler) writeTripError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid Trip ID")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Trip not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusUnauthorized, "Not authorized")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
