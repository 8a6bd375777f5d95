package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tripvault/tripvault/internal/domain"
)

// TripRepository implements domain.TripRepository using SQLite. The list
// fields (photos, tags, companions) are stored as JSON text columns.
type TripRepository struct {
	db *sql.DB
}

const tripColumns = `id, owner_id, title, description, destination, start_date, end_date,
	photos, tags, companions, budget, notes, created_at, updated_at`

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	photos, tags, companions, err := encodeLists(trip)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO trips (`+tripColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.OwnerID, trip.Title, trip.Description, trip.Destination,
		trip.StartDate.UTC(), trip.EndDate.UTC(),
		photos, tags, companions, nullFloat(trip.Budget), trip.Notes, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	trip.CreatedAt = now
	trip.UpdatedAt = now
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query trip by id: %w", err)
	}
	return trip, nil
}

func (r *TripRepository) ListByOwner(ctx context.Context, ownerID string, filter domain.TripFilter) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE owner_id = ?`
	args := []any{ownerID}

	if filter.Search != "" {
		query += ` AND (lower(title) LIKE lower(?) OR lower(destination) LIKE lower(?))`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query += ` ORDER BY start_date DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trips by owner: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		// Conjunctive tag filter, applied over the decoded JSON arrays.
		if !hasAllTags(trip.Tags, filter.Tags) {
			continue
		}
		trips = append(trips, *trip)
	}
	return trips, rows.Err()
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	now := time.Now().UTC()

	photos, tags, companions, err := encodeLists(trip)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE trips SET title = ?, description = ?, destination = ?,
		 start_date = ?, end_date = ?, photos = ?, tags = ?, companions = ?,
		 budget = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		trip.Title, trip.Description, trip.Destination,
		trip.StartDate.UTC(), trip.EndDate.UTC(),
		photos, tags, companions, nullFloat(trip.Budget), trip.Notes, now, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	trip.UpdatedAt = now
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	trip := &domain.Trip{}
	var photos, tags, companions string
	var budget sql.NullFloat64

	err := row.Scan(
		&trip.ID, &trip.OwnerID, &trip.Title, &trip.Description, &trip.Destination,
		&trip.StartDate, &trip.EndDate,
		&photos, &tags, &companions, &budget, &trip.Notes,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeList(photos, &trip.Photos); err != nil {
		return nil, err
	}
	if err := decodeList(tags, &trip.Tags); err != nil {
		return nil, err
	}
	if err := decodeList(companions, &trip.Companions); err != nil {
		return nil, err
	}
	if budget.Valid {
		trip.Budget = &budget.Float64
	}
	return trip, nil
}

func encodeLists(trip *domain.Trip) (photos, tags, companions string, err error) {
	if photos, err = encodeList(trip.Photos); err != nil {
		return
	}
	if tags, err = encodeList(trip.Tags); err != nil {
		return
	}
	companions, err = encodeList(trip.Companions)
	return
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(data string, dst *[]string) error {
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
