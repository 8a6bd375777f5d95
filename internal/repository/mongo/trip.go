package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/tripvault/tripvault/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TripRepository implements domain.TripRepository using MongoDB. Filtering
// happens in the store itself: case-insensitive $regex on title/destination
// and $all for the conjunctive tag match.
type TripRepository struct {
	collection *mongodb.Collection
}

type tripDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Destination string    `bson:"destination"`
	StartDate   time.Time `bson:"start_date"`
	EndDate     time.Time `bson:"end_date"`
	Photos      []string  `bson:"photos"`
	Tags        []string  `bson:"tags"`
	Companions  []string  `bson:"companions"`
	Budget      *float64  `bson:"budget,omitempty"`
	Notes       string    `bson:"notes"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, toDoc(trip)); err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	var doc tripDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return fromDoc(&doc), nil
}

func (r *TripRepository) ListByOwner(ctx context.Context, ownerID string, filter domain.TripFilter) ([]domain.Trip, error) {
	query := bson.M{"owner_id": ownerID}

	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"destination": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$all": filter.Tags}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: -1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	for cursor.Next(ctx) {
		var doc tripDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		trips = append(trips, *fromDoc(&doc))
	}
	return trips, cursor.Err()
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	trip.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": trip.ID}, toDoc(trip))
	if err != nil {
		return fmt.Errorf("replace trip: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDoc(trip *domain.Trip) *tripDoc {
	return &tripDoc{
		ID:          trip.ID,
		OwnerID:     trip.OwnerID,
		Title:       trip.Title,
		Description: trip.Description,
		Destination: trip.Destination,
		StartDate:   trip.StartDate.UTC(),
		EndDate:     trip.EndDate.UTC(),
		Photos:      emptyIfNil(trip.Photos),
		Tags:        emptyIfNil(trip.Tags),
		Companions:  emptyIfNil(trip.Companions),
		Budget:      trip.Budget,
		Notes:       trip.Notes,
		CreatedAt:   trip.CreatedAt,
		UpdatedAt:   trip.UpdatedAt,
	}
}

func fromDoc(doc *tripDoc) *domain.Trip {
	return &domain.Trip{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		Title:       doc.Title,
		Description: doc.Description,
		Destination: doc.Destination,
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
		Photos:      emptyIfNil(doc.Photos),
		Tags:        emptyIfNil(doc.Tags),
		Companions:  emptyIfNil(doc.Companions),
		Budget:      doc.Budget,
		Notes:       doc.Notes,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
