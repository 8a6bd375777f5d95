package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/tripvault/tripvault/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	tripsCollection = "trips"
	filesCollection = "files"
)

// Store is the MongoDB-backed implementation of domain.Store.
type Store struct {
	client *mongodb.Client
	dbName string
}

// New connects to MongoDB at the given URI and verifies the connection.
func New(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongodb.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// Migrate ensures the indexes the queries rely on. MongoDB collections are
// created lazily, so this is the whole schema setup.
func (s *Store) Migrate(ctx context.Context) error {
	users := s.collection(usersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongodb.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	trips := s.collection(tripsCollection)
	_, err = trips.Indexes().CreateOne(ctx, mongodb.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "start_date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create trips owner index: %w", err)
	}

	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// Users returns the MongoDB-backed user repository.
func (s *Store) Users() domain.UserRepository {
	return &UserRepository{collection: s.collection(usersCollection)}
}

// Trips returns the MongoDB-backed trip repository.
func (s *Store) Trips() domain.TripRepository {
	return &TripRepository{collection: s.collection(tripsCollection)}
}

// Files returns the MongoDB-backed file store.
func (s *Store) Files() domain.FileStore {
	return &fileStore{collection: s.collection(filesCollection)}
}

func (s *Store) collection(name string) *mongodb.Collection {
	return s.client.Database(s.dbName).Collection(name)
}
