package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/tripvault/tripvault/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	mongodb "go.mongodb.org/mongo-driver/mongo"
)

// fileStore implements domain.FileStore using a MongoDB collection.
type fileStore struct {
	collection *mongodb.Collection
}

type fileDoc struct {
	Key         string `bson:"_id"`
	ContentType string `bson:"content_type"`
	Data        []byte `bson:"data"`
}

func (s *fileStore) Save(ctx context.Context, key, contentType string, data []byte) error {
	doc := fileDoc{Key: key, ContentType: contentType, Data: data}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) (string, []byte, error) {
	var doc fileDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocuments) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, fmt.Errorf("get file: %w", err)
	}
	return doc.ContentType, doc.Data, nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
