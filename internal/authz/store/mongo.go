package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/solidgo/authz/internal/authz/model"
)

// resourceDocument is the minimal shape MongoResourceSet reads from its
// collection: existence is all it is asked for.
type resourceDocument struct {
	Path string `bson:"path"`
}

// MongoResourceSet implements authz.ResourceSet against a `resources`
// collection keyed by path, for deployments that shard the "does this
// path exist" containment index away from the RDF bodies themselves
// (e.g. a Postgres- or S3-backed ResourceStore alongside a Mongo
// containment index).
type MongoResourceSet struct {
	collection *mongo.Collection
}

// NewMongoResourceSet builds a MongoResourceSet over collection.
func NewMongoResourceSet(collection *mongo.Collection) *MongoResourceSet {
	return &MongoResourceSet{collection: collection}
}

// HasResource reports whether path has a document in the collection.
func (s *MongoResourceSet) HasResource(ctx context.Context, id model.ResourceIdentifier) (bool, error) {
	var doc resourceDocument
	err := s.collection.FindOne(ctx, bson.M{"path": id.Path}).Decode(&doc)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("checking existence of %s in mongo: %w", id.Path, err)
}
