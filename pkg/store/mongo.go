package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
)

const chartsCollection = "charts"

// MongoStore is a MongoDB-backed Store for durable multi-instance
// deployments.
type MongoStore struct {
	client *mongo.Client
	charts *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings the server so
// misconfiguration surfaces at startup. The database name is typically
// "graphy".
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connecting to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "pinging MongoDB")
	}
	return &MongoStore{
		client: client,
		charts: client.Database(database).Collection(chartsCollection),
	}, nil
}

// Create stores a new definition under a generated ID.
func (s *MongoStore) Create(ctx context.Context, def *chartio.Definition) (*chartio.Definition, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	stored := *def
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := s.charts.InsertOne(ctx, &stored); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "inserting chart")
	}
	return &stored, nil
}

// Get retrieves a definition by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*chartio.Definition, error) {
	var def chartio.Definition
	err := s.charts.FindOne(ctx, bson.M{"_id": id}).Decode(&def)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "loading chart %s", id)
	}
	return &def, nil
}

// List returns all definitions ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]*chartio.Definition, error) {
	cursor, err := s.charts.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "listing charts")
	}
	defer cursor.Close(ctx)

	var defs []*chartio.Definition
	if err := cursor.All(ctx, &defs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decoding charts")
	}
	return defs, nil
}

// Update replaces a stored definition, keeping its creation time.
func (s *MongoStore) Update(ctx context.Context, def *chartio.Definition) (*chartio.Definition, error) {
	if def.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart ID is required for update")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, def.ID)
	if err != nil {
		return nil, err
	}

	stored := *def
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	if _, err := s.charts.ReplaceOne(ctx, bson.M{"_id": stored.ID}, &stored); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "updating chart %s", stored.ID)
	}
	return &stored, nil
}

// Delete removes a definition.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	result, err := s.charts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "deleting chart %s", id)
	}
	if result.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
