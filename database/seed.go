package database

import (
	"context"
	"fmt"
	"log"

	"github.com/sabordos/cli/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store runs the seed queries against one database.
type Store struct {
	client *mongo.Client
	dbName string
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, dbName: dbName}
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// --- Inserts ---

// InsertMany writes docs in a single ordered call. MongoDB refuses an empty
// insertMany, so an empty batch is a successful no-op.
func (s *Store) InsertMany(ctx context.Context, collName string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.collection(collName).InsertMany(ctx, docs)
	return err
}

// --- Indexes ---

func (s *Store) CreateSeedIndexes(ctx context.Context, userCollName, reviewCollName string) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := s.collection(userCollName).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("%s indexes: %w", userCollName, err)
	}
	reviewIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "review_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	if _, err := s.collection(reviewCollName).Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("%s indexes: %w", reviewCollName, err)
	}
	return nil
}

// --- Queries (read-only) ---

// LastID returns the highest value of field in collName. ok is false when
// the collection holds no document with that field.
func (s *Store) LastID(ctx context.Context, collName string, field string) (int, bool, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetProjection(bson.M{field: 1, "_id": 0})

	var doc bson.M
	err := s.collection(collName).FindOne(ctx, bson.M{field: bson.M{"$exists": true}}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	switch v := doc[field].(type) {
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case float64:
		return int(v), true, nil
	default:
		return 0, false, fmt.Errorf("%s.%s holds a non numeric value (%T)", collName, field, v)
	}
}

func userRange(from, to int) bson.M {
	return bson.M{"user_id": bson.M{"$gte": from, "$lt": to}}
}

// FindUsers returns the users with user_id in [from, to).
func (s *Store) FindUsers(ctx context.Context, collName string, from, to int) ([]models.User, error) {
	cursor, err := s.collection(collName).Find(ctx, userRange(from, to),
		options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindReviews returns the reviews owned by users with user_id in [from, to).
func (s *Store) FindReviews(ctx context.Context, collName string, from, to int) ([]models.Review, error) {
	cursor, err := s.collection(collName).Find(ctx, userRange(from, to),
		options.Find().SetSort(bson.D{{Key: "review_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Store) CountUserRange(ctx context.Context, collName string, from, to int) (int64, error) {
	return s.collection(collName).CountDocuments(ctx, userRange(from, to))
}

// --- Deletes ---

func (s *Store) DeleteUserRange(ctx context.Context, collName string, from, to int) (int64, error) {
	res, err := s.collection(collName).DeleteMany(ctx, userRange(from, to))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		log.Printf("[warn] disconnect MongoDB: %v\n", err)
		return err
	}
	return nil
}
