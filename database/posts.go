package database

import (
	"context"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostStore persists community feed posts.
type PostStore struct {
	db *DB
}

func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.db.Posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	_, err := s.db.Posts.InsertOne(ctx, p)
	return err
}

// SaveReaction writes the liker set and its paired counter in one document
// update so the pair stays consistent.
func (s *PostStore) SaveReaction(ctx context.Context, id primitive.ObjectID, likes int, likedBy []string) error {
	_, err := s.db.Posts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"likes": likes, "likedBy": likedBy}},
	)
	return err
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Posts.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
