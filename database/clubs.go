package database

import (
	"context"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClubStore persists the club directory and its follower counters.
type ClubStore struct {
	db *DB
}

func NewClubStore(db *DB) *ClubStore {
	return &ClubStore{db: db}
}

func (s *ClubStore) List(ctx context.Context) ([]models.Club, error) {
	cursor, err := s.db.Clubs.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clubs []models.Club
	if err := cursor.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (s *ClubStore) GetByClubID(ctx context.Context, clubID string) (*models.Club, error) {
	var c models.Club
	if err := s.db.Clubs.FindOne(ctx, bson.M{"clubId": clubID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// AdjustFollowers moves the follower counter by delta, floored at zero, and
// returns the new value. The floor is applied server-side with a pipeline
// update so a concurrent remove cannot push the counter negative.
func (s *ClubStore) AdjustFollowers(ctx context.Context, clubID string, delta int) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"followers": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$followers", delta}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Club
	err := s.db.Clubs.FindOneAndUpdate(ctx, bson.M{"clubId": clubID}, pipeline, opts).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Followers, nil
}
