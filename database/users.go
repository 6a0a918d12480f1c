package database

import (
	"context"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore persists users keyed by their external identity id.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var u models.User
	if err := s.db.Users.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveClubs writes the followed set and its paired size counter in a single
// document update so they cannot drift from each other.
func (s *UserStore) SaveClubs(ctx context.Context, u *models.User) error {
	_, err := s.db.Users.UpdateOne(ctx,
		bson.M{"externalId": u.ExternalID},
		bson.M{"$set": bson.M{
			"clubsFollowed": u.ClubsFollowed,
			"clubsJoined":   u.ClubsJoined,
		}},
	)
	return err
}

// AddPoints adjusts the user's point total. A missing user is a silent
// no-op, matching how point awards behave for seed authors.
func (s *UserStore) AddPoints(ctx context.Context, externalID string, delta int) error {
	_, err := s.db.Users.UpdateOne(ctx,
		bson.M{"externalId": externalID},
		bson.M{"$inc": bson.M{"points": delta}},
	)
	return err
}

func (s *UserStore) UpdateProfile(ctx context.Context, externalID string, p models.ProfileUpdate) error {
	res, err := s.db.Users.UpdateOne(ctx,
		bson.M{"externalId": externalID},
		bson.M{"$set": bson.M{
			"username":        p.Username,
			"department":      p.Department,
			"currentYear":     p.CurrentYear,
			"phoneNumber":     p.PhoneNumber,
			"hobbies":         p.Hobbies,
			"bio":             p.Bio,
			"githubProfile":   p.GithubProfile,
			"linkedinProfile": p.LinkedinURL,
			"location":        p.Location,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *UserStore) SetAvatar(ctx context.Context, externalID string, img models.Image) error {
	res, err := s.db.Users.UpdateOne(ctx,
		bson.M{"externalId": externalID},
		bson.M{"$set": bson.M{"avatar": img}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TopByPoints returns the leaderboard: users sorted by points, highest first.
func (s *UserStore) TopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}}).SetLimit(limit)
	cursor, err := s.db.Users.Find(ctx, bson.M{}, opts)
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
