package database

import (
	"context"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemStore persists lost-and-found listings, keyed by their public id.
type ItemStore struct {
	db *DB
}

func NewItemStore(db *DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) List(ctx context.Context) ([]models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ItemStore) Get(ctx context.Context, publicID string) (*models.Item, error) {
	var it models.Item
	if err := s.db.Items.FindOne(ctx, bson.M{"itemId": publicID}).Decode(&it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *ItemStore) Create(ctx context.Context, it *models.Item) error {
	_, err := s.db.Items.InsertOne(ctx, it)
	return err
}

// Claim marks an active item claimed by claimantID. Returns false when the
// item exists but was already claimed; the status check and the write are a
// single filtered update, so two racing claimants cannot both win.
func (s *ItemStore) Claim(ctx context.Context, publicID, claimantID string) (bool, error) {
	res, err := s.db.Items.UpdateOne(ctx,
		bson.M{"itemId": publicID, "status": models.ItemStatusActive},
		bson.M{"$set": bson.M{"status": models.ItemStatusClaimed, "claimantId": claimantID}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// Distinguish "already claimed" from "no such item".
	count, err := s.db.Items.CountDocuments(ctx, bson.M{"itemId": publicID})
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, mongo.ErrNoDocuments
	}
	return false, nil
}

func (s *ItemStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.db.Items.DeleteOne(ctx, bson.M{"itemId": publicID})
	return err
}
