package database

import (
	"context"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionStore persists questions with their embedded answers.
type QuestionStore struct {
	db *DB
}

func NewQuestionStore(db *DB) *QuestionStore {
	return &QuestionStore{db: db}
}

func (s *QuestionStore) List(ctx context.Context, tag string) ([]models.Question, error) {
	filter := bson.M{}
	if tag != "" {
		filter["tags"] = tag
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Questions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	if err := s.db.Questions.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuestionStore) Create(ctx context.Context, q *models.Question) error {
	_, err := s.db.Questions.InsertOne(ctx, q)
	return err
}

// SaveAnswers writes the answer list and the solved flag together; accept
// mutates both and they must not be split across writes.
func (s *QuestionStore) SaveAnswers(ctx context.Context, id primitive.ObjectID, answers []models.Answer, solved bool) error {
	_, err := s.db.Questions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"answers": answers, "solved": solved}},
	)
	return err
}

func (s *QuestionStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.db.Questions.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
