package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Answer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	Author     AuthorRef          `bson:"author" json:"author"`
	Votes      int                `bson:"votes" json:"votes"`
	VotedBy    []string           `bson:"votedBy" json:"votedBy"`
	IsAccepted bool               `bson:"isAccepted" json:"isAccepted"`
	CreatedAt  int64              `bson:"createdAt" json:"createdAt"`
}

type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Author    AuthorRef          `bson:"author" json:"author"`
	Answers   []Answer           `bson:"answers" json:"answers"`
	Tags      []string           `bson:"tags" json:"tags"`
	Views     int                `bson:"views" json:"views"`
	Solved    bool               `bson:"solved" json:"solved"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

// AddAnswer appends an answer to the question.
func (q *Question) AddAnswer(a Answer) {
	q.Answers = append(q.Answers, a)
}

// FindAnswer returns the answer with the given id, or nil.
func (q *Question) FindAnswer(answerID primitive.ObjectID) *Answer {
	for i := range q.Answers {
		if q.Answers[i].ID == answerID {
			return &q.Answers[i]
		}
	}
	return nil
}

// Vote records a vote from voterID on the given answer. Each user votes at
// most once per answer; a repeat vote is a no-op. Returns the answer (nil if
// absent) and whether the vote counted.
func (q *Question) Vote(answerID primitive.ObjectID, voterID string) (*Answer, bool) {
	a := q.FindAnswer(answerID)
	if a == nil {
		return nil, false
	}
	if Contains(a.VotedBy, voterID) {
		return a, false
	}
	voted, _ := ApplySet(a.VotedBy, voterID, ActionAdd)
	a.VotedBy = voted
	a.Votes++
	return a, true
}

// Accept marks the given answer as the accepted one, clearing the flag on
// every sibling, and marks the question solved. Returns the answer (nil if
// absent) and whether this call solved a previously unsolved question; the
// point award is gated on that transition so a re-accept can reassign
// acceptance without paying out twice.
func (q *Question) Accept(answerID primitive.ObjectID) (*Answer, bool) {
	target := q.FindAnswer(answerID)
	if target == nil {
		return nil, false
	}
	for i := range q.Answers {
		q.Answers[i].IsAccepted = false
	}
	target.IsAccepted = true
	firstAccept := !q.Solved
	q.Solved = true
	return target, firstAccept
}

// AnswerView is an Answer enriched with the requester's vote state.
type AnswerView struct {
	Answer
	HasVoted bool `json:"hasVoted"`
}

// QuestionView is a Question whose answers carry per-requester vote flags.
type QuestionView struct {
	Question
	Answers []AnswerView `json:"answers"`
}

// EnrichQuestions derives per-answer vote flags for the requesting user.
func EnrichQuestions(questions []Question, userID string) []QuestionView {
	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		answers := make([]AnswerView, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = AnswerView{Answer: a, HasVoted: userID != "" && Contains(a.VotedBy, userID)}
		}
		views[i] = QuestionView{Question: q, Answers: answers}
	}
	return views
}
