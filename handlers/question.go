package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"unify/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateQuestionRequest struct {
	Title   string           `json:"title" binding:"required"`
	Content string           `json:"content" binding:"required"`
	Author  models.AuthorRef `json:"author" binding:"required"`
	Tags    []string         `json:"tags"`
}

// AnswerPayload is the answer body for the "answer" action.
type AnswerPayload struct {
	Content string           `json:"content"`
	Author  models.AuthorRef `json:"author"`
}

// QuestionUpdateRequest is the typed PUT body; the action discriminator
// selects which of the remaining fields are required.
type QuestionUpdateRequest struct {
	QuestionID string         `json:"question_id" binding:"required"`
	Action     string         `json:"action" binding:"required,oneof=answer vote accept"`
	Answer     *AnswerPayload `json:"answer"`
	AnswerID   string         `json:"answer_id"`
	UserID     string         `json:"user_id"`
}

// GetQuestions lists questions newest-first, optionally filtered by tag,
// with per-answer hasVoted flags and the requesting user's record attached.
func (h *Handler) GetQuestions(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	questions, err := h.Questions.List(ctx, c.Query("tag"))
	if err != nil {
		log.Printf("GetQuestions error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	requester := requesterID(c)

	var user *models.User
	if requester != "" {
		if u, err := h.Users.GetByExternalID(ctx, requester); err == nil {
			user = u
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": models.EnrichQuestions(questions, requester),
		"user":      user,
	})
}

// CreateQuestion stores a new question and awards the asker their points.
func (h *Handler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := req.Author
	if id := actorID(c, author.UserID); id != "" {
		author.UserID = id
	}
	if author.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author user id is required"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	question := models.Question{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author,
		Answers:   []models.Answer{},
		Tags:      req.Tags,
		CreatedAt: time.Now().Unix(),
	}

	if err := h.Questions.Create(ctx, &question); err != nil {
		log.Printf("CreateQuestion error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	if err := h.Users.AddPoints(ctx, author.UserID, models.PointsAskQuestion); err != nil {
		log.Printf("CreateQuestion points award failed for %s: %v", author.UserID, err)
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion dispatches the typed answer/vote/accept actions.
func (h *Handler) UpdateQuestion(c *gin.Context) {
	var req QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	question, err := h.Questions.Get(ctx, questionID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	switch req.Action {
	case "answer":
		h.addAnswer(c, ctx, question, req)
	case "vote":
		h.voteAnswer(c, ctx, question, req)
	case "accept":
		h.acceptAnswer(c, ctx, question, req)
	}
}

func (h *Handler) addAnswer(c *gin.Context, ctx context.Context, q *models.Question, req QuestionUpdateRequest) {
	if req.Answer == nil || req.Answer.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer content is required"})
		return
	}

	author := req.Answer.Author
	if id := actorID(c, author.UserID); id != "" {
		author.UserID = id
	}

	q.AddAnswer(models.Answer{
		ID:        primitive.NewObjectID(),
		Content:   req.Answer.Content,
		Author:    author,
		VotedBy:   []string{},
		CreatedAt: time.Now().Unix(),
	})

	if err := h.Users.AddPoints(ctx, author.UserID, models.PointsAnswerQuestion); err != nil {
		log.Printf("addAnswer points award failed for %s: %v", author.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	if err := h.Questions.SaveAnswers(ctx, q.ID, q.Answers, q.Solved); err != nil {
		log.Printf("addAnswer save error: %v", err)
		h.revertPoints(ctx, author.UserID, models.PointsAnswerQuestion)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, q)
}

func (h *Handler) voteAnswer(c *gin.Context, ctx context.Context, q *models.Question, req QuestionUpdateRequest) {
	voter := actorID(c, req.UserID)
	if voter == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	answerID, err := primitive.ObjectIDFromHex(req.AnswerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	answer, counted := q.Vote(answerID, voter)
	if answer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}
	if !counted {
		// Repeat vote from the same user is a no-op.
		c.JSON(http.StatusOK, q)
		return
	}

	if err := h.Users.AddPoints(ctx, answer.Author.UserID, models.PointsVoteReceived); err != nil {
		log.Printf("voteAnswer points award failed for %s: %v", answer.Author.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	if err := h.Questions.SaveAnswers(ctx, q.ID, q.Answers, q.Solved); err != nil {
		log.Printf("voteAnswer save error: %v", err)
		h.revertPoints(ctx, answer.Author.UserID, models.PointsVoteReceived)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, q)
}

func (h *Handler) acceptAnswer(c *gin.Context, ctx context.Context, q *models.Question, req QuestionUpdateRequest) {
	answerID, err := primitive.ObjectIDFromHex(req.AnswerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer ID"})
		return
	}

	answer, firstAccept := q.Accept(answerID)
	if answer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	// Points are awarded only when the question transitions to solved; a
	// re-accept reassigns acceptance without paying out again.
	if firstAccept {
		if err := h.Users.AddPoints(ctx, answer.Author.UserID, models.PointsAnswerAccepted); err != nil {
			log.Printf("acceptAnswer points award failed for %s: %v", answer.Author.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
			return
		}
	}

	if err := h.Questions.SaveAnswers(ctx, q.ID, q.Answers, q.Solved); err != nil {
		log.Printf("acceptAnswer save error: %v", err)
		if firstAccept {
			h.revertPoints(ctx, answer.Author.UserID, models.PointsAnswerAccepted)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, q)
}

// revertPoints compensates a paired points write whose partner failed.
func (h *Handler) revertPoints(ctx context.Context, externalID string, delta int) {
	if err := h.Users.AddPoints(ctx, externalID, -delta); err != nil {
		log.Printf("points revert failed, total for %s may drift by %d: %v", externalID, delta, err)
	}
}

// DeleteQuestion removes a question; only its author may delete it.
func (h *Handler) DeleteQuestion(c *gin.Context) {
	questionID, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
		return
	}

	actor := actorID(c, c.Query("user_id"))

	ctx, cancel := requestCtx()
	defer cancel()

	question, err := h.Questions.Get(ctx, questionID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if question.Author.UserID != actor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Questions.Delete(ctx, questionID); err != nil {
		log.Printf("DeleteQuestion error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
