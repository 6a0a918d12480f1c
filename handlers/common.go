package handlers

import (
	"context"
	"time"

	"unify/database"
	"unify/media"
	"unify/middleware"
	"unify/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

// Store interfaces are defined here, on the consumer side; the mongo
// implementations live in the database package and tests substitute in-mem
// fakes.

type UserStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	SaveClubs(ctx context.Context, u *models.User) error
	AddPoints(ctx context.Context, externalID string, delta int) error
	UpdateProfile(ctx context.Context, externalID string, p models.ProfileUpdate) error
	SetAvatar(ctx context.Context, externalID string, img models.Image) error
	TopByPoints(ctx context.Context, limit int64) ([]models.User, error)
}

type ClubStore interface {
	List(ctx context.Context) ([]models.Club, error)
	GetByClubID(ctx context.Context, clubID string) (*models.Club, error)
	AdjustFollowers(ctx context.Context, clubID string, delta int) (int, error)
}

type PostStore interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) error
	SaveReaction(ctx context.Context, id primitive.ObjectID, likes int, likedBy []string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type QuestionStore interface {
	List(ctx context.Context, tag string) ([]models.Question, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	Create(ctx context.Context, q *models.Question) error
	SaveAnswers(ctx context.Context, id primitive.ObjectID, answers []models.Answer, solved bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ItemStore interface {
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, publicID string) (*models.Item, error)
	Create(ctx context.Context, it *models.Item) error
	Claim(ctx context.Context, publicID, claimantID string) (bool, error)
	Delete(ctx context.Context, publicID string) error
}

// Handler carries the injected stores and media host for every route. There
// are no package-level connection globals.
type Handler struct {
	Users     UserStore
	Clubs     ClubStore
	Posts     PostStore
	Questions QuestionStore
	Items     ItemStore
	Media     media.Host
}

// New wires the handler set against mongo-backed stores.
func New(db *database.DB, host media.Host) *Handler {
	return &Handler{
		Users:     database.NewUserStore(db),
		Clubs:     database.NewClubStore(db),
		Posts:     database.NewPostStore(db),
		Questions: database.NewQuestionStore(db),
		Items:     database.NewItemStore(db),
		Media:     host,
	}
}

func requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// requesterID identifies the caller for read-model enrichment: the verified
// token id when present, otherwise the trusted user_id query parameter.
func requesterID(c *gin.Context) string {
	if id := middleware.ActorID(c); id != "" {
		return id
	}
	return c.Query("user_id")
}

// actorID identifies the caller for mutations, preferring the verified token
// id over the id carried in the request body.
func actorID(c *gin.Context, fromRequest string) string {
	if id := middleware.ActorID(c); id != "" {
		return id
	}
	return fromRequest
}
