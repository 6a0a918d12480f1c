package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"unify/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Image       *models.Image    `json:"image"`
	Author      models.AuthorRef `json:"author" binding:"required"`
	Tags        []string         `json:"tags"`
}

// ReactionRequest is the typed like/unlike body.
type ReactionRequest struct {
	PostID string `json:"post_id" binding:"required"`
	UserID string `json:"user_id"`
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

// GetPosts returns the community feed newest-first, enriched with isLiked
// flags when the requester is known.
func (h *Handler) GetPosts(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	posts, err := h.Posts.List(ctx)
	if err != nil {
		log.Printf("GetPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, models.EnrichPosts(posts, requesterID(c)))
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
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

	post := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Author:      author,
		LikedBy:     []string{},
		Tags:        req.Tags,
		CreatedAt:   time.Now().Unix(),
	}

	if err := h.Posts.Create(ctx, &post); err != nil {
		log.Printf("CreatePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdateReaction applies an explicit like/unlike. The like counter and the
// liker set live on the same document and are written together, so a repeat
// request is a no-op and the pair cannot drift.
func (h *Handler) UpdateReaction(c *gin.Context) {
	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorID(c, req.UserID)
	if actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	action := models.ActionAdd
	if req.Action == "unlike" {
		action = models.ActionRemove
	}

	ctx, cancel := requestCtx()
	defer cancel()

	post, err := h.Posts.Get(ctx, postID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post.React(actor, action) {
		if err := h.Posts.SaveReaction(ctx, post.ID, post.Likes, post.LikedBy); err != nil {
			log.Printf("UpdateReaction save error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"likes": post.Likes, "isLiked": post.IsLikedBy(actor)})
}

// DeletePost removes a post; only its author may delete it.
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	actor := actorID(c, c.Query("user_id"))

	ctx, cancel := requestCtx()
	defer cancel()

	post, err := h.Posts.Get(ctx, postID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post.Author.UserID != actor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		log.Printf("DeletePost error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if post.Image != nil && post.Image.PublicID != "" {
		if err := h.Media.Delete(ctx, post.Image.PublicID); err != nil {
			log.Printf("DeletePost media cleanup failed for %s: %v", post.Image.PublicID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
