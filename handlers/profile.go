package handlers

import (
	"errors"
	"log"
	"net/http"

	"unify/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileRequest wraps the editable fields with the acting user's id.
type ProfileRequest struct {
	UserID string `json:"user_id"`
	models.ProfileUpdate
}

// GetProfile returns the requesting user's full record.
func (h *Handler) GetProfile(c *gin.Context) {
	requester := requesterID(c)
	if requester == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is missing"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	user, err := h.Users.GetByExternalID(ctx, requester)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial profile update for the acting user.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorID(c, req.UserID)
	if actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is missing"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	err := h.Users.UpdateProfile(ctx, actor, req.ProfileUpdate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("UpdateProfile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
