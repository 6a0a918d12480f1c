package handlers

import (
	"errors"
	"log"
	"net/http"

	"unify/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// MembershipRequest is the typed follow/unfollow body. Only explicit
// directions are accepted; an implicit toggle would double-flip on retry.
type MembershipRequest struct {
	UserID string        `json:"user_id"`
	ClubID string        `json:"club_id" binding:"required"`
	Action models.Action `json:"action" binding:"required,oneof=add remove"`
}

// GetClubs lists the club directory, enriched with isFollowed flags when the
// requester is known.
func (h *Handler) GetClubs(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	clubs, err := h.Clubs.List(ctx)
	if err != nil {
		log.Printf("GetClubs error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clubs"})
		return
	}

	var followed []string
	if requester := requesterID(c); requester != "" {
		if user, err := h.Users.GetByExternalID(ctx, requester); err == nil {
			followed = user.ClubsFollowed
		}
	}

	c.JSON(http.StatusOK, models.EnrichClubs(clubs, followed))
}

// GetFollowedClubs returns the requesting user's followed club ids.
func (h *Handler) GetFollowedClubs(c *gin.Context) {
	requester := requesterID(c)
	if requester == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followed clubs"})
		return
	}

	c.JSON(http.StatusOK, user.ClubsFollowed)
}

// UpdateMembership applies an explicit follow/unfollow. The user's followed
// set and joined counter move together in one write; the club's follower
// counter is a second write, reverted if the first fails.
func (h *Handler) UpdateMembership(c *gin.Context) {
	var req MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorID(c, req.UserID)
	if actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	user, err := h.Users.GetByExternalID(ctx, actor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !user.SetMembership(req.ClubID, req.Action) {
		// Already in the requested state; report current values unchanged.
		club, err := h.Clubs.GetByClubID(ctx, req.ClubID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"isFollowed": user.Follows(req.ClubID), "followers": club.Followers})
		return
	}

	delta := 1
	if req.Action == models.ActionRemove {
		delta = -1
	}

	followers, err := h.Clubs.AdjustFollowers(ctx, req.ClubID, delta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update club"})
		return
	}

	if err := h.Users.SaveClubs(ctx, user); err != nil {
		log.Printf("UpdateMembership save error: %v", err)
		if _, cerr := h.Clubs.AdjustFollowers(ctx, req.ClubID, -delta); cerr != nil {
			log.Printf("UpdateMembership revert failed, follower count for club %s may drift: %v", req.ClubID, cerr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFollowed": user.Follows(req.ClubID), "followers": followers})
}
