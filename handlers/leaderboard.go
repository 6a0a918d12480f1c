package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const leaderboardSize = 10

// GetLeaderboard ranks users by their point total, highest first.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	users, err := h.Users.TopByPoints(ctx, leaderboardSize)
	if err != nil {
		log.Printf("GetLeaderboard error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}

	entries := make([]gin.H, len(users))
	for i, u := range users {
		avatar := fallbackAvatar
		if u.Avatar != nil && u.Avatar.URL != "" {
			avatar = u.Avatar.URL
		}
		entries[i] = gin.H{
			"name":   u.Username,
			"score":  u.Points,
			"avatar": avatar,
		}
	}

	c.JSON(http.StatusOK, entries)
}
