package routes

import (
	"time"

	"unify/handlers"
	"unify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter assembles the API around an injected handler set.
func SetupRouter(h *handlers.Handler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080", "http://127.0.0.1:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewIPRateLimiter(60, time.Minute)

	api := router.Group("/api")
	api.Use(middleware.RateLimit(limiter))
	api.Use(middleware.Identity())

	// Clubs
	api.GET("/clubs", h.GetClubs)
	api.GET("/clubs/followed", h.GetFollowedClubs)
	api.PUT("/clubs", h.UpdateMembership)

	// Community feed
	api.GET("/community", h.GetPosts)
	api.POST("/community", h.CreatePost)
	api.PUT("/community", h.UpdateReaction)
	api.DELETE("/community", h.DeletePost)

	// Senior corner
	api.GET("/senior-corner", h.GetQuestions)
	api.POST("/senior-corner", h.CreateQuestion)
	api.PUT("/senior-corner", h.UpdateQuestion)
	api.DELETE("/senior-corner", h.DeleteQuestion)

	// Lost and found
	api.GET("/lost-found", h.GetItems)
	api.POST("/lost-found", h.CreateItem)
	api.PUT("/lost-found", h.ClaimItem)
	api.DELETE("/lost-found", h.DeleteItem)

	// Leaderboard
	api.GET("/leaderboard", h.GetLeaderboard)

	// Profile
	api.GET("/profile", h.GetProfile)
	api.POST("/profile", h.UpdateProfile)

	// Media upload
	api.POST("/upload", h.UploadAvatar)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
