package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// UploadAvatar replaces the acting user's profile picture: upload the new
// binary to the media host, delete the previous one by its stored handle,
// persist the new URL/handle pair.
func (h *Handler) UploadAvatar(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
		return
	}

	actor := actorID(c, c.Request.FormValue("user_id"))
	if actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	img, err := h.Media.Upload(ctx, file, "unify/avatars", actor+"_"+time.Now().Format("20060102150405"))
	if err != nil {
		log.Printf("UploadAvatar upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	if user.Avatar != nil && user.Avatar.PublicID != "" {
		if err := h.Media.Delete(ctx, user.Avatar.PublicID); err != nil {
			log.Printf("UploadAvatar old image cleanup failed for %s: %v", user.Avatar.PublicID, err)
		}
	}

	if err := h.Users.SetAvatar(ctx, actor, *img); err != nil {
		log.Printf("UploadAvatar save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, img)
}
