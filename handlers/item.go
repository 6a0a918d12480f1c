package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"unify/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateItemRequest struct {
	UserID        string        `json:"user_id"`
	OwnerUsername string        `json:"owner_username" binding:"required"`
	Place         string        `json:"place" binding:"required"`
	Description   string        `json:"description" binding:"required"`
	Image         *models.Image `json:"image"`
	Type          string        `json:"type" binding:"required,oneof=lost found"`
}

// ClaimRequest is the typed claim body for lost-and-found items.
type ClaimRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	UserID string `json:"user_id"`
	Action string `json:"action" binding:"required,oneof=claim"`
}

func (h *Handler) GetItems(c *gin.Context) {
	ctx, cancel := requestCtx()
	defer cancel()

	items, err := h.Items.List(ctx)
	if err != nil {
		log.Printf("GetItems error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := actorID(c, req.UserID)
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	item := models.Item{
		ID:            primitive.NewObjectID(),
		PublicID:      uuid.NewString(),
		UserID:        owner,
		OwnerUsername: req.OwnerUsername,
		Place:         req.Place,
		Description:   req.Description,
		Image:         req.Image,
		Type:          req.Type,
		Status:        models.ItemStatusActive,
		CreatedAt:     time.Now().Unix(),
	}

	if err := h.Items.Create(ctx, &item); err != nil {
		log.Printf("CreateItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error in posting item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Item received at backend", "item": item})
}

// ClaimItem marks an item as claimed by the requester. The first claim wins;
// a claim on an already-claimed item is rejected.
func (h *Handler) ClaimItem(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claimant := actorID(c, req.UserID)
	if claimant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	ctx, cancel := requestCtx()
	defer cancel()

	claimed, err := h.Items.Claim(ctx, req.ItemID, claimant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		log.Printf("ClaimItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim item"})
		return
	}
	if !claimed {
		c.JSON(http.StatusConflict, gin.H{"error": "Item already claimed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item claimed", "status": models.ItemStatusClaimed})
}

// DeleteItem removes a listing; only its owner may delete it.
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID := c.Query("id")
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	actor := actorID(c, c.Query("user_id"))

	ctx, cancel := requestCtx()
	defer cancel()

	item, err := h.Items.Get(ctx, itemID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if item.UserID != actor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Items.Delete(ctx, itemID); err != nil {
		log.Printf("DeleteItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	if item.Image != nil && item.Image.PublicID != "" {
		if err := h.Media.Delete(ctx, item.Image.PublicID); err != nil {
			log.Printf("DeleteItem media cleanup failed for %s: %v", item.Image.PublicID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
