package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"

	ItemStatusActive  = "active"
	ItemStatusClaimed = "claimed"
)

// Item is a lost-and-found listing. PublicID is the client-facing id,
// distinct from the mongo object id.
type Item struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PublicID      string             `bson:"itemId" json:"id"`
	UserID        string             `bson:"userId" json:"user_id"`
	OwnerUsername string             `bson:"ownerUsername" json:"owner_username"`
	Place         string             `bson:"place" json:"place"`
	Description   string             `bson:"description" json:"description"`
	Image         *Image             `bson:"image,omitempty" json:"image,omitempty"`
	Type          string             `bson:"type" json:"type"` // lost, found
	Status        string             `bson:"status" json:"status"`
	ClaimantID    *string            `bson:"claimantId,omitempty" json:"claimant_id,omitempty"`
	CreatedAt     int64              `bson:"createdAt" json:"date"`
}
