package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Club struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClubID      string             `bson:"clubId" json:"clubid"`
	Name        string             `bson:"clubName" json:"clubname"`
	Logo        string             `bson:"clubLogo,omitempty" json:"clublogo"`
	Type        string             `bson:"clubType,omitempty" json:"clubtype"` // Technical, Cultural, Professional, Social
	Description string             `bson:"description" json:"description"`
	Followers   int                `bson:"followers" json:"followers"`
}

// ClubView is a Club enriched with the requester's follow state.
type ClubView struct {
	Club
	IsFollowed bool `json:"isFollowed"`
}

// EnrichClubs derives per-club follow flags from the requester's followed
// set. A nil set (unauthenticated requester) yields false for every club.
func EnrichClubs(clubs []Club, followed []string) []ClubView {
	views := make([]ClubView, len(clubs))
	for i, c := range clubs {
		views[i] = ClubView{Club: c, IsFollowed: Contains(followed, c.ClubID)}
	}
	return views
}
