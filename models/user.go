package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Image is a media-host upload reference. PublicID is the deletion handle.
type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"public_id"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID    string             `bson:"externalId" json:"externalId"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email" json:"email"`
	Department    string             `bson:"department,omitempty" json:"department"`
	CurrentYear   int                `bson:"currentYear,omitempty" json:"current_year"`
	Points        int                `bson:"points" json:"points"`
	ClubsFollowed []string           `bson:"clubsFollowed" json:"clubsfollowed"`
	ClubsJoined   int                `bson:"clubsJoined" json:"numberofclubsjoined"`
	PhoneNumber   string             `bson:"phoneNumber,omitempty" json:"phonenumber"`
	Hobbies       []string           `bson:"hobbies" json:"hobbies"`
	Bio           string             `bson:"bio" json:"bio"`
	GithubProfile string             `bson:"githubProfile" json:"githubprofile"`
	LinkedinURL   string             `bson:"linkedinProfile" json:"linkedinprofile"`
	Location      string             `bson:"location" json:"location"`
	Avatar        *Image             `bson:"avatar,omitempty" json:"image,omitempty"`
	CreatedAt     int64              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// SetMembership applies an explicit add/remove of a club id to the user's
// followed set, keeping ClubsJoined equal to the set size. Returns false when
// the set is already in the requested state, so a retried request is a no-op.
func (u *User) SetMembership(clubID string, action Action) bool {
	next, changed := ApplySet(u.ClubsFollowed, clubID, action)
	if !changed {
		return false
	}
	u.ClubsFollowed = next
	u.ClubsJoined = len(next)
	return true
}

// Follows reports whether the user currently follows the club.
func (u *User) Follows(clubID string) bool {
	return Contains(u.ClubsFollowed, clubID)
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Username      string   `json:"name"`
	Department    string   `json:"department"`
	CurrentYear   int      `json:"current_year"`
	PhoneNumber   string   `json:"phonenumber"`
	Hobbies       []string `json:"hobbies"`
	Bio           string   `json:"bio"`
	GithubProfile string   `json:"githubprofile"`
	LinkedinURL   string   `json:"linkedinprofile"`
	Location      string   `json:"location"`
}
