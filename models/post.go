package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AuthorRef is the author snapshot embedded in posts, questions and answers.
// UserID is the external identity id, not a mongo reference.
type AuthorRef struct {
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
	UserID string `bson:"userId" json:"userId"`
	Year   string `bson:"year,omitempty" json:"year,omitempty"`
}

type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       *Image             `bson:"image,omitempty" json:"image,omitempty"`
	Author      AuthorRef          `bson:"author" json:"author"`
	Likes       int                `bson:"likes" json:"likes"`
	LikedBy     []string           `bson:"likedBy" json:"likedBy"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}

// React applies an explicit like/unlike from userID. The like counter moves
// in lockstep with the liker set and never goes below zero. Returns false
// when the post is already in the requested state.
func (p *Post) React(userID string, action Action) bool {
	next, changed := ApplySet(p.LikedBy, userID, action)
	if !changed {
		return false
	}
	p.LikedBy = next
	if action == ActionAdd {
		p.Likes++
	} else if p.Likes > 0 {
		p.Likes--
	}
	return true
}

// IsLikedBy reports whether userID is in the post's liker set.
func (p *Post) IsLikedBy(userID string) bool {
	return Contains(p.LikedBy, userID)
}

// PostView is a Post enriched with the requester's like state.
type PostView struct {
	Post
	IsLiked bool `json:"isLiked"`
}

// EnrichPosts derives per-post like flags for the requesting user. An empty
// requester id yields false for every post.
func EnrichPosts(posts []Post, userID string) []PostView {
	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = PostView{Post: p, IsLiked: userID != "" && p.IsLikedBy(userID)}
	}
	return views
}
