package models

import "time"

// Post is a stored post. ID is assigned by the store on insert.
type Post struct {
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ID        string    `json:"_id" bson:"_id,omitempty"`
}

// CreatePostInput is the client payload for POST /posts.
type CreatePostInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}
