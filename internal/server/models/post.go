package models

import "time"

// Post is a blog post. AuthorID references User.ID; AuthorName is populated
// on reads by joining the users table and is never written directly.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category,omitempty"`
	Tags       []string  `json:"tags"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostPatch carries a partial update: nil fields are left unchanged.
type PostPatch struct {
	Title    *string
	Content  *string
	Category *string
	Tags     []string
	ImageURL *string
}
