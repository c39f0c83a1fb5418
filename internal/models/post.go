package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post authored by a user
type Post struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PostWithAuthor is a post row joined with its author's public fields,
// as returned by list and get-by-id queries.
type PostWithAuthor struct {
	Post
	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorEmail string `json:"author_email" db:"author_email"`
}
