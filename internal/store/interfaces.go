package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"BLOG_BACK-END/internal/models"
)

// UserRepository is the data-access layer for user accounts.
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailTaken if the email
	// column's unique constraint rejects the insert.
	Create(ctx context.Context, user models.User) error

	// FindByEmail returns the user with the given email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindByID returns the user with the given id, or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// PostUpdate describes a partial update of a post. Nil fields are left
// unchanged; UpdatedAt is always written.
type PostUpdate struct {
	Title     *string
	Content   *string
	UpdatedAt time.Time
}

// PostRepository is the data-access layer for blog posts.
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post models.Post) error

	// FindByID returns the post joined with its author, or ErrPostNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (models.PostWithAuthor, error)

	// OwnerOf returns the author id of the post, or ErrPostNotFound.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// Update applies a partial update and returns the updated row,
	// or ErrPostNotFound if the post vanished in the meantime.
	Update(ctx context.Context, id uuid.UUID, update PostUpdate) (models.Post, error)

	// Delete removes the post. Deleting an absent post is not an error;
	// existence is checked by the caller via OwnerOf.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns up to limit posts joined with their authors,
	// newest first, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error)

	// Count returns the total number of posts.
	Count(ctx context.Context) (int, error)
}
