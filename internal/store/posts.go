package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"BLOG_BACK-END/internal/logger"
	"BLOG_BACK-END/internal/models"
)

// postRepository is the PostgreSQL-backed implementation of [PostRepository].
//
// Each method issues a single independent statement; the database is the sole
// arbiter of consistency between statements.
type postRepository struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

// NewPostRepository constructs a [PostRepository] backed by the provided
// connection pool and logger.
func NewPostRepository(db *pgxpool.Pool, logger *logger.Logger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

func (r *postRepository) Create(ctx context.Context, post models.Post) error {
	_, err := r.db.Exec(ctx, createPost,
		post.ID, post.Title, post.Content, post.UserID, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		r.logger.Err(err).Str("user_id", post.UserID.String()).Msg("failed to insert post")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (models.PostWithAuthor, error) {
	var post models.PostWithAuthor
	err := r.db.QueryRow(ctx, findPostByID, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt,
			&post.AuthorName, &post.AuthorEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PostWithAuthor{}, ErrPostNotFound
		}
		r.logger.Err(err).Str("id", id.String()).Msg("failed to find post")
		return models.PostWithAuthor{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return post, nil
}

func (r *postRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	err := r.db.QueryRow(ctx, findPostOwner, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrPostNotFound
		}
		r.logger.Err(err).Str("id", id.String()).Msg("failed to find post owner")
		return uuid.Nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return ownerID, nil
}

// Update applies a partial update built by [buildUpdateQuery]. The RETURNING
// clause yields the canonical row, so no re-read is needed.
func (r *postRepository) Update(ctx context.Context, id uuid.UUID, update PostUpdate) (models.Post, error) {
	query, args := buildUpdateQuery(id, update)

	var post models.Post
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&post.ID, &post.Title, &post.Content, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		r.logger.Err(err).Str("id", id.String()).Msg("failed to update post")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deletePost, id); err != nil {
		r.logger.Err(err).Str("id", id.String()).Msg("failed to delete post")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.PostWithAuthor, error) {
	rows, err := r.db.Query(ctx, listPosts, limit, offset)
	if err != nil {
		r.logger.Err(err).Msg("failed to list posts")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	posts := make([]models.PostWithAuthor, 0, limit)
	for rows.Next() {
		var post models.PostWithAuthor
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.UserID,
			&post.CreatedAt, &post.UpdatedAt, &post.AuthorName, &post.AuthorEmail); err != nil {
			r.logger.Err(err).Msg("failed to scan post row")
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, countPosts).Scan(&total); err != nil {
		r.logger.Err(err).Msg("failed to count posts")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return total, nil
}
