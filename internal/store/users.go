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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	db     *pgxpool.Pool
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// connection pool and logger.
func NewUserRepository(db *pgxpool.Pool, logger *logger.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// Create persists a new user record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailTaken]. The handler
//     checks the email first; this catches the concurrent-signup race.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.db.Exec(ctx, createUser, user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		r.logger.Err(err).Str("email", user.Email).Msg("failed to insert user")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, findUserByEmail, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		r.logger.Err(err).Msg("failed to find user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, findUserByID, id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		r.logger.Err(err).Str("id", id.String()).Msg("failed to find user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}
