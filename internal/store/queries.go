package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	createUser = `INSERT INTO users (id, email, password_hash, name, created_at)
	VALUES ($1, $2, $3, $4, $5);`

	findUserByEmail = `SELECT id, email, password_hash, name, created_at
	FROM users
	WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, name, created_at
	FROM users
	WHERE id = $1;`

	createPost = `INSERT INTO posts (id, title, content, user_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6);`

	findPostByID = `SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
		u.name AS author_name, u.email AS author_email
	FROM posts p
	JOIN users u ON p.user_id = u.id
	WHERE p.id = $1;`

	findPostOwner = `SELECT user_id FROM posts WHERE id = $1;`

	listPosts = `SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
		u.name AS author_name, u.email AS author_email
	FROM posts p
	JOIN users u ON p.user_id = u.id
	ORDER BY p.created_at DESC
	LIMIT $1 OFFSET $2;`

	countPosts = `SELECT COUNT(*) FROM posts;`

	deletePost = `DELETE FROM posts WHERE id = $1;`

	updatePostReturning = ` WHERE id = $%d
	RETURNING id, title, content, user_id, created_at, updated_at;`
)

// buildUpdateQuery dynamically builds the partial UPDATE statement for a post.
// Only supplied fields are written; updated_at is always refreshed.
func buildUpdateQuery(id uuid.UUID, update PostUpdate) (string, []any) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString("UPDATE posts SET ")

	args := make([]any, 0, 4)
	setClauses := make([]string, 0, 3)
	argIndex := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, *update.Title)
		argIndex++
	}

	if update.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argIndex))
		args = append(args, *update.Content)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, update.UpdatedAt)
	argIndex++

	queryBuilder.WriteString(strings.Join(setClauses, ", "))
	queryBuilder.WriteString(fmt.Sprintf(updatePostReturning, argIndex))
	args = append(args, id)

	return queryBuilder.String(), args
}
