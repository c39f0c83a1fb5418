package dto

import "BLOG_BACK-END/internal/models"

// CreatePostRequest represents the request payload for creating a post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=255"`
	Content string `json:"content" validate:"required,min=10"`
}

// UpdatePostRequest represents the request payload for a partial post update.
// Absent fields are left unchanged.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=10"`
}

// Pagination carries list paging metadata
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalPosts  int `json:"totalPosts"`
	Limit       int `json:"limit"`
}

// PostListResponse represents a page of posts with their authors
type PostListResponse struct {
	Posts      []models.PostWithAuthor `json:"posts"`
	Pagination Pagination              `json:"pagination"`
}

// PostResponse wraps a single post with its author
type PostResponse struct {
	Post models.PostWithAuthor `json:"post"`
}

// PostMutationResponse represents the response after creating or updating a post
type PostMutationResponse struct {
	Message string      `json:"message"`
	Post    models.Post `json:"post"`
}
