package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"BLOG_BACK-END/internal/dto"
	"BLOG_BACK-END/internal/logger"
	"BLOG_BACK-END/internal/middleware"
	"BLOG_BACK-END/internal/models"
	"BLOG_BACK-END/internal/store"
	"BLOG_BACK-END/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	posts  store.PostRepository
	logger *logger.Logger
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(posts store.PostRepository, logger *logger.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// List returns a page of posts, newest first
// @Summary List posts
// @Description Get a paginated list of posts with author information, newest first
// @Tags posts
// @Produce json
// @Param page query int false "1-indexed page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.PostListResponse "Page of posts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	offset := (page - 1) * limit

	totalPosts, err := h.posts.Count(r.Context())
	if err != nil {
		h.logger.Err(err).Msg("list posts: count failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	posts, err := h.posts.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Err(err).Msg("list posts: query failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response := dto.PostListResponse{
		Posts: posts,
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  (totalPosts + limit - 1) / limit,
			TotalPosts:  totalPosts,
			Limit:       limit,
		},
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// GetByID returns a single post
// @Summary Get post by id
// @Description Get a single post with author information
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse "Post"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [get]
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
		return
	}

	post, err := h.posts.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
			return
		}
		h.logger.Err(err).Msg("get post: query failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PostResponse{Post: post})
}

// Create creates a new post owned by the authenticated user
// @Summary Create post
// @Description Create a new post authored by the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post data"
// @Success 201 {object} dto.PostMutationResponse "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - No token provided", "")
		return
	}

	var req dto.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid request body")
		return
	}

	if msg, ok := validateTitle(req.Title); !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", msg)
		return
	}
	if msg, ok := validateContent(req.Content); !ok {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", msg)
		return
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		UserID:    identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.posts.Create(r.Context(), post); err != nil {
		h.logger.Err(err).Msg("create post: insert failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response := dto.PostMutationResponse{
		Message: "Post created successfully",
		Post:    post,
	}

	utils.WriteJSONResponse(w, http.StatusCreated, response)
}

// Update applies a partial update to a post owned by the authenticated user
// @Summary Update post
// @Description Update the title and/or content of a post; only the author may update
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.PostMutationResponse "Post updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [put]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - No token provided", "")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
		return
	}

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "Invalid request body")
		return
	}

	if req.Title != nil {
		if msg, ok := validateTitle(*req.Title); !ok {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", msg)
			return
		}
	}
	if req.Content != nil {
		if msg, ok := validateContent(*req.Content); !ok {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", msg)
			return
		}
	}

	if !h.authorize(w, r, id, identity, "Unauthorized to update this post") {
		return
	}

	// A no-op update (neither field supplied) still refreshes updated_at.
	post, err := h.posts.Update(r.Context(), id, store.PostUpdate{
		Title:     req.Title,
		Content:   req.Content,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		// The post can vanish between the ownership check and the update.
		if errors.Is(err, store.ErrPostNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
			return
		}
		h.logger.Err(err).Msg("update post: update failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	response := dto.PostMutationResponse{
		Message: "Post updated successfully",
		Post:    post,
	}

	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// Delete removes a post owned by the authenticated user
// @Summary Delete post
// @Description Delete a post; only the author may delete
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} dto.MessageResponse "Post deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - No token provided", "")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
		return
	}

	if !h.authorize(w, r, id, identity, "Unauthorized to delete this post") {
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.logger.Err(err).Msg("delete post: delete failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Post deleted successfully"})
}

// authorize performs the existence and ownership checks shared by Update and
// Delete, writing the error response itself. Returns true when the acting
// identity is the post's author.
func (h *PostHandler) authorize(w http.ResponseWriter, r *http.Request, id uuid.UUID, identity middleware.Identity, forbiddenMsg string) bool {
	ownerID, err := h.posts.OwnerOf(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Post not found", "")
			return false
		}
		h.logger.Err(err).Msg("post ownership check failed")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "")
		return false
	}

	if ownerID != identity.UserID {
		utils.WriteErrorResponse(w, http.StatusForbidden, forbiddenMsg, "")
		return false
	}

	return true
}

func validateTitle(title string) (string, bool) {
	n := utf8.RuneCountInString(title)
	if n < 3 || n > 255 {
		return "title must be between 3 and 255 characters", false
	}
	return "", true
}

func validateContent(content string) (string, bool) {
	if utf8.RuneCountInString(content) < 10 {
		return "content must be at least 10 characters", false
	}
	return "", true
}

// queryInt parses a positive integer query parameter, falling back to def
// when absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return def
	}
	return n
}
