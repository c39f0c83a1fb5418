package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"BLOG_BACK-END/internal/config"
	"BLOG_BACK-END/internal/dto"
	"BLOG_BACK-END/internal/handlers"
	"BLOG_BACK-END/internal/logger"
	"BLOG_BACK-END/internal/middleware"
	"BLOG_BACK-END/internal/models"
	"BLOG_BACK-END/internal/routes"
)

type testServer struct {
	router *chi.Mux
	users  *fakeUserRepository
	posts  *fakePostRepository
	jwtCfg *config.JWTConfig
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
	log := logger.Nop()

	users := newFakeUserRepository()
	posts := newFakePostRepository(users)

	authHandler := handlers.NewAuthHandler(users, jwtCfg, log)
	postHandler := handlers.NewPostHandler(posts, log)
	healthHandler := handlers.NewHealthHandler(nil)

	return &testServer{
		router: routes.Setup(authHandler, postHandler, healthHandler, jwtCfg, log),
		users:  users,
		posts:  posts,
		jwtCfg: jwtCfg,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// seedUser registers a user directly in the fake store and returns the user
// and a valid token for it.
func (s *testServer) seedUser(t *testing.T, email, password, name string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.users.Create(context.Background(), user))

	token, err := middleware.GenerateToken(user.ID, user.Email, s.jwtCfg)
	require.NoError(t, err)

	return user, token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSignUp_Success(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeJSON[dto.AuthResponse](t, rec)
	assert.Equal(t, "User created successfully", resp.Message)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	require.NotEmpty(t, resp.Token)

	// The returned token verifies back to the created user.
	claims, err := middleware.ValidateToken(resp.Token, srv.jwtCfg)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID.String())
	assert.Equal(t, "alice@example.com", claims.Email)

	// The password is stored hashed, never in the clear.
	stored, err := srv.users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	body := dto.SignUpRequest{Email: "alice@example.com", Password: "secret123", Name: "Alice"}

	first := srv.do(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, first.Code)

	second := srv.do(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusBadRequest, second.Code)
	resp := decodeJSON[dto.ErrorResponse](t, second)
	assert.Equal(t, "Email already registered", resp.Error)
}

func TestSignUp_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body dto.SignUpRequest
	}{
		{"invalid email", dto.SignUpRequest{Email: "not-an-email", Password: "secret123", Name: "Alice"}},
		{"short password", dto.SignUpRequest{Email: "alice@example.com", Password: "abc", Name: "Alice"}},
		{"short name", dto.SignUpRequest{Email: "alice@example.com", Password: "secret123", Name: "A"}},
		{"empty", dto.SignUpRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/auth/signup", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeJSON[dto.ErrorResponse](t, rec)
			assert.Equal(t, "Validation error", resp.Error)
		})
	}
}

func TestSignIn_Success(t *testing.T) {
	srv := newTestServer(t)
	user, _ := srv.seedUser(t, "alice@example.com", "secret123", "Alice")

	rec := srv.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[dto.AuthResponse](t, rec)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, user.ID.String(), resp.User.ID)

	claims, err := middleware.ValidateToken(resp.Token, srv.jwtCfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignIn_NoCredentialLeak(t *testing.T) {
	srv := newTestServer(t)
	srv.seedUser(t, "alice@example.com", "secret123", "Alice")

	wrongPassword := srv.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	unknownEmail := srv.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	// Both failures must be indistinguishable to the client.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestProfile(t *testing.T) {
	srv := newTestServer(t)
	user, token := srv.seedUser(t, "alice@example.com", "secret123", "Alice")

	rec := srv.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[dto.ProfileResponse](t, rec)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
}

func TestProfile_UserDeleted(t *testing.T) {
	srv := newTestServer(t)
	user, token := srv.seedUser(t, "alice@example.com", "secret123", "Alice")

	// Token remains valid even though the account is gone.
	srv.users.delete(user.ID)

	rec := srv.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	assert.Equal(t, "User not found", resp.Error)
}

func TestProfile_Unauthorized(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignOut(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.seedUser(t, "alice@example.com", "secret123", "Alice")

	rec := srv.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[dto.MessageResponse](t, rec)
	assert.Equal(t, "Signed out successfully", resp.Message)

	noToken := srv.do(t, http.MethodPost, "/api/auth/signout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, noToken.Code)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/nothing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Route not found", resp.Error)
}
