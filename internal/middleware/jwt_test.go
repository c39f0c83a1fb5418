package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BLOG_BACK-END/internal/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	other := &config.JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour}
	_, err = ValidateToken(token, other)
	assert.Error(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = ValidateToken(string(tampered), cfg)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "alice@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	_, err := ValidateToken("not.a.token", testJWTConfig())
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "alice@example.com", cfg)
	require.NoError(t, err)

	var gotIdentity Identity
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, gotOK = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"missing token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOK = false

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			Authenticate(cfg)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, userID, gotIdentity.UserID)
				assert.Equal(t, "alice@example.com", gotIdentity.Email)
			}
		})
	}
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
