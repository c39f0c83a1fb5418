package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"BLOG_BACK-END/internal/config"
	"BLOG_BACK-END/internal/utils"
)

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the {userID, email} pair recovered from a verified token,
// representing the acting user for a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type identityCtxKey struct{}

// IdentityFromContext returns the authenticated identity bound to ctx by
// Authenticate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok
}

// GenerateToken generates a signed JWT token for the given user
func GenerateToken(userID uuid.UUID, email string, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims. It fails if the
// signature is invalid, the token is malformed, or the token is expired.
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// Authenticate validates the bearer token in the Authorization header and
// binds the verified identity to the request context for downstream handlers.
func Authenticate(cfg *config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - No token provided", "")
				return
			}

			// Extract token from "Bearer <token>"
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - No token provided", "Invalid authorization header format")
				return
			}

			claims, err := ValidateToken(tokenParts[1], cfg)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized - Invalid token", "")
				return
			}

			identity := Identity{UserID: claims.UserID, Email: claims.Email}
			ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
