package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// Auth issues and verifies the HS256 bearer tokens used by the API.
type Auth struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewAuth(secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (a *Auth) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		jwtClaimUserID: user.ID,
		jwtClaimRole:   string(user.Role),
		"exp":          time.Now().Add(a.tokenTTL).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Authenticate validates the Authorization header and stores the token claims
// in the request context.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize allows the request through only when the authenticated user holds
// one of the given roles. Must run after Authenticate.
func (a *Auth) Authorize(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := GetUserRoleFromContext(r.Context())
			if err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
