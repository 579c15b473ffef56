package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// Claims carried by an admin session token.
type Claims struct {
	Username string `json:"username"`
	AdminID  string `json:"adminId"`
	jwt.RegisteredClaims
}

type contextKey string

const adminIDKey contextKey = "adminId"
const usernameKey contextKey = "username"

// Auth validates admin session tokens. The admin panel holds the token in a
// cookie; API clients may send it as a Bearer header instead.
type Auth struct {
	Secret []byte
}

func New(secret []byte) *Auth {
	return &Auth{Secret: secret}
}

// TokenFromRequest extracts the raw token from the `token` cookie or the
// Authorization header, whichever is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return ""
}

// Authenticate guards admin routes.
func (a *Auth) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := TokenFromRequest(r)
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, claims.AdminID)
		ctx = context.WithValue(ctx, usernameKey, claims.Username)
		next(w, r.WithContext(ctx), ps)
	}
}

// ValidateToken parses and verifies a raw token string.
func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// AdminID returns the authenticated admin's id, or "" outside an
// authenticated request.
func AdminID(r *http.Request) string {
	id, _ := r.Context().Value(adminIDKey).(string)
	return id
}

// Username returns the authenticated admin's username, or "".
func Username(r *http.Request) string {
	name, _ := r.Context().Value(usernameKey).(string)
	return name
}
