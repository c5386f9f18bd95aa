package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth is the single JWT check guarding the admin routes. HS256,
// shared secret, "role" claim must be admin. There is no session layer
// behind it.
type AdminAuth struct {
	secret []byte
	parser *jwt.Parser
}

type adminClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

func NewAdminAuth(secret string) (*AdminAuth, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &AdminAuth{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		var claims adminClaims
		_, err := a.parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
			return a.secret, nil
		})
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		if claims.Role != "admin" {
			unauthorized(w, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": msg,
	})
}
