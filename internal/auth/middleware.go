package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const GarageIDKey contextKey = "garage_id"

// AdminAuthMiddleware guards the back office: it requires a bearer token
// carrying the admin role.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseBearerToken(r)
		if !ok || claims["role"] != "admin" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PartnerAuthMiddleware guards the partner dashboard and stores the
// authenticated garage id in the request context.
func PartnerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := parseBearerToken(r)
		if !ok || claims["role"] != "partner" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		garageID, _ := claims["garage_id"].(string)
		if garageID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), GarageIDKey, garageID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GarageIDFromContext returns the garage id set by PartnerAuthMiddleware.
func GarageIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(GarageIDKey).(string)
	return id
}

func parseBearerToken(r *http.Request) (jwt.MapClaims, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
