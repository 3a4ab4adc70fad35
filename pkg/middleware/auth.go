package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/skbags/atelier/app/models"
	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/response"
)

// TokenResolver turns a bearer token into the admin it identifies.
// Satisfied by *services.AuthService.
type TokenResolver interface {
	ResolveToken(token string) (*models.Admin, error)
}

type adminCtxKey struct{}

// AdminFromCtx returns the authenticated admin stored by Auth, or nil.
func AdminFromCtx(ctx context.Context) *models.Admin {
	if admin, ok := ctx.Value(adminCtxKey{}).(*models.Admin); ok {
		return admin
	}
	return nil
}

// Auth returns middleware guarding admin routes. The bearer token is
// resolved against current storage state on every request — a deleted or
// deactivated admin is locked out immediately, before token expiry.
func Auth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			admin, err := resolver.ResolveToken(token)
			if err != nil {
				if apperr.KindOf(err) == apperr.Forbidden {
					response.Forbidden(w)
					return
				}
				response.Unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), adminCtxKey{}, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
