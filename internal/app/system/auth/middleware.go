// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

// UserSyncer reconciles a verified identity with the user collection.
// Implemented by the users store.
type UserSyncer interface {
	SyncFromIdentity(ctx context.Context, id Identity) (models.User, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user placed in context by
// Authenticate (or WithUser in tests) and a found flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithUser returns a request whose context carries u as the current user.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// Authenticator is the middleware pairing a token verifier with the
// user directory.
type Authenticator struct {
	verifier Verifier
	users    UserSyncer
	logger   *zap.Logger
}

// NewAuthenticator wires the verifier and user syncer together.
func NewAuthenticator(verifier Verifier, users UserSyncer, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, users: users, logger: logger}
}

// Authenticate requires a valid bearer token, syncs the identity into the
// user collection, and injects the resulting user into the request context.
// Routes behind it can rely on CurrentUser returning a user.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An empty token is passed through so a dev-bypass verifier can
		// still answer; the JWT verifier reports it as missing.
		raw := bearerToken(r)

		identity, err := a.verifier.Verify(r.Context(), raw)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingToken):
				respond.Failure(w, "authentication required", http.StatusUnauthorized)
			case errors.Is(err, ErrNotConfigured):
				a.logger.Error("token verification not configured", zap.Error(err))
				respond.Internal(w, "authentication unavailable")
			default:
				respond.Failure(w, "invalid or expired token", http.StatusUnauthorized)
			}
			return
		}

		user, err := a.users.SyncFromIdentity(r.Context(), identity)
		if err != nil {
			a.logger.Error("user sync failed",
				zap.String("subject_id", identity.SubjectID),
				zap.Error(err))
			respond.Internal(w, "could not load user profile")
			return
		}

		next.ServeHTTP(w, WithUser(r, &user))
	})
}

// bearerToken pulls the token out of "Authorization: Bearer <token>",
// returning "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
