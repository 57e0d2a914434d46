// internal/app/system/authz/middleware.go
package authz

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/respond"
	"github.com/dalemusser/shelterhub/internal/app/system/shelterctx"
)

// Source extracts the shelter id a request is about. It may return an
// updated request (the body source re-buffers the payload so handlers can
// read it again). A NilObjectID with nil error means the id was absent.
type Source func(r *http.Request) (primitive.ObjectID, *http.Request, error)

// FromPath reads the shelter id from a chi URL parameter.
func FromPath(param string) Source {
	return func(r *http.Request) (primitive.ObjectID, *http.Request, error) {
		raw := chi.URLParam(r, param)
		if raw == "" {
			return primitive.NilObjectID, r, nil
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return primitive.NilObjectID, r, errors.New("invalid shelter id")
		}
		return id, r, nil
	}
}

// FromQuery reads the shelter id from a query parameter.
func FromQuery(name string) Source {
	return func(r *http.Request) (primitive.ObjectID, *http.Request, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return primitive.NilObjectID, r, nil
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return primitive.NilObjectID, r, errors.New("invalid shelter id")
		}
		return id, r, nil
	}
}

// maxBodyBytes caps how much of a request body the body source will buffer.
const maxBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// FromBody reads the shelter id from a JSON body field, then rewinds the
// body so the handler can decode the full payload afterwards. Bodies over
// maxBodyBytes are rejected outright rather than truncated.
func FromBody(field string) Source {
	return func(r *http.Request) (primitive.ObjectID, *http.Request, error) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
		if err != nil {
			return primitive.NilObjectID, r, errors.New("unreadable request body")
		}
		if len(payload) > maxBodyBytes {
			return primitive.NilObjectID, r, errBodyTooLarge
		}
		r.Body = io.NopCloser(bytes.NewReader(payload))

		var doc map[string]json.RawMessage
		if err := json.Unmarshal(payload, &doc); err != nil {
			return primitive.NilObjectID, r, nil
		}
		rawField, ok := doc[field]
		if !ok {
			return primitive.NilObjectID, r, nil
		}
		var hex string
		if err := json.Unmarshal(rawField, &hex); err != nil {
			return primitive.NilObjectID, r, errors.New("invalid shelter id")
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return primitive.NilObjectID, r, errors.New("invalid shelter id")
		}
		return id, r, nil
	}
}

// FromResolved reads the shelter id a resolver middleware attached earlier
// in the chain.
func FromResolved() Source {
	return func(r *http.Request) (primitive.ObjectID, *http.Request, error) {
		id, ok := shelterctx.FromContext(r.Context())
		if !ok {
			return primitive.NilObjectID, r, nil
		}
		return id, r, nil
	}
}

// Require returns middleware enforcing that the current user holds one of
// the allowed roles at the shelter named by source. On success the Granted
// decision is attached to the request context.
func (g *Gate) Require(source Source, allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.CurrentUser(r)
			if !ok {
				respond.Failure(w, "authentication required", http.StatusUnauthorized)
				return
			}

			shelterID, r, err := source(r)
			if err != nil {
				if errors.Is(err, errBodyTooLarge) {
					respond.Failure(w, err.Error(), http.StatusRequestEntityTooLarge)
					return
				}
				respond.BadRequest(w, err.Error())
				return
			}

			granted, err := g.Authorize(r.Context(), user.ID, shelterID, allowed...)
			if err != nil {
				switch {
				case errors.Is(err, ErrUnauthenticated):
					respond.Failure(w, "authentication required", http.StatusUnauthorized)
				case errors.Is(err, ErrMissingShelter):
					respond.BadRequest(w, "shelter id is required")
				case errors.Is(err, ErrForbidden):
					respond.Failure(w, "insufficient permissions for this shelter", http.StatusForbidden)
				default:
					respond.Internal(w, "authorization check failed")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithGranted(r.Context(), granted)))
		})
	}
}
