// internal/app/system/authz/authz_test.go
package authz

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/app/system/shelterctx"
	"github.com/dalemusser/shelterhub/internal/domain/models"
)

type fakeAssignments struct {
	byKey map[string][]models.Assignment
}

func key(userID, shelterID primitive.ObjectID) string {
	return userID.Hex() + "/" + shelterID.Hex()
}

func (f *fakeAssignments) Find(_ context.Context, userID, shelterID primitive.ObjectID) ([]models.Assignment, error) {
	return f.byKey[key(userID, shelterID)], nil
}

func TestAuthorize_FailureOrder(t *testing.T) {
	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{}})

	// Unauthenticated wins over everything, even with no shelter id.
	if _, err := gate.Authorize(context.Background(), primitive.NilObjectID, primitive.NilObjectID, roles.Admin); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	// Authenticated but no shelter id.
	if _, err := gate.Authorize(context.Background(), userID, primitive.NilObjectID, roles.Admin); !errors.Is(err, ErrMissingShelter) {
		t.Fatalf("err = %v, want ErrMissingShelter", err)
	}

	// Authenticated with shelter id but no assignment.
	if _, err := gate.Authorize(context.Background(), userID, shelterID, roles.Admin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAuthorize_RoleMatrix(t *testing.T) {
	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()

	cases := []struct {
		name    string
		roleID  int
		allowed []string
		wantOK  bool
	}{
		{"admin passes admin gate", roles.AdminID, []string{roles.Admin}, true},
		{"member fails admin gate", roles.MemberID, []string{roles.Admin}, false},
		{"member passes admin|member gate", roles.MemberID, []string{roles.Admin, roles.Member}, true},
		{"adopter fails admin|member gate", roles.AdopterID, []string{roles.Admin, roles.Member}, false},
		{"unknown role id is treated as adopter", 42, []string{roles.Adopter}, true},
		{"unknown role id fails admin gate", 42, []string{roles.Admin}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{
				key(userID, shelterID): {{UserID: userID, ShelterID: shelterID, RoleID: tc.roleID}},
			}})
			granted, err := gate.Authorize(context.Background(), userID, shelterID, tc.allowed...)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("Authorize: %v", err)
				}
				if granted.ShelterID != shelterID || granted.RoleID != tc.roleID {
					t.Fatalf("granted = %+v", granted)
				}
			} else if !errors.Is(err, ErrForbidden) {
				t.Fatalf("err = %v, want ErrForbidden", err)
			}
		})
	}
}

func TestAuthorize_FirstAssignmentWins(t *testing.T) {
	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{
		key(userID, shelterID): {
			{UserID: userID, ShelterID: shelterID, RoleID: roles.AdopterID},
			{UserID: userID, ShelterID: shelterID, RoleID: roles.AdminID},
		},
	}})

	if _, err := gate.Authorize(context.Background(), userID, shelterID, roles.Admin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v; the earliest assignment decides the role", err)
	}
	granted, err := gate.Authorize(context.Background(), userID, shelterID, roles.Adopter)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if granted.RoleName != roles.Adopter {
		t.Fatalf("granted role = %q", granted.RoleName)
	}
}

func requireHandler(t *testing.T, gate *Gate, source Source, allowed ...string) (http.Handler, *Granted) {
	t.Helper()
	var seen Granted
	h := gate.Require(source, allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestRequire_FromBodyRewindsPayload(t *testing.T) {
	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{
		key(userID, shelterID): {{UserID: userID, ShelterID: shelterID, RoleID: roles.MemberID}},
	}})

	var gotBody string
	h := gate.Require(FromBody("shelter_id"), roles.Admin, roles.Member)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"name":"Rex","shelter_id":"` + shelterID.Hex() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(body))
	req = auth.WithUser(req, &models.User{ID: userID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotBody != body {
		t.Fatalf("handler saw body %q, want original payload", gotBody)
	}
}

func TestRequire_FromBodyOversizedIs413(t *testing.T) {
	userID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{}})
	h, _ := requireHandler(t, gate, FromBody("shelter_id"), roles.Admin)

	body := `{"notes":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(body))
	req = auth.WithUser(req, &models.User{ID: userID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestRequire_MissingShelterIDIs400(t *testing.T) {
	userID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{}})
	h, _ := requireHandler(t, gate, FromQuery("shelter_id"), roles.Admin)

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	req = auth.WithUser(req, &models.User{ID: userID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequire_NoUserIs401(t *testing.T) {
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{}})
	h, _ := requireHandler(t, gate, FromQuery("shelter_id"), roles.Admin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/members?shelter_id="+primitive.NewObjectID().Hex(), nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequire_NoAssignmentIs403(t *testing.T) {
	userID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{}})
	h, _ := requireHandler(t, gate, FromQuery("shelter_id"), roles.Admin)

	req := httptest.NewRequest(http.MethodGet, "/members?shelter_id="+primitive.NewObjectID().Hex(), nil)
	req = auth.WithUser(req, &models.User{ID: userID})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequire_FromResolvedContext(t *testing.T) {
	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()
	gate := NewGate(&fakeAssignments{byKey: map[string][]models.Assignment{
		key(userID, shelterID): {{UserID: userID, ShelterID: shelterID, RoleID: roles.AdminID}},
	}})
	h, seen := requireHandler(t, gate, FromResolved(), roles.Admin)

	req := httptest.NewRequest(http.MethodDelete, "/pets/abc", nil)
	req = auth.WithUser(req, &models.User{ID: userID})
	req = shelterctx.WithRequestShelterID(req, shelterID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if seen.ShelterID != shelterID || seen.RoleName != roles.Admin {
		t.Fatalf("granted = %+v", *seen)
	}
}
