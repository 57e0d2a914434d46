package shelters

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/shelterhub/internal/app/system/mailer"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Point the sender at a closed port; invitation emails are best-effort
	// and failures must not affect the API response.
	sender := mailer.NewSender(mailer.Config{
		Host: "127.0.0.1", Port: 1, From: "noreply@shelterhub.test", FromName: "ShelterHub",
	})
	h := NewHandler(db, sender, "http://localhost:3000", zap.NewNop())
	for _, ensure := range []func() error{
		func() error { return h.Shelters.EnsureIndexes(ctx) },
		func() error { return h.Users.EnsureIndexes(ctx) },
		func() error { return h.Assignments.EnsureIndexes(ctx) },
	} {
		if err := ensure(); err != nil {
			t.Fatalf("ensure indexes: %v", err)
		}
	}
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreateGrantsAdminToCreator(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Sam Founder", "sam@example.com")

	rec := httptest.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/shelters", `{"name":"Harbor Haven"}`, creator)
	h.HandleCreate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	list, err := h.Assignments.ListByUser(ctx, creator.ID)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(list) != 1 || list[0].RoleID != roles.AdminID {
		t.Fatalf("expected creator to hold admin assignment, got %+v", list)
	}
}

func TestHandleCreateDuplicateName(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Sam Founder", "sam@example.com")
	fx.CreateShelter(ctx, "Harbor Haven")

	rec := httptest.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/shelters", `{"name":"harbor HAVEN"}`, creator)
	h.HandleCreate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestHandleDeleteSoftDeletes(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Going Away")

	rec := httptest.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodDelete, "/shelters/x", ""), "id", shelter.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	// The record survives for reads by id but drops out of default listings.
	got, err := h.Shelters.GetByID(ctx, shelter.ID)
	if err != nil {
		t.Fatalf("get shelter: %v", err)
	}
	if !got.IsDeleted() {
		t.Fatal("expected shelter to be soft-deleted")
	}

	rec = httptest.NewRecorder()
	h.HandleList(rec, testutil.NewRequest(http.MethodGet, "/shelters", ""))
	env := testutil.DecodeEnvelope(t, rec)
	if list, ok := env.ResponseObject.([]any); ok && len(list) != 0 {
		t.Fatalf("expected deleted shelter hidden from listing, got %d entries", len(list))
	}
}

func TestHandleMembers(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Staffed Shelter")
	admin := fx.CreateUser(ctx, "Ada Admin", "ada@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	fx.CreateAssignment(ctx, admin.ID, roles.AdminID, shelter.ID)
	fx.CreateAssignment(ctx, member.ID, roles.MemberID, shelter.ID)

	rec := httptest.NewRecorder()
	h.HandleMembers(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/shelters/x/members", ""), "id", shelter.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	list, ok := env.ResponseObject.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected 2 members, got %v", env.ResponseObject)
	}
}

func TestHandleInviteCreatesPlaceholder(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Inviting Shelter")
	admin := fx.CreateUser(ctx, "Ada Admin", "ada@example.com")
	fx.CreateAssignment(ctx, admin.ID, roles.AdminID, shelter.ID)

	body := `{"email":"newbie@example.com","role_name":"member"}`
	rec := httptest.NewRecorder()
	req := testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(http.MethodPost, "/shelters/x/invite", body, admin),
		"id", shelter.ID.Hex())
	h.HandleInvite(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	invited, err := h.Users.GetByEmail(ctx, "newbie@example.com")
	if err != nil {
		t.Fatalf("placeholder user not created: %v", err)
	}
	if !invited.IsPlaceholder() {
		t.Error("expected invited user to be a placeholder")
	}
	list, err := h.Assignments.Find(ctx, invited.ID, shelter.ID)
	if err != nil || len(list) != 1 || list[0].RoleID != roles.MemberID {
		t.Fatalf("expected member assignment for invitee, got %v (err %v)", list, err)
	}

	// Re-inviting the same role is a conflict.
	rec = httptest.NewRecorder()
	req = testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(http.MethodPost, "/shelters/x/invite", body, admin),
		"id", shelter.ID.Hex())
	h.HandleInvite(rec, req)
	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestHandleListFilters(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateShelter(ctx, "One")
	fx.CreateShelter(ctx, "Two")

	rec := httptest.NewRecorder()
	h.HandleList(rec, testutil.NewRequest(http.MethodGet, fmt.Sprintf("/shelters?city=%s", "Test+City"), ""))
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	list, ok := env.ResponseObject.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected 2 shelters for city filter, got %v", env.ResponseObject)
	}
}
