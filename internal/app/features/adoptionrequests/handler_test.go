package adoptionrequests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/shelterhub/internal/domain/models"
	"github.com/dalemusser/shelterhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := NewHandler(db, zap.NewNop())
	if err := h.Requests.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreateStartsPending(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")

	body := fmt.Sprintf(`{"pet_id":"%s","answers":{"housing":"house","yard":true}}`, pet.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/adoption-requests", body, applicant))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	env := testutil.DecodeEnvelope(t, rec)
	obj := env.ResponseObject.(map[string]any)
	if obj["status_id"].(float64) != models.AdoptionStatusPending {
		t.Errorf("expected pending status, got %v", obj["status_id"])
	}
	if obj["user_id"] != applicant.ID.Hex() {
		t.Errorf("applicant not recorded: %v", obj["user_id"])
	}
}

func TestHandleCreateRejectsArchivedPet(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	if err := h.Pets.Archive(ctx, pet.ID); err != nil {
		t.Fatalf("archive pet: %v", err)
	}
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")

	body := fmt.Sprintf(`{"pet_id":"%s","answers":{}}`, pet.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewAuthenticatedRequest(http.MethodPost, "/adoption-requests", body, applicant))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleUpdateOnlyApplicant(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")
	stranger := fx.CreateUser(ctx, "Bob Bystander", "bob@example.com")
	req := fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)

	body := `{"answers":{"housing":"farm"}}`

	rec := httptest.NewRecorder()
	r := testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(http.MethodPatch, "/adoption-requests/x", body, stranger),
		"id", req.ID.Hex())
	h.HandleUpdate(rec, r)
	testutil.AssertStatus(t, rec, http.StatusForbidden)

	rec = httptest.NewRecorder()
	r = testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(http.MethodPatch, "/adoption-requests/x", body, applicant),
		"id", req.ID.Hex())
	h.HandleUpdate(rec, r)
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestHandleUpdateRejectsProcessedRequest(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")
	req := fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)

	if err := h.Requests.Process(ctx, req.ID, models.AdoptionStatusApproved, nil); err != nil {
		t.Fatalf("process request: %v", err)
	}

	rec := httptest.NewRecorder()
	r := testutil.WithChiURLParam(
		testutil.NewAuthenticatedRequest(http.MethodPatch, "/adoption-requests/x", `{"answers":{}}`, applicant),
		"id", req.ID.Hex())
	h.HandleUpdate(rec, r)
	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestHandleProcess(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")
	req := fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)

	body := `{"status_id":2,"admin_message":"Welcome aboard"}`
	rec := httptest.NewRecorder()
	r := testutil.WithChiURLParam(testutil.NewRequest(http.MethodPatch, "/adoption-requests/x/process", body), "id", req.ID.Hex())
	h.HandleProcess(rec, r)
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	obj := env.ResponseObject.(map[string]any)
	if obj["status_id"].(float64) != models.AdoptionStatusApproved {
		t.Errorf("status not updated: %v", obj["status_id"])
	}
	if obj["admin_message"] != "Welcome aboard" {
		t.Errorf("admin message not stored: %v", obj["admin_message"])
	}
}

func TestHandleProcessInvalidStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")
	req := fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)

	rec := httptest.NewRecorder()
	r := testutil.WithChiURLParam(testutil.NewRequest(http.MethodPatch, "/adoption-requests/x/process", `{"status_id":42}`), "id", req.ID.Hex())
	h.HandleProcess(rec, r)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestHandleListByStatus(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Petville")
	pet := fx.CreatePet(ctx, "Rex", shelter.ID)
	applicant := fx.CreateUser(ctx, "Alice Applicant", "alice@example.com")
	a := fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)
	fx.CreateAdoptionRequest(ctx, pet.ID, applicant.ID)

	if err := h.Requests.Process(ctx, a.ID, models.AdoptionStatusRejected, nil); err != nil {
		t.Fatalf("process request: %v", err)
	}

	rec := httptest.NewRecorder()
	h.HandleList(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/adoption-requests?status_id=1", "", applicant))
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	list, ok := env.ResponseObject.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected 1 pending request, got %v", env.ResponseObject)
	}
}
