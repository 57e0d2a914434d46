package pets

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/shelterhub/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := NewHandler(db, zap.NewNop())
	if err := h.Pets.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure pet indexes: %v", err)
	}
	if err := h.Lookups.Seed(ctx); err != nil {
		t.Fatalf("seed lookups: %v", err)
	}
	return h, testutil.NewFixtures(t, db)
}

func TestHandleCreateAndGet(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Pine Street Shelter")

	body := fmt.Sprintf(`{"name":"Rex","shelter_id":"%s","species_id":1,"sex_id":1,"status_id":1,"size_id":3,"color_ids":[1,2]}`, shelter.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewRequest(http.MethodPost, "/pets", body))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	env := testutil.DecodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success envelope, got %+v", env)
	}
	created, ok := env.ResponseObject.(map[string]any)
	if !ok {
		t.Fatalf("unexpected response object %T", env.ResponseObject)
	}

	getReq := testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/pets/x", ""), "id", created["id"].(string))
	rec = httptest.NewRecorder()
	h.HandleGet(rec, getReq)
	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestHandleCreateRejectsUnknownColor(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Elm Street Shelter")

	body := fmt.Sprintf(`{"name":"Milo","shelter_id":"%s","species_id":2,"sex_id":2,"status_id":1,"size_id":1,"color_ids":[999]}`, shelter.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewRequest(http.MethodPost, "/pets", body))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestHandleCreateUnknownShelter(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"name":"Ghost","shelter_id":"ffffffffffffffffffffffff","species_id":1,"sex_id":1,"status_id":1,"size_id":2}`
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, testutil.NewRequest(http.MethodPost, "/pets", body))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleListFiltersByShelter(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateShelter(ctx, "Shelter A")
	b := fx.CreateShelter(ctx, "Shelter B")
	fx.CreatePet(ctx, "Rex", a.ID)
	fx.CreatePet(ctx, "Milo", a.ID)
	fx.CreatePet(ctx, "Luna", b.ID)

	rec := httptest.NewRecorder()
	h.HandleList(rec, testutil.NewRequest(http.MethodGet, "/pets?shelter_id="+a.ID.Hex(), ""))
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	list, ok := env.ResponseObject.([]any)
	if !ok {
		t.Fatalf("unexpected response object %T", env.ResponseObject)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 pets for shelter A, got %d", len(list))
	}
}

func TestHandleArchiveHidesPetFromGet(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Archive Shelter")
	pet := fx.CreatePet(ctx, "Oldtimer", shelter.ID)

	rec := httptest.NewRecorder()
	h.HandleArchive(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodPost, "/pets/x/archive", ""), "id", pet.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	// Archived pets no longer appear in public reads.
	rec = httptest.NewRecorder()
	h.HandleGet(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodGet, "/pets/x", ""), "id", pet.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	// Archiving twice fails.
	rec = httptest.NewRecorder()
	h.HandleArchive(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodPost, "/pets/x/archive", ""), "id", pet.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleDeleteRemovesPet(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Delete Shelter")
	pet := fx.CreatePet(ctx, "Brief", shelter.ID)

	rec := httptest.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodDelete, "/pets/x", ""), "id", pet.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = httptest.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewRequest(http.MethodDelete, "/pets/x", ""), "id", pet.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandleUpdate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	shelter := fx.CreateShelter(ctx, "Update Shelter")
	pet := fx.CreatePet(ctx, "Rename Me", shelter.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewRequest(http.MethodPatch, "/pets/x", `{"name":"Renamed","status_id":3}`), "id", pet.ID.Hex())
	h.HandleUpdate(rec, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	env := testutil.DecodeEnvelope(t, rec)
	obj := env.ResponseObject.(map[string]any)
	if obj["name"] != "Renamed" {
		t.Errorf("name not updated: %v", obj["name"])
	}
	if obj["status_id"].(float64) != 3 {
		t.Errorf("status_id not updated: %v", obj["status_id"])
	}
}
