// internal/app/store/users/userstore_test.go
package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/shelterhub/internal/app/store/users"
	"github.com/dalemusser/shelterhub/internal/app/system/auth"
	"github.com/dalemusser/shelterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *userstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return store
}

func TestStore_SyncFromIdentity_CreatesUser(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := auth.Identity{SubjectID: "sub-1", Email: "Jane@Example.com", Name: "Jane Doe"}
	u, err := store.SyncFromIdentity(ctx, id)
	if err != nil {
		t.Fatalf("SyncFromIdentity failed: %v", err)
	}
	if u.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if u.Email != "jane@example.com" {
		t.Errorf("email: got %q, want normalized lowercase", u.Email)
	}
	if u.SubjectID == nil || *u.SubjectID != "sub-1" {
		t.Errorf("subject id: got %v", u.SubjectID)
	}
}

func TestStore_SyncFromIdentity_Idempotent(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := auth.Identity{SubjectID: "sub-2", Email: "sam@example.com", Name: "Sam"}
	first, err := store.SyncFromIdentity(ctx, id)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	second, err := store.SyncFromIdentity(ctx, id)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("sync not idempotent: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestStore_SyncFromIdentity_RefreshesChangedClaims(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.SyncFromIdentity(ctx, auth.Identity{
		SubjectID: "sub-5", Email: "old@example.com", Name: "Old Name",
	})
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}

	second, err := store.SyncFromIdentity(ctx, auth.Identity{
		SubjectID: "sub-5", Email: "New@Example.com", Name: "New Name",
	})
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record, got %s vs %s", first.ID.Hex(), second.ID.Hex())
	}
	if second.Email != "new@example.com" {
		t.Errorf("email not refreshed: got %q", second.Email)
	}
	if second.FullName != "New Name" {
		t.Errorf("full name not refreshed: got %q", second.FullName)
	}

	reloaded, err := store.GetBySubjectID(ctx, "sub-5")
	if err != nil {
		t.Fatalf("GetBySubjectID failed: %v", err)
	}
	if reloaded.Email != "new@example.com" || reloaded.FullName != "New Name" {
		t.Errorf("stored record stale: email=%q name=%q", reloaded.Email, reloaded.FullName)
	}
	if reloaded.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v vs %v", reloaded.UpdatedAt, first.UpdatedAt)
	}
}

func TestStore_SyncFromIdentity_AttachesToPlaceholder(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	placeholder, err := store.CreatePlaceholder(ctx, "invited@example.com")
	if err != nil {
		t.Fatalf("CreatePlaceholder failed: %v", err)
	}
	if !placeholder.IsPlaceholder() {
		t.Fatal("expected placeholder to have no subject id")
	}

	id := auth.Identity{SubjectID: "sub-3", Email: "INVITED@example.com", Name: "Invited Person"}
	synced, err := store.SyncFromIdentity(ctx, id)
	if err != nil {
		t.Fatalf("SyncFromIdentity failed: %v", err)
	}
	if synced.ID != placeholder.ID {
		t.Errorf("expected sync to reuse placeholder %s, got %s", placeholder.ID.Hex(), synced.ID.Hex())
	}
	if synced.SubjectID == nil || *synced.SubjectID != "sub-3" {
		t.Errorf("subject id not attached: %v", synced.SubjectID)
	}
	if synced.FullName != "Invited Person" {
		t.Errorf("full name: got %q", synced.FullName)
	}
}

func TestStore_CreatePlaceholder_DuplicateEmail(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.CreatePlaceholder(ctx, "dup@example.com"); err != nil {
		t.Fatalf("first CreatePlaceholder failed: %v", err)
	}
	if _, err := store.CreatePlaceholder(ctx, "dup@example.com"); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.CreatePlaceholder(ctx, "todelete@example.com")
	if err != nil {
		t.Fatalf("CreatePlaceholder failed: %v", err)
	}
	if err := store.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, u.ID); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
