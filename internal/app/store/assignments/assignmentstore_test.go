// internal/app/store/assignments/assignmentstore_test.go
package assignmentstore_test

import (
	"errors"
	"testing"

	assignmentstore "github.com/dalemusser/shelterhub/internal/app/store/assignments"
	"github.com/dalemusser/shelterhub/internal/app/system/roles"
	"github.com/dalemusser/shelterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStore(t *testing.T) *assignmentstore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	return store
}

func TestStore_Create_Duplicate(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()

	if _, err := store.Create(ctx, userID, roles.MemberID, shelterID); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, userID, roles.MemberID, shelterID); !errors.Is(err, assignmentstore.ErrDuplicateAssignment) {
		t.Errorf("expected ErrDuplicateAssignment, got %v", err)
	}

	// A different role at the same shelter is a new assignment, not a dup.
	if _, err := store.Create(ctx, userID, roles.AdminID, shelterID); err != nil {
		t.Errorf("admin assignment at same shelter failed: %v", err)
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, primitive.NewObjectID(), 99, primitive.NewObjectID()); !errors.Is(err, assignmentstore.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestStore_Find_InsertionOrder(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()
	otherShelter := primitive.NewObjectID()

	if _, err := store.Create(ctx, userID, roles.MemberID, shelterID); err != nil {
		t.Fatalf("Create member failed: %v", err)
	}
	if _, err := store.Create(ctx, userID, roles.AdminID, shelterID); err != nil {
		t.Fatalf("Create admin failed: %v", err)
	}
	if _, err := store.Create(ctx, userID, roles.AdopterID, otherShelter); err != nil {
		t.Fatalf("Create at other shelter failed: %v", err)
	}

	found, err := store.Find(ctx, userID, shelterID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(found))
	}
	if found[0].RoleID != roles.MemberID {
		t.Errorf("expected first assignment to be the earliest created, got role %d", found[0].RoleID)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	shelterID := primitive.NewObjectID()

	if _, err := store.Create(ctx, userID, roles.MemberID, shelterID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, userID, roles.MemberID, shelterID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, userID, roles.MemberID, shelterID); !errors.Is(err, assignmentstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
