package services

import (
	"testing"

	"github.com/circlet-app/backend/internal/errs"
	"github.com/circlet-app/backend/internal/repositories"
)

func TestBlockAndUnblock(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewBlockService(store)
	blocker := newTestUser(t, store, "blocker", false)
	target := newTestUser(t, store, "target", false)

	if err := svc.Block(blocker.ID, target.ID); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	exists, err := store.Blocks().ExistsBetween(blocker.ID, target.ID)
	if err != nil || !exists {
		t.Fatalf("expected block row, exists=%v err=%v", exists, err)
	}

	if err := svc.Block(blocker.ID, target.ID); !errs.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate block, got %v", err)
	}

	if err := svc.Unblock(blocker.ID, target.ID); err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if err := svc.Unblock(blocker.ID, target.ID); !errs.IsNotFound(err) {
		t.Fatalf("expected not found on double unblock, got %v", err)
	}
}

func TestBlockGuards(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewBlockService(store)
	user := newTestUser(t, store, "solo", false)

	if err := svc.Block(user.ID, user.ID); !errs.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for self block, got %v", err)
	}
	if err := svc.Block(user.ID, user.ID+99); !errs.IsNotFound(err) {
		t.Fatalf("expected not found for unknown target, got %v", err)
	}
}

func TestBlockIsDirectional(t *testing.T) {
	store := repositories.NewMemoryStore()
	svc := NewBlockService(store)
	a := newTestUser(t, store, "a", false)
	b := newTestUser(t, store, "b", false)

	if err := svc.Block(a.ID, b.ID); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	// Each direction is its own row; both may exist at once.
	if err := svc.Block(b.ID, a.ID); err != nil {
		t.Fatalf("reverse block failed: %v", err)
	}

	if _, err := store.Blocks().FindBlock(a.ID, b.ID); err != nil {
		t.Fatalf("a->b block missing: %v", err)
	}
	if _, err := store.Blocks().FindBlock(b.ID, a.ID); err != nil {
		t.Fatalf("b->a block missing: %v", err)
	}
}
