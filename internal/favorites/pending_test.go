package favorites

import (
	"testing"
	"time"

	"fridgechef/internal/state"
)

func TestTakeReturnsSavedRecord(t *testing.T) {
	t.Parallel()

	ps := NewPendingStore(state.NewMemoryStore())
	ps.Save(Pending{RecommendationID: "rec-1", RecipeIndex: 2, RecipeTitle: "김치볶음밥"})

	p, ok := ps.Take("rec-1")
	if !ok {
		t.Fatal("expected pending record")
	}
	if p.RecipeIndex != 2 || p.RecipeTitle != "김치볶음밥" {
		t.Fatalf("unexpected record: %+v", p)
	}

	// One attempt only.
	if _, ok := ps.Take("rec-1"); ok {
		t.Fatal("record should be consumed by the first take")
	}
}

func TestTakeIgnoresOtherRecommendation(t *testing.T) {
	t.Parallel()

	ps := NewPendingStore(state.NewMemoryStore())
	ps.Save(Pending{RecommendationID: "rec-1", RecipeIndex: 0})

	if _, ok := ps.Take("rec-2"); ok {
		t.Fatal("record for a different recommendation must not be taken")
	}
	// Still there for its own page.
	if _, ok := ps.Take("rec-1"); !ok {
		t.Fatal("record should survive a non-matching take")
	}
}

func TestTakeDiscardsExpired(t *testing.T) {
	t.Parallel()

	store := state.NewMemoryStore()
	ps := NewPendingStore(store)
	ps.Save(Pending{RecommendationID: "rec-1", RecipeIndex: 0})

	ps.now = func() time.Time { return time.Now().Add(PendingTTL + time.Minute) }
	if _, ok := ps.Take("rec-1"); ok {
		t.Fatal("expired record must not be taken")
	}
	if _, ok := store.Get(state.KeyPendingFavorite); ok {
		t.Fatal("expired record should be deleted from the store")
	}
}

func TestTakeDiscardsCorrupt(t *testing.T) {
	t.Parallel()

	store := state.NewMemoryStore()
	if err := store.Set(state.KeyPendingFavorite, "{broken"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	ps := NewPendingStore(store)
	if _, ok := ps.Take("rec-1"); ok {
		t.Fatal("corrupt record must not be taken")
	}
	if _, ok := store.Get(state.KeyPendingFavorite); ok {
		t.Fatal("corrupt record should be deleted from the store")
	}
}
