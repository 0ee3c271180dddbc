package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fridgechef/internal/api"
	"fridgechef/internal/state"
)

// PendingTTL bounds how long a favorite clicked before login stays
// replayable.
const PendingTTL = 10 * time.Minute

// Pending is the durable record of a favorite an anonymous user asked for.
// It is written before the login redirect and replayed once afterward.
type Pending struct {
	RecommendationID string  `json:"recommendationId"`
	RecipeIndex      int     `json:"recipeIndex"`
	RecipeTitle      string  `json:"recipeTitle"`
	RecipeImageURL   *string `json:"recipeImageUrl"`
	Timestamp        int64   `json:"timestamp"` // unix millis
}

type PendingStore struct {
	store state.Store
	now   func() time.Time
}

func NewPendingStore(store state.Store) *PendingStore {
	return &PendingStore{store: store, now: time.Now}
}

func (ps *PendingStore) Save(p Pending) {
	p.Timestamp = ps.now().UnixMilli()
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = ps.store.Set(state.KeyPendingFavorite, string(raw))
}

// Take returns the pending record for recommendationID if one exists, parses,
// and is younger than PendingTTL. The record is discarded on parse failure,
// on expiry, and whenever it targets the given recommendation: replay gets
// exactly one attempt.
func (ps *PendingStore) Take(recommendationID string) (Pending, bool) {
	raw, ok := ps.store.Get(state.KeyPendingFavorite)
	if !ok {
		return Pending{}, false
	}

	var p Pending
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		ps.store.Delete(state.KeyPendingFavorite)
		return Pending{}, false
	}

	if ps.now().Sub(time.UnixMilli(p.Timestamp)) > PendingTTL {
		ps.store.Delete(state.KeyPendingFavorite)
		return Pending{}, false
	}

	if p.RecommendationID != recommendationID {
		return Pending{}, false
	}

	ps.store.Delete(state.KeyPendingFavorite)
	return p, true
}

// Replay completes a taken record against the backend. An already-favorited
// conflict counts as success; any other failure is logged and dropped.
func Replay(ctx context.Context, client *api.Client, p Pending) bool {
	_, err := client.AddFavorite(ctx, p.RecommendationID, p.RecipeIndex, p.RecipeTitle, p.RecipeImageURL)
	if err == nil || errors.Is(err, api.ErrAlreadyFavorite) {
		return true
	}
	slog.WarnContext(ctx, "pending favorite replay failed", "recommendation_id", p.RecommendationID, "recipe_index", p.RecipeIndex, "error", err)
	return false
}
