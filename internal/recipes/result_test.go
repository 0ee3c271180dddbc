package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fridgechef/internal/api"
	"fridgechef/internal/state"
)

func newLoader(t *testing.T, handler http.Handler) *Loader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLoader(api.NewClient(srv.URL+"/api/v1", state.NewMemoryStore()))
}

func strptr(s string) *string { return &s }

func TestLoadReady(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recommendations/rec-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Recommendation{
			ID: "rec-1",
			Recipes: []api.Recipe{
				{Title: "김치찌개", ImageURL: strptr("/static/a.jpg")},
				{Title: "계란말이"},
				{Title: "볶음밥"},
			},
		})
	})
	mux.HandleFunc("GET /api/v1/favorites/stats/rec-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.RecommendationLikeStats{
			RecommendationID: "rec-1",
			Recipes: []api.RecipeLikeCount{
				{RecipeIndex: 0, LikeCount: 4},
				{RecipeIndex: 1, LikeCount: 0},
				{RecipeIndex: 2, LikeCount: 1},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/images/batch", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Titles []string `json:"titles"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Titles) != 2 {
			t.Errorf("expected batch for the 2 imageless recipes, got %v", req.Titles)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []api.BatchImageResult{
				{Title: "계란말이", ImageURL: strptr("https://cdn.example.com/egg.jpg")},
				{Title: "볶음밥"},
			},
		})
	})

	view := newLoader(t, mux).Load(context.Background(), "rec-1")
	if view.Status != StatusReady {
		t.Fatalf("expected ready view, got status %v message %q", view.Status, view.Message)
	}
	if view.LikeFor(0) != 4 || view.LikeFor(2) != 1 {
		t.Fatalf("like counts wrong: %v", view.Likes)
	}
	if view.Images[0] == nil || view.Images[1] == nil {
		t.Fatalf("expected resolved images for recipes 0 and 1, got %v", view.Images)
	}
	if view.Images[2] != nil {
		t.Fatalf("recipe without any image should stay nil, got %q", *view.Images[2])
	}
	if view.ExpandedIdx != 0 {
		t.Fatalf("first recipe should be expanded by default, got %d", view.ExpandedIdx)
	}
}

func TestLoadNotFound(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "추천을 찾을 수 없습니다."}`))
	})

	view := newLoader(t, mux).Load(context.Background(), "gone")
	if view.Status != StatusError || view.ErrKind != ErrorNotFound {
		t.Fatalf("expected not-found error view, got %+v", view)
	}
}

func TestLoadDegradesLikesOnly(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/recommendations/rec-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.Recommendation{
			ID:      "rec-1",
			Recipes: []api.Recipe{{Title: "김치찌개", ImageURL: strptr("https://cdn.example.com/a.jpg")}},
		})
	})
	// stats and batch images 400: page must still be ready.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadRequest)
	})

	view := newLoader(t, mux).Load(context.Background(), "rec-1")
	if view.Status != StatusReady {
		t.Fatalf("like-stats failure must not fail the page: %+v", view)
	}
	if view.LikeFor(0) != 0 {
		t.Fatalf("expected zero likes fallback, got %d", view.LikeFor(0))
	}
}
