package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fridgechef/internal/api"
	"fridgechef/internal/state"
)

func newBackend(t *testing.T, handler http.Handler) (*api.Client, *state.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := state.NewMemoryStore()
	return api.NewClient(srv.URL+"/api/v1", store), store
}

func TestCheckAuthWithoutToken(t *testing.T) {
	t.Parallel()

	client, _ := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend without a token")
	}))

	s := NewSession(client)
	if _, loading := s.User(); !loading {
		t.Fatal("fresh session should report loading")
	}

	s.CheckAuth(context.Background())
	user, loading := s.User()
	if user != nil || loading {
		t.Fatalf("expected settled anonymous session, got user=%v loading=%v", user, loading)
	}
}

func TestCheckAuthWithValidToken(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{ID: "u1", Email: "a@b.com"})
	})

	client, store := newBackend(t, mux)
	if err := store.Set(state.KeyAccessToken, "tok-1"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	s := NewSession(client)
	s.CheckAuth(context.Background())

	user, loading := s.User()
	if loading {
		t.Fatal("loading should end after the probe")
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("expected user u1, got %v", user)
	}
}

func TestCheckAuthFailedProbeClearsToken(t *testing.T) {
	t.Parallel()

	client, store := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid token"}`))
	}))
	if err := store.Set(state.KeyAccessToken, "stale"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	s := NewSession(client)
	s.CheckAuth(context.Background())

	if user, _ := s.User(); user != nil {
		t.Fatalf("expected anonymous session after failed probe, got %v", user)
	}
	if _, ok := store.Get(state.KeyAccessToken); ok {
		t.Fatal("stale token should be erased by the failed probe")
	}
}

func TestSubscribeNotifiesAndCancels(t *testing.T) {
	t.Parallel()

	client, _ := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	s := NewSession(client)

	var calls int
	cancel := s.Subscribe(func(*api.User) { calls++ })

	s.CheckAuth(context.Background())
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	cancel()
	s.Logout()
	if calls != 1 {
		t.Fatalf("cancelled subscriber was notified, calls=%d", calls)
	}
}
