package auth

import (
	"context"
	"log/slog"
	"sync"

	"fridgechef/internal/api"
)

// Session is the tab-lifetime auth state: the current user plus a loading
// flag, derived from token presence and a /auth/me probe. It is constructed
// explicitly and handed to every page rather than held as a package-level
// singleton.
type Session struct {
	client *api.Client

	mu          sync.Mutex
	user        *api.User
	loading     bool
	subscribers map[int]func(*api.User)
	nextSub     int
}

func NewSession(client *api.Client) *Session {
	return &Session{
		client:      client,
		loading:     true,
		subscribers: make(map[int]func(*api.User)),
	}
}

// User returns the current user (nil when anonymous) and whether the initial
// probe is still in flight.
func (s *Session) User() (*api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.loading
}

// CheckAuth re-derives the session. No token resolves immediately to an
// anonymous session. A token triggers the who-am-I probe; a failed probe is
// an implicit logout (token erased, user nil). Loading always ends false.
func (s *Session) CheckAuth(ctx context.Context) {
	if !s.client.IsLoggedIn() {
		s.setUser(nil)
		return
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		slog.WarnContext(ctx, "auth probe failed, clearing token", "error", err)
		s.client.Logout()
		s.setUser(nil)
		return
	}
	s.setUser(user)
}

// Logout clears the token and resets the user synchronously. It never calls
// the backend.
func (s *Session) Logout() {
	s.client.Logout()
	s.setUser(nil)
}

// Subscribe registers fn for user changes and returns a cancel func.
func (s *Session) Subscribe(fn func(*api.User)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Session) setUser(user *api.User) {
	s.mu.Lock()
	s.user = user
	s.loading = false
	fns := make([]func(*api.User), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}
