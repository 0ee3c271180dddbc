package web

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"fridgechef/internal/api"
	"fridgechef/internal/auth"
	"fridgechef/internal/favorites"
	"fridgechef/internal/pantry"
	"fridgechef/internal/recipes"
	"fridgechef/internal/state"
)

// Handler wires every page controller to the shared services. Each route
// reads persisted/local state, calls the API client, and renders; nothing
// here is authoritative over the backend's data.
type Handler struct {
	client       *api.Client
	session      *auth.Session
	store        state.Store // durable, per data dir
	sessionStore state.Store // process-lifetime flags (login banner)
	pantry       *pantry.Pantry
	pending      *favorites.PendingStore
	loader       *recipes.Loader
	validate     *validator.Validate

	drafts drafts

	mu        sync.Mutex
	remaining *int // last anonymous daily-remaining hint
	steps     map[string]*recipes.StepTracker
}

// drafts are the locally persisted search form fields.
type drafts struct {
	Ingredients *state.Persisted[string]
	Exclude     *state.Persisted[string]
	TimeLimit   *state.Persisted[int]
	Servings    *state.Persisted[int]
	Tools       *state.Persisted[[]string]
}

func NewHandler(client *api.Client, session *auth.Session, store state.Store) *Handler {
	return &Handler{
		client:       client,
		session:      session,
		store:        store,
		sessionStore: state.NewMemoryStore(),
		pantry:       pantry.New(store),
		pending:      favorites.NewPendingStore(store),
		loader:       recipes.NewLoader(client),
		validate:     validator.New(),
		drafts: drafts{
			Ingredients: state.NewPersisted(store, state.KeyIngredients, "계란, 김치, 양파"),
			Exclude:     state.NewPersisted(store, state.KeyExclude, ""),
			TimeLimit:   state.NewPersisted(store, state.KeyTimeLimit, 15),
			Servings:    state.NewPersisted(store, state.KeyServings, 1),
			Tools:       state.NewPersisted(store, state.KeyTools, []string{"프라이팬"}),
		},
		steps: make(map[string]*recipes.StepTracker),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST /search", h.handleSearch)
	mux.HandleFunc("POST /search/again", h.handleSearchAgain)
	mux.HandleFunc("POST /search/tool", h.handleToolToggle)
	mux.HandleFunc("POST /search/pantry-merge", h.handlePantryMerge)
	mux.HandleFunc("POST /banner/dismiss", h.handleBannerDismiss)
	mux.HandleFunc("POST /onboarding/done", h.handleOnboardingDone)

	mux.HandleFunc("GET /r/{id}", h.handleResult)
	mux.HandleFunc("POST /r/{id}/favorite", h.handleResultFavorite)
	mux.HandleFunc("POST /r/{id}/step", h.handleResultStep)
	mux.HandleFunc("POST /r/{id}/pantry", h.handleResultPantry)

	mux.HandleFunc("GET /favorites", h.handleFavorites)
	mux.HandleFunc("POST /favorites/{id}/delete", h.handleFavoriteDelete)

	mux.HandleFunc("GET /history", h.handleHistory)
	mux.HandleFunc("POST /history/{id}/delete", h.handleHistoryDelete)
	mux.HandleFunc("POST /history/clear", h.handleHistoryClear)

	mux.HandleFunc("GET /pantry", h.handlePantry)
	mux.HandleFunc("POST /pantry/add", h.handlePantryAdd)
	mux.HandleFunc("POST /pantry/remove", h.handlePantryRemove)
	mux.HandleFunc("POST /pantry/clear", h.handlePantryClear)

	mux.HandleFunc("GET /login", h.handleLoginPage)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /signup", h.handleSignupPage)
	mux.HandleFunc("POST /signup", h.handleSignup)
	mux.HandleFunc("POST /logout", h.handleLogout)
}

// currentUser returns the session user, running the initial probe when it
// hasn't completed yet.
func (h *Handler) currentUser(r *http.Request) *api.User {
	user, loading := h.session.User()
	if loading {
		h.session.CheckAuth(r.Context())
		user, _ = h.session.User()
	}
	return user
}

// requireUser redirects anonymous visitors to login and reports whether the
// caller may proceed.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (*api.User, bool) {
	user := h.currentUser(r)
	if user == nil {
		redirectToLogin(w, r, r.URL.Path)
		return nil, false
	}
	return user, true
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, returnURL string) {
	http.Redirect(w, r, "/login?returnUrl="+url.QueryEscape(returnURL), http.StatusSeeOther)
}

func render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "template execute error", "template", tmpl.Name(), "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// setRemaining records the latest anonymous quota hint.
func (h *Handler) setRemaining(n *int) {
	if n == nil {
		return
	}
	h.mu.Lock()
	h.remaining = n
	h.mu.Unlock()
}

func (h *Handler) dailyRemaining() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.remaining == nil {
		return 0, false
	}
	return *h.remaining, true
}

func (h *Handler) tracker(id string) *recipes.StepTracker {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.steps[id]
	if !ok {
		t = recipes.NewStepTracker()
		h.steps[id] = t
	}
	return t
}

// formatRelativeTime renders an RFC3339 timestamp as Korean relative copy.
func formatRelativeTime(raw string) string {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	elapsed := time.Since(ts)
	switch {
	case elapsed < time.Minute:
		return "방금 전"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d분 전", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%d일 전", int(elapsed.Hours()/24))
	}
}
