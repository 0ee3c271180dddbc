package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"fridgechef/internal/api"
	"fridgechef/internal/ingredients"
	"fridgechef/internal/pantry"
	"fridgechef/internal/state"
	"fridgechef/internal/templates"
)

var (
	timeOptions    = []int{10, 15, 20}
	servingOptions = []int{1, 2, 3, 4}
)

type toolOption struct {
	Name     string
	Selected bool
}

type historyView struct {
	ID           string
	Ingredients  []string
	TimeLimitMin int
	Servings     int
	SearchedAgo  string
}

type homeData struct {
	User            *api.User
	Stats           *api.Stats
	ShowOnboarding  bool
	ShowLoginBanner bool

	IngredientsText string
	Parsed          []string
	ExcludeText     string
	TimeLimit       int
	TimeOptions     []int
	Servings        int
	ServingOptions  []int
	Tools           []toolOption
	PantryCount     int

	Recent []historyView

	ErrorMessage string
	RateLimited  bool
	HasRemaining bool
	Remaining    int
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, "", false)
}

func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, errorMessage string, rateLimited bool) {
	ctx := r.Context()
	user := h.currentUser(r)

	data := homeData{
		User:            user,
		IngredientsText: h.drafts.Ingredients.Get(),
		Parsed:          ingredients.Parse(h.drafts.Ingredients.Get()),
		ExcludeText:     h.drafts.Exclude.Get(),
		TimeLimit:       h.drafts.TimeLimit.Get(),
		TimeOptions:     timeOptions,
		Servings:        h.drafts.Servings.Get(),
		ServingOptions:  servingOptions,
		PantryCount:     len(h.pantry.Items()),
		ErrorMessage:    errorMessage,
		RateLimited:     rateLimited,
	}

	selected := h.drafts.Tools.Get()
	data.Tools = lo.Map(ingredients.Tools, func(name string, _ int) toolOption {
		return toolOption{Name: name, Selected: lo.Contains(selected, name)}
	})

	// Enrichment, all best-effort: stats line, recent histories, quota hint.
	if stats := h.client.GetStats(ctx); stats.TotalRecipesGenerated > 0 {
		data.Stats = &stats
	}
	if user != nil {
		data.Recent = lo.Map(h.client.GetSearchHistories(ctx, 3), func(e api.SearchHistory, _ int) historyView {
			return historyView{
				ID:           e.ID,
				Ingredients:  e.Ingredients,
				TimeLimitMin: e.TimeLimitMin,
				Servings:     e.Servings,
				SearchedAgo:  formatRelativeTime(e.SearchedAt),
			}
		})
	}
	if user == nil {
		if n, ok := h.dailyRemaining(); ok {
			data.HasRemaining = true
			data.Remaining = n
		}
		_, dismissed := h.sessionStore.Get(state.KeyLoginBannerClosed)
		data.ShowLoginBanner = !dismissed
	}
	if _, done := h.store.Get(state.KeyOnboardingCompleted); !done {
		data.ShowOnboarding = true
	}

	render(w, r, templates.Home, data)
}

// handleSearch submits the current form: drafts are persisted first so the
// inputs survive a reload either way, then the recommendation request runs.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	h.drafts.Ingredients.Set(r.FormValue("ingredients"))
	h.drafts.Exclude.Set(r.FormValue("exclude"))
	if n, err := strconv.Atoi(r.FormValue("time_limit_min")); err == nil {
		h.drafts.TimeLimit.Set(n)
	}
	if n, err := strconv.Atoi(r.FormValue("servings")); err == nil {
		h.drafts.Servings.Set(n)
	}

	parsed := ingredients.Parse(h.drafts.Ingredients.Get())
	if len(parsed) == 0 {
		h.renderHome(w, r, "재료를 입력해주세요", false)
		return
	}

	h.createAndRedirect(w, r, api.RecommendationCreate{
		Ingredients: parsed,
		Constraints: api.Constraints{
			TimeLimitMin: h.drafts.TimeLimit.Get(),
			Servings:     h.drafts.Servings.Get(),
			Tools:        h.drafts.Tools.Get(),
			Exclude:      ingredients.Parse(h.drafts.Exclude.Get()),
		},
	})
}

// handleSearchAgain re-runs a stored search directly, mirroring its
// ingredients and constraints into the form drafts on the way.
func (h *Handler) handleSearchAgain(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	parsed := ingredients.Parse(r.FormValue("ingredients"))
	if len(parsed) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	timeLimit := h.drafts.TimeLimit.Get()
	if n, err := strconv.Atoi(r.FormValue("time_limit_min")); err == nil {
		timeLimit = n
	}
	servings := h.drafts.Servings.Get()
	if n, err := strconv.Atoi(r.FormValue("servings")); err == nil {
		servings = n
	}

	h.drafts.Ingredients.Set(strings.Join(parsed, ", "))
	h.drafts.TimeLimit.Set(timeLimit)
	h.drafts.Servings.Set(servings)

	h.createAndRedirect(w, r, api.RecommendationCreate{
		Ingredients: parsed,
		Constraints: api.Constraints{
			TimeLimitMin: timeLimit,
			Servings:     servings,
			Tools:        h.drafts.Tools.Get(),
			Exclude:      []string{},
		},
	})
}

func (h *Handler) createAndRedirect(w http.ResponseWriter, r *http.Request, payload api.RecommendationCreate) {
	result, err := h.client.CreateRecommendation(r.Context(), payload)
	if err != nil {
		if api.IsRateLimited(err) {
			zero := 0
			h.setRemaining(&zero)
			h.renderHome(w, r, err.Error(), true)
			return
		}
		h.renderHome(w, r, err.Error(), false)
		return
	}
	h.setRemaining(result.DailyRemaining)
	http.Redirect(w, r, "/r/"+url.PathEscape(result.ID), http.StatusSeeOther)
}

func (h *Handler) handleToolToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	// The rest of the form rides along so toggling a chip loses nothing.
	h.drafts.Ingredients.Set(r.FormValue("ingredients"))
	h.drafts.Exclude.Set(r.FormValue("exclude"))

	tool := r.FormValue("tool")
	if tool != "" {
		h.drafts.Tools.Update(func(selected []string) []string {
			return ingredients.ToggleTool(selected, tool)
		})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handlePantryMerge folds the standing pantry into the ingredient textbox:
// pantry items first, duplicates dropped, rejoined with commas. One-shot.
func (h *Handler) handlePantryMerge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	current := ingredients.Parse(r.FormValue("ingredients"))
	merged := pantry.Merge(h.pantry.Items(), current)
	h.drafts.Ingredients.Set(strings.Join(merged, ", "))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleBannerDismiss(w http.ResponseWriter, r *http.Request) {
	_ = h.sessionStore.Set(state.KeyLoginBannerClosed, "1")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleOnboardingDone(w http.ResponseWriter, r *http.Request) {
	_ = h.store.Set(state.KeyOnboardingCompleted, "1")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
