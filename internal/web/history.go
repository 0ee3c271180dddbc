package web

import (
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"fridgechef/internal/api"
	"fridgechef/internal/templates"
)

type fullHistoryView struct {
	ID               string
	RecommendationID string
	Ingredients      []string
	TimeLimitMin     int
	Servings         int
	RecipeTitles     []string
	SearchedAgo      string
}

type historyData struct {
	User      *api.User
	Histories []fullHistoryView
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	// Best-effort fetch: failures show as an empty list, never an error page.
	entries := h.client.GetSearchHistories(r.Context(), 20)
	h.renderHistory(w, r, user, entries)
}

func (h *Handler) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	entries := h.client.GetSearchHistories(r.Context(), 20)
	if err := h.client.DeleteSearchHistory(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete search history", "id", id, "error", err)
	} else {
		entries = lo.Filter(entries, func(e api.SearchHistory, _ int) bool { return e.ID != id })
	}
	h.renderHistory(w, r, user, entries)
}

func (h *Handler) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	deleted, err := h.client.ClearAllSearchHistories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to clear search histories", "error", err)
		h.renderHistory(w, r, user, h.client.GetSearchHistories(r.Context(), 20))
		return
	}
	slog.InfoContext(r.Context(), "cleared search histories", "deleted_count", deleted)
	h.renderHistory(w, r, user, nil)
}

func (h *Handler) renderHistory(w http.ResponseWriter, r *http.Request, user *api.User, entries []api.SearchHistory) {
	data := historyData{User: user}
	data.Histories = lo.Map(entries, func(e api.SearchHistory, _ int) fullHistoryView {
		return fullHistoryView{
			ID:               e.ID,
			RecommendationID: e.RecommendationID,
			Ingredients:      e.Ingredients,
			TimeLimitMin:     e.TimeLimitMin,
			Servings:         e.Servings,
			RecipeTitles:     e.RecipeTitles,
			SearchedAgo:      formatRelativeTime(e.SearchedAt),
		}
	})
	render(w, r, templates.History, data)
}
