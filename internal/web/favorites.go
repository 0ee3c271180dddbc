package web

import (
	"net/http"

	"github.com/samber/lo"

	"fridgechef/internal/api"
	"fridgechef/internal/templates"
)

type favoriteView struct {
	ID               string
	RecommendationID string
	RecipeTitle      string
	ImageURL         *string
	CreatedAgo       string
}

type favoritesData struct {
	User         *api.User
	ErrorMessage string
	Favorites    []favoriteView
}

func (h *Handler) handleFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	favs, err := h.client.GetFavorites(r.Context())
	if err != nil {
		render(w, r, templates.Favorites, favoritesData{User: user, ErrorMessage: err.Error()})
		return
	}
	h.renderFavorites(w, r, user, favs)
}

// handleFavoriteDelete removes the favorite server-side, then renders the
// list it already holds minus the deleted entry, so the row disappears
// immediately and cannot reappear without a fresh fetch.
func (h *Handler) handleFavoriteDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	favs, err := h.client.GetFavorites(r.Context())
	if err != nil {
		render(w, r, templates.Favorites, favoritesData{User: user, ErrorMessage: err.Error()})
		return
	}
	if err := h.client.RemoveFavorite(r.Context(), id); err != nil {
		render(w, r, templates.Favorites, favoritesData{User: user, ErrorMessage: err.Error()})
		return
	}
	favs = lo.Filter(favs, func(f api.Favorite, _ int) bool { return f.ID != id })
	h.renderFavorites(w, r, user, favs)
}

func (h *Handler) renderFavorites(w http.ResponseWriter, r *http.Request, user *api.User, favs []api.Favorite) {
	data := favoritesData{User: user}
	data.Favorites = lo.Map(favs, func(f api.Favorite, _ int) favoriteView {
		return favoriteView{
			ID:               f.ID,
			RecommendationID: f.RecommendationID,
			RecipeTitle:      f.RecipeTitle,
			ImageURL:         h.client.ResolveImageURL(f.RecipeImageURL),
			CreatedAgo:       formatRelativeTime(f.CreatedAt),
		}
	})
	render(w, r, templates.Favorites, data)
}
