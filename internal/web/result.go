package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"fridgechef/internal/api"
	"fridgechef/internal/favorites"
	"fridgechef/internal/recipes"
	"fridgechef/internal/templates"
)

type stepView struct {
	RecipeIndex int
	Index       int
	Text        string
	Done        bool
}

type recipeView struct {
	Index          int
	Title          string
	TimeMin        int
	Servings       int
	Summary        string
	ImageURL       *string
	Total          []string
	Have           []string
	Need           []string
	Steps          []stepView
	Tips           []string
	Warnings       []string
	LikeCount      int
	Favorited      bool
	Expanded       bool
	CompletedSteps int
	Progress       int
}

type shoppingItemView struct {
	Item        string
	PurchaseURL *string
	InPantry    bool
}

type resultData struct {
	User         *api.User
	ID           string
	NotFound     bool
	ErrorMessage string
	Recipes      []recipeView
	ShoppingList []shoppingItemView
}

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	user := h.currentUser(r)

	// A favorite deferred from before login gets exactly one replay attempt.
	if user != nil {
		if pending, ok := h.pending.Take(id); ok {
			favorites.Replay(ctx, h.client, pending)
		}
	}

	view := h.loader.Load(ctx, id)
	data := resultData{User: user, ID: id}

	if view.Status == recipes.StatusError {
		if view.ErrKind == recipes.ErrorNotFound {
			data.NotFound = true
		} else {
			data.ErrorMessage = view.Message
		}
		render(w, r, templates.Result, data)
		return
	}

	expanded := view.ExpandedIdx
	if raw := r.URL.Query().Get("expand"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			expanded = n
		}
	}

	tracker := h.tracker(id)
	for i, recipe := range view.Data.Recipes {
		rv := recipeView{
			Index:          i,
			Title:          recipe.Title,
			TimeMin:        recipe.TimeMin,
			Servings:       recipe.Servings,
			Summary:        recipe.Summary,
			ImageURL:       view.Images[i],
			Total:          recipe.IngredientsTotal,
			Have:           recipe.IngredientsHave,
			Need:           recipe.IngredientsNeed,
			Tips:           recipe.Tips,
			Warnings:       recipe.Warnings,
			LikeCount:      view.LikeFor(i),
			Expanded:       i == expanded,
			CompletedSteps: tracker.Completed(i),
			Progress:       tracker.Progress(i, len(recipe.Steps)),
		}
		for j, step := range recipe.Steps {
			rv.Steps = append(rv.Steps, stepView{RecipeIndex: i, Index: j, Text: step, Done: tracker.Done(i, j)})
		}
		if user != nil {
			rv.Favorited = h.client.CheckFavorite(ctx, id, i).IsFavorite
		}
		data.Recipes = append(data.Recipes, rv)
	}

	for _, item := range view.Data.ShoppingList {
		data.ShoppingList = append(data.ShoppingList, shoppingItemView{
			Item:        item.Item,
			PurchaseURL: item.PurchaseURL,
			InPantry:    h.pantry.Has(item.Item),
		})
	}

	render(w, r, templates.Result, data)
}

// handleResultFavorite toggles a favorite. Anonymous clicks persist a pending
// record and bounce through login so the action completes afterward.
func (h *Handler) handleResultFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	recipeIndex, err := strconv.Atoi(r.FormValue("recipe_index"))
	if err != nil {
		http.Error(w, "invalid recipe index", http.StatusBadRequest)
		return
	}
	recipeTitle := r.FormValue("recipe_title")
	var recipeImageURL *string
	if raw := r.FormValue("recipe_image_url"); raw != "" {
		recipeImageURL = &raw
	}

	if h.currentUser(r) == nil {
		h.pending.Save(favorites.Pending{
			RecommendationID: id,
			RecipeIndex:      recipeIndex,
			RecipeTitle:      recipeTitle,
			RecipeImageURL:   recipeImageURL,
		})
		redirectToLogin(w, r, "/r/"+id)
		return
	}

	if check := h.client.CheckFavorite(ctx, id, recipeIndex); check.IsFavorite {
		if check.FavoriteID != nil {
			if err := h.client.RemoveFavorite(ctx, *check.FavoriteID); err != nil {
				slog.ErrorContext(ctx, "failed to remove favorite", "favorite_id", *check.FavoriteID, "error", err)
			}
		}
	} else {
		_, err := h.client.AddFavorite(ctx, id, recipeIndex, recipeTitle, recipeImageURL)
		if err != nil && !errors.Is(err, api.ErrAlreadyFavorite) {
			slog.ErrorContext(ctx, "failed to add favorite", "recommendation_id", id, "recipe_index", recipeIndex, "error", err)
		}
	}

	http.Redirect(w, r, "/r/"+url.PathEscape(id)+"?expand="+strconv.Itoa(recipeIndex), http.StatusSeeOther)
}

func (h *Handler) handleResultStep(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	recipeIndex, err1 := strconv.Atoi(r.FormValue("recipe_index"))
	stepIndex, err2 := strconv.Atoi(r.FormValue("step_index"))
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid step toggle", http.StatusBadRequest)
		return
	}
	h.tracker(id).Toggle(recipeIndex, stepIndex)
	http.Redirect(w, r, "/r/"+url.PathEscape(id)+"?expand="+strconv.Itoa(recipeIndex), http.StatusSeeOther)
}

func (h *Handler) handleResultPantry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	h.pantry.Add(r.FormValue("item"))
	http.Redirect(w, r, "/r/"+url.PathEscape(id), http.StatusSeeOther)
}
