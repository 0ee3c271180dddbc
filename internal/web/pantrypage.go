package web

import (
	"net/http"

	"fridgechef/internal/api"
	"fridgechef/internal/templates"
)

type pantryData struct {
	User        *api.User
	Items       []string
	Suggestions []string
}

func (h *Handler) handlePantry(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Pantry, pantryData{
		User:        h.currentUser(r),
		Items:       h.pantry.Items(),
		Suggestions: h.pantry.Suggestions(),
	})
}

func (h *Handler) handlePantryAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	h.pantry.Add(r.FormValue("item"))
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}

func (h *Handler) handlePantryRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	h.pantry.Remove(r.FormValue("item"))
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}

func (h *Handler) handlePantryClear(w http.ResponseWriter, r *http.Request) {
	h.pantry.Clear()
	http.Redirect(w, r, "/pantry", http.StatusSeeOther)
}
