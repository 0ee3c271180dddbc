package web

import (
	"net/http"
	"strings"

	"fridgechef/internal/templates"
)

type authData struct {
	User         any // always nil on auth pages, keeps nav template happy
	ReturnURL    string
	Email        string
	ErrorMessage string
}

// credentials mirrors the backend's signup/login payload constraints so bad
// input fails locally with a friendly message instead of a raw 422.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Login, authData{ReturnURL: safeReturnURL(r.URL.Query().Get("returnUrl"))})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	returnURL := safeReturnURL(r.FormValue("returnUrl"))
	creds := credentials{Email: strings.TrimSpace(r.FormValue("email")), Password: r.FormValue("password")}

	if err := h.validate.Struct(creds); err != nil {
		render(w, r, templates.Login, authData{
			ReturnURL:    returnURL,
			Email:        creds.Email,
			ErrorMessage: "이메일과 비밀번호(6자 이상)를 확인해주세요.",
		})
		return
	}

	if _, err := h.client.Login(r.Context(), creds.Email, creds.Password); err != nil {
		render(w, r, templates.Login, authData{
			ReturnURL:    returnURL,
			Email:        creds.Email,
			ErrorMessage: err.Error(),
		})
		return
	}

	h.session.CheckAuth(r.Context())
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (h *Handler) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Signup, authData{ReturnURL: safeReturnURL(r.URL.Query().Get("returnUrl"))})
}

// handleSignup registers the account and logs straight in, so a new user
// lands back where they started with an active session.
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	returnURL := safeReturnURL(r.FormValue("returnUrl"))
	creds := credentials{Email: strings.TrimSpace(r.FormValue("email")), Password: r.FormValue("password")}

	if err := h.validate.Struct(creds); err != nil {
		render(w, r, templates.Signup, authData{
			ReturnURL:    returnURL,
			Email:        creds.Email,
			ErrorMessage: "이메일과 비밀번호(6자 이상)를 확인해주세요.",
		})
		return
	}

	if _, err := h.client.Signup(r.Context(), creds.Email, creds.Password); err != nil {
		render(w, r, templates.Signup, authData{
			ReturnURL:    returnURL,
			Email:        creds.Email,
			ErrorMessage: err.Error(),
		})
		return
	}
	if _, err := h.client.Login(r.Context(), creds.Email, creds.Password); err != nil {
		render(w, r, templates.Login, authData{
			ReturnURL:    returnURL,
			Email:        creds.Email,
			ErrorMessage: err.Error(),
		})
		return
	}

	h.session.CheckAuth(r.Context())
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeReturnURL keeps post-login redirects on this site.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
