package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	petition     *service.PetitionService
	renderer     *view.Renderer
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, petition *service.PetitionService, renderer *view.Renderer, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		petition:     petition,
		renderer:     renderer,
		limiter:      limiter,
		cookieSecure: cookieSecure,
	}
}

// HandleRegisterForm renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "register.html", nil)
}

// HandleRegister creates an account, starts a session, and sends the new
// user on to the profile step.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(remoteHost(r)) {
		h.renderer.Render(w, http.StatusTooManyRequests, "register.html", map[string]any{
			"Error": "Too many attempts. Please try again shortly.",
		})
		return
	}

	user, err := h.auth.Register(r.Context(),
		r.FormValue("first_name"),
		r.FormValue("last_name"),
		r.FormValue("email"),
		r.FormValue("password"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.renderer.Render(w, http.StatusOK, "register.html", map[string]any{
				"Error": "Please fill all fields.",
			})
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			h.renderer.Render(w, http.StatusBadRequest, "register.html", map[string]any{
				"Error": "That email is already registered.",
			})
			return
		}
		slog.Error("register user", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "register.html", map[string]any{
			"Error": "Please try again.",
		})
		return
	}

	token, err := h.auth.IssueSession(user.ID, 0)
	if err != nil {
		slog.Error("issue session after register", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "register.html", map[string]any{
			"Error": "Please try again.",
		})
		return
	}

	setSessionCookie(w, token, h.cookieSecure)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleLoginForm renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	if SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "login.html", nil)
}

// HandleLogin authenticates and seeds the session with the user's existing
// signature, if any, so returning signers land on the thank-you page
// without signing again.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(remoteHost(r)) {
		h.renderer.Render(w, http.StatusTooManyRequests, "login.html", map[string]any{
			"Error": "Too many attempts. Please try again shortly.",
		})
		return
	}

	user, err := h.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.renderer.Render(w, http.StatusOK, "login.html", map[string]any{
				"Error": "Email and password do not match.",
			})
			return
		}
		slog.Error("login user", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "login.html", map[string]any{
			"Error": "Please try again.",
		})
		return
	}

	var signatureID int64
	sig, err := h.petition.SignatureForUser(r.Context(), user.ID)
	switch {
	case err == nil:
		signatureID = sig.ID
	case errors.Is(err, domain.ErrNotFound):
		// User has not signed yet; start the session unsigned.
	default:
		slog.Error("load signature after login", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "login.html", map[string]any{
			"Error": "Please try again.",
		})
		return
	}

	token, err := h.auth.IssueSession(user.ID, signatureID)
	if err != nil {
		slog.Error("issue session after login", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "login.html", map[string]any{
			"Error": "Please try again.",
		})
		return
	}

	setSessionCookie(w, token, h.cookieSecure)
	http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
}

// HandleLogout clears the session unconditionally.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.cookieSecure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
