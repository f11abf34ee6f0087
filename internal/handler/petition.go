package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

// PetitionHandler handles the signing workflow and the signer listings.
// Every handler first evaluates which of the three session states the
// visitor is in (anonymous, authenticated-unsigned, authenticated-signed)
// and branches from there.
type PetitionHandler struct {
	auth         *service.AuthService
	petition     *service.PetitionService
	renderer     *view.Renderer
	cookieSecure bool
}

// NewPetitionHandler creates a new PetitionHandler.
func NewPetitionHandler(auth *service.AuthService, petition *service.PetitionService, renderer *view.Renderer, cookieSecure bool) *PetitionHandler {
	return &PetitionHandler{
		auth:         auth,
		petition:     petition,
		renderer:     renderer,
		cookieSecure: cookieSecure,
	}
}

// HandleHome renders the signing form, or redirects depending on the
// session state: anonymous visitors go to registration, signed users to
// the thank-you page.
// GET /
func (h *PetitionHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if session.Signed() {
		http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "home.html", nil)
}

// HandleSign records the submitted signature and moves the session to the
// signed state.
// POST /
func (h *PetitionHandler) HandleSign(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if session.Signed() {
		http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
		return
	}

	sig, err := h.petition.Sign(r.Context(), session.UserID, r.FormValue("signature"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			h.renderer.Render(w, http.StatusOK, "home.html", map[string]any{
				"Error": "Please draw your signature before submitting.",
			})
			return
		}
		slog.Error("create signature", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := h.auth.IssueSession(session.UserID, sig.ID)
	if err != nil {
		slog.Error("issue session after sign", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, token, h.cookieSecure)
	http.Redirect(w, r, "/thankyou", http.StatusSeeOther)
}

// HandleThankYou renders the stored signature.
// GET /thankyou
func (h *PetitionHandler) HandleThankYou(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !session.Signed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sig, err := h.petition.SignatureForUser(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The signature claim is stale (row deleted elsewhere).
			// Re-issue an unsigned session so home does not bounce back here.
			if token, err := h.auth.IssueSession(session.UserID, 0); err == nil {
				setSessionCookie(w, token, h.cookieSecure)
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		slog.Error("load signature", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The image is a data URL drawn by the user; html/template would
	// otherwise filter the data: scheme out of the src attribute.
	h.renderer.Render(w, http.StatusOK, "thankyou.html", map[string]any{
		"Image": template.URL(sig.Image),
	})
}

// HandleUnsign deletes the user's signature and returns the session to the
// unsigned state.
// POST /unsign
func (h *PetitionHandler) HandleUnsign(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.petition.Unsign(r.Context(), session.UserID); err != nil {
		slog.Error("delete signature", "error", err)
	}

	token, err := h.auth.IssueSession(session.UserID, 0)
	if err != nil {
		slog.Error("issue session after unsign", "error", err)
		clearSessionCookie(w, h.cookieSecure)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, token, h.cookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSigners renders the full signer list.
// GET /signatures
func (h *PetitionHandler) HandleSigners(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !session.Signed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	signers, err := h.petition.Signers(r.Context())
	if err != nil {
		slog.Error("list signers", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "signatures.html", map[string]any{
		"Signers": signers,
	})
}

// HandleSignersByCity renders the signer list filtered by city.
// GET /signatures/{city}
func (h *PetitionHandler) HandleSignersByCity(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !session.Signed() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	city := r.PathValue("city")
	signers, err := h.petition.SignersByCity(r.Context(), city)
	if err != nil {
		slog.Error("list signers by city", "city", city, "error", err)
		http.Redirect(w, r, "/signatures", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "signatures.html", map[string]any{
		"City":    city,
		"Signers": signers,
	})
}
