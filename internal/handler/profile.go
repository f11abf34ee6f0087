package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/petition/internal/domain"
	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

// ProfileHandler handles the optional profile step and the combined
// user-plus-profile edit form.
type ProfileHandler struct {
	profile  *service.ProfileService
	renderer *view.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profile *service.ProfileService, renderer *view.Renderer) *ProfileHandler {
	return &ProfileHandler{profile: profile, renderer: renderer}
}

// HandleProfileForm renders the profile form shown right after
// registration.
// GET /profile
func (h *ProfileHandler) HandleProfileForm(w http.ResponseWriter, r *http.Request) {
	if !SessionFromContext(r.Context()).Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "profile.html", nil)
}

// HandleProfile stores the submitted profile details and sends the user on
// to the signing step.
// POST /profile
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if _, err := h.profile.Save(r.Context(), session.UserID,
		parseAge(r.FormValue("age")),
		r.FormValue("city"),
		r.FormValue("homepage"),
	); err != nil {
		slog.Error("save profile", "error", err)
		h.renderer.Render(w, http.StatusInternalServerError, "profile.html", map[string]any{
			"Error": "Something went wrong. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleEditForm renders the edit form pre-filled with the user's current
// details and profile.
// GET /profile/edit
func (h *ProfileHandler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	info, err := h.profile.UserInfo(r.Context(), session.UserID)
	if err != nil {
		slog.Error("load user info", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "edit.html", map[string]any{
		"Info": info,
	})
}

// HandleEdit updates the user's name and email and upserts their profile
// in one transaction.
// POST /profile/edit
func (h *ProfileHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if !session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	err := h.profile.SaveIdentity(r.Context(), session.UserID,
		r.FormValue("first_name"),
		r.FormValue("last_name"),
		r.FormValue("email"),
		parseAge(r.FormValue("age")),
		r.FormValue("city"),
		r.FormValue("homepage"),
	)
	if err != nil {
		data := map[string]any{"Info": h.currentInfo(r, session.UserID)}
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			data["Error"] = "Please fill in your name and email."
			h.renderer.Render(w, http.StatusOK, "edit.html", data)
		case errors.Is(err, domain.ErrDuplicateEmail):
			data["Error"] = "That email is already registered."
			h.renderer.Render(w, http.StatusBadRequest, "edit.html", data)
		default:
			slog.Error("save identity", "error", err)
			data["Error"] = "Something went wrong."
			h.renderer.Render(w, http.StatusInternalServerError, "edit.html", data)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentInfo reloads the stored user info so a failed edit re-renders
// with the persisted values.
func (h *ProfileHandler) currentInfo(r *http.Request, userID int64) *domain.UserInfo {
	info, err := h.profile.UserInfo(r.Context(), userID)
	if err != nil {
		return &domain.UserInfo{UserID: userID}
	}
	return info
}

// parseAge turns the optional form value into a nullable age. Blank or
// non-numeric input is treated as absent.
func parseAge(value string) *int64 {
	if value == "" {
		return nil
	}
	age, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &age
}
