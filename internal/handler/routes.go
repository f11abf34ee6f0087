package handler

import (
	"net/http"

	"github.com/msomdec/petition/internal/service"
	"github.com/msomdec/petition/internal/view"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, petition *service.PetitionService, profile *service.ProfileService, renderer *view.Renderer, limiter *service.TokenBucket, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, petition, renderer, limiter, cookieSecure)
	petitionHandler := NewPetitionHandler(auth, petition, renderer, cookieSecure)
	profileHandler := NewProfileHandler(profile, renderer)

	withSession := func(h http.HandlerFunc) http.Handler {
		return WithSession(auth, h)
	}

	mux.Handle("GET /{$}", withSession(petitionHandler.HandleHome))
	mux.Handle("POST /{$}", withSession(petitionHandler.HandleSign))

	mux.Handle("GET /register", withSession(authHandler.HandleRegisterForm))
	mux.Handle("POST /register", withSession(authHandler.HandleRegister))
	mux.Handle("GET /login", withSession(authHandler.HandleLoginForm))
	mux.Handle("POST /login", withSession(authHandler.HandleLogin))
	mux.Handle("POST /logout", withSession(authHandler.HandleLogout))

	mux.Handle("GET /thankyou", withSession(petitionHandler.HandleThankYou))
	mux.Handle("POST /unsign", withSession(petitionHandler.HandleUnsign))
	mux.Handle("GET /signatures", withSession(petitionHandler.HandleSigners))
	mux.Handle("GET /signatures/{city}", withSession(petitionHandler.HandleSignersByCity))

	mux.Handle("GET /profile", withSession(profileHandler.HandleProfileForm))
	mux.Handle("POST /profile", withSession(profileHandler.HandleProfile))
	mux.Handle("GET /profile/edit", withSession(profileHandler.HandleEditForm))
	mux.Handle("POST /profile/edit", withSession(profileHandler.HandleEdit))

	mux.HandleFunc("GET /healthz", HandleHealthz)
}
