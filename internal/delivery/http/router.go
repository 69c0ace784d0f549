package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	conferenceController *controllers.ConferenceController,
	sessionController *controllers.SessionController,
	profileController *controllers.ProfileController,
	aggregateController *controllers.AggregateController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.Get))
	mux.HandleFunc("POST /profile", auth(profileController.Save))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.Create))
	mux.HandleFunc("POST /conferences/query", conferenceController.Query)
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(conferenceController.ListAttending))
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(conferenceController.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(conferenceController.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(sessionController.Create))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", sessionController.ListByConference)
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/{typeOfSession}", sessionController.ListByType)
	mux.HandleFunc("GET /sessions/speaker/{speaker}", sessionController.ListBySpeaker)
	mux.HandleFunc("GET /sessions/highlight/{highlight}", sessionController.ListByHighlight)

	// Wishlist
	mux.HandleFunc("POST /wishlist/{sessionID}", auth(sessionController.AddToWishlist))
	mux.HandleFunc("GET /wishlist", auth(sessionController.ListWishlist))

	// Derived aggregates
	mux.HandleFunc("GET /conferences/announcement", aggregateController.GetAnnouncement)
	mux.HandleFunc("POST /conferences/announcement/recompute", aggregateController.RecomputeAnnouncement)
	mux.HandleFunc("GET /speakers/featured", aggregateController.GetFeaturedSpeaker)
	mux.HandleFunc("POST /speakers/featured/recompute", aggregateController.RecomputeFeaturedSpeaker)
	mux.HandleFunc("GET /conferences/{conferenceID}/speakers/featured", aggregateController.GetConferenceFeaturedSpeaker)

	// Admin
	mux.HandleFunc("DELETE /admin/data", auth(conferenceController.ClearAllData))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
