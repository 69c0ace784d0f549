package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type ProfileController struct {
	Logger   *slog.Logger
	Profiles domain.ProfileService
}

func NewProfileController(logger *slog.Logger, profiles domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:   logger,
		Profiles: profiles,
	}
}

// SaveProfileRequest is the request body for POST /profile. Only the
// user-modifiable fields are accepted.
type SaveProfileRequest struct {
	DisplayName  string `json:"display_name"`
	TeeShirtSize string `json:"tee_shirt_size"`
}

// Get returns the caller's profile, creating a default one on first access.
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	prof, err := c.Profiles.GetOrCreate(r.Context(), ident)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, prof)
}

// Save updates the caller's display name and tee-shirt size.
func (c *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}

	prof, err := c.Profiles.Save(r.Context(), ident, req.DisplayName, req.TeeShirtSize)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, prof)
}
