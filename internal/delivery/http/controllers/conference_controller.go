package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type ConferenceController struct {
	Logger        *slog.Logger
	Conferences   domain.ConferenceService
	Registrations domain.RegistrationService
}

func NewConferenceController(logger *slog.Logger, conferences domain.ConferenceService, registrations domain.RegistrationService) *ConferenceController {
	return &ConferenceController{
		Logger:        logger,
		Conferences:   conferences,
		Registrations: registrations,
	}
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []domain.FilterSpec `json:"filters"`
}

// RegistrationResult reports whether a register/unregister call changed state.
// swagger:model RegistrationResult
type RegistrationResult struct {
	Success bool `json:"success"`
}

// Create godoc
// @Summary Create a conference
// @Description Creates a conference owned by the authenticated user's profile. Missing city/topics get defaults; seats_available starts at max_attendees.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /conferences [post]
func (c *ConferenceController) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var input domain.ConferenceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}

	conf, err := c.Conferences.Create(r.Context(), ident, input)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// Query runs a filtered conference query. Invalid filter combinations are
// rejected before any store access.
func (c *ConferenceController) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}

	rows, err := c.Conferences.Query(r.Context(), req.Filters)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	defer rows.Close()

	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		confs = append(confs, rows.Conference())
	}
	if err := rows.Err(); err != nil {
		c.logError(r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	confs, err := c.Conferences.ListCreatedBy(r.Context(), ident.UserID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

func (c *ConferenceController) ListAttending(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	confs, err := c.Conferences.ListToAttend(r.Context(), ident.UserID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// Register godoc
// @Summary Register for a conference
// @Description Takes one seat and adds the conference to the caller's attendance list, atomically.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} controllers.RegistrationResult
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{conferenceID}/registration [post]
func (c *ConferenceController) Register(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}

	success, err := c.Registrations.Register(r.Context(), ident, conferenceID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResult{Success: success})
}

// Unregister removes the caller's registration. Unregistering while not
// registered is not an error; it reports success=false.
func (c *ConferenceController) Unregister(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}

	success, err := c.Registrations.Unregister(r.Context(), ident, conferenceID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResult{Success: success})
}

// ClearAllData deletes all conferences and sessions and resets every
// profile's lists. Development/admin endpoint.
func (c *ConferenceController) ClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := c.Conferences.ClearAllData(r.Context()); err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResult{Success: true})
}

func (c *ConferenceController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
