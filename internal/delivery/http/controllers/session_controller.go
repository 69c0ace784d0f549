package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type SessionController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
}

func NewSessionController(logger *slog.Logger, sessions domain.SessionService) *SessionController {
	return &SessionController{
		Logger:   logger,
		Sessions: sessions,
	}
}

// Create godoc
// @Summary Create a session in a conference
// @Description Open only to the organizer of the conference. Triggers the speaker-repeat check after the write commits.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 201 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) Create(w http.ResponseWriter, r *http.Request) {
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

	var input domain.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}

	sess, err := c.Sessions.Create(r.Context(), ident, conferenceID, input)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sess)
}

func (c *SessionController) ListByConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}

	sessions, err := c.Sessions.ListByConference(r.Context(), conferenceID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

func (c *SessionController) ListByType(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	typeOfSession := r.PathValue("typeOfSession")
	if conferenceID == "" || typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID or typeOfSession")
		return
	}

	sessions, err := c.Sessions.ListByType(r.Context(), conferenceID, typeOfSession)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

func (c *SessionController) ListBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := r.PathValue("speaker")
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}

	sessions, err := c.Sessions.ListBySpeaker(r.Context(), speaker)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

func (c *SessionController) ListByHighlight(w http.ResponseWriter, r *http.Request) {
	highlight := r.PathValue("highlight")
	if highlight == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing highlight")
		return
	}

	sessions, err := c.Sessions.ListByHighlight(r.Context(), highlight)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// AddToWishlist puts a session on the caller's wishlist. Adding a session
// that is already there is a no-op, not an error.
func (c *SessionController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}

	sess, err := c.Sessions.AddToWishlist(r.Context(), ident, sessionID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sess)
}

func (c *SessionController) ListWishlist(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	sessions, err := c.Sessions.ListWishlist(r.Context(), ident)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

func (c *SessionController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
