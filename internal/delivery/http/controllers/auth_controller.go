package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

const devTokenExpiry = 24 * time.Hour

// AuthController mints bearer tokens for local development. It is only
// routed outside production; deployed environments receive tokens from the
// external identity provider.
type AuthController struct {
	Logger *slog.Logger
	Issuer domain.TokenIssuer
}

func NewAuthController(logger *slog.Logger, issuer domain.TokenIssuer) *AuthController {
	return &AuthController{
		Logger: logger,
		Issuer: issuer,
	}
}

// IssueTokenRequest is the request body for POST /auth/token.
type IssueTokenRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// IssueTokenResponse carries the minted bearer token.
type IssueTokenResponse struct {
	Token string `json:"token"`
}

func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "user_id is required")
		return
	}

	token, err := c.Issuer.Issue(req.UserID, req.Email, devTokenExpiry)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to issue token")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, IssueTokenResponse{Token: token})
}
