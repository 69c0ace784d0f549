package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

type AggregateController struct {
	Logger     *slog.Logger
	Aggregates domain.AggregateService
}

func NewAggregateController(logger *slog.Logger, aggregates domain.AggregateService) *AggregateController {
	return &AggregateController{
		Logger:     logger,
		Aggregates: aggregates,
	}
}

// StringValue wraps a cached aggregate string. An absent cache entry is
// served as an empty value, never as an error.
// swagger:model StringValue
type StringValue struct {
	Data string `json:"data"`
}

func (c *AggregateController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	value, err := c.Aggregates.Announcement(r.Context())
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StringValue{Data: value})
}

// RecomputeAnnouncement rebuilds the sold-out-soon announcement from the
// store. Also invoked periodically by the background ticker.
func (c *AggregateController) RecomputeAnnouncement(w http.ResponseWriter, r *http.Request) {
	value, err := c.Aggregates.RecomputeAnnouncement(r.Context())
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StringValue{Data: value})
}

func (c *AggregateController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	value, err := c.Aggregates.FeaturedSpeaker(r.Context())
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StringValue{Data: value})
}

func (c *AggregateController) RecomputeFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	value, err := c.Aggregates.RecomputeFeaturedSpeaker(r.Context())
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StringValue{Data: value})
}

// GetConferenceFeaturedSpeaker serves the per-conference entry written by the
// speaker-repeat check.
func (c *AggregateController) GetConferenceFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	value, err := c.Aggregates.ConferenceFeaturedSpeaker(r.Context(), conferenceID)
	if err != nil {
		c.logError(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StringValue{Data: value})
}

func (c *AggregateController) logError(r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}
