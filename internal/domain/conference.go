package domain

import (
	"context"
	"time"
)

// Conference represents a published conference owned by an organizer profile.
// SeatsAvailable is initialized to MaxAttendees at creation and is only ever
// adjusted by the registration service.
// swagger:model Conference
type Conference struct {
	ID              string     `json:"id"`
	OrganizerUserID string     `json:"organizer_user_id"`
	Name            string     `json:"name"`
	City            string     `json:"city"`
	Topics          []string   `json:"topics"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Month           int        `json:"month"`
	MaxAttendees    int        `json:"max_attendees"`
	SeatsAvailable  int        `json:"seats_available"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ConferenceInput carries the user-supplied fields for creating a conference.
type ConferenceInput struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Topics       []string `json:"topics"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// ConferenceRows is a lazy, once-consumable stream of conferences produced by
// a filtered query. Callers must Close it; it is not restartable.
type ConferenceRows interface {
	// Next advances to the next conference, returning false when the stream
	// is exhausted or a scan error occurred.
	Next() bool
	// Conference returns the current record. Valid only after Next returned true.
	Conference() *Conference
	Err() error
	Close() error
}

// ConferenceRepository defines the interface for conference storage
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizer(ctx context.Context, organizerUserID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	// Query executes a compiled filter query and returns a lazy result stream.
	Query(ctx context.Context, q *ConferenceQuery) (ConferenceRows, error)
	// ListAlmostSoldOut returns conferences with 0 < seats_available <= threshold,
	// ordered by name.
	ListAlmostSoldOut(ctx context.Context, threshold int) ([]*Conference, error)
	DeleteAll(ctx context.Context) error
}

// ConferenceService defines the organizer- and attendee-facing conference operations.
type ConferenceService interface {
	Create(ctx context.Context, ident Identity, input ConferenceInput) (*Conference, error)
	Query(ctx context.Context, filters []FilterSpec) (ConferenceRows, error)
	ListCreatedBy(ctx context.Context, userID string) ([]*Conference, error)
	// ListToAttend returns the conferences on the user's attendance list, in
	// registration order.
	ListToAttend(ctx context.Context, userID string) ([]*Conference, error)
	// ClearAllData deletes all sessions and conferences and resets every
	// profile's attendance and wishlist.
	ClearAllData(ctx context.Context) error
}
