package domain

import (
	"context"
	"time"
)

// Session represents a talk within a conference. Speaker is a display string,
// not a separate entity; two speakers with the same name are
// indistinguishable.
// swagger:model Session
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	Speaker       string     `json:"speaker"`
	TypeOfSession string     `json:"type_of_session"`
	Date          *time.Time `json:"date"`
	StartTime     *time.Time `json:"start_time"`
	Highlights    []string   `json:"highlights"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SessionInput carries the user-supplied fields for creating a session.
type SessionInput struct {
	Name          string   `json:"name"`
	Speaker       string   `json:"speaker"`
	TypeOfSession string   `json:"type_of_session"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	Highlights    []string `json:"highlights"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, sess *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListByHighlight(ctx context.Context, highlight string) ([]*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
	// ListAll returns every session in stable scan order (creation order).
	// The featured-speaker tie-break depends on this ordering.
	ListAll(ctx context.Context) ([]*Session, error)
	DeleteAll(ctx context.Context) error
}

// SessionService defines session creation, session queries, and the wishlist.
type SessionService interface {
	// Create creates a session in the conference; open only to the
	// conference's organizer.
	Create(ctx context.Context, ident Identity, conferenceID string, input SessionInput) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListByHighlight(ctx context.Context, highlight string) ([]*Session, error)
	// AddToWishlist appends the session to the user's wishlist. Idempotent:
	// adding a session already on the list is not an error.
	AddToWishlist(ctx context.Context, ident Identity, sessionID string) (*Session, error)
	// ListWishlist resolves the user's wishlist keys in list order, skipping
	// keys that no longer resolve.
	ListWishlist(ctx context.Context, ident Identity) ([]*Session, error)
}
