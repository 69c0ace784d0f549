package domain

import (
	"context"
	"time"
)

// TeeShirtSize is the attendee's shirt-size preference.
type TeeShirtSize string

// Recognized tee-shirt sizes (men's and women's cuts).
const (
	SizeNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	SizeXSM          TeeShirtSize = "XS_M"
	SizeXSW          TeeShirtSize = "XS_W"
	SizeSM           TeeShirtSize = "S_M"
	SizeSW           TeeShirtSize = "S_W"
	SizeMM           TeeShirtSize = "M_M"
	SizeMW           TeeShirtSize = "M_W"
	SizeLM           TeeShirtSize = "L_M"
	SizeLW           TeeShirtSize = "L_W"
	SizeXLM          TeeShirtSize = "XL_M"
	SizeXLW          TeeShirtSize = "XL_W"
	SizeXXLM         TeeShirtSize = "XXL_M"
	SizeXXLW         TeeShirtSize = "XXL_W"
	SizeXXXLM        TeeShirtSize = "XXXL_M"
	SizeXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = map[TeeShirtSize]struct{}{
	SizeNotSpecified: {}, SizeXSM: {}, SizeXSW: {}, SizeSM: {}, SizeSW: {},
	SizeMM: {}, SizeMW: {}, SizeLM: {}, SizeLW: {}, SizeXLM: {}, SizeXLW: {},
	SizeXXLM: {}, SizeXXLW: {}, SizeXXXLM: {}, SizeXXXLW: {},
}

// ParseTeeShirtSize validates an external size string.
func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	size := TeeShirtSize(s)
	if _, ok := teeShirtSizes[size]; !ok {
		return "", ErrInvalidInput
	}
	return size, nil
}

// Identity is the caller identity resolved by the token verifier.
type Identity struct {
	UserID string
	Email  string
}

// Profile represents a registered user's profile. One exists per
// authenticated user; it is created on first access and never deleted in
// normal operation. ConferenceKeysToAttend is mutated only by the
// registration service.
// swagger:model Profile
type Profile struct {
	UserID                 string       `json:"user_id"`
	DisplayName            string       `json:"display_name"`
	MainEmail              string       `json:"main_email"`
	TeeShirtSize           TeeShirtSize `json:"tee_shirt_size"`
	ConferenceKeysToAttend []string     `json:"conference_keys_to_attend"`
	SessionKeysInWishlist  []string     `json:"session_keys_in_wishlist"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// HasConference reports whether the conference key is on the attendance list.
func (p *Profile) HasConference(conferenceID string) bool {
	for _, id := range p.ConferenceKeysToAttend {
		if id == conferenceID {
			return true
		}
	}
	return false
}

// HasSessionInWishlist reports whether the session key is on the wishlist.
func (p *Profile) HasSessionInWishlist(sessionID string) bool {
	for _, id := range p.SessionKeysInWishlist {
		if id == sessionID {
			return true
		}
	}
	return false
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	// ResetAllLists clears every profile's attendance list and wishlist.
	ResetAllLists(ctx context.Context) error
}

// ProfileService defines profile access and mutation.
type ProfileService interface {
	// GetOrCreate returns the caller's profile, creating a default one on
	// first access.
	GetOrCreate(ctx context.Context, ident Identity) (*Profile, error)
	// Save updates the user-modifiable fields (display name, tee-shirt size).
	Save(ctx context.Context, ident Identity, displayName, teeShirtSize string) (*Profile, error)
}

// TokenIssuer issues bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and resolves the caller's identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}
