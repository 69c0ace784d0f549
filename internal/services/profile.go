package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

func NewProfileService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetOrCreate(ctx context.Context, ident domain.Identity) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ident.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	prof, err := s.profileRepo.GetByUserID(ctx, ident.UserID)
	if err == nil {
		return prof, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := time.Now()
	prof = &domain.Profile{
		UserID:                 ident.UserID,
		DisplayName:            displayNameFromEmail(ident.Email),
		MainEmail:              ident.Email,
		TeeShirtSize:           domain.SizeNotSpecified,
		ConferenceKeysToAttend: []string{},
		SessionKeysInWishlist:  []string{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.profileRepo.Create(ctx, prof); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return prof, nil
}

func (s *profileService) Save(ctx context.Context, ident domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	prof, err := s.GetOrCreate(ctx, ident)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if displayName != "" {
		prof.DisplayName = displayName
	}
	if teeShirtSize != "" {
		size, err := domain.ParseTeeShirtSize(teeShirtSize)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown tee shirt size %q", domain.ErrInvalidInput, teeShirtSize)
		}
		prof.TeeShirtSize = size
	}

	if err := s.profileRepo.Update(ctx, prof); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return prof, nil
}

// displayNameFromEmail derives a default display name from the email's local
// part, matching the nickname the identity provider would show.
func displayNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
