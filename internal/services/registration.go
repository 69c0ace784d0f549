package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

// errNotRegistered aborts an unregister transaction without mutating state.
// It never leaves this package; Unregister maps it to (false, nil).
var errNotRegistered = errors.New("not registered")

type registrationService struct {
	txRepo         domain.RegistrationTxRepository
	profiles       domain.ProfileService
	contextTimeout time.Duration
}

func NewRegistrationService(
	txRepo domain.RegistrationTxRepository,
	profiles domain.ProfileService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		txRepo:         txRepo,
		profiles:       profiles,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, ident domain.Identity, conferenceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// First access may need to create the profile; done outside the
	// registration transaction so the transaction only ever locks existing rows.
	if _, err := s.profiles.GetOrCreate(ctx, ident); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	err := s.txRepo.Execute(ctx, ident.UserID, conferenceID, func(prof *domain.Profile, conf *domain.Conference) error {
		if prof.HasConference(conferenceID) {
			return fmt.Errorf("%w: you have already registered for this conference", domain.ErrConflict)
		}
		if conf.SeatsAvailable <= 0 {
			return fmt.Errorf("%w: there are no seats available", domain.ErrConflict)
		}
		prof.ConferenceKeysToAttend = append(prof.ConferenceKeysToAttend, conferenceID)
		conf.SeatsAvailable--
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *registrationService) Unregister(ctx context.Context, ident domain.Identity, conferenceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profiles.GetOrCreate(ctx, ident); err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}

	err := s.txRepo.Execute(ctx, ident.UserID, conferenceID, func(prof *domain.Profile, conf *domain.Conference) error {
		if !prof.HasConference(conferenceID) {
			return errNotRegistered
		}
		keys := prof.ConferenceKeysToAttend[:0:0]
		for _, id := range prof.ConferenceKeysToAttend {
			if id != conferenceID {
				keys = append(keys, id)
			}
		}
		prof.ConferenceKeysToAttend = keys
		conf.SeatsAvailable++
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotRegistered) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
