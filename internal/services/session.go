package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"conferencecentral/internal/domain"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	profiles       domain.ProfileService
	dispatcher     domain.TaskDispatcher
	contextTimeout time.Duration
}

func NewSessionService(
	sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	profiles domain.ProfileService,
	dispatcher domain.TaskDispatcher,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		profiles:       profiles,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

func (s *sessionService) Create(ctx context.Context, ident domain.Identity, conferenceID string, input domain.SessionInput) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Malformed input is rejected before any store access.
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, conferenceID)
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerUserID != ident.UserID {
		return nil, fmt.Errorf("%w: you must be the organizer to create a session", domain.ErrForbidden)
	}

	now := time.Now()
	sess := &domain.Session{
		ID:            uuid.NewString(),
		ConferenceID:  conferenceID,
		Name:          input.Name,
		Speaker:       input.Speaker,
		TypeOfSession: input.TypeOfSession,
		Highlights:    input.Highlights,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Date != "" {
		date, err := parseDate(input.Date)
		if err != nil {
			return nil, err
		}
		sess.Date = &date
	}
	if input.StartTime != "" {
		start, err := time.Parse("15:04", input.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q", domain.ErrInvalidInput, input.StartTime)
		}
		sess.StartTime = &start
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Both tasks run after the committed write: the speaker-repeat check may
	// publish a per-conference cache entry, and the organizer gets a
	// confirmation email.
	s.dispatcher.Submit(domain.Task{
		Kind:         domain.TaskSpeakerRepeat,
		ConferenceID: conferenceID,
		Speaker:      sess.Speaker,
	})
	s.dispatcher.Submit(domain.Task{
		Kind:  domain.TaskSessionEmail,
		Email: ident.Email,
		Info:  fmt.Sprintf("%s (%s)", sess.Name, conf.Name),
	})
	return sess, nil
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	sessions, err := s.sessionRepo.ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	sessions, err := s.sessionRepo.ListByConferenceAndType(ctx, conferenceID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListByHighlight(ctx context.Context, highlight string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListByHighlight(ctx, highlight)
	if err != nil {
		return nil, fmt.Errorf("list sessions by highlight: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) AddToWishlist(ctx context.Context, ident domain.Identity, sessionID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no session found with key: %s", domain.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	prof, err := s.profiles.GetOrCreate(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if !prof.HasSessionInWishlist(sessionID) {
		prof.SessionKeysInWishlist = append(prof.SessionKeysInWishlist, sessionID)
		if err := s.profileRepo.Update(ctx, prof); err != nil {
			return nil, fmt.Errorf("update wishlist: %w", err)
		}
	}
	return sess, nil
}

func (s *sessionService) ListWishlist(ctx context.Context, ident domain.Identity) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prof, err := s.profiles.GetOrCreate(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	sessions, err := s.sessionRepo.ListByIDs(ctx, prof.SessionKeysInWishlist)
	if err != nil {
		return nil, fmt.Errorf("list wishlist sessions: %w", err)
	}

	byID := make(map[string]*domain.Session, len(sessions))
	for _, sess := range sessions {
		byID[sess.ID] = sess
	}
	ordered := make([]*domain.Session, 0, len(prof.SessionKeysInWishlist))
	for _, id := range prof.SessionKeysInWishlist {
		if sess, ok := byID[id]; ok {
			ordered = append(ordered, sess)
		}
	}
	return ordered, nil
}
