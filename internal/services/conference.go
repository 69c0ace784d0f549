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

// Creation defaults applied to missing conference fields.
var (
	defaultCity   = "Default City"
	defaultTopics = []string{"Default", "Topic"}
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	profileRepo    domain.ProfileRepository
	profiles       domain.ProfileService
	dispatcher     domain.TaskDispatcher
	contextTimeout time.Duration
}

func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	profileRepo domain.ProfileRepository,
	profiles domain.ProfileService,
	dispatcher domain.TaskDispatcher,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		profileRepo:    profileRepo,
		profiles:       profiles,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) Create(ctx context.Context, ident domain.Identity, input domain.ConferenceInput) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}
	if input.MaxAttendees < 0 {
		return nil, fmt.Errorf("%w: max_attendees must not be negative", domain.ErrInvalidInput)
	}

	// The organizer's profile is the parent of the conference; make sure it exists.
	if _, err := s.profiles.GetOrCreate(ctx, ident); err != nil {
		return nil, fmt.Errorf("get organizer profile: %w", err)
	}

	now := time.Now()
	conf := &domain.Conference{
		ID:              uuid.NewString(),
		OrganizerUserID: ident.UserID,
		Name:            input.Name,
		City:            input.City,
		Topics:          input.Topics,
		MaxAttendees:    input.MaxAttendees,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if conf.City == "" {
		conf.City = defaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = append([]string(nil), defaultTopics...)
	}

	if input.StartDate != "" {
		start, err := parseDate(input.StartDate)
		if err != nil {
			return nil, err
		}
		conf.StartDate = &start
		conf.Month = int(start.Month())
	}
	if input.EndDate != "" {
		end, err := parseDate(input.EndDate)
		if err != nil {
			return nil, err
		}
		conf.EndDate = &end
	}

	// Seat pool starts full; only the registration service adjusts it afterwards.
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	s.dispatcher.Submit(domain.Task{
		Kind:  domain.TaskConferenceEmail,
		Email: ident.Email,
		Info:  fmt.Sprintf("%s (%s)", conf.Name, conf.City),
	})
	return conf, nil
}

func (s *conferenceService) Query(ctx context.Context, filters []domain.FilterSpec) (domain.ConferenceRows, error) {
	q, err := domain.CompileFilters(filters)
	if err != nil {
		return nil, err
	}
	rows, err := s.conferenceRepo.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return rows, nil
}

func (s *conferenceService) ListCreatedBy(ctx context.Context, userID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.conferenceRepo.ListByOrganizer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by organizer: %w", err)
	}
	return confs, nil
}

func (s *conferenceService) ListToAttend(ctx context.Context, userID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prof, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Conference{}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	confs, err := s.conferenceRepo.ListByIDs(ctx, prof.ConferenceKeysToAttend)
	if err != nil {
		return nil, fmt.Errorf("list conferences to attend: %w", err)
	}

	// Preserve registration order; skip keys that no longer resolve.
	byID := make(map[string]*domain.Conference, len(confs))
	for _, c := range confs {
		byID[c.ID] = c
	}
	ordered := make([]*domain.Conference, 0, len(prof.ConferenceKeysToAttend))
	for _, id := range prof.ConferenceKeysToAttend {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

func (s *conferenceService) ClearAllData(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.sessionRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if err := s.conferenceRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete conferences: %w", err)
	}
	if err := s.profileRepo.ResetAllLists(ctx); err != nil {
		return fmt.Errorf("reset profile lists: %w", err)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD, tolerating longer strings with a date prefix.
func parseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}
