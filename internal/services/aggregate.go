package services

import (
	"context"
	"fmt"
	"strings"

	"conferencecentral/internal/domain"
)

// almostSoldOutThreshold is the seats-available cutoff for the announcement.
const almostSoldOutThreshold = 5

const announcementPrefix = "Act soon! The following conferences are almost sold out: "

type aggregateService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	cache          domain.AggregateCache
}

func NewAggregateService(
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	cache domain.AggregateCache,
) domain.AggregateService {
	return &aggregateService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		cache:          cache,
	}
}

func (s *aggregateService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	confs, err := s.conferenceRepo.ListAlmostSoldOut(ctx, almostSoldOutThreshold)
	if err != nil {
		return "", fmt.Errorf("list almost-sold-out conferences: %w", err)
	}

	if len(confs) == 0 {
		// Absence, not empty string, is the "no announcement" state.
		if err := s.cache.Delete(ctx, domain.AnnouncementCacheKey); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(confs))
	for _, c := range confs {
		names = append(names, c.Name)
	}
	announcement := announcementPrefix + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.AnnouncementCacheKey, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

func (s *aggregateService) Announcement(ctx context.Context) (string, error) {
	return s.cachedValue(ctx, domain.AnnouncementCacheKey)
}

// RecomputeFeaturedSpeaker counts speaker occurrences across all sessions in
// scan order. The first speaker whose running count exceeds the best seen so
// far wins, which breaks ties by first occurrence and keeps the result
// reproducible for a given store state.
func (s *aggregateService) RecomputeFeaturedSpeaker(ctx context.Context) (string, error) {
	sessions, err := s.sessionRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("list sessions: %w", err)
	}

	counts := make(map[string]int)
	featured := ""
	best := 0
	for _, sess := range sessions {
		if sess.Speaker == "" {
			continue
		}
		counts[sess.Speaker]++
		if counts[sess.Speaker] > best {
			best = counts[sess.Speaker]
			featured = sess.Speaker
		}
	}

	if err := s.cache.Set(ctx, domain.FeaturedSpeakerCacheKey, featured); err != nil {
		return "", fmt.Errorf("set featured speaker: %w", err)
	}
	return featured, nil
}

func (s *aggregateService) FeaturedSpeaker(ctx context.Context) (string, error) {
	return s.cachedValue(ctx, domain.FeaturedSpeakerCacheKey)
}

func (s *aggregateService) CheckSpeakerRepeat(ctx context.Context, conferenceID, speaker string) (string, error) {
	if speaker == "" {
		return "", nil
	}
	sessions, err := s.sessionRepo.ListByConferenceAndSpeaker(ctx, conferenceID, speaker)
	if err != nil {
		return "", fmt.Errorf("list sessions by speaker: %w", err)
	}
	if len(sessions) <= 1 {
		return "", nil
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}
	text := fmt.Sprintf("Featured speaker is: %s. Sessions include: %s", speaker, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.ConferenceFeaturedSpeakerCacheKey(conferenceID), text); err != nil {
		return "", fmt.Errorf("set conference featured speaker: %w", err)
	}
	return text, nil
}

func (s *aggregateService) ConferenceFeaturedSpeaker(ctx context.Context, conferenceID string) (string, error) {
	return s.cachedValue(ctx, domain.ConferenceFeaturedSpeakerCacheKey(conferenceID))
}

// cachedValue normalizes cache absence to "" at the read boundary.
func (s *aggregateService) cachedValue(ctx context.Context, key string) (string, error) {
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: cache get: %v", domain.ErrInternal, err)
	}
	if !ok {
		return "", nil
	}
	return val, nil
}
