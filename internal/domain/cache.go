package domain

import "context"

// Cache keys for derived aggregates. Values are plain strings; a missing key
// means "no current value", never an error.
const (
	AnnouncementCacheKey    = "RECENT_ANNOUNCEMENTS"
	FeaturedSpeakerCacheKey = "FEATURED_SPEAKER"
)

// ConferenceFeaturedSpeakerCacheKey is the per-conference key written by the
// speaker-repeat check after session creation.
func ConferenceFeaturedSpeakerCacheKey(conferenceID string) string {
	return FeaturedSpeakerCacheKey + conferenceID
}

// AggregateCache is the cache-aside port for derived aggregates. It has no
// transactional guarantee with the entity store; entries may be absent at any
// time and carry last-writer-wins semantics.
type AggregateCache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AggregateService recomputes the cached derived views and serves reads of
// them. Cached values may be stale relative to the store; the store remains
// the source of truth.
type AggregateService interface {
	// RecomputeAnnouncement rebuilds the sold-out-soon announcement. When no
	// conference qualifies the cache entry is deleted and "" is returned.
	RecomputeAnnouncement(ctx context.Context) (string, error)
	// Announcement returns the cached announcement, or "" when absent.
	Announcement(ctx context.Context) (string, error)
	// RecomputeFeaturedSpeaker recounts speakers across all sessions and
	// caches the most frequent one ("" when no session has a speaker).
	RecomputeFeaturedSpeaker(ctx context.Context) (string, error)
	// FeaturedSpeaker returns the cached featured speaker, or "" when absent.
	FeaturedSpeaker(ctx context.Context) (string, error)
	// CheckSpeakerRepeat caches a per-conference entry when the speaker gives
	// more than one session in the conference; otherwise it writes nothing.
	CheckSpeakerRepeat(ctx context.Context, conferenceID, speaker string) (string, error)
	// ConferenceFeaturedSpeaker returns the cached per-conference entry, or
	// "" when absent.
	ConferenceFeaturedSpeaker(ctx context.Context, conferenceID string) (string, error)
}
