package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

type sessionFixture struct {
	svc        domain.SessionService
	sessRepo   *fakeSessionRepo
	confRepo   *fakeConferenceRepo
	profRepo   *fakeProfileRepo
	dispatcher *fakeDispatcher
}

func newSessionFixture() *sessionFixture {
	sessRepo := &fakeSessionRepo{}
	confRepo := &fakeConferenceRepo{conferences: []*domain.Conference{
		{ID: "conf-1", Name: "GopherCon", OrganizerUserID: "organizer-1"},
	}}
	profRepo := newFakeProfileRepo()
	dispatcher := &fakeDispatcher{}
	profiles := NewProfileService(profRepo, 2*time.Second)
	return &sessionFixture{
		svc:        NewSessionService(sessRepo, confRepo, profRepo, profiles, dispatcher, 2*time.Second),
		sessRepo:   sessRepo,
		confRepo:   confRepo,
		profRepo:   profRepo,
		dispatcher: dispatcher,
	}
}

func TestSessionService_Create(t *testing.T) {
	organizer := domain.Identity{UserID: "organizer-1", Email: "org@example.com"}

	t.Run("organizer creates a session and tasks are dispatched", func(t *testing.T) {
		f := newSessionFixture()

		sess, err := f.svc.Create(context.Background(), organizer, "conf-1", domain.SessionInput{
			Name:          "Concurrency Patterns",
			Speaker:       "Rob",
			TypeOfSession: "workshop",
			Date:          "2026-09-14",
			StartTime:     "09:30",
			Highlights:    []string{"channels"},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "conf-1", sess.ConferenceID)
		require.NotNil(t, sess.Date)
		require.NotNil(t, sess.StartTime)
		assert.Equal(t, 9, sess.StartTime.Hour())
		assert.Equal(t, 30, sess.StartTime.Minute())

		tasks := f.dispatcher.submitted()
		require.Len(t, tasks, 2)
		assert.Equal(t, domain.TaskSpeakerRepeat, tasks[0].Kind)
		assert.Equal(t, "conf-1", tasks[0].ConferenceID)
		assert.Equal(t, "Rob", tasks[0].Speaker)
		assert.Equal(t, domain.TaskSessionEmail, tasks[1].Kind)
		assert.Equal(t, "org@example.com", tasks[1].Email)
	})

	t.Run("non-organizer is forbidden", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.Create(context.Background(), domain.Identity{UserID: "someone-else"}, "conf-1", domain.SessionInput{
			Name: "Concurrency Patterns",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrForbidden))
		assert.Empty(t, f.sessRepo.sessions)
	})

	t.Run("unknown conference", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.Create(context.Background(), organizer, "missing", domain.SessionInput{
			Name: "Concurrency Patterns",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("name is required", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.Create(context.Background(), organizer, "conf-1", domain.SessionInput{Name: " "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("empty name is rejected even when the conference is unknown", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.Create(context.Background(), organizer, "missing", domain.SessionInput{Name: ""})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("invalid start time is rejected", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.Create(context.Background(), organizer, "conf-1", domain.SessionInput{
			Name:      "Concurrency Patterns",
			StartTime: "9am",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestSessionService_Lists(t *testing.T) {
	f := newSessionFixture()
	f.sessRepo.sessions = []*domain.Session{
		{ID: "s1", ConferenceID: "conf-1", Name: "A", Speaker: "Rob", TypeOfSession: "lecture", Highlights: []string{"go"}},
		{ID: "s2", ConferenceID: "conf-1", Name: "B", Speaker: "Ada", TypeOfSession: "workshop"},
		{ID: "s3", ConferenceID: "conf-2", Name: "C", Speaker: "Rob", Highlights: []string{"go", "cloud"}},
	}

	t.Run("by conference", func(t *testing.T) {
		sessions, err := f.svc.ListByConference(context.Background(), "conf-1")
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})

	t.Run("by conference checks existence", func(t *testing.T) {
		_, err := f.svc.ListByConference(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("by type", func(t *testing.T) {
		sessions, err := f.svc.ListByType(context.Background(), "conf-1", "workshop")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "s2", sessions[0].ID)
	})

	t.Run("by speaker spans conferences", func(t *testing.T) {
		sessions, err := f.svc.ListBySpeaker(context.Background(), "Rob")
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})

	t.Run("by highlight", func(t *testing.T) {
		sessions, err := f.svc.ListByHighlight(context.Background(), "cloud")
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "s3", sessions[0].ID)
	})
}

func TestSessionService_Wishlist(t *testing.T) {
	ident := domain.Identity{UserID: "user-1", Email: "user1@example.com"}

	t.Run("add is idempotent", func(t *testing.T) {
		f := newSessionFixture()
		f.sessRepo.sessions = []*domain.Session{{ID: "s1", Name: "A"}}

		sess, err := f.svc.AddToWishlist(context.Background(), ident, "s1")
		require.NoError(t, err)
		assert.Equal(t, "s1", sess.ID)

		_, err = f.svc.AddToWishlist(context.Background(), ident, "s1")
		require.NoError(t, err)

		prof, err := f.profRepo.GetByUserID(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, prof.SessionKeysInWishlist)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newSessionFixture()

		_, err := f.svc.AddToWishlist(context.Background(), ident, "missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("list keeps wishlist order and skips dangling keys", func(t *testing.T) {
		f := newSessionFixture()
		f.sessRepo.sessions = []*domain.Session{
			{ID: "s1", Name: "A"},
			{ID: "s2", Name: "B"},
		}
		f.profRepo.profiles["user-1"] = &domain.Profile{
			UserID:                "user-1",
			SessionKeysInWishlist: []string{"s2", "gone", "s1"},
		}

		sessions, err := f.svc.ListWishlist(context.Background(), ident)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, "s2", sessions[0].ID)
		assert.Equal(t, "s1", sessions[1].ID)
	})
}
