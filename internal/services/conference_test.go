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

type conferenceFixture struct {
	svc        domain.ConferenceService
	confRepo   *fakeConferenceRepo
	sessRepo   *fakeSessionRepo
	profRepo   *fakeProfileRepo
	dispatcher *fakeDispatcher
}

func newConferenceFixture() *conferenceFixture {
	confRepo := &fakeConferenceRepo{}
	sessRepo := &fakeSessionRepo{}
	profRepo := newFakeProfileRepo()
	dispatcher := &fakeDispatcher{}
	profiles := NewProfileService(profRepo, 2*time.Second)
	return &conferenceFixture{
		svc:        NewConferenceService(confRepo, sessRepo, profRepo, profiles, dispatcher, 2*time.Second),
		confRepo:   confRepo,
		sessRepo:   sessRepo,
		profRepo:   profRepo,
		dispatcher: dispatcher,
	}
}

func TestConferenceService_Create(t *testing.T) {
	ident := domain.Identity{UserID: "user-1", Email: "ada@example.com"}

	t.Run("applies defaults and fills the seat pool", func(t *testing.T) {
		f := newConferenceFixture()

		conf, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{
			Name:         "GopherCon",
			StartDate:    "2026-09-14",
			EndDate:      "2026-09-16",
			MaxAttendees: 100,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, conf.ID)
		assert.Equal(t, "user-1", conf.OrganizerUserID)
		assert.Equal(t, "Default City", conf.City)
		assert.Equal(t, []string{"Default", "Topic"}, conf.Topics)
		assert.Equal(t, 9, conf.Month)
		assert.Equal(t, 100, conf.SeatsAvailable)

		// Organizer profile is created on the way.
		_, err = f.profRepo.GetByUserID(context.Background(), "user-1")
		require.NoError(t, err)

		// Confirmation email is dispatched.
		tasks := f.dispatcher.submitted()
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.TaskConferenceEmail, tasks[0].Kind)
		assert.Equal(t, "ada@example.com", tasks[0].Email)
	})

	t.Run("explicit fields are kept", func(t *testing.T) {
		f := newConferenceFixture()

		conf, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{
			Name:   "dotGo",
			City:   "Paris",
			Topics: []string{"Go", "Cloud"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Paris", conf.City)
		assert.Equal(t, []string{"Go", "Cloud"}, conf.Topics)
		assert.Zero(t, conf.Month)
		assert.Zero(t, conf.SeatsAvailable)
	})

	t.Run("name is required", func(t *testing.T) {
		f := newConferenceFixture()

		_, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{Name: "  "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Empty(t, f.confRepo.conferences)
	})

	t.Run("negative max attendees is rejected", func(t *testing.T) {
		f := newConferenceFixture()

		_, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{
			Name:         "dotGo",
			MaxAttendees: -1,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("unparsable start date is rejected", func(t *testing.T) {
		f := newConferenceFixture()

		_, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{
			Name:      "dotGo",
			StartDate: "14/09/2026",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("datetime strings are trimmed to the date", func(t *testing.T) {
		f := newConferenceFixture()

		conf, err := f.svc.Create(context.Background(), ident, domain.ConferenceInput{
			Name:      "dotGo",
			StartDate: "2026-03-02T09:00:00",
		})
		require.NoError(t, err)
		require.NotNil(t, conf.StartDate)
		assert.Equal(t, 3, conf.Month)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		f := newConferenceFixture()

		_, err := f.svc.Create(context.Background(), domain.Identity{}, domain.ConferenceInput{Name: "dotGo"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	})
}

func TestConferenceService_Query(t *testing.T) {
	t.Run("invalid filters fail before the store is hit", func(t *testing.T) {
		f := newConferenceFixture()

		_, err := f.svc.Query(context.Background(), []domain.FilterSpec{
			{Field: "MONTH", Operator: "GT", Value: "3"},
			{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("valid filters stream results", func(t *testing.T) {
		f := newConferenceFixture()
		f.confRepo.conferences = []*domain.Conference{
			{ID: "a", Name: "One"},
			{ID: "b", Name: "Two"},
		}

		rows, err := f.svc.Query(context.Background(), []domain.FilterSpec{
			{Field: "CITY", Operator: "EQ", Value: "London"},
		})
		require.NoError(t, err)
		defer rows.Close()

		var names []string
		for rows.Next() {
			names = append(names, rows.Conference().Name)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"One", "Two"}, names)
	})
}

func TestConferenceService_ListToAttend(t *testing.T) {
	t.Run("keeps registration order and skips dangling keys", func(t *testing.T) {
		f := newConferenceFixture()
		f.confRepo.conferences = []*domain.Conference{
			{ID: "a", Name: "One"},
			{ID: "b", Name: "Two"},
		}
		f.profRepo.profiles["user-1"] = &domain.Profile{
			UserID:                 "user-1",
			ConferenceKeysToAttend: []string{"b", "gone", "a"},
		}

		confs, err := f.svc.ListToAttend(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, confs, 2)
		assert.Equal(t, "b", confs[0].ID)
		assert.Equal(t, "a", confs[1].ID)
	})

	t.Run("no profile means no conferences", func(t *testing.T) {
		f := newConferenceFixture()

		confs, err := f.svc.ListToAttend(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, confs)
	})
}

func TestConferenceService_ClearAllData(t *testing.T) {
	f := newConferenceFixture()
	f.confRepo.conferences = []*domain.Conference{{ID: "a"}}
	f.sessRepo.sessions = []*domain.Session{{ID: "s"}}
	f.profRepo.profiles["user-1"] = &domain.Profile{
		UserID:                 "user-1",
		ConferenceKeysToAttend: []string{"a"},
		SessionKeysInWishlist:  []string{"s"},
	}

	require.NoError(t, f.svc.ClearAllData(context.Background()))

	assert.True(t, f.sessRepo.deleteAll)
	assert.True(t, f.confRepo.deleteAll)
	assert.True(t, f.profRepo.resetAll)
	assert.Empty(t, f.profRepo.profiles["user-1"].ConferenceKeysToAttend)
	assert.Empty(t, f.profRepo.profiles["user-1"].SessionKeysInWishlist)
}
