package services

import (
	"context"
	"fmt"
	"sync"

	"conferencecentral/internal/domain"
)

// In-memory fakes shared by the service tests. They mirror the repository
// contracts closely enough to exercise the service logic without a database.

type fakeConferenceRepo struct {
	mu          sync.Mutex
	conferences []*domain.Conference
	deleteAll   bool
}

func (r *fakeConferenceRepo) Create(_ context.Context, conf *domain.Conference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *conf
	r.conferences = append(r.conferences, &c)
	return nil
}

func (r *fakeConferenceRepo) GetByID(_ context.Context, id string) (*domain.Conference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conferences {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeConferenceRepo) ListByOrganizer(_ context.Context, organizerUserID string) ([]*domain.Conference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Conference
	for _, c := range r.conferences {
		if c.OrganizerUserID == organizerUserID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConferenceRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Conference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*domain.Conference
	for _, c := range r.conferences {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConferenceRepo) Query(_ context.Context, q *domain.ConferenceQuery) (domain.ConferenceRows, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &sliceConferenceRows{conferences: append([]*domain.Conference(nil), r.conferences...)}, nil
}

func (r *fakeConferenceRepo) ListAlmostSoldOut(_ context.Context, threshold int) ([]*domain.Conference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Conference
	for _, c := range r.conferences {
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= threshold {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConferenceRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conferences = nil
	r.deleteAll = true
	return nil
}

type sliceConferenceRows struct {
	conferences []*domain.Conference
	pos         int
	closed      bool
}

func (r *sliceConferenceRows) Next() bool {
	if r.pos >= len(r.conferences) {
		return false
	}
	r.pos++
	return true
}

func (r *sliceConferenceRows) Conference() *domain.Conference { return r.conferences[r.pos-1] }
func (r *sliceConferenceRows) Err() error                     { return nil }
func (r *sliceConferenceRows) Close() error                   { r.closed = true; return nil }

type fakeSessionRepo struct {
	sessions  []*domain.Session
	deleteAll bool
}

func (r *fakeSessionRepo) Create(_ context.Context, sess *domain.Session) error {
	s := *sess
	r.sessions = append(r.sessions, &s)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSessionRepo) ListByConference(_ context.Context, conferenceID string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.ConferenceID == conferenceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByConferenceAndType(_ context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.ConferenceID == conferenceID && s.TypeOfSession == typeOfSession {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByConferenceAndSpeaker(_ context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.ConferenceID == conferenceID && s.Speaker == speaker {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListBySpeaker(_ context.Context, speaker string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		if s.Speaker == speaker {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByHighlight(_ context.Context, highlight string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range r.sessions {
		for _, h := range s.Highlights {
			if h == highlight {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Session, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []*domain.Session
	for _, s := range r.sessions {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListAll(context.Context) ([]*domain.Session, error) {
	return append([]*domain.Session(nil), r.sessions...), nil
}

func (r *fakeSessionRepo) DeleteAll(context.Context) error {
	r.sessions = nil
	r.deleteAll = true
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	resetAll bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prof, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *prof
	out.ConferenceKeysToAttend = append([]string(nil), prof.ConferenceKeysToAttend...)
	out.SessionKeysInWishlist = append([]string(nil), prof.SessionKeysInWishlist...)
	return &out, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, prof *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *prof
	r.profiles[prof.UserID] = &p
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, prof *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[prof.UserID]; !ok {
		return domain.ErrNotFound
	}
	p := *prof
	r.profiles[prof.UserID] = &p
	return nil
}

func (r *fakeProfileRepo) ResetAllLists(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		p.ConferenceKeysToAttend = []string{}
		p.SessionKeysInWishlist = []string{}
	}
	r.resetAll = true
	return nil
}

// fakeRegistrationTxRepo emulates the all-or-nothing unit of work: the mutate
// callback runs on copies, and the copies replace the stored records only when
// it returns nil.
type fakeRegistrationTxRepo struct {
	mu          sync.Mutex
	profiles    map[string]*domain.Profile
	conferences map[string]*domain.Conference
}

func newFakeRegistrationTxRepo() *fakeRegistrationTxRepo {
	return &fakeRegistrationTxRepo{
		profiles:    make(map[string]*domain.Profile),
		conferences: make(map[string]*domain.Conference),
	}
}

func (r *fakeRegistrationTxRepo) Execute(_ context.Context, userID, conferenceID string, mutate func(*domain.Profile, *domain.Conference) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conf, ok := r.conferences[conferenceID]
	if !ok {
		return fmt.Errorf("%w: no conference found with key: %s", domain.ErrNotFound, conferenceID)
	}
	prof, ok := r.profiles[userID]
	if !ok {
		return fmt.Errorf("%w: no profile found for user: %s", domain.ErrNotFound, userID)
	}

	confCopy := *conf
	profCopy := *prof
	profCopy.ConferenceKeysToAttend = append([]string(nil), prof.ConferenceKeysToAttend...)
	if err := mutate(&profCopy, &confCopy); err != nil {
		return err
	}
	*conf = confCopy
	*prof = profCopy
	return nil
}

// profilesFor wires a profile service whose backing store already shares
// profiles with the tx repo, so GetOrCreate and Execute see the same records.
type sharedProfileRepo struct {
	tx *fakeRegistrationTxRepo
}

func (r *sharedProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()
	prof, ok := r.tx.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *prof
	return &out, nil
}

func (r *sharedProfileRepo) Create(_ context.Context, prof *domain.Profile) error {
	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()
	p := *prof
	r.tx.profiles[prof.UserID] = &p
	return nil
}

func (r *sharedProfileRepo) Update(_ context.Context, prof *domain.Profile) error {
	r.tx.mu.Lock()
	defer r.tx.mu.Unlock()
	p := *prof
	r.tx.profiles[prof.UserID] = &p
	return nil
}

func (r *sharedProfileRepo) ResetAllLists(context.Context) error { return nil }

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (d *fakeDispatcher) Submit(task domain.Task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tasks = append(d.tasks, task)
}

func (d *fakeDispatcher) submitted() []domain.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Task(nil), d.tasks...)
}

type fakeMailer struct {
	to       []string
	subjects []string
}

func (m *fakeMailer) Send(to, subject, html, text string) error {
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	return nil
}
