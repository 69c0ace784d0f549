package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const sessionColumns = `id, conference_id, name, speaker, type_of_session, date, start_time, highlights, created_at, updated_at`

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	query := `
		INSERT INTO sessions (id, conference_id, name, speaker, type_of_session, date, start_time, highlights, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		s.ID, s.ConferenceID, s.Name, s.Speaker, s.TypeOfSession,
		nullTime(s.Date), nullTime(s.StartTime), pq.Array(s.Highlights),
		s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s, err := scanSession(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, conferenceID)
}

func (r *sessionRepository) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND type_of_session = $2 ORDER BY created_at, id`
	return r.list(ctx, query, conferenceID, typeOfSession)
}

func (r *sessionRepository) ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND speaker = $2 ORDER BY created_at, id`
	return r.list(ctx, query, conferenceID, speaker)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE speaker = $1 ORDER BY created_at, id`
	return r.list(ctx, query, speaker)
}

func (r *sessionRepository) ListByHighlight(ctx context.Context, highlight string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE $1 = ANY(highlights) ORDER BY created_at, id`
	return r.list(ctx, query, highlight)
}

func (r *sessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

// ListAll returns every session in creation order. The featured-speaker
// computation relies on this ordering for its deterministic tie-break.
func (r *sessionRepository) ListAll(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *sessionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions`)
	return err
}

func (r *sessionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var highlights pq.StringArray
	var dateNull, startNull sql.NullTime
	err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.Speaker, &s.TypeOfSession,
		&dateNull, &startNull, &highlights, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Highlights = highlights
	if dateNull.Valid {
		s.Date = &dateNull.Time
	}
	if startNull.Valid {
		s.StartTime = &startNull.Time
	}
	return s, nil
}
