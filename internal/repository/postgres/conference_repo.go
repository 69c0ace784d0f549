package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const conferenceColumns = `id, organizer_user_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	query := `
		INSERT INTO conferences (id, organizer_user_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.OrganizerUserID, c.Name, c.City, pq.Array(c.Topics),
		nullTime(c.StartDate), nullTime(c.EndDate), c.Month, c.MaxAttendees,
		c.SeatsAvailable, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerUserID string) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, organizerUserID)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(ids))
}

func (r *conferenceRepository) ListAlmostSoldOut(ctx context.Context, threshold int) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= $1 ORDER BY name`
	return r.list(ctx, query, threshold)
}

// Query translates a compiled filter query to SQL and returns a lazy stream
// over the result rows. Topic filters compare against the members of the
// topics array; other fields compare directly.
func (r *conferenceRepository) Query(ctx context.Context, q *domain.ConferenceQuery) (domain.ConferenceRows, error) {
	var conds []string
	var args []interface{}

	for _, f := range q.Filters {
		n := len(args) + 1
		switch f.Field {
		case domain.FilterFieldCity:
			conds = append(conds, fmt.Sprintf("city %s $%d", sqlOp(f.Op), n))
			args = append(args, f.Str)
		case domain.FilterFieldMonth:
			conds = append(conds, fmt.Sprintf("month %s $%d", sqlOp(f.Op), n))
			args = append(args, f.Int)
		case domain.FilterFieldMaxAttendees:
			conds = append(conds, fmt.Sprintf("max_attendees %s $%d", sqlOp(f.Op), n))
			args = append(args, f.Int)
		case domain.FilterFieldTopic:
			switch f.Op {
			case domain.OpEq:
				conds = append(conds, fmt.Sprintf("$%d = ANY(topics)", n))
			case domain.OpNe:
				conds = append(conds, fmt.Sprintf("NOT ($%d = ANY(topics))", n))
			default:
				conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(topics) AS topic WHERE topic %s $%d)", sqlOp(f.Op), n))
			}
			args = append(args, f.Str)
		default:
			return nil, fmt.Errorf("%w: unsupported filter field %q", domain.ErrInvalidInput, f.Field)
		}
	}

	query := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(q.InequalityField)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &conferenceRows{rows: rows}, nil
}

func (r *conferenceRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM conferences`)
	return err
}

func (r *conferenceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}
	return confs, rows.Err()
}

func sqlOp(op domain.FilterOp) string {
	if op == domain.OpNe {
		return "<>"
	}
	return string(op)
}

// orderClause returns the ORDER BY expression: the inequality field first
// when one is present, then name for deterministic ordering.
func orderClause(inequality domain.FilterField) string {
	switch inequality {
	case domain.FilterFieldCity:
		return "city, name"
	case domain.FilterFieldTopic:
		return "topics, name"
	case domain.FilterFieldMonth:
		return "month, name"
	case domain.FilterFieldMaxAttendees:
		return "max_attendees, name"
	}
	return "name"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var topics pq.StringArray
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerUserID, &c.Name, &c.City, &topics,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Topics = topics
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

// nullTime maps an optional time to its SQL value (NULL when unset).
func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
