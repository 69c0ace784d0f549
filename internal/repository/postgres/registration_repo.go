package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// registrationTxAttempts is how many times a conflicting transaction is
// retried before surfacing ErrInternal.
const registrationTxAttempts = 3

type registrationTxRepository struct {
	DB *sql.DB
}

func NewRegistrationTxRepository(db *sql.DB) domain.RegistrationTxRepository {
	return &registrationTxRepository{
		DB: db,
	}
}

// Execute runs mutate against the locked conference and profile rows inside
// one transaction. Both rows are locked with SELECT ... FOR UPDATE, always in
// the order conference then profile, so conflicting registrations for the
// same conference serialize on the conference row and the seat pool can never
// leave [0, max_attendees].
func (r *registrationTxRepository) Execute(ctx context.Context, userID, conferenceID string, mutate func(prof *domain.Profile, conf *domain.Conference) error) error {
	var err error
	for attempt := 0; attempt < registrationTxAttempts; attempt++ {
		err = r.executeOnce(ctx, userID, conferenceID, mutate)
		if !retryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: registration transaction did not commit after %d attempts: %v", domain.ErrInternal, registrationTxAttempts, err)
}

func (r *registrationTxRepository) executeOnce(ctx context.Context, userID, conferenceID string, mutate func(prof *domain.Profile, conf *domain.Conference) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	confQuery := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1 FOR UPDATE`
	conf, err := scanConference(tx.QueryRowContext(ctx, confQuery, conferenceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock conference: %w", err)
	}

	profQuery := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1 FOR UPDATE`
	prof, err := scanProfile(tx.QueryRowContext(ctx, profQuery, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock profile: %w", err)
	}

	if err := mutate(prof, conf); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = $1, updated_at = NOW() WHERE id = $2`,
		conf.SeatsAvailable, conf.ID,
	); err != nil {
		return fmt.Errorf("update conference seats: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET conference_keys_to_attend = $1, updated_at = NOW() WHERE user_id = $2`,
		pq.Array(prof.ConferenceKeysToAttend), prof.UserID,
	); err != nil {
		return fmt.Errorf("update profile attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit registration tx: %w", err)
	}
	return nil
}

// retryableTxError reports whether the error is a serialization failure
// (40001) or deadlock (40P01) that a fresh attempt may resolve.
func retryableTxError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
