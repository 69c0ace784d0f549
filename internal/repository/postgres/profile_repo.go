package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const profileColumns = `user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_in_wishlist, created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_keys_in_wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysInWishlist),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, tee_shirt_size = $2, conference_keys_to_attend = $3, session_keys_in_wishlist = $4, updated_at = NOW()
		WHERE user_id = $5
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.DisplayName, string(p.TeeShirtSize),
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionKeysInWishlist),
		p.UserID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) ResetAllLists(ctx context.Context) error {
	query := `
		UPDATE profiles
		SET conference_keys_to_attend = '{}', session_keys_in_wishlist = '{}', updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query)
	return err
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var size string
	var attend, wishlist pq.StringArray
	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.MainEmail, &size,
		&attend, &wishlist, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.TeeShirtSize = domain.TeeShirtSize(size)
	p.ConferenceKeysToAttend = attend
	p.SessionKeysInWishlist = wishlist
	return p, nil
}
