package domain

import "context"

// RegistrationTxRepository executes one atomic unit of work over a profile
// and a conference. Implementations must guarantee that conflicting units of
// work for the same conference are serialized, that either both mutations
// commit or neither does, and that store-level conflicts are retried before
// surfacing ErrInternal.
type RegistrationTxRepository interface {
	// Execute loads and locks the conference and the user's profile inside a
	// single transaction, invokes mutate on them, and persists both records
	// iff mutate returns nil. A non-nil error from mutate rolls the
	// transaction back and is returned unwrapped.
	//
	// Returns ErrNotFound when either key does not resolve.
	Execute(ctx context.Context, userID, conferenceID string, mutate func(prof *Profile, conf *Conference) error) error
}

// RegistrationService registers and unregisters users against a conference's
// seat pool.
type RegistrationService interface {
	// Register adds the conference to the user's attendance list and takes
	// one seat. Fails with ErrNotFound when the conference does not exist and
	// with ErrConflict when already registered or no seats are available.
	Register(ctx context.Context, ident Identity, conferenceID string) (bool, error)
	// Unregister removes the conference from the user's attendance list and
	// returns one seat. Returns (false, nil) when the user was not
	// registered; no state is mutated in that case.
	Unregister(ctx context.Context, ident Identity, conferenceID string) (bool, error)
}
