package postgres

import (
	"database/sql"

	"conferencecentral/internal/domain"
)

// conferenceRows adapts *sql.Rows to the lazy, once-consumable stream the
// query contract requires.
type conferenceRows struct {
	rows *sql.Rows
	cur  *domain.Conference
	err  error
}

func (c *conferenceRows) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	conf, err := scanConference(c.rows)
	if err != nil {
		c.err = err
		return false
	}
	c.cur = conf
	return true
}

func (c *conferenceRows) Conference() *domain.Conference { return c.cur }

func (c *conferenceRows) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *conferenceRows) Close() error { return c.rows.Close() }
