package postgres

import "time"

type playerTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	IsRinger  bool      `db:"is_ringer"`
	IsRetired bool      `db:"is_retired"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
