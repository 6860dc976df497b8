package model

import "time"

// Metadata holds the timestamps every table carries. Both are assigned by the
// service layer; created_at is never part of an update.
type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
