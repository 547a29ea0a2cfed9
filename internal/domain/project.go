package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a memorial page for one deceased person, reachable by slug.
type Project struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FuneralHomeID uuid.UUID `json:"funeral_home_id" db:"funeral_home_id"`
	DeceasedName  string    `json:"deceased_name" db:"deceased_name"`
	Slug          string    `json:"slug" db:"slug"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
