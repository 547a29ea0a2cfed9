package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// FuneralHome is an organization account. It is created only through a
// successful registration-code redemption; email and password mutate only
// through their respective code redemptions.
type FuneralHome struct {
	ID                       uuid.UUID      `json:"id" db:"id"`
	Name                     string         `json:"name" db:"name"`
	Email                    string         `json:"email" db:"email"`
	PasswordHash             string         `json:"-" db:"password_hash"`
	StripeAccountID          sql.NullString `json:"-" db:"stripe_account_id"`
	StripeOnboardingComplete bool           `json:"stripe_onboarding_complete" db:"stripe_onboarding_complete"`
	CreatedAt                time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt                *time.Time     `json:"-" db:"updated_at"`
}
