package domain

import (
	"time"

	"github.com/google/uuid"
)

type VerificationPurpose string

const (
	PurposeRegister      VerificationPurpose = "register"
	PurposePasswordReset VerificationPurpose = "password_reset"
	PurposeEmailChange   VerificationPurpose = "email_change"
)

// VerificationCode is a short-lived single-use numeric secret proving control
// of an email address for one privileged action. At most one live code exists
// per (purpose, subject); issuing a new one supersedes the previous.
//
// The subject is Email for register and password reset, FuneralHomeID for
// email change (where Email holds the prospective new address).
type VerificationCode struct {
	ID            uuid.UUID           `db:"id"`
	Purpose       VerificationPurpose `db:"purpose"`
	Email         string              `db:"email"`
	Code          string              `db:"code"`
	FuneralHomeID uuid.UUID           `db:"funeral_home_id"`
	Payload       string              `db:"payload"`
	ExpiresAt     time.Time           `db:"expires_at"`
	CreatedAt     time.Time           `db:"created_at"`
}

func (v *VerificationCode) Expired(now time.Time) bool {
	return v.ExpiresAt.Before(now)
}
