package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kenpai is a monetary condolence from a remote mourner, recorded against a
// memorial project. Rows are written only by the payment webhook.
type Kenpai struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	ProjectID uuid.UUID      `json:"project_id" db:"project_id"`
	DonorName string         `json:"donor_name" db:"donor_name"`
	Amount    int64          `json:"amount" db:"amount"`
	Message   sql.NullString `json:"message" db:"message"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
