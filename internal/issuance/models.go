package issuance

import (
	"time"

	"github.com/google/uuid"
)

// IssuedCertificate is one row of the issuance audit log the admin dashboard
// lists. It records what was produced, never the document bytes themselves.
type IssuedCertificate struct {
	ID            uuid.UUID `json:"id" db:"id"`
	RequestID     uuid.UUID `json:"request_id" db:"request_id"`
	Variant       string    `json:"variant" db:"variant"`
	ReferenceCode string    `json:"reference_code" db:"reference_code"`
	StudentName   string    `json:"student_name" db:"student_name"`
	FileName      string    `json:"file_name" db:"file_name"`
	OutputMode    string    `json:"output_mode" db:"output_mode"`
	RenderedAt    time.Time `json:"rendered_at" db:"rendered_at"`
}
