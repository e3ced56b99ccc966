package certificates

import (
	"strings"

	"github.com/google/uuid"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

// CertificateRequest identifies what to produce. Immutable once received.
type CertificateRequest struct {
	ID                   uuid.UUID `json:"id"`
	Type                 string    `json:"type"` // raw certificate type string as stored
	ReferenceCode        string    `json:"reference_code"`
	GivenName            string    `json:"given_name"`
	FamilyName           string    `json:"family_name"`
	IdentificationType   string    `json:"identification_type"`
	IdentificationNumber string    `json:"identification_number"`
}

// FullName returns the student's display name.
func (r CertificateRequest) FullName() string {
	return strings.TrimSpace(r.GivenName + " " + r.FamilyName)
}

// ParseVariant maps the declared certificate type string to a layout variant.
// Matching is a case-insensitive substring check: the admin UI stores
// free-form labels such as "Certificado de Notas" or "Duplicado de
// certificado de curso corto", so both "estudio" and "curso" select the
// study-enrollment layout. Diploma requests arrive pre-tagged as "diploma".
func ParseVariant(certType string) (document.Variant, error) {
	t := strings.ToLower(certType)
	switch {
	case strings.Contains(t, "notas"):
		return document.VariantGrades, nil
	case strings.Contains(t, "estudio"), strings.Contains(t, "curso"):
		return document.VariantStudyEnrollment, nil
	case strings.Contains(t, "diploma"):
		return document.VariantDiploma, nil
	}
	return "", &UnsupportedVariantError{Type: certType}
}

// ProgramStatus is the enrollment state of a program.
type ProgramStatus string

const (
	ProgramActive   ProgramStatus = "active"
	ProgramFinished ProgramStatus = "finished"
)

// GradedSubject is one row of a grades transcript. The grade is assumed to be
// within [0.0, 5.0]; the records API performs no validation and neither do we.
type GradedSubject struct {
	Name        string  `json:"name"`
	ModuleLabel string  `json:"module_label"`
	Grade       float64 `json:"grade"`
}

// StudyModule groups ungraded subject names for the study-enrollment variant.
type StudyModule struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// Program is one enrolled program. Subjects is populated for the grades
// variant, Modules for the study-enrollment variant; the other stays empty.
type Program struct {
	Name          string          `json:"name"`
	DurationLabel string          `json:"duration_label"`
	Status        ProgramStatus   `json:"status"`
	Subjects      []GradedSubject `json:"subjects,omitempty"`
	Modules       []StudyModule   `json:"modules,omitempty"`
}

// AcademicRecord is owned exclusively by a single generation request.
type AcademicRecord struct {
	Programs []Program `json:"programs"`
}

// DiplomaRecord is the alternate record root for the diploma variant.
// BookNumber and ActNumber are nullable and render as a placeholder token.
type DiplomaRecord struct {
	DiplomaType          string  `json:"diploma_type"`
	DiplomaTypeLabel     string  `json:"diploma_type_label"`
	Modality             string  `json:"modality"`
	GradingDate          string  `json:"grading_date"`
	BookNumber           *string `json:"book_number"`
	ActNumber            *string `json:"act_number"`
	GivenName            string  `json:"given_name"`
	FamilyName           string  `json:"family_name"`
	IdentificationType   string  `json:"identification_type"`
	IdentificationNumber string  `json:"identification_number"`
}

// Record is the fetched data backing one generation request. Exactly one of
// the two roots is set, matching the request's variant.
type Record struct {
	Academic *AcademicRecord
	Diploma  *DiplomaRecord
}

// Institution is the issuing institution's identity, injected from config so
// the builder stays a pure function of its inputs.
type Institution struct {
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	City      string `json:"city"`
	Registrar string `json:"registrar"`
	Director  string `json:"director"`
}
