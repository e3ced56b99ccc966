package document

import (
	"encoding/json"
)

// Variant identifies which of the three certificate layouts a model uses.
type Variant string

const (
	VariantGrades          Variant = "grades"
	VariantStudyEnrollment Variant = "studyEnrollment"
	VariantDiploma         Variant = "diploma"
)

// Label returns the filename prefix for the variant.
func (v Variant) Label() string {
	switch v {
	case VariantGrades:
		return "CertificadoNotas"
	case VariantStudyEnrollment:
		return "CertificadoEstudio"
	case VariantDiploma:
		return "Diploma"
	}
	return "Documento"
}

// SectionKind tags a DocumentSection.
type SectionKind string

const (
	SectionHeader            SectionKind = "header"
	SectionTitleBlock        SectionKind = "titleBlock"
	SectionIdentityStatement SectionKind = "identityStatement"
	SectionTable             SectionKind = "table"
	SectionAggregate         SectionKind = "aggregate"
	SectionNarrative         SectionKind = "narrative"
	SectionSignatureBlock    SectionKind = "signatureBlock"
	SectionFooter            SectionKind = "footer"
)

// EmbeddedImage is a resolved visual asset ready for embedding. The raw bytes
// are kept alongside the base64 data URI so renderers can pick either form.
type EmbeddedImage struct {
	Format  string `json:"format"` // "png" or "jpeg"
	Bytes   []byte `json:"bytes"`
	DataURI string `json:"data_uri"`
}

// HeaderSection is the institutional header. Logo is nil when the asset could
// not be resolved; the renderer then falls back to the text-only identity.
type HeaderSection struct {
	InstitutionName string         `json:"institution_name"`
	TaxID           string         `json:"tax_id"`
	City            string         `json:"city"`
	Logo            *EmbeddedImage `json:"logo,omitempty"`
}

type TitleBlockSection struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

type IdentityStatementSection struct {
	FullName             string `json:"full_name"`
	IdentificationType   string `json:"identification_type"`
	IdentificationNumber string `json:"identification_number"`
	Statement            string `json:"statement"`
}

// TableModel is a laid-out table body. When Placeholder is non-empty the
// table has no data rows and renders a single full-width placeholder row.
type TableModel struct {
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
	AggregateRow []string   `json:"aggregate_row,omitempty"`
	Placeholder  string     `json:"placeholder,omitempty"`
}

type TableSection struct {
	Title string     `json:"title,omitempty"`
	Table TableModel `json:"table"`
}

type AggregateSection struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type NarrativeSection struct {
	Text string `json:"text"`
}

// SignatureLine is one signatory. The text line is always rendered; Image is
// drawn above it only when the signature asset resolved.
type SignatureLine struct {
	Name  string         `json:"name"`
	Role  string         `json:"role"`
	Image *EmbeddedImage `json:"image,omitempty"`
}

type SignatureBlockSection struct {
	Lines []SignatureLine `json:"lines"`
}

type FooterSection struct {
	City       string `json:"city"`
	Date       string `json:"date"`
	BookNumber string `json:"book_number,omitempty"`
	ActNumber  string `json:"act_number,omitempty"`
}

// DocumentSection is a tagged union: Kind names the populated payload field.
type DocumentSection struct {
	Kind       SectionKind               `json:"kind"`
	Header     *HeaderSection            `json:"header,omitempty"`
	Title      *TitleBlockSection        `json:"title,omitempty"`
	Identity   *IdentityStatementSection `json:"identity,omitempty"`
	Table      *TableSection             `json:"table,omitempty"`
	Aggregate  *AggregateSection         `json:"aggregate,omitempty"`
	Narrative  *NarrativeSection         `json:"narrative,omitempty"`
	Signatures *SignatureBlockSection    `json:"signatures,omitempty"`
	Footer     *FooterSection            `json:"footer,omitempty"`
}

// DocumentModel is the renderer-agnostic representation of a finished
// certificate. It is assembled once per request and never mutated after.
type DocumentModel struct {
	Variant    Variant           `json:"variant"`
	Background *EmbeddedImage    `json:"background,omitempty"`
	Sections   []DocumentSection `json:"sections"`
}

// Serialize returns a canonical JSON encoding of the model. Identical inputs
// to the builder yield byte-identical serializations.
func (m *DocumentModel) Serialize() ([]byte, error) {
	return json.Marshal(m)
}
