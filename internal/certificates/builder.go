package certificates

import (
	"fmt"
	"time"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func spanishDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// Builder assembles a DocumentModel from a request, its fetched record and
// the terminal asset resolutions. It performs no I/O: fetching and asset
// resolution are completed before Build runs, so identical inputs always
// produce a byte-identical model.
type Builder struct {
	institution Institution
	clock       func() time.Time
}

// NewBuilder creates a builder for the issuing institution. clock stamps the
// issue date on footers; pass nil for time.Now.
func NewBuilder(institution Institution, clock func() time.Time) *Builder {
	if clock == nil {
		clock = time.Now
	}
	return &Builder{institution: institution, clock: clock}
}

// Build dispatches on the request's declared certificate type and assembles
// the full section sequence: header, title block, identity statement, then
// the variant-specific body. An unrecognized type is a hard error.
func (b *Builder) Build(req CertificateRequest, rec Record, assets ResolvedAssets) (*document.DocumentModel, error) {
	variant, err := ParseVariant(req.Type)
	if err != nil {
		return nil, err
	}

	model := &document.DocumentModel{Variant: variant}
	model.Sections = append(model.Sections, b.headerSection(assets))

	switch variant {
	case document.VariantGrades:
		if rec.Academic == nil {
			return nil, fmt.Errorf("grades variant requires an academic record")
		}
		model.Sections = append(model.Sections, b.titleSection("CERTIFICADO DE NOTAS"))
		model.Sections = append(model.Sections, b.identitySection(req))
		model.Sections = append(model.Sections, b.gradesBody(rec.Academic)...)

	case document.VariantStudyEnrollment:
		if rec.Academic == nil {
			return nil, fmt.Errorf("study-enrollment variant requires an academic record")
		}
		model.Sections = append(model.Sections, b.titleSection("CERTIFICADO DE ESTUDIO"))
		model.Sections = append(model.Sections, b.identitySection(req))
		model.Sections = append(model.Sections, b.studyBody(rec.Academic)...)

	case document.VariantDiploma:
		if rec.Diploma == nil {
			return nil, fmt.Errorf("diploma variant requires a diploma record")
		}
		model.Background = assets.Image(AssetCompositeBackground)
		model.Sections = append(model.Sections, b.titleSection(rec.Diploma.DiplomaTypeLabel))
		model.Sections = append(model.Sections, b.identitySection(req))
		model.Sections = append(model.Sections, b.diplomaBody(rec.Diploma, assets)...)
	}

	return model, nil
}

// headerSection occupies the same layout slot whether or not the logo
// resolved; with no logo the renderer falls back to the text identity.
func (b *Builder) headerSection(assets ResolvedAssets) document.DocumentSection {
	return document.DocumentSection{
		Kind: document.SectionHeader,
		Header: &document.HeaderSection{
			InstitutionName: b.institution.Name,
			TaxID:           b.institution.TaxID,
			City:            b.institution.City,
			Logo:            assets.Image(AssetLogo),
		},
	}
}

func (b *Builder) titleSection(title string) document.DocumentSection {
	return document.DocumentSection{
		Kind:  document.SectionTitleBlock,
		Title: &document.TitleBlockSection{Title: title},
	}
}

func (b *Builder) identitySection(req CertificateRequest) document.DocumentSection {
	return document.DocumentSection{
		Kind: document.SectionIdentityStatement,
		Identity: &document.IdentityStatementSection{
			FullName:             req.FullName(),
			IdentificationType:   req.IdentificationType,
			IdentificationNumber: req.IdentificationNumber,
			Statement: fmt.Sprintf("Hace constar que %s, identificado(a) con %s No. %s,",
				req.FullName(), req.IdentificationType, req.IdentificationNumber),
		},
	}
}

// gradesBody emits one transcript table per program followed by the overall
// average: the mean of the per-program averages, rounded to one decimal.
// Programs with no graded subjects carry the sentinel aggregate row and are
// excluded from the overall mean.
func (b *Builder) gradesBody(rec *AcademicRecord) []document.DocumentSection {
	var sections []document.DocumentSection

	var programAverages []float64
	for _, program := range rec.Programs {
		title := program.Name
		if program.DurationLabel != "" {
			title += " (" + program.DurationLabel + ")"
		}
		sections = append(sections, document.DocumentSection{
			Kind: document.SectionTable,
			Table: &document.TableSection{
				Title: title,
				Table: gradesTable(program.Subjects),
			},
		})
		if avg, ok := programAverage(program.Subjects); ok {
			programAverages = append(programAverages, avg)
		}
	}

	overall := noGradeAverage
	if len(programAverages) > 0 {
		sum := 0.0
		for _, avg := range programAverages {
			sum += avg
		}
		overall = formatGrade(round1(sum / float64(len(programAverages))))
	}

	sections = append(sections, document.DocumentSection{
		Kind: document.SectionAggregate,
		Aggregate: &document.AggregateSection{
			Label: "Promedio general",
			Value: overall,
		},
	})
	return sections
}

// studyBody emits the enrollment narrative for the single enrolled program
// followed by its module table.
func (b *Builder) studyBody(rec *AcademicRecord) []document.DocumentSection {
	var sections []document.DocumentSection

	var program Program
	if len(rec.Programs) > 0 {
		program = rec.Programs[0]
	}

	statusLabel := "en curso"
	if program.Status == ProgramFinished {
		statusLabel = "finalizado"
	}

	text := fmt.Sprintf("Se encuentra matriculado(a) en el programa %s, con una duración de %s, actualmente %s.",
		program.Name, program.DurationLabel, statusLabel)
	if program.Name == "" {
		text = "No registra programas matriculados."
	}

	sections = append(sections,
		document.DocumentSection{
			Kind:      document.SectionNarrative,
			Narrative: &document.NarrativeSection{Text: text},
		},
		document.DocumentSection{
			Kind: document.SectionTable,
			Table: &document.TableSection{
				Title: program.Name,
				Table: modulesTable(program.Modules),
			},
		},
	)
	return sections
}

// diplomaBody emits the certifying narrative, the signature block and the
// footer. The two text signature lines are always present; images appear
// above them only when the corresponding asset resolved. Missing book or act
// numbers render the fixed placeholder token, never blank.
func (b *Builder) diplomaBody(rec *DiplomaRecord, assets ResolvedAssets) []document.DocumentSection {
	narrative := fmt.Sprintf(
		"En virtud de lo anterior se le otorga el presente %s, modalidad %s, sustentado y aprobado el %s.",
		rec.DiplomaTypeLabel, rec.Modality, rec.GradingDate)

	book := missingNumberToken
	if rec.BookNumber != nil && *rec.BookNumber != "" {
		book = *rec.BookNumber
	}
	act := missingNumberToken
	if rec.ActNumber != nil && *rec.ActNumber != "" {
		act = *rec.ActNumber
	}

	return []document.DocumentSection{
		{
			Kind:      document.SectionNarrative,
			Narrative: &document.NarrativeSection{Text: narrative},
		},
		{
			Kind: document.SectionSignatureBlock,
			Signatures: &document.SignatureBlockSection{
				Lines: []document.SignatureLine{
					{
						Name:  b.institution.Director,
						Role:  "Director(a)",
						Image: assets.Image(AssetSignatureLeft),
					},
					{
						Name:  b.institution.Registrar,
						Role:  "Secretario(a) Académico(a)",
						Image: assets.Image(AssetSignatureRight),
					},
				},
			},
		},
		{
			Kind: document.SectionFooter,
			Footer: &document.FooterSection{
				City:       b.institution.City,
				Date:       spanishDate(b.clock()),
				BookNumber: book,
				ActNumber:  act,
			},
		},
	}
}
