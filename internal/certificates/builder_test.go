package certificates

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

var testInstitution = Institution{
	Name:      "Academia de Formación Integral",
	TaxID:     "900.000.000-1",
	City:      "Bogotá D.C.",
	Registrar: "Laura Pérez",
	Director:  "Carlos Gómez",
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
}

func testBuilder() *Builder {
	return NewBuilder(testInstitution, fixedClock)
}

func gradesRequest() CertificateRequest {
	return CertificateRequest{
		ID:                   uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Type:                 "Certificado de Notas",
		ReferenceCode:        "PT-2026-001",
		GivenName:            "María",
		FamilyName:           "Rodríguez",
		IdentificationType:   "C.C.",
		IdentificationNumber: "1020304050",
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		certType string
		want     document.Variant
	}{
		{"certificado de notas", document.VariantGrades},
		{"Certificado de Notas", document.VariantGrades},
		{"duplicado de certificado de curso corto", document.VariantStudyEnrollment},
		{"certificado de estudio", document.VariantStudyEnrollment},
		{"diploma", document.VariantDiploma},
	}

	for _, tt := range tests {
		variant, err := ParseVariant(tt.certType)
		assert.NoError(t, err, tt.certType)
		assert.Equal(t, tt.want, variant, tt.certType)
	}
}

func TestParseVariantUnrecognized(t *testing.T) {
	_, err := ParseVariant("constancia laboral")

	var unsupported *UnsupportedVariantError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "constancia laboral", unsupported.Type)
}

func TestBuildGradesVariant(t *testing.T) {
	record := Record{Academic: &AcademicRecord{
		Programs: []Program{
			{
				Name:          "Personal Trainer",
				DurationLabel: "120 horas",
				Status:        ProgramFinished,
				Subjects: []GradedSubject{
					{Name: "Anatomía", Grade: 4.5},
					{Name: "Fisiología", Grade: 3.8},
				},
			},
		},
	}}

	model, err := testBuilder().Build(gradesRequest(), record, nil)
	require.NoError(t, err)

	assert.Equal(t, document.VariantGrades, model.Variant)
	require.Len(t, model.Sections, 5)
	assert.Equal(t, document.SectionHeader, model.Sections[0].Kind)
	assert.Equal(t, document.SectionTitleBlock, model.Sections[1].Kind)
	assert.Equal(t, document.SectionIdentityStatement, model.Sections[2].Kind)
	assert.Equal(t, document.SectionTable, model.Sections[3].Kind)
	assert.Equal(t, document.SectionAggregate, model.Sections[4].Kind)

	assert.Contains(t, model.Sections[2].Identity.Statement, "María Rodríguez")
	assert.Contains(t, model.Sections[2].Identity.Statement, "1020304050")

	table := model.Sections[3].Table
	assert.Equal(t, "Personal Trainer (120 horas)", table.Title)
	assert.Len(t, table.Table.Rows, 2)
	assert.Equal(t, []string{"Promedio", "", "4.2"}, table.Table.AggregateRow)

	assert.Equal(t, "4.2", model.Sections[4].Aggregate.Value)
}

func TestBuildGradesOverallAverageAcrossPrograms(t *testing.T) {
	record := Record{Academic: &AcademicRecord{
		Programs: []Program{
			{Name: "A", Subjects: []GradedSubject{{Grade: 4.0}, {Grade: 5.0}}}, // avg 4.5
			{Name: "B", Subjects: []GradedSubject{{Grade: 3.0}}},               // avg 3.0
			{Name: "C"}, // no subjects, excluded from overall mean
		},
	}}

	model, err := testBuilder().Build(gradesRequest(), record, nil)
	require.NoError(t, err)

	last := model.Sections[len(model.Sections)-1]
	require.Equal(t, document.SectionAggregate, last.Kind)
	// Mean of the per-program averages 4.5 and 3.0.
	assert.Equal(t, "3.8", last.Aggregate.Value)
}

func TestBuildGradesNoGradedPrograms(t *testing.T) {
	record := Record{Academic: &AcademicRecord{Programs: []Program{{Name: "A"}}}}

	model, err := testBuilder().Build(gradesRequest(), record, nil)
	require.NoError(t, err)

	last := model.Sections[len(model.Sections)-1]
	require.Equal(t, document.SectionAggregate, last.Kind)
	assert.Equal(t, noGradeAverage, last.Aggregate.Value)
}

func TestBuildStudyEnrollmentVariant(t *testing.T) {
	req := gradesRequest()
	req.Type = "Certificado de Estudio"

	record := Record{Academic: &AcademicRecord{
		Programs: []Program{
			{
				Name:          "Instructor de Yoga",
				DurationLabel: "6 meses",
				Status:        ProgramActive,
				Modules: []StudyModule{
					{Name: "Fundamentos", Subjects: []string{"Historia", "Filosofía"}},
				},
			},
		},
	}}

	model, err := testBuilder().Build(req, record, nil)
	require.NoError(t, err)

	assert.Equal(t, document.VariantStudyEnrollment, model.Variant)
	require.Len(t, model.Sections, 5)
	assert.Equal(t, document.SectionNarrative, model.Sections[3].Kind)
	assert.Contains(t, model.Sections[3].Narrative.Text, "Instructor de Yoga")
	assert.Contains(t, model.Sections[3].Narrative.Text, "en curso")

	assert.Equal(t, document.SectionTable, model.Sections[4].Kind)
	assert.Equal(t, "Historia\nFilosofía", model.Sections[4].Table.Table.Rows[0][1])
}

func TestBuildStudyEnrollmentEmptyModules(t *testing.T) {
	req := gradesRequest()
	req.Type = "duplicado de certificado de curso corto"

	record := Record{Academic: &AcademicRecord{
		Programs: []Program{{Name: "Curso Corto", DurationLabel: "40 horas", Status: ProgramFinished}},
	}}

	model, err := testBuilder().Build(req, record, nil)
	require.NoError(t, err)

	table := model.Sections[4].Table
	assert.Empty(t, table.Table.Rows)
	assert.Equal(t, noModulesMessage, table.Table.Placeholder)
}

func TestBuildDiplomaVariant(t *testing.T) {
	req := gradesRequest()
	req.Type = "diploma"

	book := "L-45"
	record := Record{Diploma: &DiplomaRecord{
		DiplomaType:      "tecnico",
		DiplomaTypeLabel: "Técnico Laboral en Entrenamiento Deportivo",
		Modality:         "presencial",
		GradingDate:      "10 de febrero de 2026",
		BookNumber:       &book,
		ActNumber:        nil,
	}}

	model, err := testBuilder().Build(req, record, nil)
	require.NoError(t, err)

	assert.Equal(t, document.VariantDiploma, model.Variant)
	require.Len(t, model.Sections, 6)

	narrative := model.Sections[3].Narrative
	require.NotNil(t, narrative)
	assert.Contains(t, narrative.Text, "Técnico Laboral en Entrenamiento Deportivo")
	assert.Contains(t, narrative.Text, "presencial")
	assert.Contains(t, narrative.Text, "10 de febrero de 2026")

	signatures := model.Sections[4].Signatures
	require.NotNil(t, signatures)
	require.Len(t, signatures.Lines, 2)
	// Text signature lines are always present even with no resolved assets.
	assert.Equal(t, "Carlos Gómez", signatures.Lines[0].Name)
	assert.Nil(t, signatures.Lines[0].Image)

	footer := model.Sections[5].Footer
	require.NotNil(t, footer)
	assert.Equal(t, "L-45", footer.BookNumber)
	// Missing act number renders the placeholder token, never blank or "null".
	assert.Equal(t, missingNumberToken, footer.ActNumber)
	assert.Equal(t, "14 de marzo de 2026", footer.Date)
}

func TestBuildUnsupportedVariant(t *testing.T) {
	req := gradesRequest()
	req.Type = "constancia laboral"

	_, err := testBuilder().Build(req, Record{}, nil)

	var unsupported *UnsupportedVariantError
	assert.ErrorAs(t, err, &unsupported)
}

func TestBuildDeterministic(t *testing.T) {
	record := Record{Academic: &AcademicRecord{
		Programs: []Program{
			{Name: "Personal Trainer", Subjects: []GradedSubject{{Name: "Anatomía", Grade: 4.5}}},
		},
	}}

	b := testBuilder()
	first, err := b.Build(gradesRequest(), record, nil)
	require.NoError(t, err)
	second, err := b.Build(gradesRequest(), record, nil)
	require.NoError(t, err)

	firstJSON, err := first.Serialize()
	require.NoError(t, err)
	secondJSON, err := second.Serialize()
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestBuildHeaderDegradesWithoutLogo(t *testing.T) {
	assets := ResolvedAssets{
		AssetLogo: {Kind: AssetLogo, State: ResolutionUnavailable, Attempts: 3},
	}

	record := Record{Academic: &AcademicRecord{}}
	model, err := testBuilder().Build(gradesRequest(), record, assets)
	require.NoError(t, err)

	header := model.Sections[0].Header
	require.NotNil(t, header)
	assert.Nil(t, header.Logo)
	assert.Equal(t, testInstitution.Name, header.InstitutionName)
}
