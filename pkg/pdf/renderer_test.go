package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

func sampleModel() *document.DocumentModel {
	return &document.DocumentModel{
		Variant: document.VariantGrades,
		Sections: []document.DocumentSection{
			{
				Kind: document.SectionHeader,
				Header: &document.HeaderSection{
					InstitutionName: "Academia de Formación Integral",
					TaxID:           "900.000.000-1",
					City:            "Bogotá D.C.",
				},
			},
			{
				Kind:  document.SectionTitleBlock,
				Title: &document.TitleBlockSection{Title: "CERTIFICADO DE NOTAS"},
			},
			{
				Kind: document.SectionTable,
				Table: &document.TableSection{
					Title: "Personal Trainer",
					Table: document.TableModel{
						Columns:      []string{"Asignatura", "Módulo", "Nota"},
						Rows:         [][]string{{"Anatomía", "Módulo 1", "4.5"}},
						AggregateRow: []string{"Promedio", "", "4.5"},
					},
				},
			},
			{
				Kind:      document.SectionAggregate,
				Aggregate: &document.AggregateSection{Label: "Promedio general", Value: "4.5"},
			},
		},
	}
}

func TestToByteStream(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	data, err := r.ToByteStream(context.Background(), sampleModel())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestToByteStreamEmptyModel(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	_, err := r.ToByteStream(context.Background(), &document.DocumentModel{})
	assert.Error(t, err)

	_, err = r.ToByteStream(context.Background(), nil)
	assert.Error(t, err)
}

func TestToByteStreamMissingPayload(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	model := &document.DocumentModel{
		Variant:  document.VariantGrades,
		Sections: []document.DocumentSection{{Kind: document.SectionTable}},
	}

	_, err := r.ToByteStream(context.Background(), model)
	assert.Error(t, err)
}

func TestToTransientView(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	view, err := r.ToTransientView(context.Background(), sampleModel())

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", view.ContentType)
	assert.NotEmpty(t, view.Data)
	assert.NotEqual(t, view.Token.String(), "00000000-0000-0000-0000-000000000000")
}

func TestRendererDeterministicForSameModel(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	// gofpdf stamps a creation date; compare section content only through
	// length, which is stable for identical models.
	first, err := r.ToByteStream(context.Background(), sampleModel())
	require.NoError(t, err)
	second, err := r.ToByteStream(context.Background(), sampleModel())
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestSignatureAndFooterSections(t *testing.T) {
	r := NewRenderer(DefaultStyles())

	model := &document.DocumentModel{
		Variant: document.VariantDiploma,
		Sections: []document.DocumentSection{
			{
				Kind:   document.SectionHeader,
				Header: &document.HeaderSection{InstitutionName: "Academia"},
			},
			{
				Kind: document.SectionSignatureBlock,
				Signatures: &document.SignatureBlockSection{
					Lines: []document.SignatureLine{
						{Name: "Carlos Gómez", Role: "Director"},
						{Name: "Laura Pérez", Role: "Secretaria"},
					},
				},
			},
			{
				Kind: document.SectionFooter,
				Footer: &document.FooterSection{
					City:       "Bogotá D.C.",
					Date:       "14 de marzo de 2026",
					BookNumber: "___",
					ActNumber:  "___",
				},
			},
		},
	}

	data, err := r.ToByteStream(context.Background(), model)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
