package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

// ViewHandle is a transient, in-memory materialization of a rendered
// document, served inline instead of as a download.
type ViewHandle struct {
	Token       uuid.UUID `json:"token"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Renderer turns a DocumentModel into PDF bytes. It is stateless across
// renders; each call builds a fresh gofpdf instance.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer with the given style registry.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// ToByteStream renders the model and materializes it as PDF bytes.
func (r *Renderer) ToByteStream(ctx context.Context, m *document.DocumentModel) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil || len(m.Sections) == 0 {
		return nil, fmt.Errorf("document model has no sections")
	}

	orientation := "P"
	if r.styles.Orientation == "landscape" {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", r.styles.PageSize, "")
	pdf.SetMargins(r.styles.Margins.Left, r.styles.Margins.Top, r.styles.Margins.Right)
	pdf.SetAutoPageBreak(true, r.styles.Margins.Bottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if m.Background != nil {
		r.drawBackground(pdf, m.Background)
	}

	for _, section := range m.Sections {
		if err := r.drawSection(pdf, tr, section); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToTransientView renders the model into an in-memory preview handle.
func (r *Renderer) ToTransientView(ctx context.Context, m *document.DocumentModel) (*ViewHandle, error) {
	data, err := r.ToByteStream(ctx, m)
	if err != nil {
		return nil, err
	}
	return &ViewHandle{
		Token:       uuid.New(),
		ContentType: "application/pdf",
		Data:        data,
		CreatedAt:   time.Now(),
	}, nil
}

func (r *Renderer) drawSection(pdf *gofpdf.Fpdf, tr func(string) string, s document.DocumentSection) error {
	switch s.Kind {
	case document.SectionHeader:
		if s.Header == nil {
			return fmt.Errorf("header section missing payload")
		}
		r.drawHeader(pdf, tr, s.Header)
	case document.SectionTitleBlock:
		if s.Title == nil {
			return fmt.Errorf("title section missing payload")
		}
		r.drawTitle(pdf, tr, s.Title)
	case document.SectionIdentityStatement:
		if s.Identity == nil {
			return fmt.Errorf("identity section missing payload")
		}
		r.drawNarrativeText(pdf, tr, s.Identity.Statement)
	case document.SectionTable:
		if s.Table == nil {
			return fmt.Errorf("table section missing payload")
		}
		r.drawTable(pdf, tr, s.Table)
	case document.SectionAggregate:
		if s.Aggregate == nil {
			return fmt.Errorf("aggregate section missing payload")
		}
		r.drawAggregate(pdf, tr, s.Aggregate)
	case document.SectionNarrative:
		if s.Narrative == nil {
			return fmt.Errorf("narrative section missing payload")
		}
		r.drawNarrativeText(pdf, tr, s.Narrative.Text)
	case document.SectionSignatureBlock:
		if s.Signatures == nil {
			return fmt.Errorf("signature section missing payload")
		}
		r.drawSignatures(pdf, tr, s.Signatures)
	case document.SectionFooter:
		if s.Footer == nil {
			return fmt.Errorf("footer section missing payload")
		}
		r.drawFooter(pdf, tr, s.Footer)
	default:
		return fmt.Errorf("unknown section kind %q", s.Kind)
	}
	return nil
}

// registerImage makes an embedded image addressable by gofpdf and returns
// its registration name, or "" when the image cannot be registered.
func (r *Renderer) registerImage(pdf *gofpdf.Fpdf, img *document.EmbeddedImage) string {
	imageType := strings.ToUpper(img.Format)
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	name := fmt.Sprintf("img-%p", img)
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(img.Bytes))
	if pdf.Err() {
		return ""
	}
	return name
}

func (r *Renderer) drawBackground(pdf *gofpdf.Fpdf, img *document.EmbeddedImage) {
	name := r.registerImage(pdf, img)
	if name == "" {
		return
	}
	w, h := pdf.GetPageSize()
	pdf.ImageOptions(name, 0, 0, w, h, false, gofpdf.ImageOptions{}, 0, "")
}

func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, h *document.HeaderSection) {
	if h.Logo != nil {
		if name := r.registerImage(pdf, h.Logo); name != "" {
			pdf.ImageOptions(name, r.styles.Margins.Left, pdf.GetY(), 28, 0, false, gofpdf.ImageOptions{}, 0, "")
		}
	}
	pdf.SetFont(r.styles.FontFamily, "B", r.styles.HeaderFontSize+2)
	pdf.SetTextColor(r.styles.HeaderColor.R, r.styles.HeaderColor.G, r.styles.HeaderColor.B)
	pdf.CellFormat(0, 8, tr(h.InstitutionName), "", 1, "C", false, 0, "")

	pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize-1)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("NIT %s - %s", h.TaxID, h.City)), "", 1, "C", false, 0, "")
	pdf.Ln(6)
}

func (r *Renderer) drawTitle(pdf *gofpdf.Fpdf, tr func(string) string, t *document.TitleBlockSection) {
	pdf.SetFont(r.styles.FontFamily, "B", r.styles.TitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
	if t.Subtitle != "" {
		pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize+2)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, tr(t.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) drawNarrativeText(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize+1)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(text), "", "J", false)
	pdf.Ln(4)
}

func (r *Renderer) drawTable(pdf *gofpdf.Fpdf, tr func(string) string, t *document.TableSection) {
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - r.styles.Margins.Left - r.styles.Margins.Right

	if t.Title != "" {
		pdf.SetFont(r.styles.FontFamily, "B", r.styles.FontSize+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
	}

	widths := columnWidths(len(t.Table.Columns), available)

	pdf.SetFont(r.styles.FontFamily, "B", r.styles.HeaderFontSize)
	pdf.SetFillColor(r.styles.HeaderColor.R, r.styles.HeaderColor.G, r.styles.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range t.Table.Columns {
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize)
	pdf.SetTextColor(0, 0, 0)

	if t.Table.Placeholder != "" {
		pdf.SetFillColor(255, 255, 255)
		pdf.CellFormat(available, 8, tr(t.Table.Placeholder), "1", 1, "C", true, 0, "")
	} else {
		for i, row := range t.Table.Rows {
			if i%2 == 1 {
				pdf.SetFillColor(r.styles.AggregateColor.R, r.styles.AggregateColor.G, r.styles.AggregateColor.B)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}
			for j, cell := range row {
				pdf.CellFormat(widths[j], 7, tr(cell), "1", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if len(t.Table.AggregateRow) > 0 {
		pdf.SetFont(r.styles.FontFamily, "B", r.styles.FontSize)
		pdf.SetFillColor(r.styles.AggregateColor.R, r.styles.AggregateColor.G, r.styles.AggregateColor.B)
		for j, cell := range t.Table.AggregateRow {
			pdf.CellFormat(widths[j], 7, tr(cell), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *Renderer) drawAggregate(pdf *gofpdf.Fpdf, tr func(string) string, a *document.AggregateSection) {
	pdf.SetFont(r.styles.FontFamily, "B", r.styles.FontSize+2)
	pdf.SetTextColor(r.styles.HeaderColor.R, r.styles.HeaderColor.G, r.styles.HeaderColor.B)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s: %s", a.Label, a.Value)), "", 1, "R", false, 0, "")
	pdf.Ln(2)
}

func (r *Renderer) drawSignatures(pdf *gofpdf.Fpdf, tr func(string) string, s *document.SignatureBlockSection) {
	if len(s.Lines) == 0 {
		return
	}
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - r.styles.Margins.Left - r.styles.Margins.Right
	colWidth := available / float64(len(s.Lines))

	pdf.Ln(14)
	baseY := pdf.GetY()

	for i, line := range s.Lines {
		x := r.styles.Margins.Left + float64(i)*colWidth
		if line.Image != nil {
			if name := r.registerImage(pdf, line.Image); name != "" {
				pdf.ImageOptions(name, x+colWidth/2-20, baseY-12, 40, 0, false, gofpdf.ImageOptions{}, 0, "")
			}
		}
		pdf.SetXY(x, baseY)
		pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(colWidth, 5, "_______________________", "", 0, "C", false, 0, "")
		pdf.SetXY(x, baseY+6)
		pdf.SetFont(r.styles.FontFamily, "B", r.styles.FontSize)
		pdf.CellFormat(colWidth, 5, tr(line.Name), "", 0, "C", false, 0, "")
		pdf.SetXY(x, baseY+11)
		pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize-1)
		pdf.CellFormat(colWidth, 5, tr(line.Role), "", 0, "C", false, 0, "")
	}
	pdf.SetY(baseY + 20)
}

func (r *Renderer) drawFooter(pdf *gofpdf.Fpdf, tr func(string) string, f *document.FooterSection) {
	pdf.Ln(6)
	pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Dado en %s, el %s.", f.City, f.Date)), "", 1, "C", false, 0, "")
	if f.BookNumber != "" || f.ActNumber != "" {
		pdf.SetFont(r.styles.FontFamily, "", r.styles.FontSize-1)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Libro: %s    Acta: %s", f.BookNumber, f.ActNumber)), "", 1, "C", false, 0, "")
	}
}

func columnWidths(n int, available float64) []float64 {
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}
	// First column gets the slack: names are the widest content.
	base := available / float64(n+1)
	widths[0] = available - base*float64(n-1)
	for i := 1; i < n; i++ {
		widths[i] = base
	}
	return widths
}
