package certificates

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"academia/admin-portal/admin-portal-backend/internal/document"
	"academia/admin-portal/admin-portal-backend/pkg/pdf"
)

// OutputMode selects between the two materializations of a rendered
// document. It is a caller-supplied flag, never data-dependent.
type OutputMode string

const (
	ModeDownload OutputMode = "download"
	ModePreview  OutputMode = "preview"
)

// Renderer is the external document-rendering collaborator.
type Renderer interface {
	ToByteStream(ctx context.Context, m *document.DocumentModel) ([]byte, error)
	ToTransientView(ctx context.Context, m *document.DocumentModel) (*pdf.ViewHandle, error)
}

// RenderOutput is the dispatch result: Bytes for downloads, View for
// previews. FileName is set either way.
type RenderOutput struct {
	FileName string
	Bytes    []byte
	View     *pdf.ViewHandle
}

// Dispatcher hands finished models to the renderer and owns the output
// naming policy.
type Dispatcher struct {
	renderer Renderer
	logger   *zap.Logger
}

// NewDispatcher creates a render dispatcher.
func NewDispatcher(renderer Renderer, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{renderer: renderer, logger: logger}
}

// FileName composes the deterministic output name:
// {VariantLabel}_{ReferenceCode}_{GivenName}_{FamilyName}.pdf
func (d *Dispatcher) FileName(variant document.Variant, req CertificateRequest) string {
	parts := []string{
		variant.Label(),
		fileNamePart(req.ReferenceCode),
		fileNamePart(req.GivenName),
		fileNamePart(req.FamilyName),
	}
	return strings.Join(parts, "_") + ".pdf"
}

// Dispatch renders the model in the requested mode. A renderer rejection is
// a RenderError: it points at a malformed model, not at the input data, and
// is logged distinctly from fetch failures.
func (d *Dispatcher) Dispatch(ctx context.Context, model *document.DocumentModel, req CertificateRequest, mode OutputMode) (*RenderOutput, error) {
	out := &RenderOutput{FileName: d.FileName(model.Variant, req)}

	switch mode {
	case ModePreview:
		view, err := d.renderer.ToTransientView(ctx, model)
		if err != nil {
			d.logger.Error("renderer rejected document model",
				zap.String("variant", string(model.Variant)),
				zap.Error(err))
			return nil, &RenderError{Err: err}
		}
		out.View = view
	default:
		data, err := d.renderer.ToByteStream(ctx, model)
		if err != nil {
			d.logger.Error("renderer rejected document model",
				zap.String("variant", string(model.Variant)),
				zap.Error(err))
			return nil, &RenderError{Err: err}
		}
		out.Bytes = data
	}
	return out, nil
}

// fileNamePart strips characters that do not belong in a filename and joins
// inner whitespace.
func fileNamePart(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	joined := strings.Join(fields, "")
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, joined)
}
