package certificates

import (
	"context"

	"go.uber.org/zap"

	"academia/admin-portal/admin-portal-backend/internal/document"
	"academia/admin-portal/admin-portal-backend/pkg/workflows"
)

// AssetResolver resolves a batch of asset references to terminal outcomes.
type AssetResolver interface {
	ResolveAll(ctx context.Context, refs []AssetReference) ResolvedAssets
}

// AssetPaths describes where the institutional assets live on the static
// host, as logical paths expanded into fallback candidate URLs.
type AssetPaths struct {
	Origin            string
	PublicRoot        string
	Logo              string
	SignatureLeft     string
	SignatureRight    string
	DiplomaBackground string
}

// refsFor lists the assets a variant embeds. Grades and study certificates
// carry only the logo; diplomas add the two signatures and the composite
// background.
func (p AssetPaths) refsFor(variant document.Variant) []AssetReference {
	refs := []AssetReference{
		{Kind: AssetLogo, Candidates: CandidateLocations(p.Origin, p.PublicRoot, p.Logo)},
	}
	if variant == document.VariantDiploma {
		refs = append(refs,
			AssetReference{Kind: AssetSignatureLeft, Candidates: CandidateLocations(p.Origin, p.PublicRoot, p.SignatureLeft)},
			AssetReference{Kind: AssetSignatureRight, Candidates: CandidateLocations(p.Origin, p.PublicRoot, p.SignatureRight)},
			AssetReference{Kind: AssetCompositeBackground, Candidates: CandidateLocations(p.Origin, p.PublicRoot, p.DiplomaBackground)},
		)
	}
	return refs
}

// Service runs one generation request end to end:
// Requested -> RecordFetched -> AssetsResolved -> ModelBuilt -> Rendered.
// Requests are independent; there is no shared mutable state between them.
type Service struct {
	fetcher    RecordFetcher
	resolver   AssetResolver
	builder    *Builder
	dispatcher *Dispatcher
	assets     AssetPaths
	logger     *zap.Logger
}

// NewService creates the generation service.
func NewService(fetcher RecordFetcher, resolver AssetResolver, builder *Builder, dispatcher *Dispatcher, assets AssetPaths, logger *zap.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		resolver:   resolver,
		builder:    builder,
		dispatcher: dispatcher,
		assets:     assets,
		logger:     logger,
	}
}

// Generate produces the print-ready document for a certificate request.
// Fetch and build failures are fatal; unavailable assets degrade in place
// and never abort production.
func (s *Service) Generate(ctx context.Context, req CertificateRequest, mode OutputMode) (*RenderOutput, error) {
	tracker := workflows.NewTracker()

	variant, err := ParseVariant(req.Type)
	if err != nil {
		tracker.Advance(workflows.StateFailed)
		return nil, err
	}

	record, err := s.fetchRecord(ctx, req, variant)
	if err != nil {
		tracker.Advance(workflows.StateFailed)
		s.logger.Error("record fetch failed",
			zap.String("request_id", req.ID.String()),
			zap.Error(err))
		return nil, err
	}
	tracker.Advance(workflows.StateRecordFetched)

	resolved := s.resolver.ResolveAll(ctx, s.assets.refsFor(variant))
	tracker.Advance(workflows.StateAssetsResolved)

	model, err := s.builder.Build(req, record, resolved)
	if err != nil {
		tracker.Advance(workflows.StateFailed)
		return nil, err
	}
	tracker.Advance(workflows.StateModelBuilt)

	out, err := s.dispatcher.Dispatch(ctx, model, req, mode)
	if err != nil {
		tracker.Advance(workflows.StateFailed)
		return nil, err
	}
	tracker.Advance(workflows.StateRendered)

	s.logger.Info("certificate rendered",
		zap.String("request_id", req.ID.String()),
		zap.String("variant", string(variant)),
		zap.String("file_name", out.FileName),
		zap.String("state", string(tracker.Current())))

	return out, nil
}

func (s *Service) fetchRecord(ctx context.Context, req CertificateRequest, variant document.Variant) (Record, error) {
	if variant == document.VariantDiploma {
		diploma, err := s.fetcher.FetchDiplomaRecord(ctx, req.ID)
		if err != nil {
			return Record{}, err
		}
		return Record{Diploma: diploma}, nil
	}

	academic, err := s.fetcher.FetchAcademicRecord(ctx, req.ID, variant)
	if err != nil {
		return Record{}, err
	}
	return Record{Academic: academic}, nil
}
