package issuance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service records and lists issued certificates.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates an issuance service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RecordInput carries what a successful generation produced.
type RecordInput struct {
	RequestID     uuid.UUID
	Variant       string
	ReferenceCode string
	StudentName   string
	FileName      string
	OutputMode    string
}

// Record appends one entry to the issuance log. The caller treats failures
// as non-fatal: a lost audit row never fails a generation that already
// produced its document.
func (s *Service) Record(ctx context.Context, in RecordInput) (*IssuedCertificate, error) {
	cert := &IssuedCertificate{
		ID:            uuid.New(),
		RequestID:     in.RequestID,
		Variant:       in.Variant,
		ReferenceCode: in.ReferenceCode,
		StudentName:   in.StudentName,
		FileName:      in.FileName,
		OutputMode:    in.OutputMode,
		RenderedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.logger.Info("issuance recorded",
		zap.String("issuance_id", cert.ID.String()),
		zap.String("reference_code", cert.ReferenceCode),
		zap.String("file_name", cert.FileName))
	return cert, nil
}

// ListByReference lists prior issuances for a student reference code.
func (s *Service) ListByReference(ctx context.Context, referenceCode string) ([]IssuedCertificate, error) {
	return s.repo.ListByReference(ctx, referenceCode)
}
