package issuance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository is the issuance-log data access boundary.
type Repository interface {
	Create(ctx context.Context, cert *IssuedCertificate) error
	ListByReference(ctx context.Context, referenceCode string) ([]IssuedCertificate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*IssuedCertificate, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cert *IssuedCertificate) error {
	query := `
		INSERT INTO issued_certificates (
			id, request_id, variant, reference_code, student_name,
			file_name, output_mode, rendered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		cert.ID, cert.RequestID, cert.Variant, cert.ReferenceCode,
		cert.StudentName, cert.FileName, cert.OutputMode, cert.RenderedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create issuance record: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByReference(ctx context.Context, referenceCode string) ([]IssuedCertificate, error) {
	query := `
		SELECT id, request_id, variant, reference_code, student_name,
		       file_name, output_mode, rendered_at
		FROM issued_certificates
		WHERE reference_code = $1
		ORDER BY rendered_at DESC
	`
	var certs []IssuedCertificate
	if err := r.db.SelectContext(ctx, &certs, query, referenceCode); err != nil {
		return nil, fmt.Errorf("failed to list issuance records: %w", err)
	}
	return certs, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*IssuedCertificate, error) {
	query := `
		SELECT id, request_id, variant, reference_code, student_name,
		       file_name, output_mode, rendered_at
		FROM issued_certificates
		WHERE id = $1
	`
	var cert IssuedCertificate
	if err := r.db.GetContext(ctx, &cert, query, id); err != nil {
		return nil, fmt.Errorf("failed to get issuance record: %w", err)
	}
	return &cert, nil
}
