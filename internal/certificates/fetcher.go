package certificates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

// RecordFetcher retrieves the academic or diploma record backing a request.
// A non-2xx response is fatal to generation.
type RecordFetcher interface {
	FetchAcademicRecord(ctx context.Context, id uuid.UUID, variant document.Variant) (*AcademicRecord, error)
	FetchDiplomaRecord(ctx context.Context, id uuid.UUID) (*DiplomaRecord, error)
}

// HTTPRecordFetcher is the thin adapter to the external records API.
type HTTPRecordFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRecordFetcher creates a fetcher against the records API base URL.
func NewHTTPRecordFetcher(baseURL string, client *http.Client) *HTTPRecordFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRecordFetcher{baseURL: baseURL, client: client}
}

func (f *HTTPRecordFetcher) FetchAcademicRecord(ctx context.Context, id uuid.UUID, variant document.Variant) (*AcademicRecord, error) {
	suffix := "grades-data"
	if variant == document.VariantStudyEnrollment {
		suffix = "study-data"
	}
	endpoint := fmt.Sprintf("%s/certificates/%s/%s", f.baseURL, id, suffix)

	var record AcademicRecord
	if err := f.get(ctx, endpoint, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (f *HTTPRecordFetcher) FetchDiplomaRecord(ctx context.Context, id uuid.UUID) (*DiplomaRecord, error) {
	endpoint := fmt.Sprintf("%s/diplomas/%s/diploma-data", f.baseURL, id)

	var record DiplomaRecord
	if err := f.get(ctx, endpoint, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (f *HTTPRecordFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &DataFetchError{Endpoint: endpoint, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &DataFetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DataFetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DataFetchError{Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
