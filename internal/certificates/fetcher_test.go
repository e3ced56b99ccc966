package certificates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academia/admin-portal/admin-portal-backend/internal/document"
)

func TestFetchAcademicRecordGrades(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/certificates/"+id.String()+"/grades-data", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"programs":[{"name":"Personal Trainer","subjects":[{"name":"Anatomía","grade":4.5}]}]}`))
	}))
	defer srv.Close()

	fetcher := NewHTTPRecordFetcher(srv.URL, nil)
	record, err := fetcher.FetchAcademicRecord(context.Background(), id, document.VariantGrades)

	require.NoError(t, err)
	require.Len(t, record.Programs, 1)
	assert.Equal(t, "Personal Trainer", record.Programs[0].Name)
	assert.Equal(t, 4.5, record.Programs[0].Subjects[0].Grade)
}

func TestFetchAcademicRecordStudyUsesStudyEndpoint(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/certificates/"+id.String()+"/study-data", r.URL.Path)
		w.Write([]byte(`{"programs":[]}`))
	}))
	defer srv.Close()

	fetcher := NewHTTPRecordFetcher(srv.URL, nil)
	_, err := fetcher.FetchAcademicRecord(context.Background(), id, document.VariantStudyEnrollment)

	require.NoError(t, err)
}

func TestFetchDiplomaRecord(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/diplomas/"+id.String()+"/diploma-data", r.URL.Path)
		w.Write([]byte(`{"diploma_type_label":"Técnico Laboral","modality":"presencial","book_number":null}`))
	}))
	defer srv.Close()

	fetcher := NewHTTPRecordFetcher(srv.URL, nil)
	record, err := fetcher.FetchDiplomaRecord(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Técnico Laboral", record.DiplomaTypeLabel)
	assert.Nil(t, record.BookNumber)
}

func TestFetchNon2xxIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := NewHTTPRecordFetcher(srv.URL, nil)
	_, err := fetcher.FetchAcademicRecord(context.Background(), uuid.New(), document.VariantGrades)

	var fetchErr *DataFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}
