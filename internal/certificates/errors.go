package certificates

import "fmt"

// UnsupportedVariantError is fatal: the certificate type string matches no
// known layout and there is no generic fallback.
type UnsupportedVariantError struct {
	Type string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported certificate variant %q", e.Type)
}

// DataFetchError is fatal: the records API refused or failed the request.
type DataFetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *DataFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record fetch %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("record fetch %s failed: status %d", e.Endpoint, e.StatusCode)
}

func (e *DataFetchError) Unwrap() error { return e.Err }

// RenderError is fatal and unexpected: the renderer rejected an assembled
// model, which indicates a builder defect rather than a data-quality issue.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
