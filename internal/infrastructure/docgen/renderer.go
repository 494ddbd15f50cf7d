// Package docgen renders generated HR documents: an html/template engine
// binds typed document data to a stored or built-in template, and a
// headless-Chrome renderer turns the HTML into PDF bytes.
package docgen

import (
	"context"
	"time"

	"github.com/logistics-erp/hrm/internal/domain/document"
)

// RenderRequest carries one HTML-to-PDF rendering
type RenderRequest struct {
	HTML        string
	PaperSize   document.PaperSize
	Orientation document.Orientation
	Margins     document.Margins
	Title       string
	// Timeout overrides the renderer's default when positive
	Timeout time.Duration
}

// RenderResult is the produced PDF
type RenderResult struct {
	PDFData        []byte
	RenderDuration time.Duration
}

// Renderer converts HTML to PDF
type Renderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// Rendering error codes
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
)

// RenderError is a rendering failure with a stable code
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
