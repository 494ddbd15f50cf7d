package docgen

import (
	"context"
	"strings"
	"time"
)

// StubRenderer is a Renderer for development and tests. It validates the
// request like the real renderer and returns a minimal PDF envelope
// around the HTML instead of driving a browser.
type StubRenderer struct {
	// Err, when set, is returned from every Render call
	Err error
	// Rendered collects the HTML passed to Render
	Rendered []string
}

// NewStubRenderer creates a stub renderer
func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

func (r *StubRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.PaperSize), nil)
	}

	r.Rendered = append(r.Rendered, req.HTML)

	var buf strings.Builder
	buf.WriteString("%PDF-1.4\n% stub\n")
	buf.WriteString(req.HTML)
	buf.WriteString("\n%%EOF\n")

	return &RenderResult{
		PDFData:        []byte(buf.String()),
		RenderDuration: time.Millisecond,
	}, nil
}

func (r *StubRenderer) Close() error {
	return nil
}

var _ Renderer = (*StubRenderer)(nil)
