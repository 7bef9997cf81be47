package printing

import (
	"context"
)

// NoopRenderer rejects all render requests. Used when printing is disabled
// or no Chrome instance is available.
type NoopRenderer struct{}

// NewNoopRenderer creates a NoopRenderer
func NewNoopRenderer() *NoopRenderer {
	return &NoopRenderer{}
}

// Render always fails with a disabled error
func (r *NoopRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	return nil, NewRenderError(ErrCodeRenderDisabled, "PDF rendering is disabled", nil)
}

// Close is a no-op
func (r *NoopRenderer) Close() error {
	return nil
}
