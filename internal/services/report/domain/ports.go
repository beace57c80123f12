package domain

import (
	"context"
	"io"
)

// BuilderPort computes and renders investigation reports over a
// clean_messages artefact
type BuilderPort interface {
	Build(ctx context.Context, path string) (Report, error)
	Render(w io.Writer, rep Report) error
}
