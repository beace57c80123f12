package domain

import "context"

// LoaderPort loads carved artefacts into the warehouse
type LoaderPort interface {
	Load(ctx context.Context, in LoadInput) (LoadStats, error)
}
