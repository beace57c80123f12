package domain

import "context"

// RunnerPort executes carve runs
type RunnerPort interface {
	Run(ctx context.Context, in RunInput) (RunStats, error)
}
