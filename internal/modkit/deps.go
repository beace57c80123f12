// Package modkit wires service modules to their shared dependencies
package modkit

import (
	"exhume/internal/modkit/repokit"
	"exhume/internal/platform/config"
	"exhume/internal/platform/logger"
	"exhume/internal/platform/store"
)

// Deps carries the shared platform handles every module may draw on.
// Stores stay nil when a binary does not open them
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports that a zero Deps is usable in tests.
// Modules still nil check the optional stores
func (d Deps) ZeroOK() bool { return true }
