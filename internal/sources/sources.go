// Package sources defines the contract every data source adapter
// implements.
package sources

import (
	"context"

	"finwire/internal/models"
)

// Adapter is one external data source. Fetch returns candidate records
// for a single run; it returns an error only for source-level failures
// (unreachable site, unparseable feed). Per-candidate problems are
// handled inside the adapter and never surface here.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Record, error)
}
