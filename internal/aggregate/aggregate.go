// Package aggregate runs the source adapters in fixed order and owns
// the run-scoped, append-only dataset.
package aggregate

import (
	"context"
	"log/slog"

	"finwire/internal/models"
	"finwire/internal/normalize"
	"finwire/internal/sources"
)

// Aggregator composes the adapters with the shared normalizer. The
// dataset only grows during a run; nothing is removed or reordered
// after insertion.
type Aggregator struct {
	adapters   []sources.Adapter
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

func New(adapters []sources.Adapter, normalizer *normalize.Normalizer, logger *slog.Logger) *Aggregator {
	return &Aggregator{adapters: adapters, normalizer: normalizer, logger: logger}
}

// Run invokes each adapter in turn, normalizes its candidates, and
// appends the survivors in production order. An adapter failure is
// logged and contained; the remaining adapters still run and their
// partial results are preserved. An all-empty dataset is a recognized
// outcome, reported as a warning, never an error.
func (a *Aggregator) Run(ctx context.Context) []models.Record {
	var dataset []models.Record
	for _, adapter := range a.adapters {
		if ctx.Err() != nil {
			a.logger.Warn("run cancelled", "collected", len(dataset))
			return dataset
		}
		candidates, err := adapter.Fetch(ctx)
		if err != nil {
			a.logger.Error("source failed, continuing", "source", adapter.Name(), "err", err)
			continue
		}
		kept := 0
		for _, c := range candidates {
			rec, err := a.normalizer.Normalize(c)
			if err != nil {
				a.logger.Debug("candidate rejected", "source", adapter.Name(), "err", err)
				continue
			}
			dataset = append(dataset, rec)
			kept++
		}
		a.logger.Info("source collected", "source", adapter.Name(), "records", kept)
	}
	if len(dataset) == 0 {
		a.logger.Warn("no data collected from any source")
	}
	return dataset
}
