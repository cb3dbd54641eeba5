package aggregate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwire/internal/models"
	"finwire/internal/normalize"
	"finwire/internal/sources"
)

type stubAdapter struct {
	name string
	recs []models.Record
	err  error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(context.Context) ([]models.Record, error) {
	return s.recs, s.err
}

func rec(src models.SourceType, headline string) models.Record {
	return models.Record{Source: src, Timestamp: "2026-08-25", Headline: headline}
}

func newAggregator(adapters ...sources.Adapter) *Aggregator {
	return New(adapters, normalize.New(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunPreservesAdapterOrder(t *testing.T) {
	agg := newAggregator(
		&stubAdapter{name: "web_news", recs: []models.Record{rec(models.SourceWebNews, "w1"), rec(models.SourceWebNews, "w2")}},
		&stubAdapter{name: "video", recs: []models.Record{rec(models.SourceVideo, "v1")}},
		&stubAdapter{name: "podcast", recs: []models.Record{rec(models.SourcePodcast, "p1"), rec(models.SourcePodcast, "p2")}},
	)

	got := agg.Run(context.Background())
	require.Len(t, got, 5)
	var order []models.SourceType
	for _, r := range got {
		order = append(order, r.Source)
	}
	assert.Equal(t, []models.SourceType{
		models.SourceWebNews, models.SourceWebNews,
		models.SourceVideo,
		models.SourcePodcast, models.SourcePodcast,
	}, order)
	assert.Equal(t, "w1", got[0].Headline)
	assert.Equal(t, "w2", got[1].Headline)
}

func TestRunContainsAdapterFailure(t *testing.T) {
	agg := newAggregator(
		&stubAdapter{name: "web_news", err: errors.New("site unreachable")},
		&stubAdapter{name: "video", recs: []models.Record{rec(models.SourceVideo, "v1")}},
		&stubAdapter{name: "podcast", recs: []models.Record{rec(models.SourcePodcast, "p1")}},
	)

	got := agg.Run(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, models.SourceVideo, got[0].Source)
	assert.Equal(t, models.SourcePodcast, got[1].Source)
}

func TestRunDropsInvalidCandidates(t *testing.T) {
	agg := newAggregator(
		&stubAdapter{name: "web_news", recs: []models.Record{
			rec(models.SourceWebNews, "kept"),
			rec(models.SourceWebNews, "   "),
			{Source: "carrier_pigeon", Headline: "mislabeled"},
		}},
	)

	got := agg.Run(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Headline)
}

func TestRunAllEmptyIsNotAnError(t *testing.T) {
	agg := newAggregator(
		&stubAdapter{name: "web_news"},
		&stubAdapter{name: "video"},
		&stubAdapter{name: "podcast"},
	)

	got := agg.Run(context.Background())
	assert.Empty(t, got)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := newAggregator(&stubAdapter{name: "web_news", recs: []models.Record{rec(models.SourceWebNews, "w1")}})
	got := agg.Run(ctx)
	assert.Empty(t, got)
}
