package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwire/internal/models"
)

func openTestDB(t *testing.T) (dbPath string) {
	t.Helper()
	return filepath.Join(t.TempDir(), "finwire_test.db")
}

func TestInsertAndGetSince(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitSchema(db))

	ctx := context.Background()
	collected := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	recs := []models.Record{
		{Source: models.SourceWebNews, Timestamp: "2026-08-25", Headline: "Fed holds", Snippet: "N/A", Link: "https://www.cnbc.com/fed"},
		{Source: models.SourceVideo, Timestamp: "2026-08-25T09:00:00+00:00", Headline: "Cramer's Picks", Snippet: "spoken text..."},
		{Source: models.SourcePodcast, Timestamp: "Mon, 24 Aug 2026 09:00:00 +0000", Headline: "Squawk ep", Snippet: "recap..."},
	}

	n, err := InsertRecords(ctx, db, recs, collected)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows, err := GetSince(ctx, db, collected.Add(-time.Hour), "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest-first by collection time, then insertion order reversed.
	assert.Equal(t, "Squawk ep", rows[0].Headline)
	assert.Equal(t, "Fed holds", rows[2].Headline)
	assert.True(t, rows[2].Link.Valid)
	assert.Equal(t, "https://www.cnbc.com/fed", rows[2].Link.String)
	assert.False(t, rows[0].Link.Valid)
}

func TestGetSinceFiltersBySourceAndTime(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitSchema(db))

	ctx := context.Background()
	old := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	_, err = InsertRecords(ctx, db, []models.Record{
		{Source: models.SourceWebNews, Timestamp: "2026-08-20", Headline: "old story"},
	}, old)
	require.NoError(t, err)
	_, err = InsertRecords(ctx, db, []models.Record{
		{Source: models.SourceWebNews, Timestamp: "2026-08-25", Headline: "fresh story"},
		{Source: models.SourcePodcast, Timestamp: "2026-08-25", Headline: "fresh episode"},
	}, recent)
	require.NoError(t, err)

	rows, err := GetSince(ctx, db, recent.Add(-time.Hour), "web_news", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fresh story", rows[0].Headline)

	rows, err = GetSince(ctx, db, old.Add(-time.Hour), "", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestInsertRecordsEmptyDataset(t *testing.T) {
	db, err := Open(openTestDB(t))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitSchema(db))

	n, err := InsertRecords(context.Background(), db, nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
