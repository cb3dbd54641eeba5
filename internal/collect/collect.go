// Package collect is the composition root for one collection run.
package collect

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/gofeed"

	"finwire/internal/aggregate"
	"finwire/internal/config"
	"finwire/internal/httpclient"
	"finwire/internal/models"
	"finwire/internal/normalize"
	"finwire/internal/sources"
	"finwire/internal/sources/podcast"
	"finwire/internal/sources/video"
	"finwire/internal/sources/webnews"
	"finwire/internal/store"
	"finwire/internal/youtube"

	csvexport "finwire/internal/export"
)

// Options allow overriding config values from CLI flags.
type Options struct {
	ConfigPath string
	LogFile    string
	NoArchive  bool
	NoExport   bool
}

// Run executes a single collection run: scrape all sources, export the
// merged dataset to CSV, and archive it. Scheduling is delegated to
// cron/launchd/systemd.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := httpclient.New(cfg.HTTP)
	parser := gofeed.NewParser()
	parser.Client = client.HTTPClient()
	parser.UserAgent = cfg.HTTP.UserAgent

	adapters := []sources.Adapter{
		webnews.New(cfg.WebNews, client, logger),
		video.New(cfg.Video, parser, youtube.NewClient(client.HTTPClient()), logger),
		podcast.New(cfg.Podcast, parser, logger),
	}
	normalizer := normalize.New(map[models.SourceType]string{
		models.SourceWebNews: cfg.WebNews.Origin,
	})

	dataset := aggregate.New(adapters, normalizer, logger).Run(ctx)
	if len(dataset) == 0 {
		// Recognized terminal state: nothing to export or archive.
		return nil
	}

	if !opts.NoExport {
		path, err := csvexport.NewCSV(cfg.OutputDir).Export(dataset)
		if err != nil {
			return err
		}
		logger.Info("dataset exported", "path", path, "records", len(dataset))
	}

	if !opts.NoArchive && cfg.DatabasePath != "" {
		if err := archive(ctx, cfg.DatabasePath, dataset); err != nil {
			// Archive trouble must not void an already exported run.
			logger.Error("archive failed", "path", cfg.DatabasePath, "err", err)
		} else {
			logger.Info("dataset archived", "path", cfg.DatabasePath)
		}
	}
	return nil
}

func archive(ctx context.Context, dbPath string, dataset []models.Record) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.InitSchema(db); err != nil {
		return err
	}
	_, err = store.InsertRecords(ctx, db, dataset, time.Now())
	return err
}

// newLogger writes to stderr, or to a log file when one is given.
func newLogger(logFile string) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if logFile == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), noop, nil
	}
	logFile = config.ExpandPath(logFile)
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, noop, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, noop, err
	}
	return slog.New(slog.NewTextHandler(f, nil)), f.Close, nil
}
