// Package podcast collects records from a podcast RSS feed.
package podcast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"finwire/internal/config"
	"finwire/internal/htmltext"
	"finwire/internal/models"
)

// Adapter takes a bounded prefix of the most recent episodes. Episode
// descriptions carry markup, so the snippet is the stripped plain text
// bounded to the configured length. RSS entries are structurally
// uniform, so there is no per-entry failure handling: either the feed
// parses or the batch fails.
type Adapter struct {
	cfg    config.PodcastConfig
	parser *gofeed.Parser
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg config.PodcastConfig, parser *gofeed.Parser, logger *slog.Logger) *Adapter {
	return &Adapter{cfg: cfg, parser: parser, logger: logger, now: time.Now}
}

func (a *Adapter) Name() string { return "podcast" }

// Fetch parses the feed and emits up to MaxEpisodes records.
func (a *Adapter) Fetch(ctx context.Context) ([]models.Record, error) {
	feed, err := a.parser.ParseURLWithContext(a.cfg.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse podcast feed: %w", err)
	}

	entries := feed.Items
	if a.cfg.MaxEpisodes > 0 && len(entries) > a.cfg.MaxEpisodes {
		entries = entries[:a.cfg.MaxEpisodes]
	}

	var out []models.Record
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		published := strings.TrimSpace(entry.Published)
		if published == "" {
			published = a.now().Format("2006-01-02")
		}
		summary := htmltext.Strip(firstNonEmpty(entry.Description, entry.Content))
		out = append(out, models.Record{
			Source:    models.SourcePodcast,
			Timestamp: published,
			Headline:  entry.Title,
			Snippet:   htmltext.Truncate(summary, a.cfg.SnippetLimit),
			Link:      entry.Link,
		})
	}

	a.logger.Info("podcast episodes parsed", "records", len(out))
	return out, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
