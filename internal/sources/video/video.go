// Package video collects records from a video channel's upload feed,
// backed by spoken-caption transcripts.
package video

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	neturl "net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"finwire/internal/config"
	"finwire/internal/htmltext"
	"finwire/internal/models"
	"finwire/internal/youtube"
)

// TranscriptFetcher retrieves the caption segments for a video ID.
// Satisfied by *youtube.Client; faked in tests.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) ([]youtube.Segment, error)
}

// Adapter scans the most recent feed entries, keeps the ones whose
// title matches a keyword, and turns each matching entry plus its
// transcript into a record. Entries without retrievable captions are an
// expected condition and are skipped, not failed.
type Adapter struct {
	cfg         config.VideoConfig
	parser      *gofeed.Parser
	transcripts TranscriptFetcher
	logger      *slog.Logger

	// pause is called after each successful transcript fetch to stay
	// under the caption provider's rate limits. Replaceable in tests.
	pause func(ctx context.Context)
}

func New(cfg config.VideoConfig, parser *gofeed.Parser, transcripts TranscriptFetcher, logger *slog.Logger) *Adapter {
	a := &Adapter{cfg: cfg, parser: parser, transcripts: transcripts, logger: logger}
	a.pause = a.randomPause
	return a
}

func (a *Adapter) Name() string { return "video" }

// Fetch parses the upload feed and emits a record per keyword-matching
// entry with an available transcript. A feed-level parse failure fails
// the batch; everything per-entry is contained.
func (a *Adapter) Fetch(ctx context.Context) ([]models.Record, error) {
	feed, err := a.parser.ParseURLWithContext(a.cfg.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse upload feed: %w", err)
	}

	entries := feed.Items
	if a.cfg.MaxEntries > 0 && len(entries) > a.cfg.MaxEntries {
		entries = entries[:a.cfg.MaxEntries]
	}

	var out []models.Record
	for _, entry := range entries {
		if entry == nil || !a.titleMatches(entry.Title) {
			continue
		}
		videoID := entryVideoID(entry)
		if videoID == "" {
			a.logger.Info("no video id on feed entry", "title", entry.Title)
			continue
		}
		segs, err := a.transcripts.Transcript(ctx, videoID)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			// Captions often lag fresh uploads; skip and move on.
			a.logger.Info("no transcript available", "video_id", videoID, "err", err)
			continue
		}
		snippet := youtube.JoinSegments(segs)
		out = append(out, models.Record{
			Source:    models.SourceVideo,
			Timestamp: entry.Published,
			Headline:  entry.Title,
			Snippet:   htmltext.Truncate(snippet, a.cfg.SnippetLimit),
			Link:      entry.Link,
		})
		a.logger.Info("transcript retrieved", "video_id", videoID, "title", entry.Title)
		a.pause(ctx)
	}
	return out, nil
}

// titleMatches reports whether the lower-cased title contains any
// configured keyword.
func (a *Adapter) titleMatches(title string) bool {
	t := strings.ToLower(title)
	for _, k := range a.cfg.Keywords {
		if k != "" && strings.Contains(t, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// randomPause sleeps a uniformly random duration between the configured
// bounds, or until the context is cancelled.
func (a *Adapter) randomPause(ctx context.Context) {
	min, max := a.cfg.MinDelaySec, a.cfg.MaxDelaySec
	if max < min {
		max = min
	}
	if max <= 0 {
		return
	}
	d := time.Duration((min + rand.Float64()*(max-min)) * float64(time.Second))
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// entryVideoID resolves the video ID, preferring the feed's yt:videoId
// extension and falling back to parsing the entry link.
func entryVideoID(entry *gofeed.Item) string {
	if ext, ok := entry.Extensions["yt"]; ok {
		if ids, ok := ext["videoId"]; ok && len(ids) > 0 {
			if id := strings.TrimSpace(ids[0].Value); id != "" {
				return id
			}
		}
	}
	return extractVideoID(entry.Link)
}

var ytHostRe = regexp.MustCompile(`(?i)(^|\.)youtube\.com$`)

func extractVideoID(u string) string {
	parsed, err := neturl.Parse(u)
	if err != nil {
		return ""
	}
	h := strings.ToLower(parsed.Host)
	if h == "youtu.be" {
		return strings.Trim(parsed.Path, "/")
	}
	if ytHostRe.MatchString(h) {
		if strings.HasPrefix(parsed.Path, "/watch") {
			return strings.TrimSpace(parsed.Query().Get("v"))
		}
		if strings.HasPrefix(parsed.Path, "/shorts/") {
			return strings.Trim(strings.TrimPrefix(parsed.Path, "/shorts/"), "/")
		}
	}
	return ""
}
