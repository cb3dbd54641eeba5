// Package webnews scrapes headline cards from a public news index page.
package webnews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"finwire/internal/config"
	"finwire/internal/httpclient"
	"finwire/internal/models"
)

// PlaceholderSnippet is used for every web news record: index pages
// only expose headlines, the article body is never fetched here.
const PlaceholderSnippet = "N/A (open link for full text)"

// Adapter extracts headline candidates from a fixed index page using a
// single CSS class selector. When the site markup changes the adapter
// degrades to an empty batch, it does not guess.
type Adapter struct {
	cfg    config.WebNewsConfig
	client *httpclient.Client
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg config.WebNewsConfig, client *httpclient.Client, logger *slog.Logger) *Adapter {
	return &Adapter{cfg: cfg, client: client, logger: logger, now: time.Now}
}

func (a *Adapter) Name() string { return "web_news" }

// Fetch pulls the index page and emits up to MaxArticles records.
// Candidates without display text are skipped; a failed page fetch
// fails the whole batch.
func (a *Adapter) Fetch(ctx context.Context) ([]models.Record, error) {
	resp, err := a.client.Get(ctx, a.cfg.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch index page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	capture := a.now().Format("2006-01-02")
	var out []models.Record
	doc.Find(a.cfg.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if a.cfg.MaxArticles > 0 && len(out) >= a.cfg.MaxArticles {
			return false
		}
		title := strings.TrimSpace(s.Text())
		if title == "" {
			return true
		}
		link, _ := s.Attr("href")
		if link == "" {
			// Some sites nest the anchor inside the card element.
			link, _ = s.Find("a").First().Attr("href")
		}
		link = a.absolutize(link)
		out = append(out, models.Record{
			Source:    models.SourceWebNews,
			Timestamp: capture,
			Headline:  title,
			Snippet:   PlaceholderSnippet,
			Link:      link,
		})
		return true
	})

	a.logger.Info("web news scraped", "records", len(out))
	return out, nil
}

// absolutize rewrites an index-relative href against the site origin.
func (a *Adapter) absolutize(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	origin := strings.TrimSuffix(a.cfg.Origin, "/")
	if origin == "" {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return origin + link
}
