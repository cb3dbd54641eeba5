// Package article extracts the main text of a web article, filling the
// gap left by the web news adapter's placeholder snippets.
package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	neturl "net/url"
	"strings"

	trafilatura "github.com/markusmobius/go-trafilatura"

	"finwire/internal/httpclient"
)

// ErrNoContent reports that a page yielded no usable article text.
var ErrNoContent = errors.New("no article content extracted")

// minTextLen filters out boilerplate-only extractions.
const minTextLen = 100

// Extractor fetches a page and runs readability extraction over it.
type Extractor struct {
	client *httpclient.Client
}

func NewExtractor(client *httpclient.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract returns the plain article text at url.
func (e *Extractor) Extract(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", errors.New("empty url")
	}
	resp, err := e.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch article: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	parsed, _ := neturl.Parse(url)
	res, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL:    parsed,
		EnableFallback: true,
		Focus:          trafilatura.Balanced,
	})
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}
	if res == nil {
		return "", ErrNoContent
	}
	text := strings.TrimSpace(res.ContentText)
	if len(text) < minTextLen {
		return "", ErrNoContent
	}
	return text, nil
}
