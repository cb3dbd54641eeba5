// Package normalize validates candidate records against the shared
// schema before they may join the dataset.
package normalize

import (
	"errors"
	"net/url"
	"strings"

	"finwire/internal/models"
)

// Validation errors. A candidate failing any of these is dropped by the
// caller; none of them abort a batch.
var (
	ErrUnknownSource = errors.New("unknown source type")
	ErrEmptyHeadline = errors.New("empty headline")
)

// Normalizer shapes and validates candidate records. Origins maps a
// source type to the site origin used to absolutize relative links.
type Normalizer struct {
	Origins map[models.SourceType]string
}

// New builds a normalizer with the given per-source origins.
func New(origins map[models.SourceType]string) *Normalizer {
	if origins == nil {
		origins = map[models.SourceType]string{}
	}
	return &Normalizer{Origins: origins}
}

// Normalize enforces the record invariants: enum-constrained source,
// non-empty headline, absolute link. A relative link is rewritten
// against the source's configured origin; with no origin to resolve
// against, the link is cleared rather than the record rejected.
func (n *Normalizer) Normalize(c models.Record) (models.Record, error) {
	if !c.Source.Valid() {
		return models.Record{}, ErrUnknownSource
	}
	c.Headline = strings.TrimSpace(c.Headline)
	if c.Headline == "" {
		return models.Record{}, ErrEmptyHeadline
	}
	c.Link = n.resolveLink(c.Source, c.Link)
	return c, nil
}

func (n *Normalizer) resolveLink(src models.SourceType, link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return link
	}
	origin := strings.TrimSuffix(n.Origins[src], "/")
	if origin == "" {
		return ""
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return origin + link
}
