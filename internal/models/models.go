package models

// SourceType identifies which adapter produced a record.
type SourceType string

const (
	SourceWebNews SourceType = "web_news"
	SourceVideo   SourceType = "video"
	SourcePodcast SourceType = "podcast"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceWebNews, SourceVideo, SourcePodcast:
		return true
	}
	return false
}

// Record is the universal output unit shared by all source adapters.
//
// Timestamp is kept as the source-provided string and is intentionally
// not normalized to one format: web news carries the capture date
// (YYYY-MM-DD), video carries the feed-native published string, podcast
// carries the feed's published field or the capture date.
type Record struct {
	Source    SourceType
	Timestamp string
	Headline  string
	Snippet   string
	Link      string // absolute URL; empty when unresolvable
}
