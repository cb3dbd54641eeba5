package collect

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwire/internal/store"
)

const indexPage = `<html><body>
	<a class="Card-title" href="/markets/fed.html">Fed holds rates steady</a>
	<a class="Card-title" href="https://www.cnbc.com/markets/jobs.html">Jobs report surprises</a>
</body></html>`

const uploadFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
	<title>Test Channel</title>
	<entry>
		<id>yt:video:vid1</id>
		<yt:videoId>vid1</yt:videoId>
		<title>Weather Update</title>
		<link rel="alternate" href="https://www.youtube.com/watch?v=vid1"/>
		<published>2026-08-24T13:00:00+00:00</published>
	</entry>
</feed>`

const podcastFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test Pod</title><link>https://pod.example.com</link><description>d</description>
	<item><title>Episode One</title><link>https://pod.example.com/1</link><pubDate>Mon, 24 Aug 2026 09:00:00 +0000</pubDate><description><![CDATA[<p>First recap</p>]]></description></item>
	<item><title>Episode Two</title><link>https://pod.example.com/2</link><pubDate>Tue, 25 Aug 2026 09:00:00 +0000</pubDate><description><![CDATA[<p>Second recap</p>]]></description></item>
</channel></rss>`

func writeConfig(t *testing.T, dir, webURL, videoURL, podURL string) string {
	t.Helper()
	body := fmt.Sprintf(`
http:
  user_agent: "finwire-test"
  accept_language: "en-US"
  timeout: 5
web_news:
  index_url: %q
  origin: "https://www.cnbc.com"
  selector: ".Card-title"
  max_articles: 15
video:
  feed_url: %q
  keywords: ["cramer", "club"]
  max_entries: 5
  snippet_limit: 500
podcast:
  feed_url: %q
  max_episodes: 3
  snippet_limit: 400
database_path: %q
output_dir: %q
`, webURL, videoURL, podURL, filepath.Join(dir, "finwire.db"), dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/finance/", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(indexPage)) })
	mux.HandleFunc("/videos.xml", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(uploadFeed)) })
	mux.HandleFunc("/podcast.xml", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(podcastFeed)) })
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL+"/finance/", server.URL+"/videos.xml", server.URL+"/podcast.xml")

	require.NoError(t, Run(context.Background(), Options{ConfigPath: cfgPath}))

	// CSV export: header + 2 web news + 0 video (no keyword match) + 2 podcast.
	matches, err := filepath.Glob(filepath.Join(dir, "finwire_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "web_news", rows[1][0])
	assert.Equal(t, "Fed holds rates steady", rows[1][2])
	assert.Equal(t, "https://www.cnbc.com/markets/fed.html", rows[1][4])
	assert.Equal(t, "podcast", rows[3][0])
	assert.Equal(t, "First recap...", rows[3][3])

	// Archive holds the same dataset.
	db, err := store.Open(filepath.Join(dir, "finwire.db"))
	require.NoError(t, err)
	defer db.Close()
	archived, err := store.GetSince(context.Background(), db, time.Now().Add(-time.Hour), "", 0)
	require.NoError(t, err)
	assert.Len(t, archived, 4)
}

func TestRunAllSourcesEmptyProducesNoOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL+"/finance/", server.URL+"/videos.xml", server.URL+"/podcast.xml")

	require.NoError(t, Run(context.Background(), Options{ConfigPath: cfgPath}))

	matches, err := filepath.Glob(filepath.Join(dir, "finwire_*.csv"))
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.NoFileExists(t, filepath.Join(dir, "finwire.db"))
}
