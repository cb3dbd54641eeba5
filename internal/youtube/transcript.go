// Package youtube retrieves spoken-caption transcripts for videos.
//
// The flow mirrors youtube-transcript-api: fetch the watch page (with a
// consent-gate retry), extract the innertube API key, ask the player
// endpoint for caption tracks, then download and parse the timedtext
// XML of the best track.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"regexp"
	"strings"
	"time"
)

const (
	watchURL        = "https://www.youtube.com/watch?v=%s"
	innertubeAPIURL = "https://www.youtube.com/youtubei/v1/player?key=%s"
	defaultUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// ErrNoTranscript reports that a video has no retrievable captions.
// Common for fresh uploads; callers treat it as an expected condition,
// not a failure.
var ErrNoTranscript = errors.New("transcript unavailable")

// Segment is a single caption entry.
type Segment struct {
	Text     string
	StartSec float64
	Duration float64
}

// Client fetches transcripts over an injected HTTP client.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient, userAgent: defaultUA}
}

// Transcript returns the ordered caption segments for a video ID.
// Missing or disabled captions yield ErrNoTranscript.
func (c *Client) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	pageHTML, cookie, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	apiKey, err := extractAPIKey(pageHTML)
	if err != nil {
		return nil, err
	}
	player, err := c.postPlayer(ctx, apiKey, videoID, cookie)
	if err != nil {
		return nil, err
	}
	trackURL, err := pickCaptionURL(player)
	if err != nil {
		return nil, err
	}
	return c.fetchTimedText(ctx, trackURL, cookie)
}

// fetchWatchPage gets the watch page HTML. When the EU consent form is
// served it sets the consent cookie and retries once.
func (c *Client) fetchWatchPage(ctx context.Context, videoID string) (string, string, error) {
	url := fmt.Sprintf(watchURL, videoID)
	body, status, err := c.get(ctx, url, "")
	if err != nil {
		return "", "", err
	}
	if strings.Contains(body, `action="https://consent.youtube.com/s"`) {
		v := extractConsentV(body)
		if v == "" {
			return "", "", errors.New("consent form without token")
		}
		cookie := "CONSENT=YES+" + v
		body, status, err = c.get(ctx, url, cookie)
		if err != nil {
			return "", "", err
		}
		if status < 200 || status >= 300 {
			return "", "", fmt.Errorf("watch page status %d", status)
		}
		return body, cookie, nil
	}
	if status < 200 || status >= 300 {
		return "", "", fmt.Errorf("watch page status %d", status)
	}
	return body, "", nil
}

func (c *Client) get(ctx context.Context, url, cookie string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(b), resp.StatusCode, nil
}

var apiKeyRe = regexp.MustCompile(`"INNERTUBE_API_KEY"\s*:\s*"([a-zA-Z0-9_-]+)"`)

func extractAPIKey(pageHTML string) (string, error) {
	if m := apiKeyRe.FindStringSubmatch(pageHTML); len(m) == 2 {
		return m[1], nil
	}
	if strings.Contains(pageHTML, `class="g-recaptcha"`) {
		return "", errors.New("blocked by captcha")
	}
	return "", errors.New("innertube API key not found")
}

var consentRe = regexp.MustCompile(`name="v" value="(.*?)"`)

func extractConsentV(pageHTML string) string {
	if m := consentRe.FindStringSubmatch(pageHTML); len(m) == 2 {
		return m[1]
	}
	return ""
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (c *Client) postPlayer(ctx context.Context, apiKey, videoID, cookie string) (*playerResponse, error) {
	payload := map[string]any{
		// Android client context: returns caption tracks without PoToken.
		"context": map[string]any{
			"client": map[string]string{
				"clientName":    "ANDROID",
				"clientVersion": "20.10.38",
			},
		},
		"videoId": videoID,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf(innertubeAPIURL, apiKey), strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en-US")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.New("player request blocked (429)")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("player request status %d", resp.StatusCode)
	}
	var pr playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	if st := pr.PlayabilityStatus.Status; st != "" && st != "OK" {
		return nil, fmt.Errorf("%w: video unplayable: %s", ErrNoTranscript, pr.PlayabilityStatus.Reason)
	}
	return &pr, nil
}

// pickCaptionURL selects a caption track, preferring manual over
// auto-generated (asr) tracks. It also strips fmt=srv3 so the track
// downloads as plain timedtext XML.
func pickCaptionURL(pr *playerResponse) (string, error) {
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", ErrNoTranscript
	}
	chosen := ""
	for _, t := range tracks {
		if t.BaseURL == "" {
			continue
		}
		if chosen == "" {
			chosen = t.BaseURL
		}
		if strings.TrimSpace(t.Kind) != "asr" {
			chosen = t.BaseURL
			break
		}
	}
	if chosen == "" {
		return "", ErrNoTranscript
	}
	if u, err := neturl.Parse(chosen); err == nil {
		q := u.Query()
		if q.Get("fmt") == "srv3" {
			q.Del("fmt")
			u.RawQuery = q.Encode()
			chosen = u.String()
		}
	}
	return chosen, nil
}

func (c *Client) fetchTimedText(ctx context.Context, trackURL, cookie string) ([]Segment, error) {
	body, status, err := c.get(ctx, trackURL, cookie)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("captions fetch status %d", status)
	}
	return ParseTimedText([]byte(body))
}
