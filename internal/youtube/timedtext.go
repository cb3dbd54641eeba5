package youtube

import (
	"encoding/xml"
	"html"
	"regexp"
	"strconv"
	"strings"
)

type timedTextEl struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",innerxml"`
}

type timedTextDoc struct {
	XMLName xml.Name      `xml:"transcript"`
	Texts   []timedTextEl `xml:"text"`
}

// ParseTimedText parses YouTube timedtext XML into ordered segments,
// unescaping entities and stripping inline markup from each entry.
func ParseTimedText(b []byte) ([]Segment, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	var out []Segment
	for _, t := range doc.Texts {
		txt := stripTags(html.UnescapeString(t.Body))
		if strings.TrimSpace(txt) == "" {
			continue
		}
		out = append(out, Segment{
			Text:     txt,
			StartSec: parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoTranscript
	}
	return out, nil
}

// JoinSegments concatenates segment texts into one blob separated by
// single spaces.
func JoinSegments(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	return sb.String()
}

var inlineTagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	s = strings.ReplaceAll(s, "<br>", " ")
	s = strings.ReplaceAll(s, "<br/>", " ")
	s = strings.ReplaceAll(s, "<br />", " ")
	s = inlineTagRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
