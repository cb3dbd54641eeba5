// Package export writes the merged dataset to durable storage.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finwire/internal/models"
)

// Header is the column order of the exported file.
var Header = []string{"source_type", "timestamp", "headline", "snippet", "link"}

// CSVExporter writes one dated CSV file per run into Dir.
type CSVExporter struct {
	Dir string
	now func() time.Time
}

func NewCSV(dir string) *CSVExporter {
	if dir == "" {
		dir = "."
	}
	return &CSVExporter{Dir: dir, now: time.Now}
}

// Export writes the dataset and returns the file path. Callers are
// expected to skip the export entirely when the dataset is empty; an
// empty dataset here is an error to catch miswired callers.
func (e *CSVExporter) Export(recs []models.Record) (string, error) {
	if len(recs) == 0 {
		return "", fmt.Errorf("refusing to export empty dataset")
	}
	path := filepath.Join(e.Dir, fmt.Sprintf("finwire_%s.csv", e.now().Format("20060102")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return "", err
	}
	for _, r := range recs {
		if err := w.Write([]string{string(r.Source), r.Timestamp, r.Headline, r.Snippet, r.Link}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
