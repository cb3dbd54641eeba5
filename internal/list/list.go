// Package list prints archived records from the local database.
package list

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"finwire/internal/config"
	"finwire/internal/store"
)

func Run(ctx context.Context, configPath string, hours int, source string) error {
	if hours <= 0 {
		hours = 24
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !fileExists(cfg.DatabasePath) {
		fmt.Printf("Archive not found at %s\n", cfg.DatabasePath)
		fmt.Println("Hint: run 'finwire collect' to create and populate it, or set database_path in ~/.config/finwire/config.yaml.")
		return nil
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer db.Close()

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := store.GetSince(ctx, db, since, source, 0)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no such table") {
			fmt.Println("Archive exists but holds no records yet.")
			return nil
		}
		return fmt.Errorf("query archive: %w", err)
	}

	if len(rows) == 0 {
		fmt.Printf("No records collected in the last %d hours.\n", hours)
		return nil
	}

	fmt.Printf("Found %d records from the last %d hours:\n\n", len(rows), hours)
	for _, r := range rows {
		link := "-"
		if r.Link.Valid {
			link = r.Link.String
		}
		fmt.Printf("Source: %s\n", r.Source)
		fmt.Printf("Published: %s\n", r.Timestamp)
		fmt.Printf("Headline: %s\n", r.Headline)
		fmt.Printf("Snippet: %s\n", r.Snippet)
		fmt.Printf("Link: %s\n", link)
		fmt.Printf("Collected: %s\n", r.CollectedAt.Format("2006-01-02 15:04:05"))
		fmt.Println(strings.Repeat("-", 80))
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
