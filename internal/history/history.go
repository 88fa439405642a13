// Package history keeps timestamped CSV snapshots of lint leaderboards so
// trends can be compared across runs.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"lintgate/internal/leaderboard"
)

const timestampLayout = "20060102_150405"

// WriteCSV writes header and rows to dir/filename, creating dir if needed.
func WriteCSV(dir, filename string, header []string, rows [][]string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("history directory not specified")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return path, nil
}

// WriteRules snapshots the rule leaderboard as rules_<timestamp>.csv.
func WriteRules(dir string, at time.Time, entries []leaderboard.RuleEntry) (string, error) {
	header := []string{"Rank", "Rule", "Findings", "Errors", "Warnings", "Files"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Rule,
			strconv.Itoa(e.Count),
			strconv.Itoa(e.Errors),
			strconv.Itoa(e.Warnings),
			strconv.Itoa(e.Files),
		}
	}
	return WriteCSV(dir, "rules_"+at.Format(timestampLayout)+".csv", header, rows)
}

// WriteFiles snapshots the file leaderboard as files_<timestamp>.csv.
func WriteFiles(dir string, at time.Time, entries []leaderboard.FileEntry) (string, error) {
	header := []string{"Rank", "Path", "Findings", "Errors", "Warnings", "TopRule", "TopRuleCount"}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			e.Path,
			strconv.Itoa(e.Count),
			strconv.Itoa(e.Errors),
			strconv.Itoa(e.Warnings),
			e.TopRule,
			strconv.Itoa(e.TopCount),
		}
	}
	return WriteCSV(dir, "files_"+at.Format(timestampLayout)+".csv", header, rows)
}
