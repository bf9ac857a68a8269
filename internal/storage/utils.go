package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SnapshotFolderPath generates a consistent folder path for snapshots.
// Format: snapshots/YYYY/MM/DD/Dashboard-YYYY-MM-DD-HH-MM-SS
func SnapshotFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/Dashboard-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "application/json"
	} else if strings.HasSuffix(filename, ".txt") {
		return "text/plain"
	} else if strings.HasSuffix(filename, ".html") {
		return "text/html"
	} else if strings.HasSuffix(filename, ".css") {
		return "text/css"
	} else if strings.HasSuffix(filename, ".md") {
		return "text/markdown"
	} else if strings.HasSuffix(filename, ".png") {
		return "image/png"
	} else if strings.HasSuffix(filename, ".js") {
		return "application/javascript"
	} else {
		return "application/octet-stream"
	}
}

// sortNewestFirst sorts snapshot paths so the most recent comes first. The
// folder layout embeds the timestamp, so reverse lexical order is
// chronological order.
func sortNewestFirst(paths []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
}
