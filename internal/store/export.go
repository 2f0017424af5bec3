package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chartpilot/internal/models"
)

// ImagePlaceholder replaces annotated image payloads before persistence so
// history files stay small.
const ImagePlaceholder = "<annotated image omitted>"

// HistoryEntry is one exported trade, optionally carrying the annotated
// image from the cycle that produced it.
type HistoryEntry struct {
	Trade          models.TradeRecord `json:"trade"`
	AnnotatedImage string             `json:"annotated_image,omitempty"`
}

// ExportHistoryJSON writes the trade history to a timestamped JSON file in
// dir and returns the file path. Any annotated image payload is replaced
// with a placeholder.
func ExportHistoryJSON(dir string, entries []HistoryEntry) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	sanitized := make([]HistoryEntry, len(entries))
	copy(sanitized, entries)
	for i := range sanitized {
		if sanitized[i].AnnotatedImage != "" {
			sanitized[i].AnnotatedImage = ImagePlaceholder
		}
	}

	data, err := json.MarshalIndent(sanitized, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("trade_history_%s.json", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write history: %w", err)
	}
	return path, nil
}

// HistoryEntries wraps plain trade records as export entries.
func HistoryEntries(trades []models.TradeRecord) []HistoryEntry {
	entries := make([]HistoryEntry, len(trades))
	for i := range trades {
		entries[i] = HistoryEntry{Trade: trades[i]}
	}
	return entries
}
