// Package snapshot persists merged catalog items as JSON documents on disk.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
)

// Document is the persisted content of one output file. Each run fully
// rewrites it.
type Document struct {
	// Keyword is always null; the field is kept for compatibility with the
	// persisted format.
	Keyword *string `json:"keyword"`

	// TotalItems is len(Data).
	TotalItems int `json:"totalItems"`

	// LastUpdate is the RFC 3339 timestamp of the run that wrote the file.
	LastUpdate string `json:"lastUpdate"`

	// Data is the ordered item list. Existing items keep their position; new
	// items are appended.
	Data []catalog.Item `json:"data"`
}

// Load reads the items persisted at path. A missing, unreadable, or corrupt
// file yields an empty slice: the run starts fresh rather than failing.
func Load(path string) []catalog.Item {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("Existing snapshot unreadable, starting fresh")
		}
		return nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Existing snapshot corrupt, starting fresh")
		return nil
	}

	return doc.Data
}

// Save writes items to path as an indented JSON document, fully overwriting
// any prior content. The write is done in place, not via temp-then-rename, so
// a crash mid-write can leave a truncated file; Load tolerates that.
func Save(path string, items []catalog.Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if items == nil {
		items = []catalog.Item{}
	}

	doc := Document{
		TotalItems: len(items),
		LastUpdate: time.Now().UTC().Format(time.RFC3339),
		Data:       items,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
