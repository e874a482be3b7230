package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mariajose2398/SIDM/internal/registry"
	"github.com/mariajose2398/SIDM/pkg/logger"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Manifest indexes the documents written by one run.
type Manifest struct {
	Histograms   []ManifestEntry `json:"histograms"`
	TotalEntries uint64          `json:"total_entries"`
}

// ManifestEntry is one histogram's line in the manifest.
type ManifestEntry struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Entries uint64 `json:"entries"`
}

// Writer persists a histogram set as JSON documents under one
// directory, plus a manifest.json indexing them.
type Writer struct {
	dir string
	log logger.Logger
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, log: logger.Get().Named("export")}
}

// WriteSet writes every histogram in the set and the manifest. The
// directory is created when missing.
func (w *Writer) WriteSet(ctx context.Context, s *registry.Set) error {
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifest := Manifest{TotalEntries: s.TotalEntries()}

	for _, name := range s.Names() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		h, err := s.Get(name)
		if err != nil {
			return err
		}
		doc, err := NewDocument(h)
		if err != nil {
			return fmt.Errorf("serialize %q: %w", name, err)
		}

		file := name + ".json"
		if err := w.writeJSON(file, doc); err != nil {
			return err
		}
		manifest.Histograms = append(manifest.Histograms, ManifestEntry{
			Name:    name,
			File:    file,
			Entries: doc.Entries,
		})
	}

	if err := w.writeJSON("manifest.json", manifest); err != nil {
		return err
	}

	w.log.Info(ctx, "wrote histogram documents",
		logger.String("dir", w.dir),
		logger.Int("histograms", len(manifest.Histograms)),
		logger.Uint64("entries", manifest.TotalEntries))

	return nil
}

func (w *Writer) writeJSON(file string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %q: %w", file, err)
	}
	path := filepath.Join(w.dir, file)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// ReadDocument loads one serialized histogram document back from disk.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if doc.Name == "" {
		return nil, errors.New("document has no histogram name")
	}
	return &doc, nil
}
