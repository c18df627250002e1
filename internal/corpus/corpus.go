// Package corpus loads the sample corpus from CSV and holds it in memory.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fluentsearch/fluent/internal/models"
)

// ErrMissingColumns is returned when the CSV header lacks the ID or Sample column.
var ErrMissingColumns = errors.New("corpus source missing required columns (ID, Sample)")

// Store holds the full sample corpus in memory, in first-seen order.
// It is built once at startup and read-only afterwards, so concurrent
// reads need no locking.
type Store struct {
	order []string
	texts map[string]string
}

// Load reads the CSV file at path and returns the corpus store.
// The file must have a header row containing "ID" and "Sample" columns
// (case-insensitive); extra columns are ignored. A duplicate ID keeps its
// first position but takes the last text seen.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()
	return load(f)
}

func load(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus header: %w", err)
	}

	idCol, textCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			idCol = i
		case "sample":
			textCol = i
		}
	}
	if idCol < 0 || textCol < 0 {
		return nil, ErrMissingColumns
	}

	s := &Store{texts: make(map[string]string)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus row: %w", err)
		}
		id := strings.TrimSpace(record[idCol])
		if id == "" {
			continue
		}
		if _, seen := s.texts[id]; !seen {
			s.order = append(s.order, id)
		}
		s.texts[id] = record[textCol]
	}
	if len(s.order) == 0 {
		return nil, fmt.Errorf("corpus source contains no samples")
	}
	return s, nil
}

// List returns every sample in first-load order.
func (s *Store) List() []models.Sample {
	out := make([]models.Sample, len(s.order))
	for i, id := range s.order {
		out[i] = models.Sample{ID: id, Text: s.texts[id]}
	}
	return out
}

// Text returns the original text for id.
func (s *Store) Text(id string) (string, bool) {
	text, ok := s.texts[id]
	return text, ok
}

// Len returns the number of samples.
func (s *Store) Len() int {
	return len(s.order)
}
