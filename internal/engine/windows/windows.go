// Package windows implements the sliding-window similarity engine.
//
// Each sample is split into overlapping word windows; every window gets a
// TF-IDF vector, and a query is scored against a sample by its best-matching
// window. This makes long samples match on local passages instead of being
// diluted by their full length.
package windows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fluentsearch/fluent/internal/models"
	"github.com/fluentsearch/fluent/internal/text"
	"github.com/fluentsearch/fluent/internal/vector"
)

const (
	// DefaultWindowSize is the window length in words.
	DefaultWindowSize = 10
	// DefaultWindowOverlap is how many words consecutive windows share.
	DefaultWindowOverlap = 5
)

type window struct {
	sampleID string
	content  string
}

// Engine is the sliding-window similarity engine.
type Engine struct {
	windowSize    int
	windowOverlap int

	vectorizer *text.Vectorizer
	index      *vector.MemoryIndex
	owner      map[string]string // window ID -> sample ID
	order      []string          // sample IDs in corpus order
	windows    []window
	trained    bool
}

// New creates an untrained engine. Non-positive size or overlap fall back to defaults.
func New(windowSize, windowOverlap int) *Engine {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if windowOverlap < 0 || windowOverlap >= windowSize {
		windowOverlap = DefaultWindowOverlap
		if windowOverlap >= windowSize {
			windowOverlap = windowSize / 2
		}
	}
	return &Engine{
		windowSize:    windowSize,
		windowOverlap: windowOverlap,
		vectorizer:    text.NewVectorizer(),
		owner:         make(map[string]string),
	}
}

// Name identifies the engine variant.
func (e *Engine) Name() string { return "windows" }

// Prepare splits every sample into overlapping word windows. Samples whose
// text yields no tokens keep their place in the ranking with no windows.
func (e *Engine) Prepare(ctx context.Context, samples []models.Sample) error {
	if len(samples) == 0 {
		return errors.New("empty corpus")
	}
	e.order = make([]string, 0, len(samples))
	e.windows = e.windows[:0]
	for _, s := range samples {
		e.order = append(e.order, s.ID)
		words := strings.Fields(text.StripCategories(s.Text))
		for _, content := range slide(words, e.windowSize, e.windowOverlap) {
			e.windows = append(e.windows, window{sampleID: s.ID, content: content})
		}
	}
	return nil
}

// Train fits the TF-IDF vocabulary over all windows and indexes each
// window's vector, in corpus order.
func (e *Engine) Train(ctx context.Context) error {
	if len(e.order) == 0 {
		return errors.New("train called before prepare")
	}
	contents := make([]string, len(e.windows))
	for i, w := range e.windows {
		contents[i] = w.content
	}
	if err := e.vectorizer.Fit(contents); err != nil {
		return fmt.Errorf("fit vectorizer: %w", err)
	}
	idx, err := vector.NewMemoryIndex(e.vectorizer.Dimension())
	if err != nil {
		return err
	}
	for _, w := range e.windows {
		vec, err := e.vectorizer.Vectorize(w.content)
		if err != nil {
			return fmt.Errorf("vectorize window: %w", err)
		}
		id := fmt.Sprintf("%s_%s", w.sampleID, uuid.New().String()[:8])
		if err := idx.Add(ctx, id, vec); err != nil {
			return err
		}
		e.owner[id] = w.sampleID
	}
	e.index = idx
	e.trained = true
	return nil
}

// Query ranks every sample by its best-matching window. All samples are
// returned; samples sharing a score keep corpus order.
func (e *Engine) Query(ctx context.Context, queryText string) ([]models.Match, error) {
	if !e.trained {
		return nil, errors.New("engine not trained")
	}
	qvec, err := e.vectorizer.Vectorize(queryText)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	hits, err := e.index.Search(ctx, qvec, e.index.Len())
	if err != nil {
		return nil, fmt.Errorf("window search: %w", err)
	}

	best := make(map[string]float64, len(e.order))
	for _, h := range hits {
		sampleID := e.owner[h.ID]
		if h.Score > best[sampleID] {
			best[sampleID] = h.Score
		}
	}

	matches := make([]models.Match, 0, len(e.order))
	for _, id := range e.order {
		matches = append(matches, models.Match{ID: id, Score: best[id]})
	}
	models.SortMatches(matches)
	return matches, nil
}

// slide splits words into overlapping windows of windowSize words.
// Step is size minus overlap; the final partial window is kept.
func slide(words []string, windowSize, windowOverlap int) []string {
	if len(words) == 0 {
		return nil
	}
	step := windowSize - windowOverlap
	if step <= 0 {
		step = 1
	}
	out := make([]string, 0, (len(words)+step-1)/step)
	for i := 0; i < len(words); i += step {
		end := i + windowSize
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[i:end], " "))
		if end >= len(words) {
			break
		}
	}
	return out
}
