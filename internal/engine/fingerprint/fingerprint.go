// Package fingerprint implements similarity engines backed by an external
// semantic-fingerprint encoder.
package fingerprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluentsearch/fluent/internal/models"
	"github.com/fluentsearch/fluent/internal/text"
	"github.com/fluentsearch/fluent/internal/vector"
	"github.com/fluentsearch/fluent/pkg/utils"
)

// Mode selects how text is turned into a fingerprint.
type Mode string

const (
	// ModeWord averages per-word fingerprints.
	ModeWord Mode = "word"
	// ModeDocument encodes the whole text at once.
	ModeDocument Mode = "document"
)

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWord, ModeDocument:
		return Mode(s), nil
	case "":
		return ModeWord, nil
	default:
		return "", fmt.Errorf("unknown fingerprint mode: %q (supported: word, document)", s)
	}
}

// Encoder produces a semantic fingerprint vector for text.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Engine ranks samples by cosine similarity of fingerprints obtained from
// the external encoder. Encoding happens once per sample during training;
// queries cost a single encoder round trip.
type Engine struct {
	mode    Mode
	encoder Encoder

	samples []models.Sample // prepared (category markers stripped)
	index   *vector.MemoryIndex
	trained bool
}

// New creates an untrained fingerprint engine.
func New(encoder Encoder, mode Mode) *Engine {
	return &Engine{mode: mode, encoder: encoder}
}

// Name identifies the engine variant.
func (e *Engine) Name() string { return "fingerprint-" + string(e.mode) }

// Prepare stores the corpus with category markers stripped. Identifiers and
// order are preserved exactly.
func (e *Engine) Prepare(ctx context.Context, samples []models.Sample) error {
	if len(samples) == 0 {
		return errors.New("empty corpus")
	}
	e.samples = make([]models.Sample, len(samples))
	for i, s := range samples {
		e.samples[i] = models.Sample{ID: s.ID, Text: text.StripCategories(s.Text)}
	}
	return nil
}

// Train encodes every prepared sample, in corpus order, and indexes the
// normalized fingerprints.
func (e *Engine) Train(ctx context.Context) error {
	if len(e.samples) == 0 {
		return errors.New("train called before prepare")
	}
	for _, s := range e.samples {
		vec, err := e.encode(ctx, s.Text)
		if err != nil {
			return fmt.Errorf("encode sample %s: %w", s.ID, err)
		}
		if e.index == nil {
			idx, err := vector.NewMemoryIndex(len(vec))
			if err != nil {
				return err
			}
			e.index = idx
		}
		if err := e.index.Add(ctx, s.ID, vec); err != nil {
			return fmt.Errorf("index sample %s: %w", s.ID, err)
		}
	}
	e.trained = true
	return nil
}

// Query encodes the query text the same way samples were encoded and
// returns every sample ranked by cosine similarity.
func (e *Engine) Query(ctx context.Context, queryText string) ([]models.Match, error) {
	if !e.trained {
		return nil, errors.New("engine not trained")
	}
	qvec, err := e.encode(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(qvec) != e.index.Dimensions() {
		return nil, fmt.Errorf("query fingerprint dimension mismatch: got %d, expected %d",
			len(qvec), e.index.Dimensions())
	}
	hits, err := e.index.Search(ctx, qvec, e.index.Len())
	if err != nil {
		return nil, err
	}
	matches := make([]models.Match, len(hits))
	for i, h := range hits {
		matches[i] = models.Match{ID: h.ID, Score: h.Score}
	}
	return matches, nil
}

// encode produces a normalized fingerprint for t according to the mode.
func (e *Engine) encode(ctx context.Context, t string) ([]float32, error) {
	switch e.mode {
	case ModeDocument:
		vec, err := e.encoder.Encode(ctx, t)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(vec))
		copy(out, vec)
		utils.NormalizeL2(out)
		return out, nil
	case ModeWord:
		tokens := text.Tokenize(t)
		if len(tokens) == 0 {
			// Fall back to the raw text so empty-vocabulary inputs still encode.
			tokens = []string{t}
		}
		var sum []float32
		for _, tok := range tokens {
			vec, err := e.encoder.Encode(ctx, tok)
			if err != nil {
				return nil, err
			}
			if sum == nil {
				sum = make([]float32, len(vec))
			}
			if len(vec) != len(sum) {
				return nil, fmt.Errorf("inconsistent fingerprint dimensions: got %d, expected %d", len(vec), len(sum))
			}
			for i, v := range vec {
				sum[i] += v
			}
		}
		n := float32(len(tokens))
		for i := range sum {
			sum[i] /= n
		}
		utils.NormalizeL2(sum)
		return sum, nil
	default:
		return nil, fmt.Errorf("unknown fingerprint mode: %q", e.mode)
	}
}
