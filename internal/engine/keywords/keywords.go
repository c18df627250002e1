// Package keywords implements a keyword-match similarity engine on a
// memory-only Bleve index.
package keywords

import (
	"context"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/fluentsearch/fluent/internal/models"
	"github.com/fluentsearch/fluent/internal/text"
)

type sampleDoc struct {
	Text string `json:"text"`
}

// Engine ranks samples with Bleve's match query over an in-memory index.
// Unlike the vector engines it only returns samples with at least one
// matching term; scores are Bleve's tf-idf scores.
type Engine struct {
	index   bleve.Index
	samples []models.Sample
	trained bool
}

// New creates an untrained keyword engine.
func New() (*Engine, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so query terms
	// match exact words in the samples.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("text", textFieldMapping)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}
	return &Engine{index: index}, nil
}

// Name identifies the engine variant.
func (e *Engine) Name() string { return "keywords" }

// Prepare stores the corpus with category markers stripped.
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

// Train indexes every prepared sample in corpus order.
func (e *Engine) Train(ctx context.Context) error {
	if len(e.samples) == 0 {
		return errors.New("train called before prepare")
	}
	for _, s := range e.samples {
		if err := e.index.Index(s.ID, sampleDoc{Text: s.Text}); err != nil {
			return fmt.Errorf("index sample %s: %w", s.ID, err)
		}
	}
	e.trained = true
	return nil
}

// Query runs a match query and returns the scored hits, highest first.
func (e *Engine) Query(ctx context.Context, queryText string) ([]models.Match, error) {
	if !e.trained {
		return nil, errors.New("engine not trained")
	}
	q := bleve.NewMatchQuery(queryText)
	req := bleve.NewSearchRequest(q)
	req.Size = len(e.samples)
	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	matches := make([]models.Match, len(res.Hits))
	for i, hit := range res.Hits {
		matches[i] = models.Match{ID: hit.ID, Score: hit.Score}
	}
	return matches, nil
}

// Close releases the in-memory index.
func (e *Engine) Close() error {
	return e.index.Close()
}
