// Package engine defines the capability set every similarity engine implements.
package engine

import (
	"context"

	"github.com/fluentsearch/fluent/internal/models"
)

// Engine is a text-similarity engine over a fixed sample corpus.
//
// The lifecycle is Prepare → Train → Query: Prepare receives the complete
// corpus and encodes or tokenizes it (it may transform text, e.g. strip
// category markers, but never drops or reorders sample identifiers); Train
// builds the engine's internal state over the prepared data in corpus
// order; Query ranks samples against free text. Prepare and Train run once
// at startup; afterwards the engine is read-only and safe for concurrent
// Query calls.
type Engine interface {
	// Name identifies the concrete engine variant.
	Name() string

	// Prepare hands the full corpus to the engine for encoding.
	Prepare(ctx context.Context, samples []models.Sample) error

	// Train builds internal state over the prepared data, sample by sample,
	// in corpus order. It must be called after Prepare and before Query.
	Train(ctx context.Context) error

	// Query returns matches in non-increasing score order. The text is used
	// as received; callers own any normalization they want applied. Score
	// range and tie-break policy are engine-defined.
	Query(ctx context.Context, text string) ([]models.Match, error)
}
