// Package registry builds and holds the named, trained similarity engines.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fluentsearch/fluent/internal/config"
	"github.com/fluentsearch/fluent/internal/corpus"
	"github.com/fluentsearch/fluent/internal/engine"
	"github.com/fluentsearch/fluent/internal/engine/fingerprint"
	"github.com/fluentsearch/fluent/internal/engine/keywords"
	"github.com/fluentsearch/fluent/internal/engine/windows"
	"github.com/fluentsearch/fluent/internal/models"
	"github.com/fluentsearch/fluent/internal/retina"
)

var (
	// ErrUnknownVariant means a configured model names no registered engine implementation.
	ErrUnknownVariant = errors.New("unknown model variant")
	// ErrModelNotFound means a request referenced a model absent from the registry.
	ErrModelNotFound = errors.New("model not found")
	// ErrMissingCredentials means a configured model variant requires
	// environment credentials that are not set.
	ErrMissingCredentials = errors.New("missing model credentials")
)

// builderFunc constructs an untrained engine from its model config.
type builderFunc func(cfg config.ModelConfig) (engine.Engine, error)

// builders is the static registration table mapping a variant to its
// constructor. Adding a new variant means adding an entry here and an
// implementation of the engine capability set.
var builders = map[config.Variant]builderFunc{
	config.VariantWindows:     buildWindows,
	config.VariantKeywords:    buildKeywords,
	config.VariantFingerprint: buildFingerprint,
}

// Registry maps model names to trained engines. It is built once at
// startup and read-only afterwards, so concurrent request reads need no
// locking.
type Registry struct {
	entries     map[string]engine.Engine
	defaultName string
}

// Build constructs, prepares, and trains every configured model against the
// full corpus, in corpus order, and returns the finished registry. Any
// failure aborts the whole build: a partially built registry is never
// returned, so partially trained engines are never exposed.
func Build(ctx context.Context, cfgs []config.ModelConfig, defaultName string, store *corpus.Store, logger *zap.Logger) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("no models configured")
	}
	samples := store.List()
	entries := make(map[string]engine.Engine, len(cfgs))
	for _, cfg := range cfgs {
		if cfg.Name == "" {
			return nil, fmt.Errorf("model with variant %q has no name", cfg.Variant)
		}
		if _, dup := entries[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate model name %q", cfg.Name)
		}
		builder, ok := builders[cfg.Variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q for model %q", ErrUnknownVariant, cfg.Variant, cfg.Name)
		}
		eng, err := builder(cfg)
		if err != nil {
			return nil, fmt.Errorf("construct model %q: %w", cfg.Name, err)
		}
		start := time.Now()
		if err := eng.Prepare(ctx, samples); err != nil {
			return nil, fmt.Errorf("prepare model %q: %w", cfg.Name, err)
		}
		if err := eng.Train(ctx); err != nil {
			return nil, fmt.Errorf("train model %q: %w", cfg.Name, err)
		}
		entries[cfg.Name] = eng
		logger.Info("model trained",
			zap.String("model", cfg.Name),
			zap.String("variant", string(cfg.Variant)),
			zap.Int("samples", len(samples)),
			zap.Duration("took", time.Since(start)),
		)
	}
	if _, ok := entries[defaultName]; !ok {
		return nil, fmt.Errorf("default model %q is not configured", defaultName)
	}
	return &Registry{entries: entries, defaultName: defaultName}, nil
}

// Has reports whether name is a registered model.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// DefaultName returns the model used when a request names none.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names returns the registered model names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Query delegates text to the named trained engine and returns its ranked
// matches. The text is passed through as received.
func (r *Registry) Query(ctx context.Context, name, text string) ([]models.Match, error) {
	eng, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return eng.Query(ctx, text)
}

func buildWindows(cfg config.ModelConfig) (engine.Engine, error) {
	size, overlap := 0, 0
	if cfg.Windows != nil {
		size, overlap = cfg.Windows.WindowSize, cfg.Windows.WindowOverlap
	}
	return windows.New(size, overlap), nil
}

func buildKeywords(cfg config.ModelConfig) (engine.Engine, error) {
	return keywords.New()
}

func buildFingerprint(cfg config.ModelConfig) (engine.Engine, error) {
	fc := cfg.Fingerprint
	if fc == nil {
		return nil, fmt.Errorf("fingerprint options are required")
	}
	mode, err := fingerprint.ParseMode(fc.Mode)
	if err != nil {
		return nil, err
	}
	retinaName := os.Getenv(fc.RetinaEnv)
	if retinaName == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingCredentials, fc.RetinaEnv)
	}
	apiKey := os.Getenv(fc.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrMissingCredentials, fc.APIKeyEnv)
	}
	client, err := retina.NewClient(retina.Config{
		Endpoint:   fc.Endpoint,
		RetinaName: retinaName,
		APIKey:     apiKey,
		Timeout:    time.Duration(fc.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return fingerprint.New(client, mode), nil
}
