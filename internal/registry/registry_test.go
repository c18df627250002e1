package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/fluentsearch/fluent/internal/config"
	"github.com/fluentsearch/fluent/internal/corpus"
)

func testStore(t *testing.T) *corpus.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.csv")
	content := "ID,Sample\n1,the cat sat\n2,the dog ran\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := corpus.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func localModels() []config.ModelConfig {
	return []config.ModelConfig{
		{Name: "CioWindows", Variant: config.VariantWindows},
		{Name: "Keywords", Variant: config.VariantKeywords},
	}
}

func TestBuild_TrainsAllModels(t *testing.T) {
	reg, err := Build(context.Background(), localModels(), "CioWindows", testStore(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reg.Has("CioWindows") || !reg.Has("Keywords") {
		t.Errorf("models missing: %v", reg.Names())
	}
	if reg.Has("HTMNetwork") {
		t.Error("unexpected model registered")
	}
	if reg.DefaultName() != "CioWindows" {
		t.Errorf("default: got %s", reg.DefaultName())
	}
	want := []string{"CioWindows", "Keywords"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names: got %v, want %v", got, want)
	}
}

func TestBuild_QueryRanksTrainedCorpus(t *testing.T) {
	reg, err := Build(context.Background(), localModels(), "CioWindows", testStore(t), zap.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	matches, err := reg.Query(context.Background(), "CioWindows", "cat sitting")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "1" {
		t.Errorf("matches: got %v", matches)
	}
}

func TestBuild_UnknownVariantAbortsEverything(t *testing.T) {
	cfgs := append(localModels(), config.ModelConfig{Name: "HTMNetwork", Variant: "htm"})
	reg, err := Build(context.Background(), cfgs, "CioWindows", testStore(t), zap.NewNop())
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if reg != nil {
		t.Fatal("no registry may be returned when any model fails")
	}
}

func TestBuild_MissingCredentialsAbortsEverything(t *testing.T) {
	t.Setenv("FLUENT_RETINA_ID", "")
	t.Setenv("CORTICAL_API_KEY", "")
	fpCfg := config.Config{Models: []config.ModelConfig{
		{Name: "CioWordFingerprint", Variant: config.VariantFingerprint,
			Fingerprint: &config.FingerprintConfig{Mode: "word"}},
	}}
	config.ApplyDefaults(&fpCfg)
	cfgs := append(localModels(), fpCfg.Models[0])

	reg, err := Build(context.Background(), cfgs, "CioWindows", testStore(t), zap.NewNop())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if reg != nil {
		t.Fatal("no registry may be returned when any model fails")
	}
}

func TestBuild_DefaultModelMustExist(t *testing.T) {
	if _, err := Build(context.Background(), localModels(), "Missing", testStore(t), zap.NewNop()); err == nil {
		t.Fatal("expected error for unconfigured default model")
	}
}

func TestBuild_DuplicateName(t *testing.T) {
	cfgs := append(localModels(), localModels()[0])
	if _, err := Build(context.Background(), cfgs, "CioWindows", testStore(t), zap.NewNop()); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestBuild_NoModels(t *testing.T) {
	if _, err := Build(context.Background(), nil, "CioWindows", testStore(t), zap.NewNop()); err == nil {
		t.Fatal("expected error for empty model list")
	}
}

func TestQuery_UnknownModel(t *testing.T) {
	reg, err := Build(context.Background(), localModels(), "CioWindows", testStore(t), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	_, err = reg.Query(context.Background(), "Nope", "text")
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}
