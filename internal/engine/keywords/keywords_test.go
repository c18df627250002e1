package keywords

import (
	"context"
	"reflect"
	"testing"

	"github.com/fluentsearch/fluent/internal/models"
)

func trainedEngine(t *testing.T, samples []models.Sample) *Engine {
	t.Helper()
	ctx := context.Background()
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	if err := e.Prepare(ctx, samples); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := e.Train(ctx); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return e
}

var testSamples = []models.Sample{
	{ID: "1", Text: "the cat sat on the mat"},
	{ID: "2", Text: "the dog ran in the park"},
	{ID: "3", Text: "a cat and a dog met"},
}

func TestQuery_MatchesKeyword(t *testing.T) {
	e := trainedEngine(t, testSamples)
	matches, err := e.Query(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches for cat")
	}
	ids := make(map[string]bool)
	for _, m := range matches {
		ids[m.ID] = true
		if m.ID == "2" {
			t.Errorf("dog-only sample matched cat query")
		}
	}
	if !ids["1"] || !ids["3"] {
		t.Errorf("expected samples 1 and 3, got %v", matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("scores not descending at %d: %v", i, matches)
		}
	}
}

func TestQuery_NoMatches(t *testing.T) {
	e := trainedEngine(t, testSamples)
	matches, err := e.Query(context.Background(), "spaceship")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestQuery_Idempotent(t *testing.T) {
	e := trainedEngine(t, testSamples)
	first, err := e.Query(context.Background(), "dog park")
	if err != nil {
		t.Fatal(err)
	}
	again, err := e.Query(context.Background(), "dog park")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Errorf("results differ: %v vs %v", first, again)
	}
}

func TestPrepare_StripsCategoryMarkers(t *testing.T) {
	e := trainedEngine(t, []models.Sample{
		{ID: "1", Text: "[billing] refund my card"},
	})
	matches, err := e.Query(context.Background(), "billing")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("category marker leaked into index: %v", matches)
	}
}

func TestQuery_BeforeTrain(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if _, err := e.Query(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for untrained engine")
	}
}
