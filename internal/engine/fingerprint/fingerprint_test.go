package fingerprint

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fluentsearch/fluent/internal/models"
)

// stubEncoder assigns each distinct word an orthogonal axis and encodes
// text as the sum of its word axes, so overlap in words means overlap in
// fingerprints and nothing else does.
type stubEncoder struct {
	dims  int
	axes  map[string]int
	calls int
	fail  error
}

func newStubEncoder() *stubEncoder {
	return &stubEncoder{dims: 64, axes: make(map[string]int)}
}

func (s *stubEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	vec := make([]float32, s.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		axis, ok := s.axes[word]
		if !ok {
			axis = len(s.axes) % s.dims
			s.axes[word] = axis
		}
		vec[axis]++
	}
	return vec, nil
}

var corpusSamples = []models.Sample{
	{ID: "1", Text: "the cat sat"},
	{ID: "2", Text: "the dog ran"},
}

func trainedEngine(t *testing.T, mode Mode) *Engine {
	t.Helper()
	ctx := context.Background()
	e := New(newStubEncoder(), mode)
	if err := e.Prepare(ctx, corpusSamples); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := e.Train(ctx); err != nil {
		t.Fatalf("Train: %v", err)
	}
	return e
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"word", ModeWord, false},
		{"document", ModeDocument, false},
		{"", ModeWord, false},
		{"sentence", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error: %v", tt.input, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQuery_WordMode(t *testing.T) {
	e := trainedEngine(t, ModeWord)
	matches, err := e.Query(context.Background(), "cat sitting")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(matches))
	}
	if matches[0].ID != "1" {
		t.Errorf("top match: got %s, want 1", matches[0].ID)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not descending: %f <= %f", matches[0].Score, matches[1].Score)
	}
}

func TestQuery_DocumentMode(t *testing.T) {
	e := trainedEngine(t, ModeDocument)
	matches, err := e.Query(context.Background(), "dog running fast")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if matches[0].ID != "2" {
		t.Errorf("top match: got %s, want 2", matches[0].ID)
	}
}

func TestQuery_Idempotent(t *testing.T) {
	e := trainedEngine(t, ModeWord)
	first, err := e.Query(context.Background(), "cat sitting")
	if err != nil {
		t.Fatal(err)
	}
	again, err := e.Query(context.Background(), "cat sitting")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Errorf("results differ: %v vs %v", first, again)
	}
}

func TestTrain_EncoderFailureAborts(t *testing.T) {
	ctx := context.Background()
	enc := newStubEncoder()
	enc.fail = errors.New("service unavailable")
	e := New(enc, ModeDocument)
	if err := e.Prepare(ctx, corpusSamples); err != nil {
		t.Fatal(err)
	}
	if err := e.Train(ctx); err == nil {
		t.Fatal("expected train to fail when encoder fails")
	}
}

func TestQuery_BeforeTrain(t *testing.T) {
	e := New(newStubEncoder(), ModeWord)
	if _, err := e.Query(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for untrained engine")
	}
}

func TestTrain_DocumentModeEncodesOncePerSample(t *testing.T) {
	ctx := context.Background()
	enc := newStubEncoder()
	e := New(enc, ModeDocument)
	if err := e.Prepare(ctx, corpusSamples); err != nil {
		t.Fatal(err)
	}
	if err := e.Train(ctx); err != nil {
		t.Fatal(err)
	}
	if enc.calls != len(corpusSamples) {
		t.Errorf("encoder calls: got %d, want %d", enc.calls, len(corpusSamples))
	}
}
