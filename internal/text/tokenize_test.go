package text

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases and splits", "The Cat SAT", []string{"cat", "sat"}},
		{"drops stopwords", "the quick and the dead", []string{"quick", "dead"}},
		{"keeps apostrophes", "don't panic", []string{"don't", "panic"}},
		{"ignores punctuation and digits", "hello, world! 42 times", []string{"hello", "world", "times"}},
		{"empty input", "", nil},
		{"only stopwords", "the and of", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripCategories(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[billing] refund my card", "refund my card"},
		{"  [a b] text", "text"},
		{"no marker here", "no marker here"},
		{"middle [marker] stays", "middle [marker] stays"},
		{"[only marker]", ""},
	}
	for _, tt := range tests {
		if got := StripCategories(tt.input); got != tt.want {
			t.Errorf("StripCategories(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
