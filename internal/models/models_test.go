package models

import (
	"reflect"
	"testing"
)

func TestSortMatches(t *testing.T) {
	matches := []Match{
		{ID: "a", Score: 0.1},
		{ID: "b", Score: 0.9},
		{ID: "c", Score: 0.5},
	}
	SortMatches(matches)
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if matches[i].ID != id {
			t.Errorf("matches[%d]: got %s, want %s", i, matches[i].ID, id)
		}
	}
}

func TestSortMatches_StableTies(t *testing.T) {
	matches := []Match{
		{ID: "first", Score: 0},
		{ID: "second", Score: 0},
		{ID: "third", Score: 0},
	}
	original := make([]Match, len(matches))
	copy(original, matches)
	SortMatches(matches)
	if !reflect.DeepEqual(matches, original) {
		t.Errorf("tie order changed: %v", matches)
	}
}
