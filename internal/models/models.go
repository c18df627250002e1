// Package models defines core data structures for corpus samples and query results.
package models

import "sort"

// Sample is one labeled text entry from the sample corpus. Samples are
// immutable after load and keep the order in which they were first read.
type Sample struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Match pairs a sample identifier with an engine-defined similarity score.
// Engines return matches in non-increasing score order.
type Match struct {
	ID    string
	Score float64
}

// Result is one entry of the ranked HTTP query response. Text is the
// sample's original corpus text, untouched by the response layer.
type Result struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// SortMatches orders matches by descending score. The sort is stable so
// equal scores keep their existing (corpus) order.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
}
