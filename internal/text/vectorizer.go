package text

import (
	"errors"
	"math"
	"sort"

	"github.com/fluentsearch/fluent/pkg/utils"
)

// Vectorizer is a TF-IDF vectorizer. Fit builds a vocabulary and IDF values
// from a corpus; Vectorize produces L2-normalized vectors against that
// vocabulary. A Vectorizer is fitted once and read-only afterwards.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	fitted     bool
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{vocabulary: make(map[string]int)}
}

// Fit builds the vocabulary and smoothed IDF values from the corpus texts.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF fit")
	}
	df := make(map[string]int)
	for _, t := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(t) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Stable term ordering so vectors are reproducible across runs.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus")
	}

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.dimension = len(terms)
	v.fitted = true
	return nil
}

// Dimension returns the dimensionality of produced vectors.
func (v *Vectorizer) Dimension() int { return v.dimension }

// Vectorize computes the L2-normalized TF-IDF vector for text.
// Tokens outside the fitted vocabulary are ignored; text with no known
// tokens yields a zero vector.
func (v *Vectorizer) Vectorize(text string) ([]float32, error) {
	if !v.fitted {
		return nil, errors.New("vectorizer not fitted")
	}
	vec := make([]float32, v.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range Tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		tfv := float64(count) / float64(total)
		vec[idx] = float32(tfv * v.idf[idx])
	}
	utils.NormalizeL2(vec)
	return vec, nil
}
