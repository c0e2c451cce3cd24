package service

import (
	"math/rand/v2"

	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/source"
)

// Sampler draws random candidates from a result set without replacement.
type Sampler struct {
	// Intn returns a uniform value in [0, n). It must be safe for the
	// sampler's callers to share; rand.IntN is.
	Intn func(n int) int
}

// NewSampler creates a Sampler backed by intn, or by rand.IntN when nil.
func NewSampler(intn func(n int) int) *Sampler {
	if intn == nil {
		intn = rand.IntN
	}
	return &Sampler{Intn: intn}
}

// Sample returns up to count candidates in the order they were drawn.
//
// Every drawn result leaves the pool whether or not it yields a candidate, so
// each result is examined at most once and the loop ends when either count
// candidates are accepted or the pool is empty. results is not modified.
func (s *Sampler) Sample(results []source.RawResult, count int) []models.Candidate {
	if len(results) == 0 || count <= 0 {
		return nil
	}

	pool := make([]int, len(results))
	for i := range pool {
		pool[i] = i
	}

	accepted := make([]models.Candidate, 0, min(count, len(results)))
	for len(accepted) < count && len(pool) > 0 {
		pick := s.Intn(len(pool))
		idx := pool[pick]

		last := len(pool) - 1
		pool[pick] = pool[last]
		pool = pool[:last]

		if c, ok := ExtractCandidate(results[idx]); ok {
			accepted = append(accepted, c)
		}
	}
	return accepted
}
