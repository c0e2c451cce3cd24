package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/logger"
	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/source"
	"go.uber.org/zap"
)

// SearchService finds deliverable recipe clips for a keyword.
type SearchService struct {
	Cfg            *config.Config
	SearchProvider source.SearchProvider
	Sampler        *Sampler
	Logger         *zap.Logger
	intn           func(n int) int
}

// NewSearchService creates a new SearchService.
func NewSearchService(cfg *config.Config, searchProvider source.SearchProvider, log *zap.Logger) *SearchService {
	return &SearchService{
		Cfg:            cfg,
		SearchProvider: searchProvider,
		Sampler:        NewSampler(nil),
		Logger:         logger.OrNop(log),
		intn:           rand.IntN,
	}
}

// WithRand replaces the random source used for sort selection and sampling.
func (s *SearchService) WithRand(intn func(n int) int) *SearchService {
	s.intn = intn
	s.Sampler = NewSampler(intn)
	return s
}

// FindCandidates searches the content source with a random sort order and
// samples up to count candidates from the results. A failed search is
// logged and yields no candidates.
func (s *SearchService) FindCandidates(ctx context.Context, keyword string, count int) []models.Candidate {
	sort := source.RandomSort(s.intn)
	limit := s.Cfg.SearchLimit()
	log := s.Logger.With(
		zap.String("keyword", keyword),
		zap.String("sort", string(sort)),
	)

	start := time.Now()
	results, err := s.SearchProvider.Search(ctx, keyword, limit, sort)
	if err != nil {
		log.Error("recipe search failed", zap.Error(err))
		return []models.Candidate{}
	}

	candidates := s.Sampler.Sample(results, count)
	log.Info("recipe search completed",
		zap.Int("results", len(results)),
		zap.Int("candidates", len(candidates)),
		zap.Duration("took", time.Since(start)),
	)
	if candidates == nil {
		return []models.Candidate{}
	}
	return candidates
}
