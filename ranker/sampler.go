package ranker

import (
	"math/rand"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Sampler estimates PageRank scores by simulating a fixed number of random
// surfer steps and counting how often each page gets visited.
type Sampler struct {
	cfg SamplerConfig
}

// NewSampler returns a new Sampler instance using the provided config
// options.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("sampler config validation failed: %w", err)
	}
	return &Sampler{cfg: cfg}, nil
}

// Rank simulates SampleCount steps of the random surfer over g and returns
// the visit frequency of each page as its estimated PageRank score.
//
// The walk starts on a page selected uniformly at random. At every step the
// transition model for the current page is computed and the next page is
// drawn from it; the drawn page's visit counter is incremented. The estimate
// converges to the Iterator's output as SampleCount grows but is not
// bit-reproducible unless a seeded Rand is supplied via the config.
func (s *Sampler) Rank(g corpus.Graph) (Distribution, error) {
	if len(g) == 0 {
		return nil, xerrors.Errorf("sampler: %w", ErrEmptyCorpus)
	}

	started := s.cfg.Clock.Now()

	// The sorted page list fixes the iteration order for the weighted
	// draws; map order would re-shuffle the cumulative sums every step.
	pages := g.Pages()
	current := pages[s.cfg.Rand.Intn(len(pages))]

	visits := make(map[string]int, len(pages))
	for i := 0; i < s.cfg.SampleCount; i++ {
		dist, err := Transition(g, current, s.cfg.DampingFactor)
		if err != nil {
			return nil, xerrors.Errorf("sampler: %w", err)
		}
		current = drawWeighted(s.cfg.Rand, pages, dist)
		visits[current]++
	}

	estimate := make(Distribution, len(pages))
	for _, name := range pages {
		estimate[name] = float64(visits[name]) / float64(s.cfg.SampleCount)
	}

	// The counters add up to SampleCount so the estimate already sums to
	// 1; re-normalize defensively and fail loudly if it does not hold.
	if err := estimate.normalize(); err != nil {
		return nil, xerrors.Errorf("sampler: %w", err)
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"pages":    len(pages),
		"samples":  s.cfg.SampleCount,
		"duration": s.cfg.Clock.Now().Sub(started).String(),
	}).Info("estimated PageRank scores by sampling")

	return estimate, nil
}

// drawWeighted selects a page from dist by cumulative-distribution inversion:
// a uniform variate is matched against the running sum of the page weights.
func drawWeighted(rng *rand.Rand, pages []string, dist Distribution) string {
	target := rng.Float64()
	var cum float64
	for _, name := range pages {
		cum += dist[name]
		if target < cum {
			return name
		}
	}
	// Round-off can leave the final cumulative sum a hair below the
	// variate; the draw then falls on the last page.
	return pages[len(pages)-1]
}
