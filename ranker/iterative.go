package ranker

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Iterator computes PageRank scores by iterating the defining recurrence
// until the desired level of convergence is reached, without any sampling.
type Iterator struct {
	cfg IteratorConfig
}

// NewIterator returns a new Iterator instance using the provided config
// options.
func NewIterator(cfg IteratorConfig) (*Iterator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("iterator config validation failed: %w", err)
	}
	return &Iterator{cfg: cfg}, nil
}

// Rank initializes every page's score to 1/|G| and repeatedly applies the
// PageRank recurrence
//
//	rank(p) = (1-d)/|G| + d * sum over q linking to p of rank(q)/outdegree(q)
//
// until no page's score changes by more than the convergence threshold
// between two passes. Each pass computes all new scores from a frozen
// snapshot of the previous pass before any of them take effect, so the
// update is simultaneous rather than sequential.
//
// Dangling pages contribute their score to no one under this recurrence.
// This deliberately differs from the transition model, which redistributes a
// dangling page's probability mass uniformly; the final normalization
// absorbs the leaked mass.
//
// Rank is deterministic: the same corpus and config always yield the same
// result.
func (it *Iterator) Rank(g corpus.Graph) (Distribution, error) {
	numPages := len(g)
	if numPages == 0 {
		return nil, xerrors.Errorf("iterator: %w", ErrEmptyCorpus)
	}

	started := it.cfg.Clock.Now()
	pages := g.Pages()

	prev := make(Distribution, numPages)
	initial := 1.0 / float64(numPages)
	for _, name := range pages {
		prev[name] = initial
	}

	jumpProb := (1.0 - it.cfg.DampingFactor) / float64(numPages)
	for pass := 1; pass <= it.cfg.MaxIterations; pass++ {
		next := make(Distribution, numPages)
		for _, name := range pages {
			next[name] = jumpProb
		}

		// Spreading each page's previous score across its outbound
		// links is equivalent to summing over in-links but avoids
		// building a reverse index of the graph.
		for _, name := range pages {
			links := g[name]
			if len(links) == 0 {
				continue
			}
			share := it.cfg.DampingFactor * prev[name] / float64(len(links))
			for target := range links {
				next[target] += share
			}
		}

		converged := true
		for _, name := range pages {
			if math.Abs(next[name]-prev[name]) > it.cfg.ConvergenceThreshold {
				converged = false
				break
			}
		}
		prev = next

		if converged {
			if err := prev.normalize(); err != nil {
				return nil, xerrors.Errorf("iterator: %w", err)
			}
			it.cfg.Logger.WithFields(logrus.Fields{
				"pages":    numPages,
				"passes":   pass,
				"duration": it.cfg.Clock.Now().Sub(started).String(),
			}).Info("computed PageRank scores by iteration")
			return prev, nil
		}
	}

	return nil, xerrors.Errorf("iterator: no convergence after %d passes: %w", it.cfg.MaxIterations, ErrConvergenceFailure)
}
