/*
   Implements the PageRank algorithm https://en.wikipedia.org/wiki/PageRank
   over an in-memory corpus graph.

   PageRank estimates the importance of a page from the number and quality
   of the links pointing at it. The model is the random surfer: a surfer
   lands on some page of the corpus and from then on repeatedly picks one
   of two options:

       With a predefined probability, referred to as the damping factor,
       they follow one of the outgoing links of the current page.

       Otherwise they teleport to a page of the corpus chosen uniformly at
       random.

   The PageRank score of a page is the probability that the surfer is
   found on that page when this walk is repeated in perpetuity. It follows
   that every score lies in [0, 1] and that the scores of all pages sum to
   exactly 1.

   The package provides two independent engines for estimating the scores:
   a Monte Carlo Sampler that simulates the surfer step by step, and an
   Iterator that solves the defining recurrence directly by fixed-point
   iteration. Both consume the same read-only corpus.Graph and produce
   comparable Distributions.
*/
package ranker

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"golang.org/x/xerrors"
)

// Transition returns the probability distribution over the page the random
// surfer visits next, given the page they are currently on.
//
// For a dangling page (no outbound links) the surfer teleports anywhere with
// equal probability and the damping factor is ignored: every page of the
// corpus gets exactly 1/|G|. Otherwise every page receives the random-jump
// term (1-d)/|G| and each page linked from the current page additionally
// receives d/|links(p)|.
//
// Transition is a pure function of its three inputs and has no side effects.
func Transition(g corpus.Graph, page string, dampingFactor float64) (Distribution, error) {
	if err := validateDampingFactor(dampingFactor); err != nil {
		return nil, xerrors.Errorf("transition model: %w", err)
	}
	numPages := len(g)
	if numPages == 0 {
		return nil, xerrors.Errorf("transition model: %w", ErrEmptyCorpus)
	}
	links, exists := g[page]
	if !exists {
		return nil, xerrors.Errorf("transition model: %q: %w", page, ErrUnknownPage)
	}

	dist := make(Distribution, numPages)
	if len(links) == 0 {
		uniform := 1.0 / float64(numPages)
		for name := range g {
			dist[name] = uniform
		}
		return dist, nil
	}

	jumpProb := (1.0 - dampingFactor) / float64(numPages)
	followProb := dampingFactor / float64(len(links))
	for name := range g {
		dist[name] = jumpProb
		if links.Contains(name) {
			dist[name] += followProb
		}
	}

	// The two terms add up to 1 analytically; any deviation beyond the
	// floating-point tolerance is a logic defect, not something to patch
	// over silently.
	if delta := math.Abs(dist.Sum() - 1.0); delta > invariantTolerance {
		return nil, xerrors.Errorf("transition model for %q sums to 1%+e: %w", page, delta, ErrInvariantViolation)
	}
	if err := dist.normalize(); err != nil {
		return nil, xerrors.Errorf("transition model for %q: %w", page, err)
	}
	return dist, nil
}
