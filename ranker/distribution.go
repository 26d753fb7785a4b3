package ranker

import (
	"math"
	"sort"

	"golang.org/x/xerrors"
)

// invariantTolerance is the maximum deviation from 1 that a distribution sum
// may exhibit before it is treated as an internal error.
const invariantTolerance = 1e-9

// Distribution maps each page of the corpus to a non-negative score. The
// scores of a valid distribution sum to 1 within tolerance. Distributions
// are produced fresh by each computation and never shared or mutated after
// being returned.
type Distribution map[string]float64

// Sum returns the total of all scores in the distribution. Scores are
// accumulated in sorted page order: floating-point addition is not
// associative, so summing in map iteration order would make the total (and
// everything normalized by it) vary between runs in the last ulp.
func (d Distribution) Sum() float64 {
	pages := make([]string, 0, len(d))
	for name := range d {
		pages = append(pages, name)
	}
	sort.Strings(pages)

	var sum float64
	for _, name := range pages {
		sum += d[name]
	}
	return sum
}

// normalize rescales the distribution so that its scores sum to exactly 1 by
// dividing each score by the current total. A non-positive total, or a
// post-normalization sum that still deviates from 1 beyond tolerance, signals
// a logic defect and is reported as an invariant violation.
func (d Distribution) normalize() error {
	sum := d.Sum()
	if sum <= 0 {
		return xerrors.Errorf("cannot normalize distribution with sum %v: %w", sum, ErrInvariantViolation)
	}
	for page, score := range d {
		d[page] = score / sum
	}
	if delta := math.Abs(d.Sum() - 1.0); delta > invariantTolerance {
		return xerrors.Errorf("normalized distribution sums to 1%+e: %w", delta, ErrInvariantViolation)
	}
	return nil
}
