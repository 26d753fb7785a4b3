package ranker

import "golang.org/x/xerrors"

var (
	// ErrEmptyCorpus is returned when a ranking engine or the transition
	// model is invoked with a corpus that contains no pages.
	ErrEmptyCorpus = xerrors.New("corpus contains no pages")

	// ErrUnknownPage is returned when the transition model is asked about
	// a page that is not part of the corpus.
	ErrUnknownPage = xerrors.New("page is not part of the corpus")

	// ErrInvariantViolation indicates an internal logic defect: a computed
	// distribution failed to sum to 1 within tolerance. Callers should
	// treat it as a fail-fast assertion rather than a recoverable error.
	ErrInvariantViolation = xerrors.New("distribution does not sum to 1")

	// ErrConvergenceFailure is returned by the iterative engine when the
	// safety iteration cap is exceeded before reaching convergence.
	ErrConvergenceFailure = xerrors.New("maximum number of iterations exceeded before convergence")
)
