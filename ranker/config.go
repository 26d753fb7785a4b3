package ranker

import (
	"io"
	"math/rand"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Defaults for the recognized configuration options. The engines do not fall
// back to these on their own; zero damping factors and sample counts are
// rejected outright so that a mis-assembled config cannot silently run with
// different semantics than the caller asked for.
const (
	DefaultDampingFactor        = 0.85
	DefaultSampleCount          = 10000
	DefaultConvergenceThreshold = 0.001

	defaultMaxIterations = 10000
)

// SamplerConfig encapsulates the settings for creating a new Sampler.
type SamplerConfig struct {
	// DampingFactor is the probability that the simulated surfer follows
	// one of the outgoing links on the page they are currently visiting
	// instead of teleporting to a random page in the corpus. Must be in
	// the (0, 1) range.
	DampingFactor float64

	// SampleCount is the number of surfer steps to simulate. Must be a
	// positive integer.
	SampleCount int

	// Rand is the source of randomness for the surfer. If not specified,
	// a generator seeded from the configured clock will be used instead.
	Rand *rand.Rand

	// A clock instance for measuring run durations and seeding the
	// default Rand. If not specified, the wall clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *SamplerConfig) validate() error {
	var err error
	if dfErr := validateDampingFactor(cfg.DampingFactor); dfErr != nil {
		err = multierror.Append(err, dfErr)
	}
	if cfg.SampleCount <= 0 {
		err = multierror.Append(err, xerrors.New("sample count must be a positive integer"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(cfg.Clock.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

// IteratorConfig encapsulates the settings for creating a new Iterator.
type IteratorConfig struct {
	// DampingFactor is the probability that the simulated surfer follows
	// one of the outgoing links on the page they are currently visiting
	// instead of teleporting to a random page in the corpus. Must be in
	// the (0, 1) range.
	DampingFactor float64

	// ConvergenceThreshold is the maximum allowed per-page rank change
	// between two passes for the computation to be declared converged.
	// If not specified, a default value of 0.001 will be used instead.
	ConvergenceThreshold float64

	// MaxIterations caps the number of passes before the engine gives up
	// with a convergence failure. The damping factor guarantees
	// convergence for well-formed corpora; the cap is a safety net for
	// pathological input. If not specified, a default value of 10000 will
	// be used instead.
	MaxIterations int

	// A clock instance for measuring run durations. If not specified, the
	// wall clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *IteratorConfig) validate() error {
	var err error
	if dfErr := validateDampingFactor(cfg.DampingFactor); dfErr != nil {
		err = multierror.Append(err, dfErr)
	}
	if cfg.ConvergenceThreshold < 0 {
		err = multierror.Append(err, xerrors.New("convergence threshold must be positive"))
	} else if cfg.ConvergenceThreshold == 0 {
		cfg.ConvergenceThreshold = DefaultConvergenceThreshold
	}
	if cfg.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.New("max iterations must not be negative"))
	} else if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return err
}

func validateDampingFactor(df float64) error {
	if df <= 0 || df >= 1 {
		return xerrors.New("damping factor must be in the range (0, 1)")
	}
	return nil
}
