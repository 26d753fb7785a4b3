package ranker

import (
	"math"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(IteratorConfigTestSuite))
var _ = gc.Suite(new(IteratorTestSuite))

type IteratorConfigTestSuite struct{}

func (s *IteratorConfigTestSuite) TestConfigValidation(c *gc.C) {
	origCfg := IteratorConfig{
		DampingFactor: 0.85,
	}

	cfg := origCfg
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.ConvergenceThreshold, gc.Equals, DefaultConvergenceThreshold, gc.Commentf("default threshold was not assigned"))
	c.Assert(cfg.MaxIterations, gc.Equals, defaultMaxIterations, gc.Commentf("default iteration cap was not assigned"))
	c.Assert(cfg.Clock, gc.Not(gc.IsNil), gc.Commentf("default clock was not assigned"))
	c.Assert(cfg.Logger, gc.Not(gc.IsNil), gc.Commentf("default logger was not assigned"))

	for _, df := range []float64{0.0, 1.0} {
		cfg = origCfg
		cfg.DampingFactor = df
		c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*damping factor must be in the range \\(0, 1\\).*",
			gc.Commentf("d=%v", df))
	}

	cfg = origCfg
	cfg.ConvergenceThreshold = -0.001
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*convergence threshold must be positive.*")

	cfg = origCfg
	cfg.MaxIterations = -1
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*max iterations must not be negative.*")
}

type IteratorTestSuite struct{}

func (s *IteratorTestSuite) newIterator(c *gc.C) *Iterator {
	iterator, err := NewIterator(IteratorConfig{DampingFactor: 0.85})
	c.Assert(err, gc.IsNil)
	return iterator
}

func (s *IteratorTestSuite) TestTwoPageCycle(c *gc.C) {
	g := corpus.Graph{
		"a.html": corpus.LinkSet{"b.html": {}},
		"b.html": corpus.LinkSet{"a.html": {}},
	}

	ranks, err := s.newIterator(c).Rank(g)
	c.Assert(err, gc.IsNil)

	for _, page := range g.Pages() {
		delta := math.Abs(ranks[page] - 0.5)
		c.Assert(delta <= DefaultConvergenceThreshold, gc.Equals, true,
			gc.Commentf("page %q: expected 0.5, got %f", page, ranks[page]))
	}
}

func (s *IteratorTestSuite) TestResultSumsToOneWithDanglingPages(c *gc.C) {
	// b.html and d.html are dangling; under the iterative recurrence they
	// contribute their score to no one, so the pre-normalization sum
	// drifts below 1 and the final normalization has to absorb it.
	g := corpus.Graph{
		"a.html": corpus.LinkSet{"b.html": {}},
		"b.html": corpus.LinkSet{},
		"c.html": corpus.LinkSet{"a.html": {}, "d.html": {}},
		"d.html": corpus.LinkSet{},
	}

	ranks, err := s.newIterator(c).Rank(g)
	c.Assert(err, gc.IsNil)

	delta := math.Abs(ranks.Sum() - 1.0)
	c.Assert(delta <= invariantTolerance, gc.Equals, true,
		gc.Commentf("result sums to 1%+e", delta))
}

func (s *IteratorTestSuite) TestDeterministicResults(c *gc.C) {
	// Large enough that the final normalization sums many addends; the
	// results must still be bit-identical across runs, which only holds
	// if every float accumulation happens in a fixed order rather than
	// map iteration order.
	g := corpus.Graph{
		"1.html": corpus.LinkSet{"2.html": {}, "3.html": {}},
		"2.html": corpus.LinkSet{"3.html": {}, "5.html": {}},
		"3.html": corpus.LinkSet{"1.html": {}, "6.html": {}},
		"4.html": corpus.LinkSet{"1.html": {}, "5.html": {}, "7.html": {}},
		"5.html": corpus.LinkSet{"6.html": {}},
		"6.html": corpus.LinkSet{},
		"7.html": corpus.LinkSet{"4.html": {}, "2.html": {}},
	}

	first, err := s.newIterator(c).Rank(g)
	c.Assert(err, gc.IsNil)

	for run := 1; run <= 10; run++ {
		next, err := s.newIterator(c).Rank(g)
		c.Assert(err, gc.IsNil)
		c.Assert(next, gc.DeepEquals, first, gc.Commentf("run %d diverged", run))
	}
}

func (s *IteratorTestSuite) TestEmptyCorpus(c *gc.C) {
	_, err := s.newIterator(c).Rank(corpus.Graph{})
	c.Assert(xerrors.Is(err, ErrEmptyCorpus), gc.Equals, true, gc.Commentf("got: %v", err))
}

func (s *IteratorTestSuite) TestIterationCapExceeded(c *gc.C) {
	iterator, err := NewIterator(IteratorConfig{
		DampingFactor:        0.85,
		ConvergenceThreshold: 1e-12,
		MaxIterations:        1,
	})
	c.Assert(err, gc.IsNil)

	g := corpus.Graph{
		"a.html": corpus.LinkSet{"b.html": {}},
		"b.html": corpus.LinkSet{"a.html": {}, "c.html": {}},
		"c.html": corpus.LinkSet{"b.html": {}},
	}

	_, err = iterator.Rank(g)
	c.Assert(xerrors.Is(err, ErrConvergenceFailure), gc.Equals, true, gc.Commentf("got: %v", err))
}
