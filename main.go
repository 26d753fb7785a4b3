package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Ahmed-Sermani/go-pagerank/corpus/crawl"
	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"github.com/Ahmed-Sermani/go-pagerank/report"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

var (
	appName = "go-pagerank"
	appSha  = ""
)

func main() {
	logger := logrus.New().WithFields(logrus.Fields{
		"app":    appName,
		"sha":    appSha,
		"run_id": uuid.New().String(),
	})

	if err := run(logger); err != nil {
		logger.WithField("err", err).Error("pagerank run failed")
		os.Exit(1)
	}
}

func run(logger *logrus.Entry) error {
	dampingFactor := flag.Float64("damping-factor", ranker.DefaultDampingFactor, "The probability that the surfer follows an outgoing link instead of teleporting to a random page")
	sampleCount := flag.Int("sample-count", ranker.DefaultSampleCount, "The number of random surfer steps to simulate for the sampling engine")
	threshold := flag.Float64("convergence-threshold", ranker.DefaultConvergenceThreshold, "The maximum per-page rank change between passes for the iterative engine to converge")
	parseWorkers := flag.Int("parse-workers", runtime.NumCPU(), "The number of workers to use for parsing corpus documents (defaults to number of CPUs)")
	flag.Parse()

	if flag.NArg() != 1 {
		return xerrors.New("usage: go-pagerank [flags] CORPUS_DIR")
	}
	corpusDir := flag.Arg(0)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, err := crawl.NewDirSource(corpusDir)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	crawler, err := crawl.NewCrawler(crawl.Config{
		ParseWorkers: *parseWorkers,
		Logger:       logger.WithField("component", "crawler"),
	})
	if err != nil {
		return err
	}

	g, err := crawler.Crawl(ctx, src)
	if err != nil {
		return err
	}

	sampler, err := ranker.NewSampler(ranker.SamplerConfig{
		DampingFactor: *dampingFactor,
		SampleCount:   *sampleCount,
		Logger:        logger.WithField("component", "sampler"),
	})
	if err != nil {
		return err
	}
	sampled, err := sampler.Rank(g)
	if err != nil {
		return err
	}
	if err := report.Write(os.Stdout, fmt.Sprintf("PageRank Results from Sampling (n = %d)", *sampleCount), sampled); err != nil {
		return err
	}

	iterator, err := ranker.NewIterator(ranker.IteratorConfig{
		DampingFactor:        *dampingFactor,
		ConvergenceThreshold: *threshold,
		Logger:               logger.WithField("component", "iterator"),
	})
	if err != nil {
		return err
	}
	iterated, err := iterator.Rank(g)
	if err != nil {
		return err
	}
	return report.Write(os.Stdout, "PageRank Results from Iteration", iterated)
}
