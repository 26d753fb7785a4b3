/*
   Ingests a directory of HTML documents and assembles the corpus graph that
   the ranking engines consume. Documents are fanned out to a pool of parse
   workers that extract anchor hrefs; links pointing outside the corpus and
   links from a page to itself are dropped so that the resulting graph only
   ever references its own pages.
*/
package crawl

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/Ahmed-Sermani/go-pagerank/corpus"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/go-pagerank/corpus/crawl DocumentSource

// Document is a single corpus document identified by its name. The name is
// opaque to the ranking core; for the directory source it is the file name.
type Document struct {
	Name    string
	Content []byte
}

// DocumentSource is implemented by types that can enumerate the documents of
// a corpus.
type DocumentSource interface {
	// Next advances the source to the next document. It returns false
	// when no more documents are available or an error occurs.
	Next() bool

	// Document returns the current document.
	Document() *Document

	// Error returns the last error observed by the source.
	Error() error

	// Close releases any resources held by the source.
	Close() error
}

// Config encapsulates the settings for creating a new Crawler.
type Config struct {
	// The number of workers to use for parsing documents. If not
	// specified, the number of CPUs will be used instead.
	ParseWorkers int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	if cfg.ParseWorkers <= 0 {
		cfg.ParseWorkers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}
	return nil
}

// Crawler walks a document source and builds an in-memory corpus graph out
// of the intra-corpus links it finds.
type Crawler struct {
	cfg Config
}

// NewCrawler returns a new Crawler instance using the provided config
// options.
func NewCrawler(cfg Config) (*Crawler, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("crawler config validation failed: %w", err)
	}
	return &Crawler{cfg: cfg}, nil
}

type docLinks struct {
	name  string
	links []string
}

// Crawl drains src and returns the corpus graph formed by the documents it
// yields. Calls to Crawl block until the source is exhausted, an error
// occurs or the context is cancelled. The source is not closed; it remains
// owned by the caller.
func (c *Crawler) Crawl(ctx context.Context, src DocumentSource) (corpus.Graph, error) {
	docCh := make(chan *Document)
	resCh := make(chan docLinks)

	var wg sync.WaitGroup
	wg.Add(c.cfg.ParseWorkers)
	for i := 0; i < c.cfg.ParseWorkers; i++ {
		go func() {
			defer wg.Done()
			for doc := range docCh {
				res := docLinks{name: doc.Name, links: extractLinks(doc.Content)}
				select {
				case resCh <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(docCh)
		for src.Next() {
			select {
			case docCh <- src.Document():
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resCh)
	}()

	raw := make(map[string][]string)
	for res := range resCh {
		raw[res.name] = res.links
	}

	var err error
	if srcErr := src.Error(); srcErr != nil {
		err = multierror.Append(err, xerrors.Errorf("crawl: document source: %w", srcErr))
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = multierror.Append(err, xerrors.Errorf("crawl: %w", ctxErr))
	}
	if err != nil {
		return nil, err
	}

	// Second pass: only retain links that resolve to other documents of
	// the corpus so the graph invariant holds by construction.
	g := make(corpus.Graph, len(raw))
	for name, links := range raw {
		linkSet := make(corpus.LinkSet)
		for _, target := range links {
			if target == name {
				continue
			}
			if _, inCorpus := raw[target]; inCorpus {
				linkSet[target] = struct{}{}
			}
		}
		g[name] = linkSet
	}

	c.cfg.Logger.WithFields(logrus.Fields{
		"pages":         len(g),
		"parse_workers": c.cfg.ParseWorkers,
	}).Info("assembled corpus graph")

	return g, nil
}

// extractLinks returns the href targets of all anchor tags in the document
// content. Anchors without an href, or with an empty one, are skipped.
func extractLinks(content []byte) []string {
	var links []string
	tz := html.NewTokenizer(bytes.NewReader(content))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// The tokenizer only fails at the end of input.
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tz.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" && attr.Val != "" {
					links = append(links, attr.Val)
					break
				}
			}
		}
	}
}
