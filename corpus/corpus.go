/*
   Defines the in-memory corpus graph that both ranking engines operate on.
   The graph maps each page in the corpus to the set of other corpus pages
   it links to. It's built once by the ingestion layer and is treated as
   read-only for the lifetime of any ranking computation.
*/
package corpus

import (
	"sort"

	"golang.org/x/xerrors"
)

var ErrUnknownLinkTarget = xerrors.New("link target is not a page of the corpus")

// LinkSet holds the outbound links of a single page.
type LinkSet map[string]struct{}

// Contains reports whether name is a member of the set.
func (ls LinkSet) Contains(name string) bool {
	_, ok := ls[name]
	return ok
}

// Graph maps each page name to its outbound link set. A page with an empty
// link set is a dangling page. Every link target must also be a page of the
// graph; the ingestion layer guarantees this by construction.
type Graph map[string]LinkSet

// Pages returns the names of all pages in the graph in sorted order. It
// gives callers a deterministic iteration order over the underlying map.
func (g Graph) Pages() []string {
	pages := make([]string, 0, len(g))
	for name := range g {
		pages = append(pages, name)
	}
	sort.Strings(pages)
	return pages
}

// Validate checks that every link target appears as a page of the graph.
// Graphs produced by the crawl package satisfy this by construction;
// Validate is intended for graphs assembled by hand.
func (g Graph) Validate() error {
	for page, links := range g {
		for target := range links {
			if _, ok := g[target]; !ok {
				return xerrors.Errorf("page %q links to %q: %w", page, target, ErrUnknownLinkTarget)
			}
		}
	}
	return nil
}
