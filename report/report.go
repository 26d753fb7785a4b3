/*
   Formats rank results for display. Presentation only; the ranking engines
   know nothing about this package.
*/
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/Ahmed-Sermani/go-pagerank/ranker"
	"golang.org/x/xerrors"
)

// Write prints the title followed by one line per page with its score at
// four decimal places, pages sorted by name.
func Write(w io.Writer, title string, ranks ranker.Distribution) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return xerrors.Errorf("report: %w", err)
	}

	pages := make([]string, 0, len(ranks))
	for name := range ranks {
		pages = append(pages, name)
	}
	sort.Strings(pages)

	for _, name := range pages {
		if _, err := fmt.Fprintf(w, "  %s: %.4f\n", name, ranks[name]); err != nil {
			return xerrors.Errorf("report: %w", err)
		}
	}
	return nil
}
