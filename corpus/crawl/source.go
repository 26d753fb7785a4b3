package crawl

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// dirSource is a DocumentSource implementation backed by a directory of
// HTML files. Files without a .html extension are ignored.
type dirSource struct {
	dir   string
	names []string

	curDoc  *Document
	curIdx  int
	lastErr error
}

// NewDirSource returns a DocumentSource that yields the .html files inside
// dir in sorted name order. File contents are read lazily as the source is
// advanced.
func NewDirSource(dir string) (DocumentSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, xerrors.Errorf("dir source: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return &dirSource{dir: dir, names: names}, nil
}

func (s *dirSource) Next() bool {
	if s.lastErr != nil || s.curIdx >= len(s.names) {
		return false
	}

	name := s.names[s.curIdx]
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		s.lastErr = xerrors.Errorf("dir source: reading %q: %w", name, err)
		return false
	}

	s.curDoc = &Document{Name: name, Content: content}
	s.curIdx++
	return true
}

func (s *dirSource) Document() *Document { return s.curDoc }

func (s *dirSource) Error() error { return s.lastErr }

func (s *dirSource) Close() error { return nil }
