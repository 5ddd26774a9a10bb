package scanner

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/davidMuir/clean-deps/internal/dirsize"
	"github.com/davidMuir/clean-deps/internal/ecosystem"
)

// Scanner walks a directory tree looking for project roots.
type Scanner struct {
	rootDir  string
	registry *ecosystem.Registry
	logger   *log.Logger
}

// New creates a Scanner for rootDir. A nil registry means ecosystem.Default.
func New(rootDir string, registry *ecosystem.Registry) *Scanner {
	if registry == nil {
		registry = ecosystem.Default()
	}
	return &Scanner{
		rootDir:  rootDir,
		registry: registry,
		logger:   log.New(io.Discard, "", 0),
	}
}

// WithLogger sets the logger used for per-project diagnostics.
func (s *Scanner) WithLogger(logger *log.Logger) *Scanner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Scan walks the tree depth-first and returns one Project per matched root,
// in visitation order. Matched roots are descended into as well, so nested
// projects are reported separately. Symbolic links to directories are not
// followed. The first listing or sizing error aborts the scan.
func (s *Scanner) Scan() ([]Project, error) {
	root, err := filepath.Abs(s.rootDir)
	if err != nil {
		return nil, err
	}

	projects := []Project{}
	if err := s.walk(root, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Scanner) walk(dir string, projects *[]Project) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	if eco, ok := s.registry.Match(entries); ok {
		size, err := dirsize.Sum(dir, s.registry.DepPaths(eco))
		if err != nil {
			return err
		}
		s.logger.Printf("Found %s project at %s (%d bytes)", eco, dir, size)
		*projects = append(*projects, Project{Ecosystem: eco, Path: dir, DepSize: size})
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := s.walk(filepath.Join(dir, entry.Name()), projects); err != nil {
			return err
		}
	}
	return nil
}
