// Package cleaner removes the dependency directories of discovered projects.
package cleaner

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/davidMuir/clean-deps/internal/dirsize"
	"github.com/davidMuir/clean-deps/internal/ecosystem"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

// Status is the result of handling one dependency path.
type Status string

const (
	StatusRemoved     Status = "removed"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
	StatusWouldRemove Status = "would-remove"
)

// Outcome records what happened to one dependency path.
type Outcome struct {
	Project scanner.Project
	Path    string
	// Size is measured immediately before removal.
	Size   uint64
	Status Status
	Err    error
}

// Summary aggregates the outcomes of a batch.
type Summary struct {
	Outcomes []Outcome
	Removed  int
	Skipped  int
	Failed   int
	// Reclaimed is the measured size of every removed path.
	Reclaimed uint64
}

// Options configures a Cleaner.
type Options struct {
	// DryRun reports what would be removed without touching the filesystem.
	DryRun bool
	// OnOutcome, if set, is called as each path is handled.
	OnOutcome func(Outcome)
	Logger    *log.Logger
}

// Cleaner removes dependency directories on a best-effort basis: failures are
// recorded per path and never stop the batch.
type Cleaner struct {
	registry *ecosystem.Registry
	opts     Options
	remove   func(string) error
}

// New creates a Cleaner. A nil registry means ecosystem.Default.
func New(registry *ecosystem.Registry, opts Options) *Cleaner {
	if registry == nil {
		registry = ecosystem.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Cleaner{registry: registry, opts: opts, remove: os.RemoveAll}
}

// Clean handles every dependency path of project in table order.
func (c *Cleaner) Clean(project scanner.Project) []Outcome {
	var outcomes []Outcome
	for _, rel := range c.registry.DepPaths(project.Ecosystem) {
		o := c.cleanPath(project, filepath.Join(project.Path, rel))
		if c.opts.OnOutcome != nil {
			c.opts.OnOutcome(o)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func (c *Cleaner) cleanPath(project scanner.Project, path string) Outcome {
	o := Outcome{Project: project, Path: path}

	size, err := dirsize.Size(path)
	if err != nil {
		c.opts.Logger.Printf("Warning: failed to measure %s: %v", path, err)
		o.Status, o.Err = StatusFailed, err
		return o
	}
	o.Size = size

	switch {
	case size == 0:
		o.Status = StatusSkipped
	case c.opts.DryRun:
		o.Status = StatusWouldRemove
	default:
		if err := c.remove(path); err != nil {
			c.opts.Logger.Printf("Warning: failed to remove %s: %v", path, err)
			o.Status, o.Err = StatusFailed, err
			return o
		}
		o.Status = StatusRemoved
	}
	return o
}

// CleanAll cleans projects in the order given.
func (c *Cleaner) CleanAll(projects []scanner.Project) Summary {
	var s Summary
	for _, p := range projects {
		for _, o := range c.Clean(p) {
			s.Outcomes = append(s.Outcomes, o)
			switch o.Status {
			case StatusRemoved:
				s.Removed++
				s.Reclaimed += o.Size
			case StatusSkipped:
				s.Skipped++
			case StatusFailed:
				s.Failed++
			}
		}
	}
	return s
}
