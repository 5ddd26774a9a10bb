// Package scanner discovers project roots under a directory tree and measures
// the size of their dependency directories.
package scanner

import (
	"sort"

	"github.com/davidMuir/clean-deps/internal/ecosystem"
)

// Project is one discovered project root.
type Project struct {
	Ecosystem ecosystem.Ecosystem `json:"ecosystem" yaml:"ecosystem"`
	Path      string              `json:"path" yaml:"path"`
	// DepSize is the size of the dependency directories at scan time.
	DepSize uint64 `json:"dep_size" yaml:"dep_size"`
}

// FilterByEcosystem returns the projects of ecosystem e, keeping their order.
func FilterByEcosystem(projects []Project, e ecosystem.Ecosystem) []Project {
	var out []Project
	for _, p := range projects {
		if p.Ecosystem == e {
			out = append(out, p)
		}
	}
	return out
}

// SortBySize orders projects by DepSize, largest first. Ties keep scan order.
func SortBySize(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].DepSize > projects[j].DepSize
	})
}

// TotalSize sums DepSize over projects. Nested projects whose dependency
// directories overlap are counted once per project.
func TotalSize(projects []Project) uint64 {
	var total uint64
	for _, p := range projects {
		total += p.DepSize
	}
	return total
}
