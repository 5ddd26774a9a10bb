// Package ecosystem holds the table of recognized project ecosystems: the
// marker files that identify a project root and the directories that hold
// its removable build output.
package ecosystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Ecosystem is the tag of a recognized project category.
type Ecosystem string

const (
	Dotnet     Ecosystem = "dotnet"
	Rust       Ecosystem = "rust"
	Javascript Ecosystem = "javascript"
)

// ErrUnknown is returned by Parse for tags outside the registry.
var ErrUnknown = errors.New("unknown ecosystem")

// marker matches one directory entry name to an ecosystem.
type marker struct {
	ecosystem Ecosystem
	name      string // case-insensitive file name
	ext       string // exact extension, including the dot
}

func (m marker) matches(name string) bool {
	if m.name != "" {
		return strings.EqualFold(name, m.name)
	}
	return filepath.Ext(name) == m.ext
}

// Definition describes one ecosystem.
type Definition struct {
	Ecosystem Ecosystem
	// Label is the short tag shown in reports.
	Label string
	// DepPaths are relative to the project root, in deletion order.
	DepPaths []string
}

// Registry is an immutable ecosystem table. The zero value recognizes nothing;
// use Default.
type Registry struct {
	markers     []marker
	definitions map[Ecosystem]Definition
	order       []Ecosystem
}

// Default returns the registry of the built-in ecosystems.
func Default() *Registry {
	return &Registry{
		// Checked in this order against every entry.
		markers: []marker{
			{ecosystem: Rust, name: "Cargo.toml"},
			{ecosystem: Dotnet, ext: ".sln"},
			{ecosystem: Dotnet, ext: ".csproj"},
			{ecosystem: Javascript, name: "package.json"},
		},
		definitions: map[Ecosystem]Definition{
			Dotnet:     {Ecosystem: Dotnet, Label: "dotnet", DepPaths: []string{"bin", "obj"}},
			Rust:       {Ecosystem: Rust, Label: "rust", DepPaths: []string{"target"}},
			Javascript: {Ecosystem: Javascript, Label: "js", DepPaths: []string{"node_modules"}},
		},
		order: []Ecosystem{Dotnet, Rust, Javascript},
	}
}

// All returns the registered ecosystems in a stable order.
func (r *Registry) All() []Ecosystem {
	return append([]Ecosystem(nil), r.order...)
}

// Parse validates a tag such as the value of the --language flag.
func (r *Registry) Parse(tag string) (Ecosystem, error) {
	e := Ecosystem(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := r.definitions[e]; ok {
		return e, nil
	}
	for _, def := range r.definitions {
		if strings.EqualFold(def.Label, tag) {
			return def.Ecosystem, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknown, tag, r.names())
}

func (r *Registry) names() string {
	names := make([]string, 0, len(r.order))
	for _, e := range r.order {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

// Label returns the report tag for e, or e itself when unregistered.
func (r *Registry) Label(e Ecosystem) string {
	if def, ok := r.definitions[e]; ok {
		return def.Label
	}
	return string(e)
}

// DepPaths returns the relative dependency paths of e. The slice is a copy.
func (r *Registry) DepPaths(e Ecosystem) []string {
	return append([]string(nil), r.definitions[e].DepPaths...)
}

// Match classifies an already-listed directory. Only entry names are
// inspected; directories named like a marker count too.
func (r *Registry) Match(entries []fs.DirEntry) (Ecosystem, bool) {
	for _, entry := range entries {
		for _, m := range r.markers {
			if m.matches(entry.Name()) {
				return m.ecosystem, true
			}
		}
	}
	return "", false
}

// Classify lists dir and reports which ecosystem, if any, it is a root of.
func (r *Registry) Classify(dir string) (Ecosystem, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, err
	}
	e, ok := r.Match(entries)
	return e, ok, nil
}
