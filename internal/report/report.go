// Package report renders scan results and deletion outcomes as text, JSON or
// YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/davidMuir/clean-deps/internal/cleaner"
	"github.com/davidMuir/clean-deps/internal/ecosystem"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the valid values of the --format flag.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Column widths of the text report.
const (
	ProjectPathWidth = 40
	DeletePathWidth  = 60
	labelWidth       = 10
	pathColumnWidth  = 45
)

var labelColors = map[ecosystem.Ecosystem]lipgloss.Color{
	ecosystem.Dotnet:     lipgloss.Color("4"),
	ecosystem.Javascript: lipgloss.Color("3"),
	ecosystem.Rust:       lipgloss.Color("1"),
}

// Size formats a byte count with binary units, e.g. "1.5 MiB".
func Size(n uint64) string {
	return humanize.IBytes(n)
}

// TruncatePath shortens path to roughly width characters by replacing its
// middle with "[...]".
func TruncatePath(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	head := width/2 - 5
	if head < 0 {
		head = 0
	}
	tail := width / 2
	if tail > len(runes) {
		tail = len(runes)
	}
	return string(runes[:head]) + "[...]" + string(runes[len(runes)-tail:])
}

// Text writes the human-readable report.
type Text struct {
	w        io.Writer
	registry *ecosystem.Registry
	// Color enables ANSI colors on ecosystem labels.
	Color bool
}

// NewText creates a text renderer. A nil registry means ecosystem.Default.
func NewText(w io.Writer, registry *ecosystem.Registry) *Text {
	if registry == nil {
		registry = ecosystem.Default()
	}
	return &Text{w: w, registry: registry}
}

func (t *Text) label(e ecosystem.Ecosystem) string {
	plain := "[" + t.registry.Label(e) + "]"
	pad := ""
	if n := labelWidth - len(plain); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	if !t.Color {
		return plain + pad
	}
	inner := t.registry.Label(e)
	if c, ok := labelColors[e]; ok {
		inner = lipgloss.NewStyle().Foreground(c).Render(inner)
	}
	return "[" + inner + "]" + pad
}

// Project writes one project line.
func (t *Text) Project(p scanner.Project) {
	fmt.Fprintf(t.w, "%s %-*s\t%s\n",
		t.label(p.Ecosystem), pathColumnWidth, TruncatePath(p.Path, ProjectPathWidth), Size(p.DepSize))
}

// Projects writes every project followed by the total.
func (t *Text) Projects(projects []scanner.Project) {
	for _, p := range projects {
		t.Project(p)
	}
	fmt.Fprintln(t.w)
	fmt.Fprintf(t.w, "Total size: %s\n", Size(scanner.TotalSize(projects)))
}

// DeletionHeader introduces the deletion section.
func (t *Text) DeletionHeader(dryRun bool) {
	fmt.Fprintln(t.w)
	if dryRun {
		fmt.Fprintln(t.w, "Dependencies that would be removed:")
		return
	}
	fmt.Fprintln(t.w, "Removing dependencies:")
}

// Outcome writes one deletion line.
func (t *Text) Outcome(o cleaner.Outcome) {
	path := TruncatePath(o.Path, DeletePathWidth)
	switch o.Status {
	case cleaner.StatusRemoved:
		fmt.Fprintf(t.w, "Removing %s\n", path)
	case cleaner.StatusSkipped:
		fmt.Fprintf(t.w, "Skipping empty: %s\n", path)
	case cleaner.StatusWouldRemove:
		fmt.Fprintf(t.w, "Would remove %s (%s)\n", path, Size(o.Size))
	default:
		fmt.Fprintf(t.w, "Skipping, failed to remove: %s (%v)\n", path, o.Err)
	}
}

// Summary writes the deletion totals.
func (t *Text) Summary(s cleaner.Summary) {
	fmt.Fprintln(t.w)
	fmt.Fprintf(t.w, "Reclaimed %s (%d removed, %d skipped, %d failed)\n",
		Size(s.Reclaimed), s.Removed, s.Skipped, s.Failed)
}

// ProjectView is the structured form of a project.
type ProjectView struct {
	Ecosystem string `json:"ecosystem" yaml:"ecosystem"`
	Path      string `json:"path" yaml:"path"`
	DepSize   uint64 `json:"dep_size" yaml:"dep_size"`
	DepHuman  string `json:"dep_size_human" yaml:"dep_size_human"`
}

// OutcomeView is the structured form of a deletion outcome.
type OutcomeView struct {
	Path   string `json:"path" yaml:"path"`
	Status string `json:"status" yaml:"status"`
	Size   uint64 `json:"size" yaml:"size"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Document is the structured report.
type Document struct {
	Root       string        `json:"root" yaml:"root"`
	Projects   []ProjectView `json:"projects" yaml:"projects"`
	TotalSize  uint64        `json:"total_size" yaml:"total_size"`
	TotalHuman string        `json:"total_size_human" yaml:"total_size_human"`
	Deletions  []OutcomeView `json:"deletions,omitempty" yaml:"deletions,omitempty"`
	Reclaimed  uint64        `json:"reclaimed,omitempty" yaml:"reclaimed,omitempty"`
}

// NewDocument builds a Document from scan results and, optionally, the
// deletion summary.
func NewDocument(root string, projects []scanner.Project, summary *cleaner.Summary) Document {
	doc := Document{
		Root:       root,
		Projects:   make([]ProjectView, 0, len(projects)),
		TotalSize:  scanner.TotalSize(projects),
		TotalHuman: Size(scanner.TotalSize(projects)),
	}
	for _, p := range projects {
		doc.Projects = append(doc.Projects, ProjectView{
			Ecosystem: string(p.Ecosystem),
			Path:      p.Path,
			DepSize:   p.DepSize,
			DepHuman:  Size(p.DepSize),
		})
	}
	if summary != nil {
		doc.Reclaimed = summary.Reclaimed
		for _, o := range summary.Outcomes {
			v := OutcomeView{Path: o.Path, Status: string(o.Status), Size: o.Size}
			if o.Err != nil {
				v.Error = o.Err.Error()
			}
			doc.Deletions = append(doc.Deletions, v)
		}
	}
	return doc
}

// Encode writes doc in the given structured format.
func Encode(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}
