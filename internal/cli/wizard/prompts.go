// Package wizard provides interactive prompts for CLI commands.
package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/davidMuir/clean-deps/internal/report"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

// ConfirmDeletion asks the user to confirm removing the dependency
// directories of projects. An empty list needs no confirmation.
func ConfirmDeletion(projects []scanner.Project) (bool, error) {
	if len(projects) == 0 {
		return true, nil
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Remove dependencies").
				Description(describeDeletion(projects)),

			huh.NewConfirm().
				Title("Delete these directories? This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}

	return confirmed, nil
}

// describeDeletion summarizes projects per ecosystem, e.g.
// "3 projects, 1.2 GiB\njavascript: 2, rust: 1".
func describeDeletion(projects []scanner.Project) string {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[string(p.Ecosystem)]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, counts[name]))
	}

	noun := "projects"
	if len(projects) == 1 {
		noun = "project"
	}
	return fmt.Sprintf("%d %s, %s\n%s",
		len(projects), noun, report.Size(scanner.TotalSize(projects)), strings.Join(parts, ", "))
}
