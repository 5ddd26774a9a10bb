package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/davidMuir/clean-deps/internal/cleaner"
	"github.com/davidMuir/clean-deps/internal/cli/wizard"
	"github.com/davidMuir/clean-deps/internal/config"
	"github.com/davidMuir/clean-deps/internal/ecosystem"
	"github.com/davidMuir/clean-deps/internal/events"
	"github.com/davidMuir/clean-deps/internal/report"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

// confirmFunc asks whether the dependency directories of projects may be
// deleted.
type confirmFunc func(projects []scanner.Project) (bool, error)

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(args) == 1 {
		cfg.Path = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return clean(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, wizard.ConfirmDeletion)
}

// clean runs one scan and the optional deletion pass. Only scan failures are
// returned; deletion failures are reported per path.
func clean(out, errOut io.Writer, cfg *config.Config, confirm confirmFunc) error {
	root := cfg.Path
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.Path, err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(errOut, "clean-deps: ", log.LstdFlags)
	}

	runID := uuid.NewString()
	journal, err := newJournal(cfg.Journal, runID, logger)
	if err != nil {
		return err
	}
	defer journal.close()

	registry := ecosystem.Default()

	logger.Printf("Scanning %s (run %s)", root, runID)
	projects, err := scanner.New(root, registry).WithLogger(logger).Scan()
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if e, ok := cfg.Ecosystem(); ok {
		projects = scanner.FilterByEcosystem(projects, e)
	}
	scanner.SortBySize(projects)

	for _, p := range projects {
		journal.write(events.FromProject(runID, p))
	}
	journal.write(events.FromScan(runID, root, projects))

	var text *report.Text
	if cfg.Output.Format == report.FormatText {
		text = report.NewText(out, registry)
		text.Color = useColor(cfg.Output.Color, out)
		text.Projects(projects)
	}

	var summary *cleaner.Summary
	if cfg.Delete.Enabled {
		if !cfg.Delete.Yes && !cfg.Delete.DryRun {
			ok, err := confirm(projects)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if text != nil {
			text.DeletionHeader(cfg.Delete.DryRun)
		}

		c := cleaner.New(registry, cleaner.Options{
			DryRun: cfg.Delete.DryRun,
			Logger: logger,
			OnOutcome: func(o cleaner.Outcome) {
				if text != nil {
					text.Outcome(o)
				}
				journal.write(events.FromOutcome(runID, o))
			},
		})
		s := c.CleanAll(projects)
		summary = &s

		if text != nil && !cfg.Delete.DryRun {
			text.Summary(s)
		}
	}

	if text == nil {
		return report.Encode(out, cfg.Output.Format, report.NewDocument(root, projects, summary))
	}
	return nil
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI)
		return true
	case "never":
		return false
	}
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// journal writes events to an optional FileSink. Once opened, write failures
// are logged and never fail the run.
type journal struct {
	sink   *events.FileSink
	logger *log.Logger
}

func newJournal(path, runID string, logger *log.Logger) (*journal, error) {
	j := &journal{logger: logger}
	if path == "" {
		return j, nil
	}
	sink, err := events.NewFileSink(path)
	if err != nil {
		return nil, err
	}
	logger.Printf("Journaling run %s to %s", runID, sink.Path())
	j.sink = sink
	return j, nil
}

func (j *journal) write(ev events.Event) {
	if j.sink == nil {
		return
	}
	if err := j.sink.WriteOne(ev); err != nil {
		j.logger.Printf("Warning: %v", err)
	}
}

func (j *journal) close() {
	if j.sink == nil {
		return
	}
	if err := j.sink.Close(); err != nil {
		j.logger.Printf("Warning: %v", err)
	}
}
