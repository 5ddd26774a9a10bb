package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davidMuir/clean-deps/internal/config"
	"github.com/davidMuir/clean-deps/internal/events"
	"github.com/davidMuir/clean-deps/internal/report"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

func mkfile(t *testing.T, path string, n int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Repeat("x", n)), 0644); err != nil {
		t.Fatal(err)
	}
}

// workspace lays out a rust crate, a js app and an empty dotnet project.
func workspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	mkfile(t, filepath.Join(root, "crate", "Cargo.toml"), 0)
	mkfile(t, filepath.Join(root, "crate", "target", "debug", "crate"), 300)
	mkfile(t, filepath.Join(root, "web", "package.json"), 0)
	mkfile(t, filepath.Join(root, "web", "node_modules", "dep", "index.js"), 1000)
	mkfile(t, filepath.Join(root, "web", "src", "app.js"), 50)
	mkfile(t, filepath.Join(root, "api", "Api.csproj"), 0)
	return root
}

func baseConfig(root string) *config.Config {
	return &config.Config{
		Path:   root,
		Output: config.OutputConfig{Format: report.FormatText, Color: "never"},
	}
}

func noPrompt(t *testing.T) confirmFunc {
	return func([]scanner.Project) (bool, error) {
		t.Fatal("confirmation should not be requested")
		return false, nil
	}
}

func TestClean_ReportSortedBySize(t *testing.T) {
	root := workspace(t)

	var out, errOut bytes.Buffer
	if err := clean(&out, &errOut, baseConfig(root), noPrompt(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) < 5 {
		t.Fatalf("expected at least 5 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "[js]") {
		t.Errorf("expected largest project first, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[rust]") {
		t.Errorf("expected rust second, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "[dotnet]") {
		t.Errorf("expected dotnet last, got %q", lines[2])
	}
	if lines[4] != "Total size: 1.3 KiB" {
		t.Errorf("unexpected total line %q", lines[4])
	}
	if strings.Contains(out.String(), "Removing") {
		t.Error("nothing should be removed without --delete")
	}
}

func TestClean_LanguageFilter(t *testing.T) {
	root := workspace(t)
	cfg := baseConfig(root)
	cfg.Language = "rust"

	var out bytes.Buffer
	if err := clean(&out, &bytes.Buffer{}, cfg, noPrompt(t)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "[js]") || !strings.Contains(out.String(), "[rust]") {
		t.Errorf("expected only rust projects, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Total size: 300 B") {
		t.Errorf("expected filtered total, got %q", out.String())
	}
}

func TestClean_DeleteWithConfirmation(t *testing.T) {
	root := workspace(t)
	cfg := baseConfig(root)
	cfg.Delete.Enabled = true

	asked := 0
	confirm := func(projects []scanner.Project) (bool, error) {
		asked++
		if len(projects) != 3 {
			t.Errorf("expected 3 projects in prompt, got %d", len(projects))
		}
		return true, nil
	}

	var out bytes.Buffer
	if err := clean(&out, &bytes.Buffer{}, cfg, confirm); err != nil {
		t.Fatal(err)
	}
	if asked != 1 {
		t.Errorf("expected one prompt, got %d", asked)
	}

	for _, gone := range []string{"crate/target", "web/node_modules"} {
		if _, err := os.Stat(filepath.Join(root, gone)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, stat err = %v", gone, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "web", "src", "app.js")); err != nil {
		t.Errorf("source files must survive: %v", err)
	}

	for _, want := range []string{"Removing dependencies:", "node_modules\n", "Skipping empty: ", "Reclaimed 1.3 KiB (2 removed, 2 skipped, 0 failed)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestClean_DeleteCancelled(t *testing.T) {
	root := workspace(t)
	cfg := baseConfig(root)
	cfg.Delete.Enabled = true

	var out bytes.Buffer
	err := clean(&out, &bytes.Buffer{}, cfg, func([]scanner.Project) (bool, error) { return false, nil })
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cancelled.") {
		t.Errorf("expected cancellation notice, got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(root, "crate", "target")); err != nil {
		t.Errorf("target must survive a cancelled run: %v", err)
	}
}

func TestClean_PromptError(t *testing.T) {
	cfg := baseConfig(workspace(t))
	cfg.Delete.Enabled = true

	wantErr := errors.New("no tty")
	err := clean(&bytes.Buffer{}, &bytes.Buffer{}, cfg, func([]scanner.Project) (bool, error) { return false, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("expected prompt error, got %v", err)
	}
}

func TestClean_DryRunJSON(t *testing.T) {
	root := workspace(t)
	cfg := baseConfig(root)
	cfg.Output.Format = report.FormatJSON
	cfg.Delete = config.DeleteConfig{Enabled: true, DryRun: true}

	var out bytes.Buffer
	if err := clean(&out, &bytes.Buffer{}, cfg, noPrompt(t)); err != nil {
		t.Fatal(err)
	}

	var doc report.Document
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(doc.Projects) != 3 || doc.TotalSize != 1300 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if len(doc.Deletions) != 4 {
		t.Fatalf("expected 4 deletion entries, got %d", len(doc.Deletions))
	}
	if doc.Deletions[0].Status != "would-remove" {
		t.Errorf("expected would-remove, got %q", doc.Deletions[0].Status)
	}
	if _, err := os.Stat(filepath.Join(root, "web", "node_modules")); err != nil {
		t.Errorf("dry run must not remove anything: %v", err)
	}
}

func TestClean_Journal(t *testing.T) {
	root := workspace(t)
	journalPath := filepath.Join(t.TempDir(), "run.jsonl")
	cfg := baseConfig(root)
	cfg.Journal = journalPath
	cfg.Delete = config.DeleteConfig{Enabled: true, Yes: true}

	if err := clean(&bytes.Buffer{}, &bytes.Buffer{}, cfg, noPrompt(t)); err != nil {
		t.Fatal(err)
	}

	evs, err := events.ReadEvents(journalPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(events.FilterByType(evs, events.EventProject)); got != 3 {
		t.Errorf("expected 3 project events, got %d", got)
	}
	if got := len(events.FilterByType(evs, events.EventScan)); got != 1 {
		t.Errorf("expected 1 scan event, got %d", got)
	}
	if got := len(events.FilterByType(evs, events.EventRemoved)); got != 2 {
		t.Errorf("expected 2 removed events, got %d", got)
	}

	runID := evs[0].RunID
	for _, ev := range evs {
		if ev.RunID == "" || ev.RunID != runID {
			t.Errorf("all events should share run id %q, got %q", runID, ev.RunID)
		}
	}
}

func TestClean_ScanErrorIsFatal(t *testing.T) {
	cfg := baseConfig(filepath.Join(t.TempDir(), "missing"))

	err := clean(&bytes.Buffer{}, &bytes.Buffer{}, cfg, noPrompt(t))
	if err == nil || !strings.Contains(err.Error(), "failed to scan") {
		t.Errorf("expected scan error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestClean_VerboseLogsToStderr(t *testing.T) {
	cfg := baseConfig(workspace(t))
	cfg.Verbose = true

	var out, errOut bytes.Buffer
	if err := clean(&out, &errOut, cfg, noPrompt(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), "Found rust project") {
		t.Errorf("expected discovery log on stderr, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "Found") {
		t.Error("diagnostics must not be written to stdout")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)

	t.Cleanup(func() {
		_ = initCmd.Flags().Set("language", "")
		_ = initCmd.Flags().Set("force", "false")
	})
	if err := initCmd.Flags().Set("language", "js"); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	initCmd.SetOut(&out)
	t.Cleanup(func() { initCmd.SetOut(nil) })

	if err := writeDefaultConfig(initCmd, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"language: javascript", "format: text", "color: auto", "dry_run: false"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected config to contain %q, got:\n%s", want, data)
		}
	}

	if err := writeDefaultConfig(initCmd, path); err == nil {
		t.Error("expected error when config exists")
	}

	if err := initCmd.Flags().Set("force", "true"); err != nil {
		t.Fatal(err)
	}
	if err := writeDefaultConfig(initCmd, path); err != nil {
		t.Errorf("expected --force to overwrite, got %v", err)
	}
}
