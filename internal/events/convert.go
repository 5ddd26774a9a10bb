package events

import (
	"time"

	"github.com/davidMuir/clean-deps/internal/cleaner"
	"github.com/davidMuir/clean-deps/internal/scanner"
)

var statusTypes = map[cleaner.Status]EventType{
	cleaner.StatusRemoved:     EventRemoved,
	cleaner.StatusSkipped:     EventSkipped,
	cleaner.StatusFailed:      EventFailed,
	cleaner.StatusWouldRemove: EventWouldRemove,
}

// FromScan summarizes a completed scan of root.
func FromScan(runID, root string, projects []scanner.Project) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Type:      EventScan,
		Path:      root,
		Size:      scanner.TotalSize(projects),
		Count:     len(projects),
	}
}

// FromProject converts a discovered project.
func FromProject(runID string, p scanner.Project) Event {
	return Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Type:      EventProject,
		Ecosystem: string(p.Ecosystem),
		Path:      p.Path,
		Size:      p.DepSize,
	}
}

// FromOutcome converts a deletion outcome.
func FromOutcome(runID string, o cleaner.Outcome) Event {
	ev := Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Type:      statusTypes[o.Status],
		Ecosystem: string(o.Project.Ecosystem),
		Path:      o.Path,
		Size:      o.Size,
	}
	if ev.Type == "" {
		ev.Type = EventFailed
	}
	if o.Err != nil {
		ev.Error = o.Err.Error()
	}
	return ev
}
