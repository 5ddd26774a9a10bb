// Package events records scan and deletion activity as a JSONL journal, so a
// cleanup run can be audited after the fact.
package events

import (
	"time"
)

// EventType identifies the category of a journal event.
type EventType string

const (
	// EventScan marks the end of a scan.
	EventScan EventType = "scan"
	// EventProject is one discovered project.
	EventProject EventType = "project"
	// EventRemoved is a dependency path that was deleted.
	EventRemoved EventType = "removed"
	// EventSkipped is a dependency path left alone because it was empty or absent.
	EventSkipped EventType = "skipped"
	// EventFailed is a dependency path that could not be measured or deleted.
	EventFailed EventType = "failed"
	// EventWouldRemove is a dependency path a dry run would delete.
	EventWouldRemove EventType = "would_remove"
)

// Event is a single journal line.
type Event struct {
	Timestamp time.Time `json:"timestamp"`

	// RunID ties together all events of one invocation.
	RunID string `json:"run_id"`

	Type EventType `json:"type"`

	Ecosystem string `json:"ecosystem,omitempty"`

	// Path is the project root or dependency path the event is about.
	Path string `json:"path"`

	// Size is in bytes.
	Size uint64 `json:"size"`

	// Count is the number of projects, for scan events.
	Count int `json:"count,omitempty"`

	Error string `json:"error,omitempty"`
}
