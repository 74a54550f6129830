// Package memory persists the per-conversation event history: one record per
// processed user message, carrying the detected mood and numeric confidence.
package memory

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sridhareguram/aura/fileutil"
)

// DefaultRecent is the number of events exposed when no explicit count is given.
const DefaultRecent = 10

// Event is one appended record. Events are immutable once stored.
type Event struct {
	Timestamp  string  `json:"timestamp"`
	UserInput  string  `json:"user_input"`
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

// EventLog is an append-only, file-backed event store. The backing file is a
// JSON array; every operation does a full read-modify-write under one lock.
type EventLog struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewEventLog(path string, logger *zap.Logger) *EventLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLog{path: path, logger: logger}
}

// StoreEvent appends a new event and persists the full collection. It never
// fails: an unreadable or invalid backing file is treated as empty for this
// operation, and a write failure leaves the previous file contents intact.
func (l *EventLog) StoreEvent(userInput, mood string, confidence float64) Event {
	ev := Event{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		UserInput:  userInput,
		Mood:       mood,
		Confidence: confidence,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.loadLocked()
	events = append(events, ev)

	if err := fileutil.WriteJSONFileAtomic(l.path, events, true); err != nil {
		l.logger.Error("event log write failed", zap.String("path", l.path), zap.Error(err))
	}
	return ev
}

// Recent returns the last n events in insertion order, oldest first. n <= 0
// means DefaultRecent. On a corrupted backing store it returns an empty slice.
func (l *EventLog) Recent(n int) []Event {
	if n <= 0 {
		n = DefaultRecent
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.loadLocked()
	if len(events) > n {
		events = events[len(events)-n:]
	}
	return events
}

func (l *EventLog) loadLocked() []Event {
	b, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("event log unreadable, treating as empty", zap.String("path", l.path), zap.Error(err))
		}
		return []Event{}
	}
	if len(b) == 0 {
		return []Event{}
	}
	var events []Event
	if err := json.Unmarshal(b, &events); err != nil {
		l.logger.Warn("event log corrupted, treating as empty", zap.String("path", l.path), zap.Error(err))
		return []Event{}
	}
	return events
}
