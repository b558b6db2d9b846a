// Package activity keeps a short in-memory log of handled commands and fans
// new entries out to subscribers.
package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 10

// Entry is one handled command
type Entry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Remote  string    `json:"remote"`
	Command string    `json:"command"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
}

// Log is a fixed-size rolling log, newest first.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	subs     map[chan Entry]struct{}
}

// New creates a log holding at most capacity entries
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		subs:     make(map[chan Entry]struct{}),
	}
}

// Add records e, filling in ID and Time when unset, and notifies subscribers.
func (l *Log) Add(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == l.capacity {
		l.entries = l.entries[:l.capacity-1]
	}
	l.entries = append([]Entry{e}, l.entries...)

	for ch := range l.subs {
		select {
		case ch <- e:
		default:
			// subscriber is behind; drop rather than block the request
		}
	}
	return e
}

// Snapshot returns a copy of the entries, newest first.
func (l *Log) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry(nil), l.entries...)
}

// Subscribe returns a channel receiving every new entry and a cancel func
// that unregisters and closes it.
func (l *Log) Subscribe(buffer int) (<-chan Entry, func()) {
	ch := make(chan Entry, buffer)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, ch)
			close(ch)
			l.mu.Unlock()
		})
	}
}
