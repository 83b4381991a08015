// Package realtime carries change notifications from mutating services to
// any number of live subscribers: the websocket hub, badge counters, tests.
// It intentionally mirrors a database change feed: subscribers get
// {event, table, row} and are expected to re-query rather than patch local
// state from the payload.
package realtime

import "sync"

// Event types of a change notification.
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// ChangeEvent is one change notification. Row carries the entity after the
// change (or before it, for deletes); handlers must treat it as a hint and
// re-issue their own reads for anything they render.
type ChangeEvent struct {
	Event string `json:"event"`
	Table string `json:"table"`
	Row   any    `json:"row"`
}

// Filter narrows the events a subscriber receives. Zero values match
// everything: an empty Table matches all tables, a nil Events slice all
// event types, a nil Predicate all rows.
type Filter struct {
	Table     string
	Events    []string
	Predicate func(ChangeEvent) bool
}

func (f Filter) matches(ev ChangeEvent) bool {
	if f.Table != "" && f.Table != ev.Table {
		return false
	}
	if len(f.Events) > 0 {
		ok := false
		for _, e := range f.Events {
			if e == ev.Event {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Predicate != nil && !f.Predicate(ev) {
		return false
	}
	return true
}

// Handler receives matching events. Handlers run on their own goroutine per
// delivery; no ordering is guaranteed relative to the publisher's own
// response, so handlers must be idempotent.
type Handler func(ChangeEvent)

type subscription struct {
	filter  Filter
	handler Handler
}

// Feed is an in-process fan-out of change events. Many subscriptions can be
// active concurrently; each returns its own unsubscribe handle and tearing
// one down never affects the others.
type Feed struct {
	mu   sync.RWMutex
	subs map[uint64]*subscription
	next uint64
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[uint64]*subscription)}
}

// Subscribe registers handler for events matching filter and returns the
// unsubscribe handle. Unsubscribing twice is harmless.
func (f *Feed) Subscribe(filter Filter, handler Handler) (unsubscribe func()) {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = &subscription{filter: filter, handler: handler}
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish fans ev out to every matching subscriber. Delivery is
// asynchronous so a slow subscriber never blocks the mutating request path.
func (f *Feed) Publish(ev ChangeEvent) {
	f.mu.RLock()
	matched := make([]Handler, 0, len(f.subs))
	for _, sub := range f.subs {
		if sub.filter.matches(ev) {
			matched = append(matched, sub.handler)
		}
	}
	f.mu.RUnlock()

	for _, h := range matched {
		go h(ev)
	}
}
