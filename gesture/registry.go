// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Subscription identifies one registered handler so it can be removed
// later. Handler funcs are not comparable, so removal goes through the
// handle returned by Subscribe.
type Subscription struct {
	kind Kind
	id   uint64
}

// Kind returns the gesture kind the subscription listens for.
func (s *Subscription) Kind() Kind { return s.kind }

// subscriber pairs a handler with its subscription identity.
type subscriber struct {
	id uint64
	fn func(Event)
}

// registry stores handlers per gesture kind and fans events out to them.
type registry struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscriber
}

// add registers fn for kind and returns its handle.
func (g *registry) add(kind Kind, fn func(Event)) *Subscription {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.subs == nil {
		g.subs = make(map[Kind][]subscriber)
	}
	g.nextID++
	g.subs[kind] = append(g.subs[kind], subscriber{id: g.nextID, fn: fn})
	return &Subscription{kind: kind, id: g.nextID}
}

// remove drops the handler identified by sub, if it is still registered.
func (g *registry) remove(sub *Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	list := g.subs[sub.kind]
	for i := range list {
		if list[i].id == sub.id {
			g.subs[sub.kind] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// removeAll drops every handler registered for kind.
func (g *registry) removeAll(kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.subs, kind)
}

// clear drops every handler for every kind.
func (g *registry) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = nil
}

// dispatch invokes the handlers subscribed to ev's kind in registration
// order. Handlers run synchronously on the calling goroutine; the list is
// snapshotted first so a handler may subscribe or unsubscribe reentrantly.
func (g *registry) dispatch(ev Event, log logrus.FieldLogger) {
	g.mu.Lock()
	list := g.subs[ev.Kind()]
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	g.mu.Unlock()

	for _, s := range snapshot {
		invoke(s.fn, ev, log)
	}
}

// invoke runs one handler, containing a panic so the remaining handlers
// still see the event and the contact source keeps running.
func invoke(fn func(Event), ev Event, log logrus.FieldLogger) {
	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("gesture", string(ev.Kind())).Errorf("gesture handler panicked: %v", rec)
		}
	}()
	fn(ev)
}
