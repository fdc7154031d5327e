package observabletest

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/metacubex/observable"

	"github.com/samber/lo"
)

// SubscriptionLog records what one execution of a cold source observed:
// how many values it pushed, whether it delivered its terminal and
// whether it found the subscriber gone between frames.
type SubscriptionLog struct {
	Pushed       int
	Terminated   bool
	Unsubscribed bool
}

// ColdSource replays its script from the start for every subscriber,
// rechecking the subscriber between frames like any well behaved
// synchronous producer.
type ColdSource[T any] struct {
	mu     sync.Mutex
	script []Notification[T]
	logs   []*SubscriptionLog
	obs    *observable.Observable[T]
}

// Observable returns the scripted source.
func (c *ColdSource[T]) Observable() *observable.Observable[T] {
	return c.obs
}

// Subscriptions returns a snapshot of the execution logs in subscribe
// order.
func (c *ColdSource[T]) Subscriptions() []SubscriptionLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Map(c.logs, func(entry *SubscriptionLog, _ int) SubscriptionLog {
		return *entry
	})
}

func (c *ColdSource[T]) run(s *observable.Subscriber[T]) {
	entry := new(SubscriptionLog)
	c.mu.Lock()
	c.logs = append(c.logs, entry)
	script := c.script
	c.mu.Unlock()

	for _, note := range script {
		if s.Closed() {
			c.mu.Lock()
			entry.Unsubscribed = true
			c.mu.Unlock()
			return
		}
		switch note.Kind {
		case KindNext:
			c.mu.Lock()
			entry.Pushed++
			c.mu.Unlock()
			s.Next(note.Value)
		case KindError:
			c.mu.Lock()
			entry.Terminated = true
			c.mu.Unlock()
			s.Error(note.Err)
			return
		case KindComplete:
			c.mu.Lock()
			entry.Terminated = true
			c.mu.Unlock()
			s.Complete()
			return
		}
	}
}

// Cold scripts a lazy source from a marble diagram. A cold timeline
// starts at its subscriber, so the '^' marker has no place in it.
func Cold[T any](diagram string, values map[rune]T, failure error) (*ColdSource[T], error) {
	if strings.ContainsRune(diagram, '^') {
		return nil, fmt.Errorf("subscription marker in cold diagram %q", diagram)
	}
	script, err := ParseMarbles(diagram, values, failure)
	if err != nil {
		return nil, err
	}
	c := &ColdSource[T]{script: script}
	c.obs = observable.New(c.run)
	return c, nil
}

// MustCold is Cold for diagram literals, panicking when one is malformed.
func MustCold[T any](diagram string, values map[rune]T, failure error) *ColdSource[T] {
	c, err := Cold(diagram, values, failure)
	if err != nil {
		panic(err)
	}
	return c
}

// HotSource multicasts its script to whoever is subscribed as Flush
// replays it. The script position never rewinds, so successive flushes
// continue where the previous one stopped.
type HotSource[T any] struct {
	mu      sync.Mutex
	subject *observable.Subject[T]
	script  []Notification[T]
	pos     int
}

// Observable returns the multicast read side.
func (h *HotSource[T]) Observable() *observable.Observable[T] {
	return h.subject.AsObservable()
}

// Subject returns the subject driving the source.
func (h *HotSource[T]) Subject() *observable.Subject[T] {
	return h.subject
}

// Flush replays the rest of the script.
func (h *HotSource[T]) Flush() {
	h.FlushUntil(math.MaxInt)
}

// FlushUntil replays the notifications not yet replayed whose tick is
// below tick.
func (h *HotSource[T]) FlushUntil(tick int) {
	h.mu.Lock()
	var pending []Notification[T]
	for h.pos < len(h.script) && h.script[h.pos].Tick < tick {
		pending = append(pending, h.script[h.pos])
		h.pos++
	}
	h.mu.Unlock()

	for _, note := range pending {
		switch note.Kind {
		case KindNext:
			h.subject.Next(note.Value)
		case KindError:
			h.subject.Error(note.Err)
		case KindComplete:
			h.subject.Complete()
		}
	}
}

// Hot scripts a multicast source from a marble diagram. Nothing plays
// until Flush or FlushUntil is called. Signals before a '^' marker sit
// on negative ticks, so FlushUntil(0) plays exactly the part of the
// timeline a subscriber arriving at the marker would have missed.
func Hot[T any](diagram string, values map[rune]T, failure error) (*HotSource[T], error) {
	script, err := ParseMarbles(diagram, values, failure)
	if err != nil {
		return nil, err
	}
	return &HotSource[T]{
		subject: observable.NewSubject[T](),
		script:  script,
	}, nil
}

// MustHot is Hot for diagram literals, panicking when one is malformed.
func MustHot[T any](diagram string, values map[rune]T, failure error) *HotSource[T] {
	h, err := Hot(diagram, values, failure)
	if err != nil {
		panic(err)
	}
	return h
}
