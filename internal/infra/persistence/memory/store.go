// Package memory contains an in-process implementation of the persistence
// layer. It backs the "memory" store provider for local development and the
// unit tests, and mirrors the hosted store's semantics: server-assigned
// monotonic timestamps, live query snapshots with per-document change
// classification, and all-or-nothing transactions.
package memory

import (
	"context"
	"reflect"
	"sync"
	"time"

	"focuspit/internal/domain/entity"
	"focuspit/internal/domain/repository"
)

// watchBuffer is the per-subscription snapshot buffer. When a consumer falls
// behind, the oldest snapshot is dropped; every snapshot carries the full
// result set, so dropped intermediates coalesce into the next delivery.
const watchBuffer = 64

// data holds every collection. Transactions stage a clone and swap it in on
// commit.
type data struct {
	users         map[string]*entity.User
	groups        map[string]*entity.Group
	memberships   map[string]*entity.Membership
	notifications map[string]*entity.Notification
	widgets       map[string]*entity.WidgetInstance
}

func newData() *data {
	return &data{
		users:         make(map[string]*entity.User),
		groups:        make(map[string]*entity.Group),
		memberships:   make(map[string]*entity.Membership),
		notifications: make(map[string]*entity.Notification),
		widgets:       make(map[string]*entity.WidgetInstance),
	}
}

func (d *data) clone() *data {
	next := newData()
	for k, v := range d.users {
		u := *v
		u.Stamps = append([]string(nil), v.Stamps...)
		next.users[k] = &u
	}
	for k, v := range d.groups {
		g := *v
		next.groups[k] = &g
	}
	for k, v := range d.memberships {
		m := *v
		next.memberships[k] = &m
	}
	for k, v := range d.notifications {
		n := *v
		next.notifications[k] = &n
	}
	for k, v := range d.widgets {
		w := *v
		w.Settings = make(map[string]any, len(v.Settings))
		for sk, sv := range v.Settings {
			w.Settings[sk] = sv
		}
		next.widgets[k] = &w
	}

	return next
}

// Store is the in-process document store. All repositories created from one
// Store share its data and its watcher registry.
type Store struct {
	mu          sync.Mutex
	data        *data
	now         func() time.Time
	lastTS      time.Time
	watchers    map[int]func(*data)
	nextWatcher int
	failures    map[string]error
}

// NewStore creates an empty store using the wall clock.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates an empty store with an injectable clock, used by
// tests that assert on timestamp ordering.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		data:     newData(),
		now:      now,
		watchers: make(map[int]func(*data)),
		failures: make(map[string]error),
	}
}

// FailNext arranges for the next write of the named operation to fail with
// err. Used by tests to simulate partial failure inside multi-document
// transitions. Operation names are "<collection>.<method>", e.g.
// "membership.upsert".
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// failureLocked consumes a pending injected failure. Caller holds mu.
func (s *Store) failureLocked(op string) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)

	return err
}

// serverTimeLocked assigns the write timestamp. Timestamps are strictly
// monotonic per store, as the hosted backend guarantees per write.
func (s *Store) serverTimeLocked() time.Time {
	ts := s.now()
	if !ts.After(s.lastTS) {
		ts = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = ts

	return ts
}

// write runs a mutation. Outside a transaction it takes the lock, applies fn
// to the live data and wakes every watcher. Inside a transaction (staged not
// nil, lock already held by Execute) it applies fn to the staged clone;
// watchers fire once on commit.
func (s *Store) write(staged *data, op string, fn func(d *data) error) error {
	if staged != nil {
		if err := s.failureLocked(op); err != nil {
			return err
		}

		return fn(staged)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failureLocked(op); err != nil {
		return err
	}
	if err := fn(s.data); err != nil {
		return err
	}
	s.notifyLocked()

	return nil
}

// read runs a query against the current data.
func (s *Store) read(staged *data, fn func(d *data) error) error {
	if staged != nil {
		return fn(staged)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.data)
}

func (s *Store) notifyLocked() {
	for _, notify := range s.watchers {
		notify(s.data)
	}
}

// addWatch registers a live query. compute derives the ordered result set,
// key identifies documents across snapshots. The initial snapshot reports
// every document as added; later snapshots are delivered only when the result
// set changes. The channel closes when ctx is cancelled.
func addWatch[T any](ctx context.Context, s *Store, compute func(*data) []T, key func(T) string) (<-chan repository.Snapshot[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan repository.Snapshot[T], watchBuffer)

	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++

	prev := make(map[string]T)
	sentFirst := false
	emit := func(d *data) {
		docs := compute(d)

		changes := make([]repository.Change[T], 0, len(docs))
		seen := make(map[string]T, len(docs))
		for _, doc := range docs {
			k := key(doc)
			seen[k] = doc
			before, ok := prev[k]
			switch {
			case !ok:
				changes = append(changes, repository.Change[T]{Kind: repository.ChangeAdded, Doc: doc})
			case !reflect.DeepEqual(before, doc):
				changes = append(changes, repository.Change[T]{Kind: repository.ChangeModified, Doc: doc})
			}
		}
		for k, doc := range prev {
			if _, ok := seen[k]; !ok {
				changes = append(changes, repository.Change[T]{Kind: repository.ChangeRemoved, Doc: doc})
			}
		}
		// The first snapshot is always delivered, even when empty, so
		// subscribers can tell "caught up" from "nothing yet".
		if sentFirst && len(changes) == 0 && len(prev) == len(seen) {
			return
		}
		sentFirst = true
		prev = seen

		snap := repository.Snapshot[T]{Docs: docs, Changes: changes}
		select {
		case ch <- snap:
		default:
			// Consumer is behind; drop the oldest snapshot to make room.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}

	emit(s.data)
	s.watchers[id] = emit
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
