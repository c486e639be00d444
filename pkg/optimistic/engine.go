package optimistic

import (
	"context"
	"fmt"
	"sync"
)

// Outcome is the terminal state of an optimistic mutation.
type Outcome int

const (
	// Committed means the remote call succeeded and the optimistic
	// state remains authoritative.
	Committed Outcome = iota
	// RolledBack means the remote call failed and the projection was
	// restored to the pre-mutation snapshot (unless a newer mutation
	// superseded it first).
	RolledBack
)

func (o Outcome) String() string {
	if o == Committed {
		return "committed"
	}
	return "rolled-back"
}

// Reporter surfaces a user-visible error. The engine calls it exactly
// once per failed remote call.
type Reporter interface {
	Report(title, description string)
}

// Pending tracks an in-flight optimistic mutation.
type Pending struct {
	key  string
	op   string
	done chan struct{}

	outcome Outcome
}

// Key returns the logical item key the mutation targeted.
func (p *Pending) Key() string { return p.key }

// Done is closed once the mutation reaches a terminal state.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the mutation is terminal and returns the outcome.
func (p *Pending) Wait() Outcome {
	<-p.done
	return p.outcome
}

// Store holds local projections of a remote collection, one value per
// logical item key. Mutations on distinct keys never interfere;
// mutations on the same key serialize, each snapshotting the state
// left by the previous optimistic apply.
type Store[T any] struct {
	reporter Reporter

	mu    sync.Mutex
	items map[string]T
	seq   map[string]uint64
}

// NewStore creates an empty store reporting rollback errors to reporter.
func NewStore[T any](reporter Reporter) *Store[T] {
	return &Store[T]{
		reporter: reporter,
		items:    make(map[string]T),
		seq:      make(map[string]uint64),
	}
}

// Get returns the current projection for key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok
}

// Set replaces the projection for key, e.g. after loading fresh state
// from the remote store. Sequence tracking is untouched, so a pending
// mutation for the key keeps its position in the ordering.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Apply performs an optimistic mutation of the projection under key.
//
// The current value is snapshotted, mutate is applied and published
// synchronously, then remote is dispatched on its own goroutine. On
// remote success nothing further happens. On remote failure the
// snapshot is restored - unless a newer mutation for the same key has
// been applied since, in which case the stale rollback is discarded
// (last sequence number wins) - and the failure is reported exactly
// once with enough context to render a message.
//
// mutate must be pure: it receives the current value and returns the
// new one without modifying shared structures in place. Rollback
// restores the captured snapshot rather than inverting mutate, so
// lossy mutations (replace, remove) roll back correctly.
//
// There is no cancellation: once dispatched, remote runs to
// completion. Timeout policy belongs to the remote collaborator.
func (s *Store[T]) Apply(ctx context.Context, op, key string, mutate func(T) T, remote func(context.Context) error) *Pending {
	s.mu.Lock()
	snapshot := s.items[key]
	s.items[key] = mutate(snapshot)
	s.seq[key]++
	seq := s.seq[key]
	s.mu.Unlock()

	pending := &Pending{key: key, op: op, done: make(chan struct{})}

	go func() {
		defer close(pending.done)

		err := remote(ctx)
		if err == nil {
			pending.outcome = Committed
			return
		}

		pending.outcome = RolledBack
		s.mu.Lock()
		if s.seq[key] == seq {
			s.items[key] = snapshot
		}
		s.mu.Unlock()

		s.reporter.Report(
			fmt.Sprintf("%s failed", op),
			fmt.Sprintf("could not %s %q: %v", op, key, err),
		)
	}()

	return pending
}
