package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingReporter captures Report calls for assertions.
type recordingReporter struct {
	mu      sync.Mutex
	reports []string
}

func (r *recordingReporter) Report(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, title+": "+description)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func (r *recordingReporter) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reports) == 0 {
		return ""
	}
	return r.reports[len(r.reports)-1]
}

func toggle(id string) func([]string) []string {
	return func(list []string) []string {
		for i, member := range list {
			if member == id {
				out := make([]string, 0, len(list)-1)
				out = append(out, list[:i]...)
				return append(out, list[i+1:]...)
			}
		}
		out := make([]string, len(list), len(list)+1)
		copy(out, list)
		return append(out, id)
	}
}

func succeed(context.Context) error { return nil }

func fail(context.Context) error { return errors.New("network unreachable") }

func TestApply_PublishesBeforeRemoteCompletes(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{})

	release := make(chan struct{})
	pending := store.Apply(context.Background(), "add to wishlist", "u1",
		toggle("p1"),
		func(context.Context) error {
			<-release
			return nil
		},
	)

	// Visible immediately, remote still in flight.
	state, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, []string{"p1"}, state)

	close(release)
	assert.Equal(t, Committed, pending.Wait())

	state, _ = store.Get("u1")
	assert.Equal(t, []string{"p1"}, state)
	assert.Zero(t, reporter.count())
}

// Toggling membership twice with both remote calls succeeding returns
// the projection to its original value.
func TestApply_ToggleTwiceIsIdempotent(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{"p7"})

	first := store.Apply(context.Background(), "add to wishlist", "u1", toggle("p42"), succeed)
	second := store.Apply(context.Background(), "remove from wishlist", "u1", toggle("p42"), succeed)

	assert.Equal(t, Committed, first.Wait())
	assert.Equal(t, Committed, second.Wait())

	state, _ := store.Get("u1")
	assert.Equal(t, []string{"p7"}, state)
	assert.Zero(t, reporter.count())
}

func TestApply_RollbackRestoresSnapshotExactly(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	original := []string{"p1", "p2"}
	store.Set("u1", original)

	// "Replace" is not invertible; rollback must restore the snapshot.
	pending := store.Apply(context.Background(), "replace wishlist", "u1",
		func([]string) []string { return []string{"p9"} },
		fail,
	)

	assert.Equal(t, RolledBack, pending.Wait())

	state, _ := store.Get("u1")
	assert.Equal(t, original, state)
	assert.Equal(t, 1, reporter.count(), "exactly one error per rollback")
}

// Scenario: wishlist toggle for p42 on an empty wishlist, remote call
// fails. The projection returns to empty and one report references the
// item key.
func TestApply_FailedToggleSurfacesItemInReport(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{})

	pending := store.Apply(context.Background(), "add to wishlist", "u1", toggle("p42"), fail)
	assert.Equal(t, RolledBack, pending.Wait())

	state, _ := store.Get("u1")
	assert.Empty(t, state)
	require.Equal(t, 1, reporter.count())
	assert.Contains(t, reporter.last(), "u1")
	assert.Contains(t, reporter.last(), "add to wishlist")
}

// A stale mutation's failure must not undo a newer mutation. The first
// remote call resolves after the second: second succeeds, first fails,
// and the final state reflects the second mutation rather than a
// rollback to the pre-first snapshot.
func TestApply_StaleRollbackIsDiscarded(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{})

	firstRemote := make(chan struct{})
	first := store.Apply(context.Background(), "add to wishlist", "u1",
		toggle("p1"),
		func(context.Context) error {
			<-firstRemote
			return errors.New("timed out")
		},
	)

	// Second mutation snapshots the state after the first's optimistic
	// apply.
	second := store.Apply(context.Background(), "add to wishlist", "u1", toggle("p2"), succeed)
	assert.Equal(t, Committed, second.Wait())

	close(firstRemote)
	assert.Equal(t, RolledBack, first.Wait())

	state, _ := store.Get("u1")
	assert.Equal(t, []string{"p1", "p2"}, state,
		"stale rollback must not clobber the superseding mutation")
	assert.Equal(t, 1, reporter.count(), "failure still reported")
}

// When the newest mutation for a key fails it rolls back to its own
// snapshot, which includes the earlier optimistic apply.
func TestApply_RollbackChainsThroughEarlierApply(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{})

	firstRemote := make(chan struct{})
	first := store.Apply(context.Background(), "add to wishlist", "u1",
		toggle("p1"),
		func(context.Context) error {
			<-firstRemote
			return nil
		},
	)

	second := store.Apply(context.Background(), "add to wishlist", "u1", toggle("p2"), fail)
	assert.Equal(t, RolledBack, second.Wait())

	close(firstRemote)
	assert.Equal(t, Committed, first.Wait())

	state, _ := store.Get("u1")
	assert.Equal(t, []string{"p1"}, state)
	assert.Equal(t, 1, reporter.count())
}

// Mutations on distinct keys carry independent snapshots.
func TestApply_IndependentKeysDoNotInterfere(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStore[[]string](reporter)
	store.Set("u1", []string{"a"})
	store.Set("u2", []string{"b"})

	failing := store.Apply(context.Background(), "add to wishlist", "u1", toggle("p1"), fail)
	passing := store.Apply(context.Background(), "add to wishlist", "u2", toggle("p2"), succeed)

	assert.Equal(t, RolledBack, failing.Wait())
	assert.Equal(t, Committed, passing.Wait())

	u1, _ := store.Get("u1")
	u2, _ := store.Get("u2")
	assert.Equal(t, []string{"a"}, u1)
	assert.Equal(t, []string{"b", "p2"}, u2)
}
