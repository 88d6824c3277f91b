package hub

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/session"
)

type fakeStore struct {
	mu        sync.Mutex
	seeded    map[string]engine.State
	persisted map[string][]session.Snapshot
	drained   chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seeded:    map[string]engine.State{},
		persisted: map[string][]session.Snapshot{},
		drained:   make(chan struct{}),
	}
}

func (f *fakeStore) Load(_ context.Context, code string) (engine.State, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.seeded[code]
	return st, ok, nil
}

func (f *fakeStore) Persist(_ context.Context, code string, snaps <-chan session.Snapshot) {
	for snap := range snaps {
		f.mu.Lock()
		f.persisted[code] = append(f.persisted[code], snap)
		f.mu.Unlock()
	}
	close(f.drained)
}

func (f *fakeStore) snapshots(code string) []session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]session.Snapshot(nil), f.persisted[code]...)
}

// flakyStore abandons its first subscription immediately, the way a session
// eviction looks from the store's side, and drains normally from the second
// one on.
type flakyStore struct {
	mu      sync.Mutex
	calls   int
	snaps   []session.Snapshot
	resub   chan struct{}
	drained chan struct{}
}

func newFlakyStore() *flakyStore {
	return &flakyStore{resub: make(chan struct{}), drained: make(chan struct{})}
}

func (f *flakyStore) Load(context.Context, string) (engine.State, bool, error) {
	return engine.NewState(), false, nil
}

func (f *flakyStore) Persist(_ context.Context, _ string, snaps <-chan session.Snapshot) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()
	if first {
		return
	}
	close(f.resub)
	for snap := range snaps {
		f.mu.Lock()
		f.snaps = append(f.snaps, snap)
		f.mu.Unlock()
	}
	close(f.drained)
}

func newTestHub(t *testing.T, st Store) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	newRand := func() engine.Rand { return rand.New(rand.NewSource(1)) }
	h := New(ctx, st, newRand, zap.NewNop())
	t.Cleanup(func() { h.Inbox() <- ShutdownHub{} })
	return h
}

func ensure(t *testing.T, h *Hub, code string) *session.Session {
	t.Helper()
	reply := make(chan *session.Session, 1)
	h.Inbox() <- EnsureSession{Code: code, Reply: reply}
	select {
	case s := <-reply:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out ensuring session %s", code)
		return nil
	}
}

func get(t *testing.T, h *Hub, code string) *session.Session {
	t.Helper()
	reply := make(chan *session.Session, 1)
	h.Inbox() <- GetSession{Code: code, Reply: reply}
	select {
	case s := <-reply:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out getting session %s", code)
		return nil
	}
}

func TestEnsureSessionIsIdempotent(t *testing.T) {
	h := newTestHub(t, nil)

	first := ensure(t, h, "ABC123")
	second := ensure(t, h, "ABC123")
	require.NotNil(t, first)
	require.Same(t, first, second)
	require.Same(t, first, get(t, h, "ABC123"))
}

func TestGetSessionUnknownCodeIsNil(t *testing.T) {
	h := newTestHub(t, nil)
	require.Nil(t, get(t, h, "NOPE00"))
}

func TestRemoveSessionForgetsTheGroup(t *testing.T) {
	h := newTestHub(t, nil)
	ensure(t, h, "ABC123")

	h.Inbox() <- RemoveSession{Code: "ABC123"}
	require.Nil(t, get(t, h, "ABC123"))
}

func TestCreateSeedsFromStore(t *testing.T) {
	st := newFakeStore()
	seeded := engine.NewState()
	seeded.Players = []engine.Player{{Name: "Ana", Coins: 4, Perks: []engine.Perk{}}}
	st.seeded["ABC123"] = seeded

	h := newTestHub(t, st)
	s := ensure(t, h, "ABC123")

	reply := make(chan session.View, 1)
	s.Inbox() <- session.GetState{Reply: reply}
	view := <-reply
	require.Len(t, view.State.Players, 1)
	require.Equal(t, "Ana", view.State.Players[0].Name)
	require.Equal(t, 4, view.State.Players[0].Coins)
}

func TestStoreReceivesCommittedSnapshots(t *testing.T) {
	st := newFakeStore()
	h := newTestHub(t, st)
	s := ensure(t, h, "ABC123")

	reply := make(chan session.Result, 1)
	s.Inbox() <- session.Do{Cmd: engine.Command{Type: engine.CmdRegisterPlayer, Player: "Ana"}, Reply: reply}
	res := <-reply
	require.NoError(t, res.Err)

	// Shut the session down so Persist drains and exits.
	h.Inbox() <- RemoveSession{Code: "ABC123"}
	select {
	case <-st.drained:
	case <-time.After(2 * time.Second):
		t.Fatalf("store subscription never drained")
	}

	snaps := st.snapshots("ABC123")
	require.NotEmpty(t, snaps)
	last := snaps[len(snaps)-1]
	require.Equal(t, 1, last.Version)
	require.Len(t, last.State.Players, 1)
}

func TestStoreResubscribesAfterDroppedSubscription(t *testing.T) {
	st := newFlakyStore()
	h := newTestHub(t, st)
	s := ensure(t, h, "ABC123")

	select {
	case <-st.resub:
	case <-time.After(2 * time.Second):
		t.Fatalf("store never resubscribed after the dropped subscription")
	}

	reply := make(chan session.Result, 1)
	s.Inbox() <- session.Do{Cmd: engine.Command{Type: engine.CmdRegisterPlayer, Player: "Ana"}, Reply: reply}
	require.NoError(t, (<-reply).Err)

	h.Inbox() <- RemoveSession{Code: "ABC123"}
	select {
	case <-st.drained:
	case <-time.After(2 * time.Second):
		t.Fatalf("resubscribed store never drained")
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	last := st.snaps[len(st.snaps)-1]
	require.Equal(t, 1, last.Version)
	require.Len(t, last.State.Players, 1)
}
