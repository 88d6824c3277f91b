// Package session owns one group's tournament state. All mutations funnel
// through a single goroutine, so commands are serialized and every committed
// change is broadcast as a versioned snapshot to whoever subscribed — UI
// clients and the persistence adapter alike.
package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/metrics"
)

type Msg interface{ isSessionMsg() }

// Do carries one command. Reply, when non-nil, receives the typed outcome:
// either the committed snapshot or the engine's rejection.
type Do struct {
	Cmd   engine.Command
	Reply chan Result
}

func (Do) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this subscriber receives snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

type Result struct {
	Snapshot Snapshot
	Err      error
}

type View struct {
	Version        int
	NumSubscribers int
	State          engine.State
}

type Session struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot
	rng     engine.Rand
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, initial engine.State, rng engine.Rand, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		inbox:   make(chan Msg, 64), // small buffer
		state:   initial,
		clients: make(map[string]chan Snapshot),
		rng:     rng,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}

	go s.loop()
	return s
}

// Inbox exposes the message channel to the transport layers and tests.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has shut down and will never broadcast
// again.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register subscriber + send current snapshot immediately.
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: s.version, State: s.state}

			case Leave:
				delete(s.clients, msg.ClientID)

			case Do:
				s.apply(msg)

			case GetState:
				msg.Reply <- View{
					Version:        s.version,
					NumSubscribers: len(s.clients),
					State:          s.state,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) apply(msg Do) {
	events, next, err := engine.Apply(s.state, msg.Cmd, s.rng)
	if err != nil {
		metrics.CommandsRejected.WithLabelValues(string(msg.Cmd.Type)).Inc()
		s.log.Warn("command rejected",
			zap.String("command", string(msg.Cmd.Type)),
			zap.Error(err))
		if msg.Reply != nil {
			msg.Reply <- Result{Err: err}
		}
		return
	}

	s.state = next
	s.version++
	metrics.CommandsApplied.WithLabelValues(string(msg.Cmd.Type)).Inc()
	s.log.Info("command applied",
		zap.String("command", string(msg.Cmd.Type)),
		zap.Int("version", s.version),
		zap.Int("events", len(events)))

	snap := Snapshot{Version: s.version, State: s.state}
	s.broadcast(snap)
	if msg.Reply != nil {
		msg.Reply <- Result{Snapshot: snap}
	}
}

func (s *Session) shutdown() {
	// Cancel first so Done() reads as shut down by the time subscribers see
	// their channel close.
	s.cancel()
	for id, ch := range s.clients {
		close(ch) // tell subscriber no more snapshots
		delete(s.clients, id)
	}
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			// ok
		default:
			// Subscriber is slow/full - drop them.
			s.log.Warn("dropping slow subscriber", zap.String("client", id))
			close(ch)
			delete(s.clients, id)
		}
	}
}
