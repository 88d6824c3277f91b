package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/session"
)

// Store is what the hub needs from the persistence adapter. A nil Store runs
// the hub memory-only, which is also how tests run it.
type Store interface {
	// Load fetches the snapshot document for a group. found is false when the
	// group has never been persisted.
	Load(ctx context.Context, code string) (state engine.State, found bool, err error)
	// Persist drains committed snapshots for a group until the channel
	// closes or ctx is cancelled, writing each one fire-and-forget.
	Persist(ctx context.Context, code string, snaps <-chan session.Snapshot)
}

type HubMsg interface{ isHubMsg() }

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type ShutdownHub struct{}

func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	store    Store
	newRand  func() engine.Rand
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, store Store, newRand func() engine.Rand, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		store:    store,
		newRand:  newRand,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // may be nil

			case EnsureSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.create(msg.Code)

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Inbox() <- session.Shutdown{}
				}
				delete(h.sessions, msg.Code)

			case ShutdownHub:
				for _, s := range h.sessions {
					s.Inbox() <- session.Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
				return
			}
		}
	}
}

// create starts a session for the group, seeded from the persisted snapshot
// when one exists, and subscribes the store to its committed changes.
func (h *Hub) create(code string) *session.Session {
	initial := engine.NewState()
	if h.store != nil {
		st, found, err := h.store.Load(h.ctx, code)
		if err != nil {
			h.log.Error("snapshot load failed, starting fresh",
				zap.String("group", code), zap.Error(err))
		} else if found {
			initial = st
		}
	}

	s := session.New(h.ctx, initial, h.newRand(), h.log.With(zap.String("group", code)))
	h.sessions[code] = s

	if h.store != nil {
		go h.persistLoop(code, s)
	}
	return s
}

// persistLoop keeps the store subscribed to a session's committed snapshots.
// If the subscription is ever dropped (the session evicts slow subscribers)
// the loop rejoins, so a burst of writes cannot permanently detach
// persistence from a live group.
func (h *Hub) persistLoop(code string, s *session.Session) {
	for {
		out := make(chan session.Snapshot, 16)
		s.Inbox() <- session.Join{ClientID: "store", Outbox: out}
		h.store.Persist(h.ctx, code, out)

		select {
		case <-h.ctx.Done():
			return
		case <-s.Done():
			return
		default:
			h.log.Warn("store subscription lost, resubscribing",
				zap.String("group", code))
			time.Sleep(100 * time.Millisecond)
		}
	}
}
