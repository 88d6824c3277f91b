package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/hub"
	"github.com/mufahq/mufa-backend/internal/session"
	"github.com/mufahq/mufa-backend/internal/types"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// CreateGroup allocates a fresh group code and starts its session.
func CreateGroup(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *session.Session, 1)
			h.Inbox() <- hub.GetSession{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create group", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// GetGroup returns the current snapshot for a group.
func GetGroup(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		view := make(chan session.View, 1)
		sess.Inbox() <- session.GetState{Reply: view}
		v := <-view

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ServerMessage{
			Type: "StateSnapshot", Version: v.Version, State: &v.State,
		})
	}
}

// PostCommand runs one command against a group and replies with either the
// committed snapshot or the typed rejection.
func PostCommand(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		sess := <-reply
		if sess == nil {
			http.Error(w, "group not found", http.StatusNotFound)
			return
		}

		var cm types.ClientMessage
		if err := json.NewDecoder(r.Body).Decode(&cm); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		cmd, ok := types.ToCommand(cm)
		if !ok {
			http.Error(w, "unknown command type", http.StatusBadRequest)
			return
		}

		result := make(chan session.Result, 1)
		sess.Inbox() <- session.Do{Cmd: cmd, Reply: result}
		res := <-result

		w.Header().Set("Content-Type", "application/json")
		if res.Err != nil {
			w.WriteHeader(statusFor(res.Err))
			_ = json.NewEncoder(w).Encode(types.ServerMessage{Type: "Error", Error: res.Err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(types.ServerMessage{
			Type: "StateSnapshot", Version: res.Snapshot.Version, State: &res.Snapshot.State,
		})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrPlayerNotFound),
		errors.Is(err, engine.ErrPerkNotFound),
		errors.Is(err, engine.ErrChallengeNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNoTournament),
		errors.Is(err, engine.ErrNoPlayers),
		errors.Is(err, engine.ErrNotEnoughPlayers),
		errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrPerkAlreadyUsed),
		errors.Is(err, engine.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
