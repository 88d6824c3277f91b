// Package store persists one JSON snapshot document per group. It never sits
// inside a mutation path: the session broadcasts committed snapshots and the
// store drains them on its own goroutine, so a slow or failing database can
// not stall the game.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mufahq/mufa-backend/internal/engine"
	"github.com/mufahq/mufa-backend/internal/metrics"
	"github.com/mufahq/mufa-backend/internal/session"
)

type SnapshotRecord struct {
	Code      string `gorm:"primaryKey;size:12"`
	Version   int
	Data      []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (SnapshotRecord) TableName() string { return "snapshots" }

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(dsn string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Load fetches and decodes the snapshot for a group. Decoding runs the
// legacy-perk migration (see engine.Perk.UnmarshalJSON), so every load path
// upgrades old documents.
func (s *Store) Load(ctx context.Context, code string) (engine.State, bool, error) {
	var rec SnapshotRecord
	err := s.db.WithContext(ctx).First(&rec, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.NewState(), false, nil
	}
	if err != nil {
		return engine.NewState(), false, err
	}
	st, err := DecodeState(rec.Data)
	if err != nil {
		return engine.NewState(), false, err
	}
	return st, true, nil
}

// Save upserts the snapshot document for a group.
func (s *Store) Save(ctx context.Context, code string, snap session.Snapshot) error {
	data, err := json.Marshal(snap.State)
	if err != nil {
		return err
	}
	rec := SnapshotRecord{Code: code, Version: snap.Version, Data: data, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

// Persist drains a session's snapshot stream until it closes or ctx is
// cancelled. Failures are counted and logged, never propagated: persistence
// is fire-and-forget.
func (s *Store) Persist(ctx context.Context, code string, snaps <-chan session.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snaps:
			if !ok {
				return
			}
			if err := s.Save(ctx, code, snap); err != nil {
				metrics.SnapshotPersistErrors.Inc()
				s.log.Error("snapshot save failed",
					zap.String("group", code),
					zap.Int("version", snap.Version),
					zap.Error(err))
				continue
			}
			metrics.SnapshotsPersisted.Inc()
		}
	}
}

// DecodeState unmarshals a snapshot document, restoring the zero-value
// collections json leaves nil.
func DecodeState(data []byte) (engine.State, error) {
	st := engine.NewState()
	if err := json.Unmarshal(data, &st); err != nil {
		return engine.NewState(), err
	}
	if st.Players == nil {
		st.Players = []engine.Player{}
	}
	if st.Pools == nil {
		st.Pools = map[string][]string{}
	}
	if st.Results == nil {
		st.Results = map[string][]string{}
	}
	if st.Matches == nil {
		st.Matches = []engine.Match{}
	}
	if st.Challenges == nil {
		st.Challenges = []engine.Challenge{}
	}
	return st, nil
}
