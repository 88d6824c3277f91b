package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mufa_commands_applied_total",
		Help: "Commands applied to a session, by command type.",
	}, []string{"command"})

	CommandsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mufa_commands_rejected_total",
		Help: "Commands rejected by the engine, by command type.",
	}, []string{"command"})

	SnapshotsPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mufa_snapshots_persisted_total",
		Help: "Snapshot documents written to the store.",
	})

	SnapshotPersistErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mufa_snapshot_persist_errors_total",
		Help: "Snapshot writes that failed.",
	})
)
