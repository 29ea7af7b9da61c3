package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas de las pasadas de sincronización (expuestas en /metrics).
var (
	passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ais",
		Subsystem: "sync",
		Name:      "passes_total",
		Help:      "Pasadas de sincronización por modo (online/degraded).",
	}, []string{"mode"})

	adjustmentsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ais",
		Subsystem: "sync",
		Name:      "adjustments_applied_total",
		Help:      "Ajustes de stock aplicados por la sincronización.",
	})

	adjustmentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ais",
		Subsystem: "sync",
		Name:      "adjustments_failed_total",
		Help:      "Ajustes de stock fallidos por la sincronización.",
	})
)
