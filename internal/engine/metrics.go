package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 同步操作名称标签值
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

var (
	syncOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "board",
		Subsystem: "sync",
		Name:      "operations_total",
		Help:      "Total local mutations applied by the sync engine.",
	}, []string{"op"})

	syncFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "board",
		Subsystem: "sync",
		Name:      "failures_total",
		Help:      "Total persistence failures by operation.",
	}, []string{"op"})

	rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "board",
		Subsystem: "sync",
		Name:      "rollbacks_total",
		Help:      "Total local rollbacks after failed persistence.",
	}, []string{"op"})
)
