package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CyclesEvaluated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridbt_cycles_evaluated_total",
			Help: "Total number of decision cycles evaluated across all combinations.",
		},
	)

	IntentsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridbt_intents_emitted_total",
			Help: "Total number of trade intents emitted (by direction).",
		},
		[]string{"direction"},
	)

	StopOuts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridbt_stop_outs_total",
			Help: "Total number of positions closed by the protective stop.",
		},
	)

	BacktestsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gridbt_backtests_completed_total",
			Help: "Number of per-combination backtests that ran to completion.",
		},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gridbt_equity",
			Help: "Equity of the most recently reporting paper ledger.",
		},
	)
)

func init() {
	prometheus.MustRegister(CyclesEvaluated, IntentsEmitted, StopOuts, BacktestsCompleted, EquityGauge)
}
