package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	purchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nftmarket_purchases_total",
			Help: "Resolved simulated purchases by outcome",
		},
		[]string{"outcome"},
	)

	purchasesPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nftmarket_purchases_pending",
			Help: "Simulated purchases waiting for resolution",
		},
	)

	walletActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nftmarket_wallet_actions_total",
			Help: "Mock wallet connects and disconnects",
		},
		[]string{"action"},
	)

	sessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nftmarket_sessions_created_total",
			Help: "Viewer sessions created",
		},
	)

	simulatorTasks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nftmarket_simulator_tasks",
			Help: "Timers currently registered with the simulator",
		},
	)
)

func PurchaseStarted() {
	purchasesPending.Inc()
}

// PurchaseResolved records the outcome of a purchase that left the pending state.
func PurchaseResolved(outcome string) {
	purchasesPending.Dec()
	purchasesTotal.WithLabelValues(outcome).Inc()
}

func WalletAction(action string) {
	walletActions.WithLabelValues(action).Inc()
}

func SessionCreated() {
	sessionsCreated.Inc()
}

func SetSimulatorTasks(n int) {
	simulatorTasks.Set(float64(n))
}
