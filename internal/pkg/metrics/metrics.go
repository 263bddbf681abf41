package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the Prometheus collectors exported by the staking service.
type Metrics struct {
	ContractCalls   *prometheus.CounterVec
	TxDuration      *prometheus.HistogramVec
	WalletConnected prometheus.Gauge
	MetadataFetches *prometheus.CounterVec
	ActivityRecords *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance registered with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "nft_staker"
	}
	factory := promauto.With(reg)

	return &Metrics{
		ContractCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_calls_total",
			Help:      "Total number of contract calls and transactions by method and status",
		}, []string{"method", "status"}),
		TxDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_duration_seconds",
			Help:      "Time from sending a transaction until its receipt is mined",
			Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
		}, []string{"method"}),
		WalletConnected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wallet_connected",
			Help:      "1 while a wallet session is connected",
		}),
		MetadataFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "fetches_total",
			Help:      "Token metadata lookups by source (cache, gateway) and status",
		}, []string{"source", "status"}),
		ActivityRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activity",
			Name:      "records_total",
			Help:      "Activity journal entries by action and status",
		}, []string{"action", "status"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is registered with the default Prometheus registry.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// Status maps an error to the status label.
func Status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordContractCall counts a read call or a sent transaction.
func RecordContractCall(method string, err error) {
	DefaultMetrics.ContractCalls.WithLabelValues(method, Status(err)).Inc()
}

// RecordTxDuration records how long a transaction took to be mined.
func RecordTxDuration(method string, seconds float64) {
	DefaultMetrics.TxDuration.WithLabelValues(method).Observe(seconds)
}

// SetWalletConnected updates the wallet session gauge.
func SetWalletConnected(connected bool) {
	if connected {
		DefaultMetrics.WalletConnected.Set(1)
		return
	}
	DefaultMetrics.WalletConnected.Set(0)
}

// RecordMetadataFetch counts a metadata lookup.
func RecordMetadataFetch(source string, err error) {
	DefaultMetrics.MetadataFetches.WithLabelValues(source, Status(err)).Inc()
}

// RecordActivity counts a journal entry.
func RecordActivity(action, status string) {
	DefaultMetrics.ActivityRecords.WithLabelValues(action, status).Inc()
}
