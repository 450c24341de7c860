package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ledgerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hostel",
	Subsystem: "ledger",
	Name:      "writes_total",
	Help:      "Successful ledger writes by operation.",
}, []string{"op"})

func recordWrite(op string) {
	ledgerWrites.WithLabelValues(op).Inc()
}
