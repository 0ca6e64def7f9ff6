package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var analyzeRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoice_analyze_requests_total",
		Help: "Invoice analyze requests by outcome.",
	},
	[]string{"status"},
)
