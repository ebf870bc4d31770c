// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus instruments for the API client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Token refresh outcomes used as the "result" label.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
	RefreshSkipped = "skipped"
)

// Metrics groups the client instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	tokenRefresh    *prometheus.CounterVec
}

// New registers the client instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),

		tokenRefresh: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "api",
			Name:      "token_refresh_total",
			Help:      "Token exchange attempts by result.",
		}, []string{"result"}),
	}
}

// ObserveRequest records one completed request. status 0 (no response) is
// labelled "error".
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestDuration.WithLabelValues(method, label).Observe(d.Seconds())
}

// ObserveRefresh counts one token exchange with the given result.
func (m *Metrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.tokenRefresh.WithLabelValues(result).Inc()
}
