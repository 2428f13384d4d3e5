/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package admin exposes the optional operational surface (C8): a /healthz
// probe and a /metrics endpoint serving the four counters/gauges the
// scheduler feeds as it runs.
package admin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var startedAt = time.Now()

var (
	TargetsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bannergrab_targets_in_flight",
		Help: "Number of targets currently being processed by the scheduler.",
	})

	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bannergrab_outcomes_total",
		Help: "Scan outcomes by terminal status.",
	}, []string{"status"})

	RateLimiterWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bannergrab_rate_limiter_wait_seconds",
		Help:    "Time spent suspended on the rate limiter's acquire call.",
		Buckets: prometheus.DefBuckets,
	})

	Uptime = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "bannergrab_uptime_seconds",
		Help: "Seconds since the bannergrab process started.",
	}, func() float64 {
		return time.Since(startedAt).Seconds()
	})
)

// RecordOutcome increments the outcome counter for status.
func RecordOutcome(status string) {
	Outcomes.WithLabelValues(status).Inc()
}

// IncInFlight marks one more target as in flight.
func IncInFlight() {
	TargetsInFlight.Inc()
}

// DecInFlight marks one target as no longer in flight.
func DecInFlight() {
	TargetsInFlight.Dec()
}

// ObserveRateLimiterWait records how long a rate-limiter acquire suspended.
func ObserveRateLimiterWait(d time.Duration) {
	RateLimiterWaitSeconds.Observe(d.Seconds())
}

// UptimeSeconds reports seconds elapsed since the admin package was loaded,
// the same value the bannergrab_uptime_seconds gauge reports on /metrics.
func UptimeSeconds() float64 {
	return time.Since(startedAt).Seconds()
}
