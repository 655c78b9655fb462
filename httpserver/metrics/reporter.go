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

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github/sabouaram/golib/wrusthttp"
)

// Reporter implements httpserver/engine.Metrics, publishing every event as
// a Prometheus collector registered against Registerer.
type Reporter struct {
	connectionsAccepted prometheus.Counter
	connectionsClosed   prometheus.Counter
	connectionsRejected prometheus.Counter
	connectionsActive   prometheus.Gauge
	requestDuration     *prometheus.HistogramVec
}

// New registers a fresh set of collectors against reg and returns a
// Reporter ready to pass to engine.WithMetrics. A nil reg registers against
// prometheus.DefaultRegisterer, matching promauto's own default.
func New(reg prometheus.Registerer, namespace string) *Reporter {
	factory := promauto.With(reg)

	r := &Reporter{
		connectionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "httpserver",
			Name:      "connections_accepted_total",
			Help:      "Total TCP connections accepted by the engine.",
		}),
		connectionsClosed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "httpserver",
			Name:      "connections_closed_total",
			Help:      "Total connections that finished being served, successfully or not.",
		}),
		connectionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "httpserver",
			Name:      "connections_rejected_total",
			Help:      "Total connections answered 503 because the worker pool had no room.",
		}),
		connectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "httpserver",
			Name:      "connections_active",
			Help:      "Connections currently being served.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "httpserver",
			Name:      "request_duration_seconds",
			Help:      "Time from reading a request to writing its response, by status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}

	return r
}

func (r *Reporter) ConnectionAccepted() {
	r.connectionsAccepted.Inc()
	r.connectionsActive.Inc()
}

func (r *Reporter) ConnectionClosed() {
	r.connectionsClosed.Inc()
	r.connectionsActive.Dec()
}

func (r *Reporter) ConnectionRejectedBusy() {
	r.connectionsRejected.Inc()
}

func (r *Reporter) RequestServed(status wrusthttp.StatusCode, d time.Duration) {
	r.requestDuration.WithLabelValues(strconv.Itoa(int(status))).Observe(d.Seconds())
}
