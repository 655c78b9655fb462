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

package engine

import (
	"time"

	"github/sabouaram/golib/wrusthttp"
)

// Metrics receives connection and request lifecycle events from an Engine.
// It is defined here, not in httpserver/metrics, so the engine never needs
// to import a reporting backend: a caller that wants Prometheus output
// passes an httpserver/metrics.Reporter through WithMetrics, and a caller
// that doesn't care leaves it unset.
type Metrics interface {
	// ConnectionAccepted is called once per accepted TCP connection, after
	// the TLS handshake (if any) succeeds.
	ConnectionAccepted()
	// ConnectionClosed is called once per connection tracked by
	// ConnectionAccepted, whether it ended cleanly, on error, or because
	// the pool had no room to serve it.
	ConnectionClosed()
	// ConnectionRejectedBusy is called when the worker pool has no room
	// left and the connection is answered with 503 instead of served.
	ConnectionRejectedBusy()
	// RequestServed is called after a request was dispatched and its
	// response written, with the response status and how long dispatch
	// plus write took.
	RequestServed(status wrusthttp.StatusCode, d time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ConnectionAccepted()                                   {}
func (noopMetrics) ConnectionClosed()                                     {}
func (noopMetrics) ConnectionRejectedBusy()                               {}
func (noopMetrics) RequestServed(_ wrusthttp.StatusCode, _ time.Duration) {}
