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
	"bufio"
	"crypto/tls"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github/sabouaram/golib/routing"
	"github/sabouaram/golib/wrkpool"
	"github/sabouaram/golib/wrustream"
	"github/sabouaram/golib/wrustream/observed"
	"github/sabouaram/golib/wrusthttp"
)

// DefaultReadTimeout bounds how long reading one request may take, start to
// finish, including a slow client trickling in the headers.
const DefaultReadTimeout = 30 * time.Second

// DefaultWriteTimeout bounds how long writing one response may take.
const DefaultWriteTimeout = 30 * time.Second

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithTimeouts overrides the per-request read and write budgets.
func WithTimeouts(read, write time.Duration) Option {
	return func(e *Engine) {
		e.readTimeout = &read
		e.writeTimeout = &write
	}
}

// WithTLS makes the engine perform a TLS handshake on every accepted
// connection before serving it. A nil config (the default) serves plain TCP.
func WithTLS(cfg *tls.Config) Option {
	return func(e *Engine) {
		e.tls = cfg
	}
}

// WithMetrics routes connection and request lifecycle events to m. Without
// this option the engine records nothing, so a reporting backend (such as
// httpserver/metrics) is entirely optional.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// Engine accepts connections on a net.Listener and serves them against
// router, with each connection's conversation dispatched into pool.
type Engine struct {
	router *routing.Router
	pool   *wrkpool.Pool

	streams *observed.StreamList

	readTimeout  *time.Duration
	writeTimeout *time.Duration
	tls          *tls.Config
	metrics      Metrics

	stopping atomic.Bool
	wg       sync.WaitGroup
}

// New builds an Engine dispatching to router, bounding concurrent
// conversations via pool.
func New(router *routing.Router, pool *wrkpool.Pool, opts ...Option) *Engine {
	read := DefaultReadTimeout
	write := DefaultWriteTimeout

	e := &Engine{
		router:       router,
		pool:         pool,
		streams:      observed.NewStreamList(),
		readTimeout:  &read,
		writeTimeout: &write,
		metrics:      noopMetrics{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Serve accepts connections from ln until the listener is closed, handing
// every accepted connection to the worker pool. It returns nil once ln is
// closed after Shutdown was called, and the Accept error otherwise.
func (e *Engine) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if e.stopping.Load() {
				return nil
			}
			return err
		}

		obs, err := e.track(conn)
		if err != nil {
			continue
		}
		e.metrics.ConnectionAccepted()

		e.wg.Add(1)
		if perr := e.pool.Run(func() {
			defer e.wg.Done()
			defer e.metrics.ConnectionClosed()
			e.handleConversation(obs)
		}); perr != nil {
			e.wg.Done()
			e.metrics.ConnectionRejectedBusy()
			e.metrics.ConnectionClosed()
			e.handleBusy(obs)
		}
	}
}

// Shutdown stops accepting new conversations and shuts every tracked stream
// down in both directions, unblocking any goroutine parked in a Read or
// Write, then waits for all in-flight conversations to return.
func (e *Engine) Shutdown() {
	e.stopping.Store(true)
	e.streams.ShutdownAll()
	e.wg.Wait()
}

// Tracked reports how many connections are currently being served.
func (e *Engine) Tracked() int {
	return e.streams.Len()
}

// track wraps an accepted connection as a poll-cancellable stream and
// registers it with the engine's stream list.
func (e *Engine) track(conn net.Conn) (*observed.ObservableStream, error) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return nil, ErrNotTCPConn.Error(nil)
	}

	var (
		base wrustream.BaseStream
		err  error
	)

	if e.tls != nil {
		tlsConn := tls.Server(tcp, e.tls)
		if hErr := tlsConn.Handshake(); hErr != nil {
			_ = tcp.Close()
			return nil, ErrHandshake.Error(hErr)
		}
		base, err = wrustream.NewSecure(tcp, tlsConn)
	} else {
		base, err = wrustream.NewTCP(tcp)
	}
	if err != nil {
		_ = tcp.Close()
		return nil, ErrTrackStream.Error(err)
	}

	cs, err := wrustream.New(base)
	if err != nil {
		_ = tcp.Close()
		return nil, ErrTrackStream.Error(err)
	}

	return e.streams.Track(cs), nil
}

// handleBusy replies 503 directly to a connection the pool had no room for,
// without going through the conversation loop, then closes it.
func (e *Engine) handleBusy(obs *observed.ObservableStream) {
	defer func() { _ = obs.Close() }()

	resp := wrusthttp.NewResponse(wrusthttp.StatusServiceUnavailable, nil, nil)
	_ = resp.WriteTo(bufio.NewWriter(obs))
}
