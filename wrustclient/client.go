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

package wrustclient

import (
	"bufio"
	"crypto/tls"
	"net"
	"net/url"
	"strings"
	"time"

	"github/sabouaram/golib/errors"
	"github/sabouaram/golib/wrustclient/connpool"
	"github/sabouaram/golib/wrustclient/retry"
	"github/sabouaram/golib/wrustream"
	"github/sabouaram/golib/wrustream/timeout"
	"github/sabouaram/golib/wrusthttp"
)

// DefaultReadTimeout and DefaultWriteTimeout bound one request/response
// round trip.
const (
	DefaultReadTimeout  = 60 * time.Second
	DefaultWriteTimeout = 60 * time.Second
	DefaultDialTimeout  = 10 * time.Second
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithTimeouts overrides the per-request read and write budgets.
func WithTimeouts(read, write time.Duration) Option {
	return func(c *Client) {
		c.readTimeout = &read
		c.writeTimeout = &write
	}
}

// WithDialTimeout overrides how long establishing a fresh TCP
// connection may take.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.dialTimeout = d }
}

// WithTLS makes the client negotiate TLS for "https" URLs using cfg.
func WithTLS(cfg *tls.Config) Option {
	return func(c *Client) { c.tls = cfg }
}

// WithIdleTimeout overrides how long a pooled connection may sit idle
// before the pool's sweeper reclaims it.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Client) { c.idleTimeout = &d }
}

// WithRetryPolicy overrides the backoff policy used to redial an
// authority whose pooled connection turned out to be dead.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.retry = p }
}

// Client is a one-shot request runner holding a connection pool keyed
// by authority ("host:port").
type Client struct {
	pool *connpool.Pool

	readTimeout  *time.Duration
	writeTimeout *time.Duration
	dialTimeout  time.Duration
	idleTimeout  *time.Duration
	tls          *tls.Config
	retry        retry.Policy
}

// New builds a Client with its own connection pool.
func New(opts ...Option) *Client {
	read := DefaultReadTimeout
	write := DefaultWriteTimeout

	c := &Client{
		readTimeout:  &read,
		writeTimeout: &write,
		dialTimeout:  DefaultDialTimeout,
		retry:        retry.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.pool = connpool.New(c.idleTimeout)

	return c
}

// Close drains the connection pool, closing every idle connection and
// stopping its sweeper.
func (c *Client) Close() {
	c.pool.Close()
}

// Run is the spec-level entry point: write req to the connection held
// for addr ("host:port"), reusing a pooled one when req is persistent,
// dialing a fresh one otherwise (or when no pooled connection exists).
// On success the connection is returned to the pool under addr.
func (c *Client) Run(addr string, req *wrusthttp.Request) (*wrusthttp.Response, error) {
	persistent := isRequestPersistent(req)

	if persistent {
		if res, ok := c.pool.Get(addr); ok {
			resp, err := c.roundTrip(res.Conn, req)
			if err == nil {
				_ = c.pool.Put(addr, res.Conn)
				return resp, nil
			}
			_ = res.Conn.Close()
			// Pooled connection was dead; fall through to a fresh dial.
		}
	}

	var resp *wrusthttp.Response
	err := retry.Run(c.retry, isDialable, func(int) error {
		conn, derr := c.dial(addr)
		if derr != nil {
			return derr
		}

		r, rerr := c.roundTrip(conn, req)
		if rerr != nil {
			_ = conn.Close()
			return rerr
		}

		resp = r
		if persistent {
			_ = c.pool.Put(addr, conn)
		} else {
			_ = conn.Close()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Do is a convenience wrapper over Run: it parses rawURL for the
// target authority, sets Host on req if absent, and dispatches.
func (c *Client) Do(rawURL string, req *wrusthttp.Request) (*wrusthttp.Response, error) {
	addr, host, err := parseAuthority(rawURL, c.tls != nil)
	if err != nil {
		return nil, err
	}

	if _, ok := req.Headers.Get("Host"); !ok {
		req.Headers.Set("Host", host)
	}

	return c.Run(addr, req)
}

func (c *Client) dial(addr string) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout)
	if err != nil {
		return nil, ErrDial.Error(err)
	}

	if c.tls == nil {
		return conn, nil
	}

	host, _, _ := net.SplitHostPort(addr)
	cfg := c.tls.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.Handshake(); err != nil {
		_ = conn.Close()
		return nil, ErrDial.Error(err)
	}
	return tlsConn, nil
}

func (c *Client) roundTrip(conn net.Conn, req *wrusthttp.Request) (*wrusthttp.Response, error) {
	var (
		base wrustream.BaseStream
		err  error
	)

	switch tc := conn.(type) {
	case *tls.Conn:
		raw, ok := tc.NetConn().(*net.TCPConn)
		if !ok {
			return nil, ErrDial.Error(nil)
		}
		base, err = wrustream.NewSecure(raw, tc)
	case *net.TCPConn:
		base, err = wrustream.NewTCP(tc)
	default:
		return nil, ErrDial.Error(nil)
	}
	if err != nil {
		return nil, err
	}

	cs, err := wrustream.New(base)
	if err != nil {
		return nil, err
	}

	ts := timeout.New(cs, c.readTimeout, c.writeTimeout)

	ts.ResetWrite()
	if err := req.WriteTo(bufio.NewWriter(ts)); err != nil {
		return nil, err
	}

	ts.ResetRead()
	resp, err := wrusthttp.ReadResponse(bufio.NewReader(ts))
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func isRequestPersistent(req *wrusthttp.Request) bool {
	value, _ := req.Headers.Get("Connection")
	conn := strings.ToLower(value)
	if conn == "close" {
		return false
	}

	switch req.Version {
	case wrusthttp.Version11, wrusthttp.Version20:
		return true
	case wrusthttp.Version10:
		return conn == "keep-alive"
	default:
		return false
	}
}

func isDialable(err error) bool {
	ce, ok := err.(errors.Error)
	return ok && ce.HasCode(ErrDial)
}

func parseAuthority(rawURL string, forceTLS bool) (addr, host string, err error) {
	u, perr := url.Parse(rawURL)
	if perr != nil {
		return "", "", ErrInvalidURL.Error(perr)
	}

	host = u.Hostname()
	if host == "" {
		return "", "", ErrNoHost.Error(nil)
	}

	port := u.Port()
	if port == "" {
		switch {
		case u.Scheme == "https" || forceTLS:
			port = "443"
		case u.Scheme == "http" || u.Scheme == "":
			port = "80"
		default:
			return "", "", ErrUnknownPort.Error(nil)
		}
	}

	return net.JoinHostPort(host, port), host, nil
}
