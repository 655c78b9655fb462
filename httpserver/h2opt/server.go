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

package h2opt

import (
	"crypto/tls"
	"net/http"
	"time"

	"golang.org/x/net/http2"

	"github/sabouaram/golib/routing"
)

// Config bounds the *http2.Server this package configures. Zero values
// leave golang.org/x/net/http2 at its own defaults.
type Config struct {
	MaxHandlers          int
	MaxConcurrentStreams uint32
	IdleTimeout          time.Duration
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
}

// NewServer builds a *http.Server dispatching to router through Adapt,
// with golang.org/x/net/http2 configured over tlsConfig. tlsConfig's
// NextProtos must include "h2" for a client to ever negotiate it; ServeTLS
// is left to the caller, since this package has no opinion on the
// listener.
func NewServer(router *routing.Router, tlsConfig *tls.Config, cfg Config) (*http.Server, error) {
	srv := &http.Server{
		Handler:      Adapt(router),
		TLSConfig:    tlsConfig,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	h2cfg := &http2.Server{
		MaxHandlers:          cfg.MaxHandlers,
		MaxConcurrentStreams: cfg.MaxConcurrentStreams,
		IdleTimeout:          cfg.IdleTimeout,
	}

	if err := http2.ConfigureServer(srv, h2cfg); err != nil {
		return nil, ErrConfigure.Error(err)
	}

	return srv, nil
}
