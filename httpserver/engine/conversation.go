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
	"strings"
	"time"

	"github/sabouaram/golib/routing"
	"github/sabouaram/golib/wrustream/observed"
	"github/sabouaram/golib/wrustream/timeout"
	"github/sabouaram/golib/wrusthttp"
)

// handleConversation repeats handleConnection over obs for as long as the
// connection stays persistent, then shuts it down in both directions.
func (e *Engine) handleConversation(obs *observed.ObservableStream) {
	defer func() { _ = obs.Close() }()

	ts := timeout.New(obs, e.readTimeout, e.writeTimeout)
	reader := bufio.NewReader(ts)
	writer := bufio.NewWriter(ts)

	persistent := true
	for persistent {
		var ok bool
		persistent, ok = handleConnection(e.router, e.metrics, ts, reader, writer)
		if !ok {
			return
		}
	}
}

// handleConnection reads one request, dispatches it, and writes back the
// response. It reports whether the connection should stay open for another
// request, and whether the connection is still usable at all (false once a
// read or write has failed).
func handleConnection(router *routing.Router, metrics Metrics, ts *timeout.TimeoutStream, reader *bufio.Reader, writer *bufio.Writer) (persistent, ok bool) {
	ts.ResetRead()
	req, err := wrusthttp.ReadRequest(reader)
	if err != nil {
		return false, false
	}

	start := time.Now()
	persistent = isConnectionPersistent(req)
	resp := runAction(router, req)
	metrics.RequestServed(resp.Status, time.Since(start))

	ts.ResetWrite()
	if err := resp.WriteTo(writer); err != nil {
		return false, false
	}

	return persistent, true
}

// runAction normalizes the request target, rewrites it in place, and
// dispatches to the longest matching registered route, replying 404 when
// the target escapes the root or no route answers for it.
func runAction(router *routing.Router, req *wrusthttp.Request) *wrusthttp.Response {
	normalized, err := routing.NormalizePath(req.Target)
	if err != nil {
		return wrusthttp.NewResponse(wrusthttp.StatusNotFound, nil, nil)
	}
	req.Target = normalized

	handler, ok := router.GetPrefix(normalized, req.Method)
	if !ok {
		return wrusthttp.NewResponse(wrusthttp.StatusNotFound, nil, nil)
	}

	return handler(req)
}

// isConnectionPersistent decides whether the connection should serve
// another request after this one: an explicit "Connection: close" always
// ends it, HTTP/1.1 (and HTTP/2) keep it open by default, and HTTP/1.0 only
// stays open with an explicit "Connection: keep-alive".
func isConnectionPersistent(req *wrusthttp.Request) bool {
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
