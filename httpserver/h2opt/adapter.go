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
	"io"
	"net/http"

	"github/sabouaram/golib/routing"
	"github/sabouaram/golib/wrusthttp"
)

// Adapt wraps router as a net/http.Handler: each incoming *http.Request is
// translated to the wrusthttp.Request shape router's handlers expect, and
// the wrusthttp.Response they return is copied back onto w. A request
// method or body net/http itself already rejected never reaches here; this
// only has to reject what wrusthttp's own codec would reject on the wire
// (an unsupported method, primarily, since http2 has no request line to
// malform).
func Adapt(router *routing.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := fromHTTPRequest(r)
		if err != nil {
			http.Error(w, "unsupported method", http.StatusNotImplemented)
			return
		}

		normalized, err := routing.NormalizePath(req.Target)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		req.Target = normalized

		handler, ok := router.GetPrefix(normalized, req.Method)
		if !ok {
			http.NotFound(w, r)
			return
		}

		writeHTTPResponse(w, handler(req))
	})
}

func fromHTTPRequest(r *http.Request) (*wrusthttp.Request, error) {
	method, err := wrusthttp.ParseMethod(r.Method)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	h := wrusthttp.Headers{}
	for name, values := range r.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}

	return &wrusthttp.Request{
		Method:  method,
		Target:  r.URL.RequestURI(),
		Version: wrusthttp.Version20,
		Headers: h,
		Body:    wrusthttp.Body{Bytes: body},
	}, nil
}

func writeHTTPResponse(w http.ResponseWriter, resp *wrusthttp.Response) {
	header := w.Header()
	for _, h := range resp.Headers.All() {
		header.Add(h.Name, h.Value)
	}
	w.WriteHeader(int(resp.Status))
	_, _ = w.Write(resp.Body.Bytes)
}
