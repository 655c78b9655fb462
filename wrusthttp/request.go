/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package wrusthttp

import (
	"bufio"
	"strings"
)

// Request is a fully parsed HTTP/1.1 request: request line, headers
// and a Content-Length-framed body.
type Request struct {
	Method  Method
	Target  string
	Version Version
	Headers Headers
	Body    Body
}

// ReadRequest parses one request off r. The very first line read is
// where a peer that never sends anything shows up as a timeout or a
// closed connection; both map through mapStreamErr exactly like any
// other read on this connection; there is no separate first-byte
// special case.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := readCRLFLine(r)
	if err != nil {
		return nil, err
	}

	method, target, version, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	req := &Request{Method: method, Target: target, Version: version}
	if err := req.Headers.ReadFrom(r); err != nil {
		return nil, err
	}

	n, err := bodyLength(&req.Headers)
	if err != nil {
		return nil, err
	}
	body, err := readBody(r, n)
	if err != nil {
		return nil, err
	}
	req.Body = body

	return req, nil
}

func parseRequestLine(line string) (Method, string, Version, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return 0, "", 0, ErrInvalidRequest.Error(nil)
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return 0, "", 0, err
	}

	target := parts[1]
	if target == "" || !isRequestTarget(target) {
		return 0, "", 0, ErrInvalidRequest.Error(nil)
	}

	version, err := ParseVersion(parts[2])
	if err != nil {
		return 0, "", 0, err
	}

	return method, target, version, nil
}

func isRequestTarget(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isVChar(s[i]) {
			return false
		}
	}
	return true
}

// WriteTo serializes the request line, headers and body. It does not
// add or remove any header (e.g. Content-Length, Host): callers build
// a Request with the headers it must send.
func (req *Request) WriteTo(w *bufio.Writer) error {
	if _, err := w.WriteString(req.Method.String()); err != nil {
		return err
	}
	if _, err := w.WriteString(" "); err != nil {
		return err
	}
	if _, err := w.WriteString(req.Target); err != nil {
		return err
	}
	if _, err := w.WriteString(" "); err != nil {
		return err
	}
	if _, err := w.WriteString(req.Version.String()); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	if err := req.Headers.WriteTo(w); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	if err := req.Body.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}
