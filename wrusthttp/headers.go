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

// Header is a single name/value pair as read off the wire. Name keeps
// its normalized form (see normalizeHeaderName); Value is stored
// verbatim once surrounding optional whitespace is trimmed.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered list of header fields. Order is preserved on
// both read and write since a handler may depend on it (e.g. multiple
// Set-Cookie lines), and lookups are case-insensitive per RFC 7230.
type Headers struct {
	items []Header
}

func NewHeaders() *Headers {
	return &Headers{}
}

// normalizeHeaderName title-cases a header name the way net/textproto's
// CanonicalMIMEHeaderKey does, except the next letter is also
// capitalized after an underscore in addition to a space or hyphen.
// This is a deliberate deviation from strict RFC casing conventions:
// it makes "x_request_id" render as "X_Request_Id" rather than
// "X_request_id", which keeps underscore-separated header names
// readable without requiring callers to pre-format them.
func normalizeHeaderName(name string) string {
	b := []byte(name)
	upperNext := true
	for i, c := range b {
		switch {
		case c == ' ' || c == '-' || c == '_':
			upperNext = true
		case upperNext:
			if c >= 'a' && c <= 'z' {
				b[i] = c - ('a' - 'A')
			}
			upperNext = false
		default:
			if c >= 'A' && c <= 'Z' {
				b[i] = c + ('a' - 'A')
			}
		}
	}
	return string(b)
}

// Add appends name/value without replacing any existing entry for the
// same name.
func (h *Headers) Add(name, value string) {
	h.items = append(h.items, Header{Name: normalizeHeaderName(name), Value: value})
}

// Set replaces every existing entry for name with a single new one.
func (h *Headers) Set(name, value string) {
	norm := normalizeHeaderName(name)
	out := h.items[:0]
	for _, it := range h.items {
		if it.Name != norm {
			out = append(out, it)
		}
	}
	h.items = append(out, Header{Name: norm, Value: value})
}

// Get returns the first value stored under name, case-insensitively.
func (h *Headers) Get(name string) (string, bool) {
	norm := normalizeHeaderName(name)
	for _, it := range h.items {
		if it.Name == norm {
			return it.Value, true
		}
	}
	return "", false
}

// All returns every header in the order they were added or read.
func (h *Headers) All() []Header {
	return h.items
}

// ReadFrom consumes CRLF-terminated header lines from r until it hits
// the blank line that terminates the header block. It does not support
// obsolete line-folding: a continuation line is a malformed request.
func (h *Headers) ReadFrom(r *bufio.Reader) error {
	for {
		line, err := readCRLFLine(r)
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		hdr, perr := parseHeaderLine(line)
		if perr != nil {
			return perr
		}
		h.items = append(h.items, hdr)
	}
}

func parseHeaderLine(line string) (Header, error) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return Header{}, ErrInvalidRequest.Error(nil)
	}

	name := line[:colon]
	if !isToken(name) {
		return Header{}, ErrInvalidRequest.Error(nil)
	}

	value := trimOWS(line[colon+1:])
	if !isFieldContent(value) {
		return Header{}, ErrInvalidRequest.Error(nil)
	}

	return Header{Name: normalizeHeaderName(name), Value: value}, nil
}

// WriteTo writes every header as a CRLF-terminated "Name: Value" line.
// It does not write the trailing blank line; the caller writes that
// once after both headers and any trailer set have been flushed.
func (h *Headers) WriteTo(w *bufio.Writer) error {
	for _, it := range h.items {
		if _, err := w.WriteString(it.Name); err != nil {
			return err
		}
		if _, err := w.WriteString(": "); err != nil {
			return err
		}
		if _, err := w.WriteString(it.Value); err != nil {
			return err
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
	}
	return nil
}
