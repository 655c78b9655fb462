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
	"strconv"
	"strings"
)

// Response is a fully parsed HTTP/1.1 response: status line, headers
// and a Content-Length-framed body.
type Response struct {
	Version Version
	Status  StatusCode
	Headers Headers
	Body    Body
}

// NewResponse builds a response with Content-Length set from body,
// which is how every handler in this codec produces its reply: the
// framing header is derived, never left for the caller to forget.
func NewResponse(status StatusCode, headers *Headers, body []byte) *Response {
	h := Headers{}
	if headers != nil {
		h.items = append(h.items, headers.items...)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))

	return &Response{
		Version: Version11,
		Status:  status,
		Headers: h,
		Body:    Body{Bytes: body},
	}
}

func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := readCRLFLine(r)
	if err != nil {
		return nil, err
	}

	version, status, err := parseStatusLine(line)
	if err != nil {
		return nil, err
	}

	resp := &Response{Version: version, Status: status}
	if err := resp.Headers.ReadFrom(r); err != nil {
		return nil, err
	}

	n, err := bodyLength(&resp.Headers)
	if err != nil {
		return nil, err
	}
	body, err := readBody(r, n)
	if err != nil {
		return nil, err
	}
	resp.Body = body

	return resp, nil
}

func parseStatusLine(line string) (Version, StatusCode, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, 0, ErrInvalidRequest.Error(nil)
	}

	version, err := ParseVersion(parts[0])
	if err != nil {
		return 0, 0, err
	}

	status, err := ParseStatusCode(parts[1])
	if err != nil {
		return 0, 0, err
	}

	return version, status, nil
}

func (resp *Response) WriteTo(w *bufio.Writer) error {
	if _, err := w.WriteString(resp.Version.String()); err != nil {
		return err
	}
	if _, err := w.WriteString(" "); err != nil {
		return err
	}
	if _, err := w.WriteString(strconv.Itoa(int(resp.Status))); err != nil {
		return err
	}
	if _, err := w.WriteString(" "); err != nil {
		return err
	}
	if _, err := w.WriteString(resp.Status.Reason()); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	if err := resp.Headers.WriteTo(w); err != nil {
		return err
	}
	if _, err := w.WriteString("\r\n"); err != nil {
		return err
	}
	if err := resp.Body.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}
