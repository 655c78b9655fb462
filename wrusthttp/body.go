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
	"io"
	"strconv"
	"strings"
)

// Body is a fixed-length message body. Framing is Content-Length only:
// chunked and any other Transfer-Encoding are explicitly rejected
// rather than silently treated as identity, since an HTTP/1.1 peer
// could use them to smuggle a second request past this codec.
type Body struct {
	Bytes []byte
}

// bodyLength inspects the header set and returns the number of body
// bytes to read. It returns 0, nil when there is no body at all. A
// Transfer-Encoding other than "identity" is rejected outright.
func bodyLength(h *Headers) (int, error) {
	if te, ok := h.Get("Transfer-Encoding"); ok {
		if !strings.EqualFold(trimOWS(te), "identity") {
			return 0, ErrInvalidRequest.Error(nil)
		}
	}

	cl, ok := h.Get("Content-Length")
	if !ok {
		return 0, nil
	}

	n, err := strconv.Atoi(trimOWS(cl))
	if err != nil || n < 0 {
		return 0, ErrInvalidRequest.Error(err)
	}
	return n, nil
}

// readBody reads exactly n bytes from r as dictated by bodyLength.
func readBody(r *bufio.Reader, n int) (Body, error) {
	if n == 0 {
		return Body{}, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Body{}, mapStreamErr(err)
	}
	return Body{Bytes: buf}, nil
}

func (b Body) WriteTo(w *bufio.Writer) error {
	if len(b.Bytes) == 0 {
		return nil
	}
	_, err := w.Write(b.Bytes)
	return err
}
