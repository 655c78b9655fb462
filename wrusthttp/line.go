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
	"errors"
	"io"
	"strings"

	"github/sabouaram/golib/wrustream"
)

const maxLineLength = 8192

// readCRLFLine reads a single line terminated by "\r\n" (a bare "\n" is
// also accepted, matching common client leniency) and returns it
// without the terminator. A line longer than maxLineLength is rejected
// as an invalid request rather than left to grow unbounded.
func readCRLFLine(r *bufio.Reader) (string, error) {
	raw, err := r.ReadString('\n')
	if err != nil {
		if raw == "" {
			return "", mapStreamErr(err)
		}
		return "", ErrInvalidRequest.Error(err)
	}
	if len(raw) > maxLineLength {
		return "", ErrInvalidRequest.Error(nil)
	}
	return strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r"), nil
}

// mapStreamErr translates the sentinel errors surfaced by the
// cancellable/timeout stream stack into this package's CodeError
// taxonomy so callers only ever see wrusthttp errors.
func mapStreamErr(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return ErrConnectionClosed.Error(err)
	case errors.Is(err, wrustream.ErrNotConnected):
		return ErrConnectionClosed.Error(err)
	case errors.Is(err, wrustream.ErrTimedOut):
		return ErrTimeout.Error(err)
	default:
		return ErrUnknown.Error(err)
	}
}
