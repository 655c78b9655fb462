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

package retry

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultMinWait and DefaultMaxWait bound the backoff between redial
// attempts after a pooled connection turns out to be dead.
const (
	DefaultMinWait    = 50 * time.Millisecond
	DefaultMaxWait    = 2 * time.Second
	DefaultMaxRetries = 3
)

// Policy bounds how many times a request may be redialed, and how long
// to wait between attempts.
type Policy struct {
	MaxRetries int
	MinWait    time.Duration
	MaxWait    time.Duration
}

// Default returns the policy wrustclient.Client uses unless overridden.
func Default() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		MinWait:    DefaultMinWait,
		MaxWait:    DefaultMaxWait,
	}
}

// Backoff returns how long to wait before attemptNum+1, reusing
// retryablehttp's exponential backoff curve. wrustclient's transport
// is not net/http, so there is never a *http.Response to inspect; nil
// is always passed in its place, which DefaultBackoff already guards
// against.
func (p Policy) Backoff(attemptNum int) time.Duration {
	return retryablehttp.DefaultBackoff(p.MinWait, p.MaxWait, attemptNum, nil)
}

// Run invokes attempt up to p.MaxRetries+1 times, stopping at the first
// nil error. shouldRetry decides whether a given error is worth
// retrying at all (e.g. a dial failure or a dead pooled connection, as
// opposed to a malformed request the retry would repeat verbatim).
func Run(p Policy, shouldRetry func(error) bool, attempt func(attemptNum int) error) error {
	var err error
	for n := 0; n <= p.MaxRetries; n++ {
		if n > 0 {
			time.Sleep(p.Backoff(n - 1))
		}

		err = attempt(n)
		if err == nil {
			return nil
		}
		if !shouldRetry(err) {
			return err
		}
	}
	return err
}
