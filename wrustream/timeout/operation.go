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

package timeout

import "time"

// operation tracks the cumulative time spent across the several syscalls a
// single logical read or write may take (a short frame written across many
// TCP segments, for instance), so the deadline applies to the whole message
// rather than resetting on every individual syscall.
type operation struct {
	budget  time.Duration
	elapsed time.Duration
	started time.Time
}

func newOperation(budget time.Duration) *operation {
	return &operation{budget: budget}
}

func (o *operation) nextTimeout() time.Duration {
	remaining := o.budget - o.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (o *operation) start() {
	o.started = time.Now()
}

func (o *operation) stop() {
	if o.started.IsZero() {
		return
	}
	o.elapsed += time.Since(o.started)
	o.started = time.Time{}
}
