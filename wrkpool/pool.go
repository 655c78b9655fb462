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

package wrkpool

import "time"

// DefaultIdleTimeout is how long a dynamic worker waits for its next action
// before retiring, absent an explicit override.
const DefaultIdleTimeout = 10 * time.Second

// Pool dispatches work to a static tier of min always-running workers and,
// once that tier is saturated, to a dynamic tier that can grow up to max
// total workers.
type Pool struct {
	stat    *staticPool
	dynamic *dynamicPool
}

// New builds a Pool with min core workers and room to grow to max workers
// total. Either min or max may be zero, but not both.
func New(min, max int) (*Pool, error) {
	return NewWithIdleTimeout(min, max, DefaultIdleTimeout)
}

// NewWithIdleTimeout is New with an explicit dynamic-worker idle timeout.
func NewWithIdleTimeout(min, max int, idleTimeout time.Duration) (*Pool, error) {
	if min <= 0 && max <= 0 {
		return nil, ErrInvalidSize
	}

	p := &Pool{}
	if min > 0 {
		p.stat = newStaticPool(min)
	}
	if max > min {
		p.dynamic = newDynamicPool(max-min, idleTimeout)
	}
	return p, nil
}

// Run submits action to the pool: the static tier is tried first in
// round-robin order, then the dynamic tier. ErrBusy is returned only once
// both tiers have refused the action.
func (p *Pool) Run(action func()) error {
	if p.stat != nil && p.stat.run(action) {
		return nil
	}
	if p.dynamic != nil && p.dynamic.run(action) {
		return nil
	}
	return ErrBusy
}

// DynamicWorkers reports how many overflow workers are currently alive.
func (p *Pool) DynamicWorkers() int {
	if p.dynamic == nil {
		return 0
	}
	return p.dynamic.count()
}

// Close stops every static worker and closes the channel of every
// currently-assigned dynamic worker, blocking until all of them have
// finished their in-flight action and exited. Workers that are spawned
// concurrently with Close may be missed; callers should stop submitting new
// work before calling Close.
func (p *Pool) Close() {
	if p.stat != nil {
		p.stat.close()
	}
	if p.dynamic != nil {
		p.dynamic.closeAll()
	}
}
