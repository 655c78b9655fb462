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

import "sync"

// staticWorker is a single always-running goroutine fed over a
// zero-capacity channel: a send only succeeds while the worker is parked
// waiting for its next action, so a try-send doubles as a busy probe.
type staticWorker struct {
	work    chan func()
	drained chan struct{}
}

func newStaticWorker() *staticWorker {
	w := &staticWorker{work: make(chan func()), drained: make(chan struct{})}
	go func() {
		defer close(w.drained)
		for action := range w.work {
			action()
		}
	}()
	return w
}

func (w *staticWorker) tryRun(action func()) bool {
	select {
	case w.work <- action:
		return true
	default:
		return false
	}
}

// staticPool is the fixed-size core tier: round-robin over every worker,
// remembering where the last dispatch landed so load spreads evenly.
type staticPool struct {
	mu      sync.Mutex
	next    int
	workers []*staticWorker
}

func newStaticPool(size int) *staticPool {
	workers := make([]*staticWorker, size)
	for i := range workers {
		workers[i] = newStaticWorker()
	}
	return &staticPool{workers: workers}
}

func (s *staticPool) run(action func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.workers)
	idx := s.next
	for i := 0; i < n; i++ {
		if s.workers[idx].tryRun(action) {
			s.next = (idx + 1) % n
			return true
		}
		idx = (idx + 1) % n
	}
	return false
}

func (s *staticPool) close() {
	s.mu.Lock()
	for _, w := range s.workers {
		close(w.work)
	}
	s.mu.Unlock()

	for _, w := range s.workers {
		<-w.drained
	}
}
