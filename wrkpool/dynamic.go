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

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// dynamicWorker is one overflow goroutine. generation disambiguates it from
// whatever worker may later occupy the same slot index, so a retirement
// signal racing a fresh assignment can never clobber the wrong occupant.
type dynamicWorker struct {
	generation uint64
	work       chan func()
	drained    chan struct{}
}

// dynamicPool is the bounded overflow tier: workers are spawned on demand,
// up to max concurrently, and retire themselves after sitting idle past
// timeout.
type dynamicPool struct {
	mu      sync.Mutex
	slots   []*dynamicWorker // nil entry means the slot is free
	nextGen atomic.Uint64
	timeout time.Duration
	sem     *semaphore.Weighted
}

func newDynamicPool(max int, timeout time.Duration) *dynamicPool {
	return &dynamicPool{
		slots:   make([]*dynamicWorker, max),
		timeout: timeout,
		sem:     semaphore.NewWeighted(int64(max)),
	}
}

func (d *dynamicPool) run(action func()) bool {
	if d.trySpawn(action) {
		return true
	}

	d.mu.Lock()
	slots := append([]*dynamicWorker(nil), d.slots...)
	d.mu.Unlock()

	for _, w := range slots {
		if w == nil {
			continue
		}
		select {
		case w.work <- action:
			return true
		default:
		}
	}
	return false
}

func (d *dynamicPool) trySpawn(action func()) bool {
	if !d.sem.TryAcquire(1) {
		return false
	}

	d.mu.Lock()
	index := -1
	for i, w := range d.slots {
		if w == nil {
			index = i
			break
		}
	}
	if index == -1 {
		d.mu.Unlock()
		d.sem.Release(1)
		return false
	}

	gen := d.nextGen.Add(1)
	worker := &dynamicWorker{generation: gen, work: make(chan func()), drained: make(chan struct{})}
	d.slots[index] = worker
	d.mu.Unlock()

	go d.runWorker(index, worker, action)
	return true
}

func (d *dynamicPool) runWorker(index int, w *dynamicWorker, first func()) {
	defer close(w.drained)
	first()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	for {
		select {
		case action, ok := <-w.work:
			if !ok {
				d.retire(index, w.generation)
				return
			}
			action()
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(d.timeout)
		case <-timer.C:
			d.retire(index, w.generation)
			return
		}
	}
}

func (d *dynamicPool) retire(index int, generation uint64) {
	d.mu.Lock()
	if cur := d.slots[index]; cur != nil && cur.generation == generation {
		d.slots[index] = nil
	}
	d.mu.Unlock()
	d.sem.Release(1)
}

func (d *dynamicPool) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, w := range d.slots {
		if w != nil {
			n++
		}
	}
	return n
}

func (d *dynamicPool) closeAll() {
	d.mu.Lock()
	workers := append([]*dynamicWorker(nil), d.slots...)
	d.mu.Unlock()

	for _, w := range workers {
		if w == nil {
			continue
		}
		close(w.work)
	}
	for _, w := range workers {
		if w == nil {
			continue
		}
		<-w.drained
	}
}
