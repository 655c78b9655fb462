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

package connpool

import (
	"net"
	"sync"
	"time"

	uuid "github.com/hashicorp/go-uuid"
)

// DefaultIdleTimeout is how long an idle resource sits in the pool
// before the sweeper reclaims it.
const DefaultIdleTimeout = 30 * time.Second

const sweepInterval = 15 * time.Second

// MaxResources caps how many idle connections the pool holds at once.
// An insert past the cap evicts the single least-recently-used entry
// first, so the new entry always lands.
const MaxResources = 100

// Resource is one pooled connection. ID is a generated identifier
// carried alongside the connection purely for tracing; the pool keys
// entries by authority, not by ID.
type Resource struct {
	ID       string
	Conn     net.Conn
	lastUsed time.Time
}

// Pool caches at most one idle Resource per authority key
// ("host:port"). Get removes and returns the entry, handing ownership
// to the caller; Put reinserts it (or a fresh one) once the caller is
// done.
type Pool struct {
	mu          sync.Mutex
	items       map[string]*Resource
	idleTimeout time.Duration
	closed      bool
	closing     chan struct{}
	wg          sync.WaitGroup
}

// New starts a pool and its sweeper goroutine. A nil idleTimeout uses
// DefaultIdleTimeout.
func New(idleTimeout *time.Duration) *Pool {
	timeout := DefaultIdleTimeout
	if idleTimeout != nil {
		timeout = *idleTimeout
	}

	p := &Pool{
		items:       make(map[string]*Resource),
		idleTimeout: timeout,
		closing:     make(chan struct{}),
	}

	p.wg.Add(1)
	go p.sweep()

	return p
}

func (p *Pool) sweep() {
	defer p.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.closing:
			return
		case <-ticker.C:
			p.evictExpired()
		}
	}
}

func (p *Pool) evictExpired() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	for key, res := range p.items {
		if now.Sub(res.lastUsed) >= p.idleTimeout {
			_ = res.Conn.Close()
			delete(p.items, key)
		}
	}
}

// Get removes and returns the sole entry stored under key, if any.
func (p *Pool) Get(key string) (*Resource, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	res, ok := p.items[key]
	if ok {
		delete(p.items, key)
	}
	return res, ok
}

// Put stores conn under key, generating a tracing ID for it. At
// capacity the least-recently-used entry is evicted first so the new
// entry always lands.
func (p *Pool) Put(key string, conn net.Conn) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed.Error(nil)
	}

	if _, exists := p.items[key]; !exists && len(p.items) >= MaxResources {
		p.evictLRULocked()
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return ErrResourceID.Error(err)
	}

	p.items[key] = &Resource{ID: id, Conn: conn, lastUsed: time.Now()}
	return nil
}

func (p *Pool) evictLRULocked() {
	var lruKey string
	var lruTime time.Time
	first := true

	for key, res := range p.items {
		if first || res.lastUsed.Before(lruTime) {
			lruKey = key
			lruTime = res.lastUsed
			first = false
		}
	}

	if lruKey != "" {
		_ = p.items[lruKey].Conn.Close()
		delete(p.items, lruKey)
	}
}

// Len reports how many idle resources the pool currently holds.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Close stops the sweeper and closes every pooled connection. Further
// Put calls fail with ErrClosed.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for key, res := range p.items {
		_ = res.Conn.Close()
		delete(p.items, key)
	}
	p.mu.Unlock()

	close(p.closing)
	p.wg.Wait()
}
