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

// Package routing implements path-to-handler dispatch over a 256-way
// byte trie, plus the path normalization a static file handler needs
// to stay inside its served root.
package routing

import (
	"sync"

	"github/sabouaram/golib/wrusthttp"
)

// methodCount is one more than the highest Method value declared in
// wrusthttp, sized so a MethodHandlers table can be indexed directly
// by Method without a bounds check against a growing enum.
const methodCount = int(wrusthttp.MethodPATCH) + 1

// Handler answers a single request.
type Handler func(*wrusthttp.Request) *wrusthttp.Response

// methodHandlers is the per-route table of handlers, one slot per verb.
type methodHandlers struct {
	actions [methodCount]Handler
}

// Router dispatches a request to the handler registered for its exact
// path and method, or failing that, to the handler registered for the
// longest ancestor path that does have one. Registering a handler for
// "/a" also answers requests under "/a/b" unless "/a/b" has its own,
// more specific registration.
type Router struct {
	mu     sync.RWMutex
	routes *Trie[*methodHandlers]
}

func NewRouter() *Router {
	return &Router{routes: NewTrie[*methodHandlers]()}
}

// Add registers handler for route and method. A second Add for the
// same route and method replaces the first; a second Add for the same
// route under a different method extends the existing entry instead of
// overwriting it.
func (r *Router) Add(route string, method wrusthttp.Method, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mh, ok := r.routes.MoveOut([]byte(route))
	if !ok {
		mh = &methodHandlers{}
	}
	mh.actions[method] = handler
	r.routes.Add([]byte(route), mh)
}

// Get returns the handler registered for the exact route and method.
func (r *Router) Get(route string, method wrusthttp.Method) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mh, ok := r.routes.Get([]byte(route))
	if !ok {
		return nil, false
	}
	h := mh.actions[method]
	return h, h != nil
}

// GetPrefix returns the handler registered for the longest ancestor of
// route (route itself included) that has one for method.
func (r *Router) GetPrefix(route string, method wrusthttp.Method) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mh, ok := r.routes.GetPrefix([]byte(route))
	if !ok {
		return nil, false
	}
	h := mh.actions[method]
	return h, h != nil
}
