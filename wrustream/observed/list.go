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

// Package observed tracks every live CancellableStream handed out by a
// listener, so the server can shut them all down together on a graceful
// stop without waiting for each connection's handler goroutine to notice on
// its own.
//
// Unlike a reference-counted Drop in a non-GC'd runtime, a stream here is
// untracked by an explicit Close call rather than by its last clone going
// out of scope: that is the idiomatic Go rendition of the same "remove
// myself from the parent list" behavior.
package observed

import (
	"sync"
	"sync/atomic"

	"github/sabouaram/golib/wrustream"
)

// ObservableStream is a CancellableStream that knows how to remove itself
// from the StreamList that is tracking it.
type ObservableStream struct {
	*wrustream.CancellableStream

	list *StreamList
	key  int64
}

// Close untracks the stream from its parent list and shuts it down in both
// directions. Safe to call more than once.
func (o *ObservableStream) Close() error {
	if o.list != nil {
		o.list.untrack(o.key)
	}
	return o.CancellableStream.Shutdown(wrustream.DirBoth)
}

// StreamList is the set of currently live ObservableStreams belonging to a
// single listener or server instance.
type StreamList struct {
	mu      sync.RWMutex
	items   map[int64]*ObservableStream
	nextKey atomic.Int64
}

// NewStreamList returns an empty, ready to use StreamList.
func NewStreamList() *StreamList {
	return &StreamList{items: make(map[int64]*ObservableStream)}
}

// Track wraps stream as an ObservableStream, registers it, and returns the
// wrapper. The caller owns the returned stream: it must call Close when the
// connection it backs is done, and should route server-wide shutdowns
// through ShutdownAll instead.
func (l *StreamList) Track(stream *wrustream.CancellableStream) *ObservableStream {
	key := l.nextKey.Add(1) - 1
	o := &ObservableStream{CancellableStream: stream, list: l, key: key}

	l.mu.Lock()
	l.items[key] = o
	l.mu.Unlock()

	return o
}

// Len reports how many streams are currently tracked.
func (l *StreamList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *StreamList) untrack(key int64) {
	l.mu.Lock()
	delete(l.items, key)
	l.mu.Unlock()
}

// Drain empties the list and returns everything that was tracked, without
// shutting any of them down. Mainly useful for tests and for callers that
// want to apply their own shutdown policy.
func (l *StreamList) Drain() []*ObservableStream {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*ObservableStream, 0, len(l.items))
	for _, o := range l.items {
		out = append(out, o)
	}
	l.items = make(map[int64]*ObservableStream)
	return out
}

// ShutdownAll drains the list and shuts every stream down in both
// directions, unblocking any goroutine currently parked in a Read or Write.
func (l *StreamList) ShutdownAll() {
	for _, o := range l.Drain() {
		_ = o.CancellableStream.Shutdown(wrustream.DirBoth)
	}
}
