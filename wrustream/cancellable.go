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

package wrustream

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github/sabouaram/golib/poller"
)

// ErrInterrupted signals that a readiness event fired but no byte was
// actually transferred; callers (buffered readers in particular) are
// expected to retry rather than treat this as a real error.
var ErrInterrupted = errors.New("wrustream: interrupted, retry")

const pollKey = 1

// CancellableStream wraps a BaseStream with a poll instance registered on
// the stream's own descriptor, so any read or write can be bounded by a
// caller-set deadline and aborted from another goroutine via Shutdown.
type CancellableStream struct {
	base BaseStream

	hasPoll bool
	p       *poller.Poller
	fd      int

	done atomic.Bool

	mu           sync.RWMutex
	readTimeout  *time.Duration
	writeTimeout *time.Duration
}

// New constructs a CancellableStream over base. When base supports
// poll-driven IO (PollFD returns ok=true) it is switched to non-blocking
// mode and registered with a fresh poller under key 1; otherwise the
// deadline-based fallback path is used transparently.
func New(base BaseStream) (*CancellableStream, error) {
	cs := &CancellableStream{base: base}

	fd, ok := base.PollFD()
	if !ok {
		return cs, nil
	}

	p, err := poller.New()
	if err != nil {
		return nil, err
	}
	if err = base.SetNonblocking(true); err != nil {
		_ = p.Close()
		return nil, err
	}
	if err = p.Register(fd, pollKey, poller.EventReadable); err != nil {
		_ = p.Close()
		return nil, err
	}

	cs.hasPoll = true
	cs.p = p
	cs.fd = fd
	return cs, nil
}

// SetReadTimeout sets (or clears, with nil) the deadline applied to the next
// Read call.
func (c *CancellableStream) SetReadTimeout(d *time.Duration) {
	c.mu.Lock()
	c.readTimeout = d
	c.mu.Unlock()
}

// SetWriteTimeout sets (or clears, with nil) the deadline applied to the
// next Write call.
func (c *CancellableStream) SetWriteTimeout(d *time.Duration) {
	c.mu.Lock()
	c.writeTimeout = d
	c.mu.Unlock()
}

func (c *CancellableStream) getReadTimeout() *time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readTimeout
}

func (c *CancellableStream) getWriteTimeout() *time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.writeTimeout
}

// Cancel wakes a goroutine blocked inside Read/Write without shutting the
// socket down. Only meaningful on the poll-driven path; the deadline
// fallback path relies on Shutdown instead.
func (c *CancellableStream) Cancel() error {
	if !c.hasPoll {
		return nil
	}
	return c.p.Notify()
}

// Shutdown marks the stream done and shuts down the underlying transport in
// the given direction. Every subsequent Read/Write returns ErrNotConnected.
func (c *CancellableStream) Shutdown(dir Direction) error {
	c.done.Store(true)
	if c.hasPoll {
		_ = c.p.Notify()
	}
	return c.base.Shutdown(dir)
}

// Done reports whether Shutdown has been called.
func (c *CancellableStream) Done() bool {
	return c.done.Load()
}

// Flush delegates to the underlying transport.
func (c *CancellableStream) Flush() error {
	return c.base.Flush()
}

// Read implements io.Reader with the poll-gated semantics from the core
// design: one poll wait bounded by the current read timeout, one transport
// read attempt, ErrInterrupted on a no-progress wakeup.
func (c *CancellableStream) Read(buf []byte) (int, error) {
	if c.done.Load() {
		return 0, ErrNotConnected
	}
	if c.hasPoll {
		return c.readPoll(buf)
	}
	return c.readDeadline(buf)
}

// Write implements io.Writer: it loops, via poll or deadline, until buf is
// fully drained, translating WouldBlock into a retry.
func (c *CancellableStream) Write(buf []byte) (int, error) {
	if c.done.Load() {
		return 0, ErrNotConnected
	}
	if c.hasPoll {
		return c.writePoll(buf)
	}
	return c.writeDeadline(buf)
}

func (c *CancellableStream) readPoll(buf []byte) (int, error) {
	if err := c.p.Modify(c.fd, poller.EventReadable); err != nil {
		return 0, err
	}

	ready, err := c.p.Wait(timeoutOrInfinite(c.getReadTimeout()))
	if err != nil {
		return 0, err
	}
	if len(ready) == 0 {
		if c.done.Load() {
			return 0, ErrNotConnected
		}
		return 0, ErrTimedOut
	}

	n, rerr := c.base.Read(buf)
	if rerr != nil {
		if isWouldBlock(rerr) {
			return 0, ErrInterrupted
		}
		return 0, rerr
	}
	if n == 0 {
		if c.done.Load() {
			return 0, ErrNotConnected
		}
		return 0, io.EOF
	}
	return n, nil
}

func (c *CancellableStream) writePoll(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		if err := c.p.Modify(c.fd, poller.EventWritable); err != nil {
			return total, err
		}

		ready, err := c.p.Wait(timeoutOrInfinite(c.getWriteTimeout()))
		if err != nil {
			return total, err
		}
		if len(ready) == 0 {
			if c.done.Load() {
				return total, ErrNotConnected
			}
			return total, ErrTimedOut
		}

		n, werr := c.base.Write(buf[total:])
		if werr != nil {
			if isWouldBlock(werr) {
				continue
			}
			_ = c.base.SetNonblocking(false)
			return total, werr
		}
		total += n
	}
	return total, nil
}

func (c *CancellableStream) readDeadline(buf []byte) (int, error) {
	if err := c.base.SetDeadlineTimeout(DirRead, deadlineFrom(c.getReadTimeout())); err != nil {
		return 0, err
	}
	n, err := c.base.Read(buf)
	if err != nil {
		if isDeadlineErr(err) {
			if c.done.Load() {
				return 0, ErrNotConnected
			}
			return 0, ErrTimedOut
		}
		if c.done.Load() {
			return 0, ErrNotConnected
		}
		return 0, err
	}
	if n == 0 {
		if c.done.Load() {
			return 0, ErrNotConnected
		}
		return 0, io.EOF
	}
	return n, nil
}

func (c *CancellableStream) writeDeadline(buf []byte) (int, error) {
	if err := c.base.SetDeadlineTimeout(DirWrite, deadlineFrom(c.getWriteTimeout())); err != nil {
		return 0, err
	}
	total := 0
	for total < len(buf) {
		n, err := c.base.Write(buf[total:])
		if err != nil {
			if isDeadlineErr(err) {
				if c.done.Load() {
					return total, ErrNotConnected
				}
				return total, ErrTimedOut
			}
			return total, err
		}
		total += n
	}
	return total, nil
}

func timeoutOrInfinite(d *time.Duration) time.Duration {
	if d == nil {
		return -1
	}
	return *d
}

func deadlineFrom(d *time.Duration) time.Time {
	if d == nil {
		return time.Time{}
	}
	return time.Now().Add(*d)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func isDeadlineErr(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
