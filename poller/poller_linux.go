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

//go:build linux

package poller

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// Event is a bitmask of the readiness conditions a registration cares about.
type Event uint8

const (
	// EventReadable means the descriptor has data (or a pending accept) to read.
	EventReadable Event = 1 << iota
	// EventWritable means the descriptor can accept a write without blocking.
	EventWritable
)

// NotifyKey is the reserved key delivered for the internal wakeup descriptor.
// Stream and listener registrations must use any other key (the core always
// uses 1, matching the single-registration-per-instance usage pattern).
const NotifyKey = -1

const maxEvents = 32

// Readiness describes one fd becoming ready, identified by the key it was
// registered under.
type Readiness struct {
	Key    int
	Events Event
}

// Poller wraps one epoll instance plus an eventfd used for Notify wakeups.
// A Poller is intended to be owned by exactly one stream or listener; it is
// safe to call Notify from any goroutine while another blocks in Wait.
type Poller struct {
	epfd     int
	notifyFd int

	mu   sync.Mutex
	keys map[int32]int // fd -> caller key

	buf []unix.EpollEvent

	closed atomic.Bool
}

// New creates and arms an epoll instance with its notify eventfd registered.
func New() (*Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}

	evfd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, err
	}

	p := &Poller{
		epfd:     epfd,
		notifyFd: evfd,
		keys:     make(map[int32]int, 2),
		buf:      make([]unix.EpollEvent, maxEvents),
	}

	if err = unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, evfd, &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(evfd),
	}); err != nil {
		_ = unix.Close(evfd)
		_ = unix.Close(epfd)
		return nil, err
	}
	p.keys[int32(evfd)] = NotifyKey

	return p, nil
}

// Register arms fd for the given interest under key. key is reported back
// in the Readiness values produced by Wait.
func (p *Poller) Register(fd int, key int, interest Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return ErrClosed
	}

	ev := &unix.EpollEvent{Events: toEpoll(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		return err
	}
	p.keys[int32(fd)] = key
	return nil
}

// Modify changes the armed interest for an already-registered fd. Cancellable
// streams call this before every blocking read/write to narrow interest to
// exactly the direction they are about to wait on.
func (p *Poller) Modify(fd int, interest Event) error {
	if p.closed.Load() {
		return ErrClosed
	}

	ev := &unix.EpollEvent{Events: toEpoll(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev)
}

// Unregister removes fd from the poller.
func (p *Poller) Unregister(fd int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.keys, int32(fd))
	if p.closed.Load() {
		return nil
	}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Wait blocks until a registered fd becomes ready, Notify is called, or
// timeout elapses. A negative timeout blocks indefinitely. An empty,
// nil-error result means the deadline expired with no readiness: callers
// (CancellableStream) distinguish TimedOut from NotConnected from there.
func (p *Poller) Wait(timeout time.Duration) ([]Readiness, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}

	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
		if ms == 0 && timeout > 0 {
			ms = 1
		}
	}

	n, err := unix.EpollWait(p.epfd, p.buf, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	out := make([]Readiness, 0, n)
	p.mu.Lock()
	for i := 0; i < n; i++ {
		fd := p.buf[i].Fd
		key, ok := p.keys[fd]
		if !ok {
			continue
		}
		if key == NotifyKey {
			p.drainNotifyLocked()
			continue
		}
		out = append(out, Readiness{Key: key, Events: fromEpoll(p.buf[i].Events)})
	}
	p.mu.Unlock()

	return out, nil
}

// drainNotifyLocked empties the eventfd counter. Must be called with mu held.
func (p *Poller) drainNotifyLocked() {
	var buf [8]byte
	for {
		_, err := unix.Read(p.notifyFd, buf[:])
		if err != nil {
			return
		}
	}
}

// Notify wakes a thread blocked in Wait without touching any registered
// socket. Safe to call concurrently with Wait and with itself.
func (p *Poller) Notify() error {
	if p.closed.Load() {
		return ErrClosed
	}
	one := uint64(1)
	var buf [8]byte
	putUint64(buf[:], one)
	_, err := unix.Write(p.notifyFd, buf[:])
	if err == unix.EAGAIN {
		// counter already saturated/pending: a wakeup is already queued.
		return nil
	}
	return err
}

// Close releases the epoll and eventfd descriptors. Idempotent.
func (p *Poller) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	e1 := unix.Close(p.notifyFd)
	e2 := unix.Close(p.epfd)
	if e2 != nil {
		return e2
	}
	return e1
}

func toEpoll(events Event) uint32 {
	var e uint32
	if events&EventReadable != 0 {
		e |= unix.EPOLLIN
	}
	if events&EventWritable != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

func fromEpoll(events uint32) Event {
	var e Event
	if events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
		e |= EventReadable
	}
	if events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
		e |= EventWritable
	}
	return e
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
