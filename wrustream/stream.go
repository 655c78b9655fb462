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
	"crypto/tls"
	"io"
	"net"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Direction selects which half of a duplex stream Shutdown affects.
type Direction uint8

const (
	DirRead Direction = iota
	DirWrite
	DirBoth
)

// BaseStream is the capability set every transport (plain TCP or secure)
// must expose so the rest of the core can stay polymorphic over it.
type BaseStream interface {
	io.Reader
	io.Writer
	Flush() error

	// SetNonblocking toggles the OS-level non-blocking flag on the transport.
	SetNonblocking(nonblocking bool) error

	// Shutdown half- or fully-closes the transport without releasing its fd.
	Shutdown(dir Direction) error

	// PollFD returns the raw descriptor usable as a poller registration
	// token, and whether this transport supports poll-driven cancellable
	// IO at all. Plain TCP streams always support it; secure streams fall
	// back to deadline-based cancellation (see SetDeadlineTimeout).
	PollFD() (fd int, ok bool)

	// SetDeadlineTimeout is used by the deadline-based fallback path (TLS)
	// in lieu of poll-driven IO: it sets an absolute read/write deadline on
	// the underlying connection.
	SetDeadlineTimeout(dir Direction, deadline time.Time) error
}

// tcpBase is the plain-TCP BaseStream: reads/writes go straight to the raw
// fd via nonblocking syscalls so CancellableStream can drive them through
// the poller exactly as spec'd, bypassing the Go runtime's own netpoller.
type tcpBase struct {
	conn *net.TCPConn
	fd   int
}

// NewTCP wraps an accepted/dialed TCP connection as a BaseStream.
func NewTCP(conn *net.TCPConn) (BaseStream, error) {
	fd, err := extractFD(conn)
	if err != nil {
		return nil, err
	}
	return &tcpBase{conn: conn, fd: fd}, nil
}

func (s *tcpBase) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *tcpBase) Write(p []byte) (int, error) {
	n, err := unix.Write(s.fd, p)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *tcpBase) Flush() error { return nil }

func (s *tcpBase) SetNonblocking(nonblocking bool) error {
	return unix.SetNonblock(s.fd, nonblocking)
}

func (s *tcpBase) Shutdown(dir Direction) error {
	how := unix.SHUT_RDWR
	switch dir {
	case DirRead:
		how = unix.SHUT_RD
	case DirWrite:
		how = unix.SHUT_WR
	}
	return unix.Shutdown(s.fd, how)
}

func (s *tcpBase) PollFD() (int, bool) { return s.fd, true }

func (s *tcpBase) SetDeadlineTimeout(dir Direction, deadline time.Time) error {
	switch dir {
	case DirRead:
		return s.conn.SetReadDeadline(deadline)
	case DirWrite:
		return s.conn.SetWriteDeadline(deadline)
	default:
		return s.conn.SetDeadline(deadline)
	}
}

// secureBase is the TLS BaseStream. The record layer is opaque (spec.md's
// "pluggable secure stream"): reads/writes go through *tls.Conn, which
// cannot be driven non-blocking, so cancellation and timeouts use the
// standard net.Conn deadline API instead of the poller. Shutting down the
// underlying raw connection still unblocks any goroutine parked in a
// deadline-bounded Read/Write, which is what CancellableStream.cancel
// relies on for this path.
type secureBase struct {
	raw  *net.TCPConn
	fd   int
	conn *tls.Conn
}

// NewSecure wraps an already-handshaking (or handshaken) *tls.Conn together
// with the raw TCP connection it was built from.
func NewSecure(raw *net.TCPConn, conn *tls.Conn) (BaseStream, error) {
	fd, err := extractFD(raw)
	if err != nil {
		return nil, err
	}
	return &secureBase{raw: raw, fd: fd, conn: conn}, nil
}

func (s *secureBase) Read(p []byte) (int, error)  { return s.conn.Read(p) }
func (s *secureBase) Write(p []byte) (int, error) { return s.conn.Write(p) }
func (s *secureBase) Flush() error                { return nil }

func (s *secureBase) SetNonblocking(bool) error { return nil }

func (s *secureBase) Shutdown(dir Direction) error {
	how := unix.SHUT_RDWR
	switch dir {
	case DirRead:
		how = unix.SHUT_RD
	case DirWrite:
		how = unix.SHUT_WR
	}
	return unix.Shutdown(s.fd, how)
}

func (s *secureBase) PollFD() (int, bool) { return s.fd, false }

func (s *secureBase) SetDeadlineTimeout(dir Direction, deadline time.Time) error {
	switch dir {
	case DirRead:
		return s.conn.SetReadDeadline(deadline)
	case DirWrite:
		return s.conn.SetWriteDeadline(deadline)
	default:
		return s.conn.SetDeadline(deadline)
	}
}

func extractFD(conn syscall.Conn) (int, error) {
	rc, err := conn.SyscallConn()
	if err != nil {
		return 0, err
	}
	var fd int
	if err = rc.Control(func(p uintptr) { fd = int(p) }); err != nil {
		return 0, err
	}
	return fd, nil
}
