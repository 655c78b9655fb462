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

// Package timeout layers a cumulative, per-logical-message deadline on top
// of a wrustream.CancellableStream: a read or write that takes several
// syscalls to complete (partial frames, short reads) is bounded by the
// budget as a whole rather than having it reset on every syscall.
package timeout

import (
	"errors"
	"io"
	"time"

	"github/sabouaram/golib/wrustream"
)

// Stream is the capability a TimeoutStream needs from its underlying
// transport. wrustream.CancellableStream and wrustream/observed.ObservableStream
// both satisfy it.
type Stream interface {
	io.Reader
	io.Writer
	Flush() error
	SetReadTimeout(d *time.Duration)
	SetWriteTimeout(d *time.Duration)
}

// TimeoutStream wraps a Stream with read and write budgets that accumulate
// across partial syscalls within the same logical message.
type TimeoutStream struct {
	stream Stream

	readBudget  *time.Duration
	writeBudget *time.Duration

	ongoingRead  *operation
	ongoingWrite *operation
}

// New wraps stream with the given read/write budgets. Either may be nil to
// pass reads or writes through unbounded.
func New(stream Stream, readBudget, writeBudget *time.Duration) *TimeoutStream {
	return &TimeoutStream{stream: stream, readBudget: readBudget, writeBudget: writeBudget}
}

// ResetRead clears the accumulated elapsed time for reads, starting a fresh
// budget window for the next logical message (e.g. the next request on a
// persistent connection).
func (t *TimeoutStream) ResetRead() {
	t.ongoingRead = nil
}

// ResetWrite clears the accumulated elapsed time for writes.
func (t *TimeoutStream) ResetWrite() {
	t.ongoingWrite = nil
}

// Read implements io.Reader, applying the cumulative read budget if one was
// configured.
func (t *TimeoutStream) Read(buf []byte) (int, error) {
	if t.readBudget == nil {
		return t.stream.Read(buf)
	}

	if t.ongoingRead == nil {
		t.ongoingRead = newOperation(*t.readBudget)
	}
	op := t.ongoingRead

	next := op.nextTimeout()
	if next <= 0 {
		return 0, wrustream.ErrTimedOut
	}

	t.stream.SetReadTimeout(&next)
	op.start()
	n, err := t.stream.Read(buf)
	op.stop()

	if err != nil && isSpuriousBlock(err) {
		err = wrustream.ErrTimedOut
	}
	return n, err
}

// Write implements io.Writer, applying the cumulative write budget if one
// was configured.
func (t *TimeoutStream) Write(buf []byte) (int, error) {
	if t.writeBudget == nil {
		return t.stream.Write(buf)
	}

	if t.ongoingWrite == nil {
		t.ongoingWrite = newOperation(*t.writeBudget)
	}
	op := t.ongoingWrite

	next := op.nextTimeout()
	if next <= 0 {
		return 0, wrustream.ErrTimedOut
	}

	t.stream.SetWriteTimeout(&next)
	op.start()
	n, err := t.stream.Write(buf)
	op.stop()

	if err != nil && isSpuriousBlock(err) {
		err = wrustream.ErrTimedOut
	}
	return n, err
}

// Flush delegates to the underlying stream.
func (t *TimeoutStream) Flush() error {
	return t.stream.Flush()
}

// isSpuriousBlock reports whether err is the underlying stream reporting a
// would-block/interrupted condition that should be folded into a plain
// timeout rather than surfaced as a distinct error.
func isSpuriousBlock(err error) bool {
	return errors.Is(err, wrustream.ErrInterrupted)
}
