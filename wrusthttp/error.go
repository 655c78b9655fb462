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

package wrusthttp

import "github/sabouaram/golib/errors"

// The codec's error taxonomy. ConnectionClosed and Timeout are silent,
// connection-ending conditions; InvalidRequest gets a 400 reply;
// everything else wrapped under Unknown is logged and ends the
// conversation. Busy, LockPoisoned and HandlerPanic belong to the server
// loop rather than the codec itself but share this range since they are
// reported through the same liberr.CodeError boundary.
const (
	ErrConnectionClosed errors.CodeError = iota + errors.MinPkgWrusthttp
	ErrTimeout
	ErrInvalidRequest
	ErrUnknown
	ErrBusy
	ErrLockPoisoned
	ErrHandlerPanic
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrConnectionClosed)
	errors.RegisterIdFctMessage(ErrConnectionClosed, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrConnectionClosed:
		return "connection closed"
	case ErrTimeout:
		return "operation timeout"
	case ErrInvalidRequest:
		return "invalid http request"
	case ErrUnknown:
		return "unexpected error"
	case ErrBusy:
		return "no worker available"
	case ErrLockPoisoned:
		return "a mutex holder panicked"
	case ErrHandlerPanic:
		return "handler panicked"
	}

	return ""
}
