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

package routing

import (
	"errors"
	"strings"
)

// ErrInvalidPath is returned by NormalizePath for anything that is not
// a rooted path, or that climbs above the root via "..".
var ErrInvalidPath = errors.New("routing: invalid path")

// NormalizePath resolves "." and ".." components out of an absolute
// path without touching the filesystem. It exists so a route lookup
// and a static file handler both see the same canonical key, and so a
// request target like "/../../etc/passwd" is rejected outright instead
// of silently clamped.
func NormalizePath(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath
	}

	var stack []string
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return "", ErrInvalidPath
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, part)
		}
	}

	if len(stack) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(stack, "/"), nil
}
