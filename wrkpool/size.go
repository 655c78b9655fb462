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
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// DynamicMaxMultiplier is how many dynamic workers DefaultSizes allows per
// logical CPU, on top of the one-core-per-CPU static tier.
const DynamicMaxMultiplier = 4

// DefaultSizes returns a (min, max) pair sized off the host's logical CPU
// count: one static worker per core, and room for DynamicMaxMultiplier
// dynamic workers per core on top of that. It falls back to
// runtime.NumCPU when the host's CPU count can't be read (e.g. inside a
// restricted container), since a pool still needs a usable size to start.
func DefaultSizes() (min, max int) {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	if n <= 0 {
		n = 1
	}
	return n, n + n*DynamicMaxMultiplier
}

// NewDefault builds a Pool sized by DefaultSizes.
func NewDefault() (*Pool, error) {
	min, max := DefaultSizes()
	return New(min, max)
}
