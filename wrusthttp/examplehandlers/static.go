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

// Package examplehandlers holds supplementary, non-core handlers built
// on top of wrusthttp and routing: a static file server and a request
// logging middleware. Neither is part of the codec or the server loop
// itself — both are here to show how a handler is meant to be written
// against the rest of this module.
package examplehandlers

import (
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github/sabouaram/golib/routing"
	"github/sabouaram/golib/wrusthttp"
)

// ServeStatic returns a handler serving files rooted at dir. The
// request target is normalized before it is joined to dir so a target
// like "/../../etc/passwd" is rejected rather than escaping dir.
func ServeStatic(dir string) routing.Handler {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}

	return func(req *wrusthttp.Request) *wrusthttp.Response {
		clean, err := routing.NormalizePath(req.Target)
		if err != nil {
			return wrusthttp.NewResponse(wrusthttp.StatusNotFound, nil, nil)
		}

		path := filepath.Join(root, clean)

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return wrusthttp.NewResponse(wrusthttp.StatusNotFound, nil, nil)
			}
			return wrusthttp.NewResponse(wrusthttp.StatusInternalServerError, nil, nil)
		}
		if info.IsDir() {
			return wrusthttp.NewResponse(wrusthttp.StatusNotFound, nil, nil)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return wrusthttp.NewResponse(wrusthttp.StatusInternalServerError, nil, nil)
		}

		mtype := mimetype.Detect(content)

		headers := wrusthttp.NewHeaders()
		headers.Set("Content-Type", mtype.String())

		return wrusthttp.NewResponse(wrusthttp.StatusOK, headers, content)
	}
}
