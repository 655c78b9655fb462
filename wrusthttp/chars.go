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

// Character classes from RFC 7230, checked byte-by-byte while parsing
// the request/status line and header lines so malformed input is
// rejected instead of silently passed through.

func isTokenChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

func isToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}

// isVChar reports a visible (printing) US-ASCII character.
func isVChar(b byte) bool {
	return b >= 0x21 && b <= 0x7E
}

func isOWS(b byte) bool {
	return b == ' ' || b == '\t'
}

// isFieldContentChar allows vchar, space and tab, matching the
// field-content grammar used for header values.
func isFieldContentChar(b byte) bool {
	return isVChar(b) || isOWS(b) || b >= 0x80
}

func isFieldContent(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isFieldContentChar(s[i]) {
			return false
		}
	}
	return true
}

func trimOWS(s string) string {
	start := 0
	for start < len(s) && isOWS(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isOWS(s[end-1]) {
		end--
	}
	return s[start:end]
}
