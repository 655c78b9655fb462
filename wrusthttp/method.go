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

// Method is one of the HTTP/1.1 request methods this codec understands.
type Method uint8

const (
	MethodGET Method = iota
	MethodHEAD
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodCONNECT
	MethodOPTIONS
	MethodTRACE
	MethodPATCH
)

func (m Method) String() string {
	switch m {
	case MethodGET:
		return "GET"
	case MethodHEAD:
		return "HEAD"
	case MethodPOST:
		return "POST"
	case MethodPUT:
		return "PUT"
	case MethodDELETE:
		return "DELETE"
	case MethodCONNECT:
		return "CONNECT"
	case MethodOPTIONS:
		return "OPTIONS"
	case MethodTRACE:
		return "TRACE"
	case MethodPATCH:
		return "PATCH"
	default:
		return ""
	}
}

// ParseMethod maps a request-line token to a Method. An unrecognized token
// is an InvalidRequest, not a silent default.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "GET":
		return MethodGET, nil
	case "HEAD":
		return MethodHEAD, nil
	case "POST":
		return MethodPOST, nil
	case "PUT":
		return MethodPUT, nil
	case "DELETE":
		return MethodDELETE, nil
	case "CONNECT":
		return MethodCONNECT, nil
	case "OPTIONS":
		return MethodOPTIONS, nil
	case "TRACE":
		return MethodTRACE, nil
	case "PATCH":
		return MethodPATCH, nil
	default:
		return 0, ErrInvalidRequest.Error(nil)
	}
}
