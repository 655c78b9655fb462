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

// trieNode is a single byte-indexed level of a Trie. Each node owns a
// fixed 256-entry fan-out table so descending one key byte is a single
// array index, never a map lookup or a comparison scan.
type trieNode[T any] struct {
	children [256]*trieNode[T]
	value    *T
	has      bool
}

// Trie maps byte-slice keys (request paths) to values (method handler
// tables) through a 256-way fan-out at every level.
type Trie[T any] struct {
	root trieNode[T]
}

func NewTrie[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Add stores value under key, creating any missing intermediate nodes.
// key must not be empty.
func (t *Trie[T]) Add(key []byte, value T) {
	if len(key) == 0 {
		panic("routing: Add called with an empty key")
	}
	cur := &t.root
	for _, b := range key {
		child := cur.children[b]
		if child == nil {
			child = &trieNode[T]{}
			cur.children[b] = child
		}
		cur = child
	}
	cur.value = &value
	cur.has = true
}

// Get returns the value stored for the exact key, if any.
func (t *Trie[T]) Get(key []byte) (T, bool) {
	var zero T
	if len(key) == 0 {
		return zero, false
	}
	cur := &t.root
	for _, b := range key {
		cur = cur.children[b]
		if cur == nil {
			return zero, false
		}
	}
	if !cur.has {
		return zero, false
	}
	return *cur.value, true
}

// MoveOut removes and returns the value stored for the exact key.
func (t *Trie[T]) MoveOut(key []byte) (T, bool) {
	var zero T
	if len(key) == 0 {
		return zero, false
	}
	cur := &t.root
	for _, b := range key {
		cur = cur.children[b]
		if cur == nil {
			return zero, false
		}
	}
	if !cur.has {
		return zero, false
	}
	v := *cur.value
	cur.value = nil
	cur.has = false
	return v, true
}

// GetPrefix returns the value stored for the longest registered key
// that is an ancestor of (or equal to) key. A node's own value always
// wins over one inherited from an ancestor; if neither the node nor
// any of its ancestors along the walked path carries a value, ok is
// false.
func (t *Trie[T]) GetPrefix(key []byte) (T, bool) {
	var zero T
	if len(key) == 0 {
		return zero, false
	}

	cur := t.root.children[key[0]]
	if cur == nil {
		return zero, false
	}
	rest := key[1:]

	var inherited *T
	for {
		if len(rest) == 0 {
			if cur.has {
				return *cur.value, true
			}
			if inherited != nil {
				return *inherited, true
			}
			return zero, false
		}

		if cur.has {
			inherited = cur.value
		}

		next := cur.children[rest[0]]
		if next == nil {
			if cur.has {
				return *cur.value, true
			}
			if inherited != nil {
				return *inherited, true
			}
			return zero, false
		}

		cur = next
		rest = rest[1:]
	}
}
