// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "math/bits"

// MaxKey is the largest key code a KeySet can hold.
const MaxKey Key = 255

// KeySet is a set of keys. The zero value is empty. KeySet is a value type:
// assignment copies the set.
type KeySet [4]uint64

// KeySetOf returns a set holding keys.
func KeySetOf(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k. Keys above MaxKey are ignored.
func (s *KeySet) Add(k Key) {
	if k > MaxKey {
		return
	}
	s[k>>6] |= 1 << (k & 63)
}

// Remove deletes k.
func (s *KeySet) Remove(k Key) {
	if k > MaxKey {
		return
	}
	s[k>>6] &^= 1 << (k & 63)
}

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	if k > MaxKey {
		return false
	}
	return s[k>>6]&(1<<(k&63)) != 0
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set holds no keys.
func (s KeySet) IsEmpty() bool {
	return s == KeySet{}
}

// Union returns the keys in s or o.
func (s KeySet) Union(o KeySet) KeySet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

// Without returns the keys in s that are not in o.
func (s KeySet) Without(o KeySet) KeySet {
	for i := range s {
		s[i] &^= o[i]
	}
	return s
}

// Keys returns the keys in ascending order.
func (s KeySet) Keys() []Key {
	var keys []Key
	s.each(func(k Key) {
		keys = append(keys, k)
	})
	return keys
}

// each calls fn for every key in ascending order.
func (s KeySet) each(fn func(Key)) {
	for i, w := range s {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(Key(i*64 + tz)) //nolint:gosec // i*64+tz <= MaxKey
			w &= w - 1
		}
	}
}
