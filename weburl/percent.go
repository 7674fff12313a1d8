/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package weburl

import (
	"strings"
	"unicode/utf8"
)

// EncodeSet selects one of the fixed percent-encode sets of the URL Standard.
// Every set contains the C0 controls and all bytes above 0x7E.
type EncodeSet uint8

const (
	// C0ControlSet is used for opaque paths and opaque hosts.
	C0ControlSet EncodeSet = iota
	// FragmentSet adds space, '"', '<', '>' and '`'.
	FragmentSet
	// QuerySet adds space, '"', '#', '<' and '>'.
	QuerySet
	// SpecialQuerySet adds "'" to QuerySet and is used for special URLs.
	SpecialQuerySet
	// PathSet adds '?', '`', '{' and '}' to QuerySet.
	PathSet
	// UserinfoSet adds '/', ':', ';', '=', '@', '[' to '^' and '|' to PathSet.
	UserinfoSet
	// ComponentSet adds '$', '%', '&', '+' and ',' to UserinfoSet.
	ComponentSet
	// FormURLEncodedSet adds '!', "'", '(', ')' and '~' to ComponentSet.
	FormURLEncodedSet
)

const upperhex = "0123456789ABCDEF"

// encodeTables holds, per EncodeSet, whether an ASCII byte must be escaped.
var encodeTables = buildEncodeTables()

func buildEncodeTables() [FormURLEncodedSet + 1][128]bool {
	var t [FormURLEncodedSet + 1][128]bool
	add := func(set EncodeSet, chars string) {
		for i := range len(chars) {
			t[set][chars[i]] = true
		}
	}
	for c := range 0x20 {
		t[C0ControlSet][c] = true
	}
	t[C0ControlSet][0x7F] = true

	t[FragmentSet] = t[C0ControlSet]
	add(FragmentSet, " \"<>`")

	t[QuerySet] = t[C0ControlSet]
	add(QuerySet, " \"#<>")

	t[SpecialQuerySet] = t[QuerySet]
	add(SpecialQuerySet, "'")

	t[PathSet] = t[QuerySet]
	add(PathSet, "?`{}")

	t[UserinfoSet] = t[PathSet]
	add(UserinfoSet, "/:;=@[\\]^|")

	t[ComponentSet] = t[UserinfoSet]
	add(ComponentSet, "$%&+,")

	t[FormURLEncodedSet] = t[ComponentSet]
	add(FormURLEncodedSet, "!'()~")
	return t
}

// Contains reports whether byte b is escaped by the set.
func (s EncodeSet) Contains(b byte) bool {
	if b >= utf8.RuneSelf {
		return true
	}
	if int(s) >= len(encodeTables) {
		return true
	}
	return encodeTables[s][b]
}

// PercentEncode UTF-8 percent-encodes every byte of s that is in set. When
// spaceAsPlus is true a space becomes "+" instead of "%20", as required by
// application/x-www-form-urlencoded serialization.
func PercentEncode(s string, set EncodeSet, spaceAsPlus bool) string {
	n := 0
	for i := range len(s) {
		if set.Contains(s[i]) {
			n++
		}
	}
	if n == 0 && !(spaceAsPlus && strings.IndexByte(s, ' ') >= 0) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	appendPercentEncoded(&b, s, set, spaceAsPlus)
	return b.String()
}

// appendPercentEncoded writes the percent-encoding of s into b.
func appendPercentEncoded(b *strings.Builder, s string, set EncodeSet, spaceAsPlus bool) {
	for i := range len(s) {
		c := s[i]
		switch {
		case spaceAsPlus && c == ' ':
			b.WriteByte('+')
		case set.Contains(c):
			writePercentByte(b, c)
		default:
			b.WriteByte(c)
		}
	}
}

// appendPercentEncodedRune writes the UTF-8 percent-encoding of a single code point.
func appendPercentEncodedRune(b *strings.Builder, r rune, set EncodeSet) {
	if r < utf8.RuneSelf {
		if set.Contains(byte(r)) {
			writePercentByte(b, byte(r))
		} else {
			b.WriteByte(byte(r))
		}
		return
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for i := range n {
		writePercentByte(b, buf[i])
	}
}

func writePercentByte(b *strings.Builder, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperhex[c>>4])
	b.WriteByte(upperhex[c&0x0F])
}

// unhex returns the value of an ASCII hex digit.
func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// PercentDecode replaces every "%XX" triple of s with the byte it denotes.
// A "%" that is not followed by two hex digits is copied unchanged, so the
// function never fails.
func PercentDecode(s string) []byte {
	if strings.IndexByte(s, '%') < 0 {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isASCIIHexDigit(rune(s[i+1])) && isASCIIHexDigit(rune(s[i+2])) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, c)
	}
	return out
}

// PercentDecodeString is PercentDecode returning a string. The result may
// contain invalid UTF-8 when the input encodes arbitrary bytes.
func PercentDecodeString(s string) string {
	return string(PercentDecode(s))
}
