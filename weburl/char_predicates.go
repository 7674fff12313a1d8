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

import "strings"

// isASCIILetter checks if a rune is an ASCII letter.
func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// isASCIIDigit checks if a rune is an ASCII digit.
func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isASCIIHexDigit checks if a rune is an ASCII hexadecimal digit.
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// isASCIIAlphanumeric checks if a rune is an ASCII letter or digit.
func isASCIIAlphanumeric(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r)
}

// toASCIILower lowercases ASCII letters and leaves every other rune alone.
func toASCIILower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// isC0ControlOrSpace reports whether r is stripped from both ends of the input.
func isC0ControlOrSpace(r rune) bool {
	return r >= 0 && r <= ' '
}

// isASCIITabOrNewline reports whether r is removed from anywhere in the input.
func isASCIITabOrNewline(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r'
}

// isForbiddenHostCodePoint reports whether r may never appear in a host.
func isForbiddenHostCodePoint(r rune) bool {
	return r == 0 || strings.ContainsRune("\t\n\r #/:<>?@[\\]^|", r)
}

// isForbiddenDomainCodePoint extends the forbidden host code points with C0
// controls, "%" and DEL for hosts of special URLs.
func isForbiddenDomainCodePoint(r rune) bool {
	return isForbiddenHostCodePoint(r) || (r >= 0 && r <= 0x1F) || r == '%' || r == 0x7F
}

// isNoncharacter reports whether r is a Unicode noncharacter.
func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE && r <= 0x10FFFF
}

// isURLCodePoint reports whether r is a URL code point. Anything else in a
// path, query or fragment is accepted but reported as a validation error.
func isURLCodePoint(r rune) bool {
	if isASCIIAlphanumeric(r) || strings.ContainsRune("!$&'()*+,-./:;=?@_~", r) {
		return true
	}
	if r < 0xA0 || r > 0x10FFFD {
		return false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}
	return !isNoncharacter(r)
}

// isWindowsDriveLetter reports whether s is an ASCII letter followed by ":" or "|".
func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIILetter(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

// isNormalizedWindowsDriveLetter reports whether s is an ASCII letter followed by ":".
func isNormalizedWindowsDriveLetter(s string) bool {
	return isWindowsDriveLetter(s) && s[1] == ':'
}

// startsWithWindowsDriveLetter reports whether the code points in rs begin
// with a Windows drive letter that is either the whole input or followed by
// "/", "\", "?" or "#".
func startsWithWindowsDriveLetter(rs []rune) bool {
	if len(rs) < 2 {
		return false
	}
	if !isASCIILetter(rs[0]) || (rs[1] != ':' && rs[1] != '|') {
		return false
	}
	if len(rs) == 2 {
		return true
	}
	switch rs[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

// isSingleDotSegment reports whether a path segment is "." or its percent-encoded form.
func isSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

// isDoubleDotSegment reports whether a path segment is ".." in any mix of
// literal and percent-encoded dots.
func isDoubleDotSegment(s string) bool {
	switch strings.ToLower(s) {
	case "..", ".%2e", "%2e.", "%2e%2e":
		return true
	}
	return false
}
