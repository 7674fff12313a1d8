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

// reporter receives validation errors found outside the main state machine.
// A nil reporter discards them.
type reporter func(ValidationCode)

func (r reporter) add(code ValidationCode) {
	if r != nil {
		r(code)
	}
}

// parseHost implements the host parser. isOpaque is true for non-special
// URLs, whose hosts are kept as percent-encoded strings.
func parseHost(input string, isOpaque bool, report reporter) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") || len(input) < 2 {
			report.add(IPv6Unclosed)
			return Host{}, fatal(ErrInvalidIPv6, IPv6Unclosed)
		}
		addr, err := parseIPv6([]rune(input[1:len(input)-1]), report)
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIPv6, IPv6: addr}, nil
	}

	if isOpaque {
		return parseOpaqueHost(input, report)
	}

	// Invalid UTF-8 after percent-decoding becomes U+FFFD, which UTS #46
	// rejects as disallowed.
	domain := strings.ToValidUTF8(PercentDecodeString(input), string(utf8.RuneError))

	asciiDomain, err := DomainToASCII(domain, false)
	if err != nil {
		report.add(DomainToASCIIFailure)
		return Host{}, err
	}

	for _, r := range asciiDomain {
		if isForbiddenDomainCodePoint(r) {
			report.add(DomainInvalidCodePoint)
			return Host{}, &kindError{kind: ErrForbiddenHostCodePoint, char: r}
		}
	}

	if endsInANumber(asciiDomain) {
		addr, err := parseIPv4(asciiDomain, report)
		if err != nil {
			return Host{}, err
		}
		return Host{Kind: HostIPv4, IPv4: addr}, nil
	}

	return Host{Kind: HostDomain, Name: asciiDomain}, nil
}

// parseOpaqueHost validates a non-special host and percent-encodes it with
// the C0 control set. An empty input yields the empty host.
func parseOpaqueHost(input string, report reporter) (Host, error) {
	for _, r := range input {
		if isForbiddenHostCodePoint(r) {
			report.add(HostInvalidCodePoint)
			return Host{}, &kindError{kind: ErrForbiddenHostCodePoint, char: r}
		}
	}
	rs := []rune(input)
	for i, r := range rs {
		if r == '%' {
			if i+2 >= len(rs) || !isASCIIHexDigit(rs[i+1]) || !isASCIIHexDigit(rs[i+2]) {
				report.add(InvalidURLUnit)
			}
		} else if !isURLCodePoint(r) {
			report.add(InvalidURLUnit)
		}
	}
	if input == "" {
		return Host{Kind: HostEmpty}, nil
	}
	return Host{Kind: HostOpaque, Name: PercentEncode(input, C0ControlSet, false)}, nil
}

// endsInANumber reports whether the last non-empty label of a domain is
// numeric, in which case the domain must parse as an IPv4 address.
func endsInANumber(domain string) bool {
	parts := strings.Split(domain, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}
	last := parts[len(parts)-1]
	if last != "" && strings.IndexFunc(last, func(r rune) bool { return !isASCIIDigit(r) }) < 0 {
		return true
	}
	_, _, err := parseIPv4Number(last)
	return err == nil
}
