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

	"golang.org/x/net/idna"
)

// urlProfile is the UTS #46 processing used by the host parser:
// non-transitional mapping, CheckBidi and CheckJoiners on, CheckHyphens,
// UseSTD3ASCIIRules and VerifyDnsLength off.
var urlProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
	// MapForLookup turns both of these on.
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
	idna.CheckJoiners(true),
	idna.VerifyDNSLength(false),
	idna.RemoveLeadingDots(false),
)

// strictProfile additionally applies UseSTD3ASCIIRules and VerifyDnsLength.
var strictProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.Transitional(false),
	idna.CheckHyphens(false),
	idna.CheckJoiners(true),
	idna.VerifyDNSLength(true),
	idna.RemoveLeadingDots(false),
)

// displayProfile converts Punycode labels back to Unicode for display.
var displayProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

// DomainToASCII converts a domain to its ASCII form using UTS #46 ToASCII.
// With beStrict set, STD3 ASCII rules and DNS length limits are enforced.
// An empty result is a failure.
func DomainToASCII(domain string, beStrict bool) (string, error) {
	if !beStrict {
		if fast, ok := asciiFastPath(domain); ok {
			if fast == "" {
				return "", &kindError{kind: ErrDomainToASCII, details: string(DomainToASCIIFailure)}
			}
			return fast, nil
		}
	}
	profile := urlProfile
	if beStrict {
		profile = strictProfile
	}
	result, err := profile.ToASCII(domain)
	if err != nil || result == "" {
		return "", &kindError{kind: ErrDomainToASCII, details: domain}
	}
	return result, nil
}

// DomainToUnicode converts the Punycode labels of a domain to Unicode.
// Labels that fail to convert are returned in their ASCII form together with
// an error.
func DomainToUnicode(domain string) (string, error) {
	out, err := displayProfile.ToUnicode(domain)
	if err != nil {
		return out, &kindError{kind: ErrDomainToASCII, details: domain}
	}
	return out, nil
}

// asciiFastPath lowercases an ASCII domain without any Punycode label. Such
// domains are unchanged by UTS #46 apart from case mapping.
func asciiFastPath(domain string) (string, bool) {
	for i := range len(domain) {
		if domain[i] >= utf8.RuneSelf {
			return "", false
		}
	}
	lower := strings.ToLower(domain)
	for label := range strings.SplitSeq(lower, ".") {
		if strings.HasPrefix(label, "xn--") {
			return "", false
		}
	}
	return lower, true
}
