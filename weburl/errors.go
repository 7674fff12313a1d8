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
	"errors"
	"fmt"
)

// ParseError is the error type returned by parsing functions and setters in
// this package. Err holds one of the exported sentinel errors below so that
// callers can classify the failure with errors.Is.
type ParseError struct {
	Message string
	Err     error
}

// Error returns the string representation of the parse error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("URL parse error: %s", e.Message)
}

// Unwrap provides compatibility with Go's standard errors package.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrHost is the category of every host parsing failure. Each of ErrInvalidIPv4,
// ErrInvalidIPv6, ErrForbiddenHostCodePoint, ErrDomainToASCII and ErrHostMissing
// also matches ErrHost.
var ErrHost = errors.New("invalid host")

// hostError is a host parsing failure that also matches ErrHost.
type hostError struct {
	msg string
}

func (e *hostError) Error() string { return e.msg }

// Is reports whether target is the ErrHost category.
func (e *hostError) Is(target error) bool { return target == ErrHost }

var (
	// ErrScheme is returned when the scheme is empty or contains characters
	// outside ASCII alphanumerics, "+", "-" and ".".
	ErrScheme = errors.New("invalid scheme")
	// ErrMissingScheme is returned for a relative input that has no base URL,
	// or whose base URL has an opaque path.
	ErrMissingScheme = errors.New("relative URL without a usable base")
	// ErrInvalidIPv4 is returned when a host ending in a number is not a valid IPv4 address.
	ErrInvalidIPv4 error = &hostError{msg: "invalid IPv4 address"}
	// ErrInvalidIPv6 is returned when a bracketed host is not a valid IPv6 address.
	ErrInvalidIPv6 error = &hostError{msg: "invalid IPv6 address"}
	// ErrForbiddenHostCodePoint is returned when a host contains a forbidden host
	// or domain code point.
	ErrForbiddenHostCodePoint error = &hostError{msg: "forbidden host code point"}
	// ErrDomainToASCII is returned when the Unicode domain-to-ASCII step fails.
	ErrDomainToASCII error = &hostError{msg: "domain to ASCII failure"}
	// ErrHostMissing is returned when a URL that requires a host has none.
	ErrHostMissing error = &hostError{msg: "missing host"}
	// ErrPort is returned for a port that is not numeric or exceeds 65535.
	ErrPort = errors.New("invalid port")
	// ErrPath is returned when a new opaque path would not survive re-parsing.
	ErrPath = errors.New("invalid opaque path")
	// ErrCannotHaveCredentials is returned by the username, password and port
	// setters when the URL has no host, an empty host, or the "file" scheme.
	ErrCannotHaveCredentials = errors.New("URL cannot have a username, password or port")
	// ErrOpaquePath is returned by setters that need a hierarchical URL.
	ErrOpaquePath = errors.New("URL has an opaque path")
	// ErrSchemeChange is returned when the scheme setter would switch between a
	// special and a non-special scheme, or would leave "file" incompatible with
	// the current authority.
	ErrSchemeChange = errors.New("scheme change not allowed")
)

// newParseError creates a new ParseError, wrapping the original error.
// It returns nil if the input error is nil.
func newParseError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return &ParseError{Message: err.Error(), Err: ke.kind}
	}
	return &ParseError{Message: err.Error(), Err: err}
}

// kindError is used by the parser to attach the offending code point, or the
// validation code, to one of the sentinel errors.
type kindError struct {
	kind    error
	char    rune
	details string
}

// Error formats the sentinel message with any available character or details.
func (e *kindError) Error() string {
	msg := e.kind.Error()
	if e.char != 0 {
		msg = fmt.Sprintf("%s '%c'", msg, e.char)
	} else if e.details != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.details)
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *kindError) Unwrap() error {
	return e.kind
}

// ValidationCode names a validation error of the URL Standard.
type ValidationCode string

// Validation codes. Most are reported without aborting the parse; the ones
// that accompany a fatal error are also embedded in that error's message.
const (
	InvalidURLUnit                       ValidationCode = "invalid-URL-unit"
	SpecialSchemeMissingFollowingSolidus ValidationCode = "special-scheme-missing-following-solidus"
	MissingSchemeNonRelativeURL          ValidationCode = "missing-scheme-non-relative-URL"
	InvalidReverseSolidus                ValidationCode = "invalid-reverse-solidus"
	InvalidCredentials                   ValidationCode = "invalid-credentials"
	HostMissing                          ValidationCode = "host-missing"
	PortOutOfRange                       ValidationCode = "port-out-of-range"
	PortInvalid                          ValidationCode = "port-invalid"
	FileInvalidWindowsDriveLetter        ValidationCode = "file-invalid-Windows-drive-letter"
	FileInvalidWindowsDriveLetterHost    ValidationCode = "file-invalid-Windows-drive-letter-host"
	DomainToASCIIFailure                 ValidationCode = "domain-to-ASCII"
	DomainInvalidCodePoint               ValidationCode = "domain-invalid-code-point"
	HostInvalidCodePoint                 ValidationCode = "host-invalid-code-point"
	IPv4EmptyPart                        ValidationCode = "IPv4-empty-part"
	IPv4TooManyParts                     ValidationCode = "IPv4-too-many-parts"
	IPv4NonNumericPart                   ValidationCode = "IPv4-non-numeric-part"
	IPv4NonDecimalPart                   ValidationCode = "IPv4-non-decimal-part"
	IPv4OutOfRangePart                   ValidationCode = "IPv4-out-of-range-part"
	IPv6Unclosed                         ValidationCode = "IPv6-unclosed"
	IPv6InvalidCompression               ValidationCode = "IPv6-invalid-compression"
	IPv6TooManyPieces                    ValidationCode = "IPv6-too-many-pieces"
	IPv6MultipleCompression              ValidationCode = "IPv6-multiple-compression"
	IPv6InvalidCodePoint                 ValidationCode = "IPv6-invalid-code-point"
	IPv6TooFewPieces                     ValidationCode = "IPv6-too-few-pieces"
	IPv4InIPv6TooManyPieces              ValidationCode = "IPv4-in-IPv6-too-many-pieces"
	IPv4InIPv6InvalidCodePoint           ValidationCode = "IPv4-in-IPv6-invalid-code-point"
	IPv4InIPv6OutOfRangePart             ValidationCode = "IPv4-in-IPv6-out-of-range-part"
	IPv4InIPv6TooFewParts                ValidationCode = "IPv4-in-IPv6-too-few-parts"
)

// ValidationError is a non-fatal diagnostic produced while parsing. Offset is
// the code point index in the preprocessed input, or -1 when the error was
// found by the host parser.
type ValidationError struct {
	Code   ValidationCode
	Offset int
}

// Error returns the validation code and its offset.
func (e ValidationError) Error() string {
	if e.Offset < 0 {
		return string(e.Code)
	}
	return fmt.Sprintf("%s at %d", e.Code, e.Offset)
}

// fatal builds a kindError for a failure that aborts parsing.
func fatal(kind error, code ValidationCode) error {
	return &kindError{kind: kind, details: string(code)}
}
