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

// Package weburl implements URL parsing and serialization as defined by the
// WHATWG URL Standard.
//
// The parser is the one used by web browsers: it accepts sloppy input such as
// backslashes, surrounding spaces or missing slashes, resolves relative
// references against a base URL, converts internationalized domain names to
// ASCII and normalizes IPv4 and IPv6 hosts. A parsed URL always serializes to
// a string that parses back to the same URL.
//
// Setters mirror the URL interface of browsers. They are atomic: a rejected
// value leaves the URL unchanged.
package weburl

import (
	"strconv"

	"golang.org/x/text/encoding"
)

// URL is a parsed URL. The zero value is not a valid URL; use Parse.
type URL struct {
	rec Record
}

type parseOptions struct {
	base         *URL
	encoding     encoding.Encoding
	onValidation func(ValidationError)
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// WithBase resolves the input against base.
func WithBase(base *URL) ParseOption {
	return func(o *parseOptions) {
		o.base = base
	}
}

// WithEncoding selects the encoding applied to the query of special, non-ws
// URLs before percent-encoding. UTF-16 encodings fall back to UTF-8.
func WithEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOptions) {
		o.encoding = enc
	}
}

// WithValidationErrors registers fn to receive every validation error found
// while parsing, including those that do not make the parse fail.
func WithValidationErrors(fn func(ValidationError)) ParseOption {
	return func(o *parseOptions) {
		o.onValidation = fn
	}
}

// Parse parses input as an absolute URL, or as a reference relative to the
// base given with WithBase.
func Parse(input string, opts ...ParseOption) (*URL, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	var base *Record
	if o.base != nil {
		base = &o.base.rec
	}
	rec, err := basicParse(input, base, nil, stateNone, outputEncoding(o.encoding), o.onValidation)
	if err != nil {
		return nil, newParseError(err)
	}
	return &URL{rec: *rec}, nil
}

// ParseWithBase parses base and then input relative to it.
func ParseWithBase(input, base string, opts ...ParseOption) (*URL, error) {
	b, err := Parse(base)
	if err != nil {
		return nil, err
	}
	return Parse(input, append(opts, WithBase(b))...)
}

// MustParse is like Parse but panics on error.
func MustParse(input string) *URL {
	u, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return u
}

// CanParse reports whether input parses, relative to base when base is not
// empty.
func CanParse(input, base string) bool {
	var b *Record
	if base != "" {
		parsed, err := basicParse(base, nil, nil, stateNone, nil, nil)
		if err != nil {
			return false
		}
		b = parsed
	}
	_, err := basicParse(input, b, nil, stateNone, nil, nil)
	return err == nil
}

// Resolve parses ref relative to u.
func (u *URL) Resolve(ref string) (*URL, error) {
	return Parse(ref, WithBase(u))
}

// FromRecord builds a URL from a record, for example one modified field by
// field. The record is serialized and parsed again so that the result is
// normalized.
func FromRecord(r Record) (*URL, error) {
	return Parse(Serialize(&r, false))
}

// Record returns a copy of the underlying URL record.
func (u *URL) Record() Record {
	return *u.rec.Clone()
}

// Clone returns a deep copy of u.
func (u *URL) Clone() *URL {
	return &URL{rec: *u.rec.Clone()}
}

// Equal reports whether u and other serialize identically, optionally
// ignoring their fragments. A nil other is never equal.
func (u *URL) Equal(other *URL, excludeFragments bool) bool {
	if other == nil {
		return false
	}
	return Serialize(&u.rec, excludeFragments) == Serialize(&other.rec, excludeFragments)
}

// String returns the href.
func (u *URL) String() string {
	return u.Href()
}

// Href returns the serialization of the URL.
func (u *URL) Href() string {
	return Serialize(&u.rec, false)
}

// Protocol returns the scheme followed by ":".
func (u *URL) Protocol() string {
	return u.rec.Scheme + ":"
}

// Username returns the percent-encoded username.
func (u *URL) Username() string {
	return u.rec.Username
}

// Password returns the percent-encoded password.
func (u *URL) Password() string {
	return u.rec.Password
}

// Host returns the serialized host followed by ":port" when a port is set.
func (u *URL) Host() string {
	if u.rec.Host.Kind == HostNone {
		return ""
	}
	if !u.rec.HasPort {
		return u.rec.Host.String()
	}
	return u.rec.Host.String() + ":" + strconv.Itoa(int(u.rec.Port))
}

// Hostname returns the serialized host.
func (u *URL) Hostname() string {
	return u.rec.Host.String()
}

// Port returns the port in decimal, or "" when absent.
func (u *URL) Port() string {
	if !u.rec.HasPort {
		return ""
	}
	return strconv.Itoa(int(u.rec.Port))
}

// Pathname returns the serialized path.
func (u *URL) Pathname() string {
	return u.rec.Path.String()
}

// Search returns "?" followed by the query, or "" when the query is absent
// or empty.
func (u *URL) Search() string {
	if u.rec.Query == "" {
		return ""
	}
	return "?" + u.rec.Query
}

// Hash returns "#" followed by the fragment, or "" when the fragment is
// absent or empty.
func (u *URL) Hash() string {
	if u.rec.Fragment == "" {
		return ""
	}
	return "#" + u.rec.Fragment
}

// Origin returns the ASCII serialization of the origin: "scheme://host[:port]"
// for http, https, ws, wss and ftp URLs, the origin of the inner URL for blob
// URLs, and "null" otherwise.
func (u *URL) Origin() string {
	switch u.rec.Scheme {
	case "http", "https", "ws", "wss", "ftp":
		return u.rec.Scheme + "://" + u.Host()
	case "blob":
		inner, err := basicParse(u.rec.Path.String(), nil, nil, stateNone, nil, nil)
		if err != nil || (inner.Scheme != "http" && inner.Scheme != "https") {
			return "null"
		}
		return (&URL{rec: *inner}).Origin()
	}
	return "null"
}

// Scheme returns the scheme without the trailing ":".
func (u *URL) Scheme() string {
	return u.rec.Scheme
}

// HostValue returns the parsed host.
func (u *URL) HostValue() Host {
	return u.rec.Host
}

// PortValue returns the port and whether one is set. Default ports are never set.
func (u *URL) PortValue() (uint16, bool) {
	return u.rec.Port, u.rec.HasPort
}

// PathValue returns a copy of the path.
func (u *URL) PathValue() Path {
	return u.rec.Path.clone()
}

// Query returns the percent-encoded query without "?" and whether it is present.
func (u *URL) Query() (string, bool) {
	return u.rec.Query, u.rec.HasQuery
}

// Fragment returns the percent-encoded fragment without "#" and whether it
// is present.
func (u *URL) Fragment() (string, bool) {
	return u.rec.Fragment, u.rec.HasFragment
}

// IsSpecial reports whether the scheme is ftp, file, http, https, ws or wss.
func (u *URL) IsSpecial() bool {
	return u.rec.IsSpecial()
}

// HasOpaquePath reports whether the path is opaque, as in "mailto:x@y".
func (u *URL) HasOpaquePath() bool {
	return u.rec.HasOpaquePath()
}

// HasCredentials reports whether the username or the password is non-empty.
func (u *URL) HasCredentials() bool {
	return u.rec.IncludesCredentials()
}

// HasEmptyHostname reports whether the host is the empty host.
func (u *URL) HasEmptyHostname() bool {
	return u.rec.Host.Kind == HostEmpty
}

// HasHostname reports whether the URL has a host, possibly empty.
func (u *URL) HasHostname() bool {
	return u.rec.Host.Kind != HostNone
}

// HasNonEmptyUsername reports whether the username is set.
func (u *URL) HasNonEmptyUsername() bool {
	return u.rec.Username != ""
}

// HasNonEmptyPassword reports whether the password is set.
func (u *URL) HasNonEmptyPassword() bool {
	return u.rec.Password != ""
}

// HasPassword reports whether a password would be serialized.
func (u *URL) HasPassword() bool {
	return u.rec.Password != ""
}

// HasPort reports whether a non-default port is set.
func (u *URL) HasPort() bool {
	return u.rec.HasPort
}

// HasHash reports whether a fragment is present, even an empty one.
func (u *URL) HasHash() bool {
	return u.rec.HasFragment
}

// HasSearch reports whether a query is present, even an empty one.
func (u *URL) HasSearch() bool {
	return u.rec.HasQuery
}
