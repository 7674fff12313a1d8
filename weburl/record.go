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
	"net/netip"
	"slices"
	"strconv"
	"strings"
)

// HostKind tags the variant held by a Host.
type HostKind uint8

const (
	// HostNone means the URL has no host at all.
	HostNone HostKind = iota
	// HostDomain is an ASCII domain of a special URL.
	HostDomain
	// HostIPv4 is an IPv4 address.
	HostIPv4
	// HostIPv6 is an IPv6 address.
	HostIPv6
	// HostOpaque is a percent-encoded host of a non-special URL.
	HostOpaque
	// HostEmpty is the empty host, as in "file:///" or "foo://".
	HostEmpty
)

// String returns the name of the kind.
func (k HostKind) String() string {
	switch k {
	case HostNone:
		return "none"
	case HostDomain:
		return "domain"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostOpaque:
		return "opaque"
	case HostEmpty:
		return "empty"
	}
	return "HostKind(" + strconv.Itoa(int(k)) + ")"
}

// Host is the parsed host of a URL. Only the field matching Kind is meaningful.
type Host struct {
	Kind HostKind
	// Name holds the domain or the opaque host.
	Name string
	IPv4 [4]byte
	IPv6 [8]uint16
}

// String serializes the host. IPv6 addresses are bracketed and HostNone
// serializes to the empty string.
func (h Host) String() string {
	switch h.Kind {
	case HostDomain, HostOpaque:
		return h.Name
	case HostIPv4:
		return strconv.Itoa(int(h.IPv4[0])) + "." + strconv.Itoa(int(h.IPv4[1])) + "." +
			strconv.Itoa(int(h.IPv4[2])) + "." + strconv.Itoa(int(h.IPv4[3]))
	case HostIPv6:
		return "[" + serializeIPv6(h.IPv6) + "]"
	case HostNone, HostEmpty:
	}
	return ""
}

// Addr returns the host as a netip.Addr when it is an IP address.
func (h Host) Addr() (netip.Addr, bool) {
	switch h.Kind {
	case HostIPv4:
		return netip.AddrFrom4(h.IPv4), true
	case HostIPv6:
		var b [16]byte
		for i, piece := range h.IPv6 {
			b[2*i] = byte(piece >> 8)
			b[2*i+1] = byte(piece)
		}
		return netip.AddrFrom16(b), true
	case HostNone, HostDomain, HostOpaque, HostEmpty:
	}
	return netip.Addr{}, false
}

// Path is either an opaque string, for URLs such as "mailto:x@y", or a list
// of percent-encoded segments. An empty segment list is a valid path.
type Path struct {
	IsOpaque bool
	Opaque   string
	Segments []string
}

// OpaquePath returns an opaque path.
func OpaquePath(s string) Path {
	return Path{IsOpaque: true, Opaque: s}
}

// ListPath returns a segment-list path.
func ListPath(segments ...string) Path {
	if segments == nil {
		segments = []string{}
	}
	return Path{Segments: segments}
}

// String serializes the path: opaque paths verbatim, list paths as "/"
// followed by each segment.
func (p Path) String() string {
	if p.IsOpaque {
		return p.Opaque
	}
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

func (p Path) clone() Path {
	if p.IsOpaque {
		return p
	}
	return Path{Segments: slices.Clone(p.Segments)}
}

// Record is the URL record of the URL Standard. All string components are
// kept percent-encoded, so serialization is pure concatenation.
type Record struct {
	Scheme string
	// Username and Password are empty when absent.
	Username    string
	Password    string
	Host        Host
	Port        uint16
	HasPort     bool
	Path        Path
	Query       string
	HasQuery    bool
	Fragment    string
	HasFragment bool
}

// specialSchemes maps each special scheme to its default port, or -1.
var specialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// isSpecialScheme reports whether scheme is one of the special schemes.
func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// defaultPort returns the default port of a special scheme.
func defaultPort(scheme string) (uint16, bool) {
	p, ok := specialSchemes[scheme]
	if !ok || p < 0 {
		return 0, false
	}
	return uint16(p), true
}

// IsSpecial reports whether the scheme is ftp, file, http, https, ws or wss.
func (r *Record) IsSpecial() bool {
	return isSpecialScheme(r.Scheme)
}

// HasOpaquePath reports whether the path is an opaque string.
func (r *Record) HasOpaquePath() bool {
	return r.Path.IsOpaque
}

// IncludesCredentials reports whether the username or password is non-empty.
func (r *Record) IncludesCredentials() bool {
	return r.Username != "" || r.Password != ""
}

// CannotHaveCredentialsOrPort reports whether username, password and port
// must stay absent: the host is missing or empty, or the scheme is "file".
func (r *Record) CannotHaveCredentialsOrPort() bool {
	return r.Host.Kind == HostNone || r.Host.Kind == HostEmpty || r.Scheme == "file"
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	c.Path = r.Path.clone()
	return &c
}

// shortenPath removes the last path segment, except for the drive letter
// that is the only segment of a file URL.
func (r *Record) shortenPath() {
	if r.Scheme == "file" && len(r.Path.Segments) == 1 && isNormalizedWindowsDriveLetter(r.Path.Segments[0]) {
		return
	}
	if n := len(r.Path.Segments); n > 0 {
		r.Path.Segments = r.Path.Segments[:n-1]
	}
}

// Serialize returns the href of a record. excludeFragment drops the "#" part.
func Serialize(r *Record, excludeFragment bool) string {
	var b strings.Builder
	b.WriteString(r.Scheme)
	b.WriteByte(':')
	if r.Host.Kind != HostNone {
		b.WriteString("//")
		if r.IncludesCredentials() {
			b.WriteString(r.Username)
			if r.Password != "" {
				b.WriteByte(':')
				b.WriteString(r.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(r.Host.String())
		if r.HasPort {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(int(r.Port)))
		}
	} else if !r.Path.IsOpaque && len(r.Path.Segments) > 1 && r.Path.Segments[0] == "" {
		// Without "/." the path would re-parse as an authority.
		b.WriteString("/.")
	}
	b.WriteString(r.Path.String())
	if r.HasQuery {
		b.WriteByte('?')
		b.WriteString(r.Query)
	}
	if !excludeFragment && r.HasFragment {
		b.WriteByte('#')
		b.WriteString(r.Fragment)
	}
	return b.String()
}
