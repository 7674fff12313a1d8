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

// checkURLUnit reports a validation error when c is neither a URL code point
// nor the start of a valid percent-encoded byte.
func (p *urlParser) checkURLUnit(c rune) {
	if c == '%' {
		if !isASCIIHexDigit(p.input.at(p.input.pointer+1)) || !isASCIIHexDigit(p.input.at(p.input.pointer+2)) {
			p.validation(InvalidURLUnit)
		}
		return
	}
	if !isURLCodePoint(c) {
		p.validation(InvalidURLUnit)
	}
}

func (p *urlParser) parsePathStart(c rune) {
	switch {
	case p.url.IsSpecial():
		if c == '\\' {
			p.validation(InvalidReverseSolidus)
		}
		p.state = statePath
		if c != '/' && c != '\\' {
			p.input.pointer--
		}
	case p.override == stateNone && c == '?':
		p.startQuery()
	case p.override == stateNone && c == '#':
		p.startFragment()
	case c != eof:
		p.state = statePath
		if c != '/' {
			p.input.pointer--
		}
	case p.override != stateNone && p.url.Host.Kind == HostNone:
		p.url.Path.Segments = append(p.url.Path.Segments, "")
	}
}

// parsePath accumulates one segment at a time and applies the dot-segment
// rules when the segment ends.
func (p *urlParser) parsePath(c rune) {
	slash := c == '/' || p.isSpecialBackslash(c)
	if !slash && c != eof && (p.override != stateNone || (c != '?' && c != '#')) {
		p.checkURLUnit(c)
		p.buffer.writeEncoded(c, PathSet)
		return
	}

	if c == '\\' && slash {
		p.validation(InvalidReverseSolidus)
	}
	p.finishSegment(slash)
	switch c {
	case '?':
		p.startQuery()
	case '#':
		p.startFragment()
	}
}

// finishSegment appends the segment held in the buffer to the path. A ".."
// segment pops the previous one and a "." segment is dropped; either leaves
// an empty segment behind when it ends the path.
func (p *urlParser) finishSegment(slash bool) {
	segment := p.buffer.string()
	p.buffer.reset()
	switch {
	case isDoubleDotSegment(segment):
		p.url.shortenPath()
		if !slash {
			p.url.Path.Segments = append(p.url.Path.Segments, "")
		}
	case isSingleDotSegment(segment):
		if !slash {
			p.url.Path.Segments = append(p.url.Path.Segments, "")
		}
	default:
		if p.url.Scheme == "file" && len(p.url.Path.Segments) == 0 && isWindowsDriveLetter(segment) {
			segment = segment[:1] + ":"
		}
		p.url.Path.Segments = append(p.url.Path.Segments, segment)
	}
}

// parseOpaquePath collects an opaque path, encoding only C0 controls and
// non-ASCII code points.
func (p *urlParser) parseOpaquePath(c rune) {
	switch c {
	case '?', '#', eof:
		p.url.Path.Opaque += p.buffer.string()
		p.buffer.reset()
		if c == '?' {
			p.startQuery()
		} else if c == '#' {
			p.startFragment()
		}
	default:
		p.checkURLUnit(c)
		p.buffer.writeEncoded(c, C0ControlSet)
	}
}

// parseQuery buffers the query and encodes it once it ends, so that a
// legacy output encoding sees whole code points.
func (p *urlParser) parseQuery(c rune) {
	if p.encoding != nil && (!p.url.IsSpecial() || p.url.Scheme == "ws" || p.url.Scheme == "wss") {
		p.encoding = nil
	}
	if c == eof || (c == '#' && p.override == stateNone) {
		set := QuerySet
		if p.url.IsSpecial() {
			set = SpecialQuerySet
		}
		var b strings.Builder
		b.WriteString(p.url.Query)
		percentEncodeAfterEncoding(&b, p.encoding, p.buffer.string(), set, false)
		p.url.Query = b.String()
		p.buffer.reset()
		if c == '#' {
			p.startFragment()
		}
		return
	}
	p.checkURLUnit(c)
	p.buffer.writeRune(c)
}

func (p *urlParser) parseFragment(c rune) {
	if c == eof {
		p.url.Fragment += p.buffer.string()
		p.buffer.reset()
		return
	}
	p.checkURLUnit(c)
	p.buffer.writeEncoded(c, FragmentSet)
}

// stripTrailingSpacesFromOpaquePath drops the trailing spaces of an opaque
// path once neither a query nor a fragment follows it, since the parser
// would trim them from the serialization.
func stripTrailingSpacesFromOpaquePath(r *Record) {
	if !r.HasOpaquePath() || r.HasFragment || r.HasQuery {
		return
	}
	r.Path.Opaque = strings.TrimRight(r.Path.Opaque, " ")
}

// encodeOpaquePath encodes a replacement opaque path so that it serializes
// back to the same path: "?" and "#" are escaped, as are trailing spaces.
func encodeOpaquePath(s string) string {
	s = strings.Map(func(r rune) rune {
		if isASCIITabOrNewline(r) {
			return -1
		}
		return r
	}, s)
	var b strings.Builder
	trimmed := strings.TrimRight(s, " ")
	for _, r := range trimmed {
		switch r {
		case '?':
			b.WriteString("%3F")
		case '#':
			b.WriteString("%23")
		default:
			appendPercentEncodedRune(&b, r, C0ControlSet)
		}
	}
	for range len(s) - len(trimmed) {
		b.WriteString("%20")
	}
	return b.String()
}
