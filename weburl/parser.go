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

	"golang.org/x/text/encoding"
)

// state is a state of the basic URL parser.
type state uint8

const (
	stateNone state = iota
	stateSchemeStart
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// maxPort is the largest valid port number.
const maxPort = 65535

// urlParser holds the state for a single run of the basic URL parser.
type urlParser struct {
	input    *parserInput
	base     *Record
	url      *Record
	state    state
	override state
	// encoding is the query encoding; nil means UTF-8.
	encoding encoding.Encoding
	buffer   stateBuffer

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool
	// done is set when a state override asks the parser to stop early.
	done bool

	onValidation func(ValidationError)
}

// basicParse runs the basic URL parser. Without url a fresh record is
// created and returned; with url and a state override the record is
// modified in place and only the component owned by override is parsed.
// base is consulted for relative input.
func basicParse(
	input string,
	base *Record,
	url *Record,
	override state,
	enc encoding.Encoding,
	onValidation func(ValidationError),
) (*Record, error) {
	trim := url == nil
	if url == nil {
		url = &Record{Path: ListPath()}
	}
	in, invalid := newParserInput(input, trim)

	p := &urlParser{
		input:        in,
		base:         base,
		url:          url,
		state:        stateSchemeStart,
		override:     override,
		encoding:     enc,
		onValidation: onValidation,
	}
	if override != stateNone {
		p.state = override
	}
	if invalid {
		p.validation(InvalidURLUnit)
	}

	if err := p.run(); err != nil {
		return nil, err
	}
	return url, nil
}

// run drives the state machine until the input is exhausted or a state
// override stops it.
func (p *urlParser) run() error {
	for {
		if err := p.step(p.input.c()); err != nil {
			return err
		}
		if p.done || p.input.atEOF() {
			return nil
		}
		p.input.pointer++
	}
}

// step dispatches one code point to the current state.
func (p *urlParser) step(c rune) error {
	switch p.state {
	case stateSchemeStart:
		return p.parseSchemeStart(c)
	case stateScheme:
		return p.parseScheme(c)
	case stateNoScheme:
		return p.parseNoScheme(c)
	case stateSpecialRelativeOrAuthority:
		p.parseSpecialRelativeOrAuthority(c)
	case statePathOrAuthority:
		p.parsePathOrAuthority(c)
	case stateRelative:
		p.parseRelative(c)
	case stateRelativeSlash:
		p.parseRelativeSlash(c)
	case stateSpecialAuthoritySlashes:
		p.parseSpecialAuthoritySlashes(c)
	case stateSpecialAuthorityIgnoreSlashes:
		p.parseSpecialAuthorityIgnoreSlashes(c)
	case stateAuthority:
		return p.parseAuthority(c)
	case stateHost, stateHostname:
		return p.parseHostState(c)
	case statePort:
		return p.parsePort(c)
	case stateFile:
		p.parseFile(c)
	case stateFileSlash:
		p.parseFileSlash(c)
	case stateFileHost:
		return p.parseFileHost(c)
	case statePathStart:
		p.parsePathStart(c)
	case statePath:
		p.parsePath(c)
	case stateOpaquePath:
		p.parseOpaquePath(c)
	case stateQuery:
		p.parseQuery(c)
	case stateFragment:
		p.parseFragment(c)
	case stateNone:
	}
	return nil
}

// validation reports a non-fatal validation error at the current pointer.
func (p *urlParser) validation(code ValidationCode) {
	if p.onValidation == nil {
		return
	}
	p.onValidation(ValidationError{Code: code, Offset: max(p.input.pointer, 0)})
}

// hostReporter forwards validation errors of the host parser.
func (p *urlParser) hostReporter() reporter {
	if p.onValidation == nil {
		return nil
	}
	return func(code ValidationCode) {
		p.onValidation(ValidationError{Code: code, Offset: -1})
	}
}

// isSpecialBackslash reports whether c is a "\" that acts as "/" for this URL.
func (p *urlParser) isSpecialBackslash(c rune) bool {
	return c == '\\' && p.url.IsSpecial()
}

// startQuery switches to the query state with an empty query.
func (p *urlParser) startQuery() {
	p.url.Query = ""
	p.url.HasQuery = true
	p.state = stateQuery
}

// startFragment switches to the fragment state with an empty fragment.
func (p *urlParser) startFragment() {
	p.url.Fragment = ""
	p.url.HasFragment = true
	p.state = stateFragment
}

func schemeError(c rune) error {
	if c == eof {
		return &kindError{kind: ErrScheme, details: "unexpected end of input"}
	}
	return &kindError{kind: ErrScheme, char: c}
}

// parseSchemeStart is the initial state of the parser.
func (p *urlParser) parseSchemeStart(c rune) error {
	if isASCIILetter(c) {
		p.buffer.writeRune(toASCIILower(c))
		p.state = stateScheme
		return nil
	}
	if p.override == stateNone {
		p.state = stateNoScheme
		p.input.pointer--
		return nil
	}
	return schemeError(c)
}

// parseScheme accumulates the scheme until ":". Without a ":" the input is
// re-read from the start as a relative reference.
func (p *urlParser) parseScheme(c rune) error {
	switch {
	case isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.':
		p.buffer.writeRune(toASCIILower(c))
		return nil
	case c == ':':
		return p.finishScheme()
	case p.override == stateNone:
		p.buffer.reset()
		p.state = stateNoScheme
		p.input.pointer = -1
		return nil
	}
	return schemeError(c)
}

// finishScheme stores the scheme in the buffer and picks the next state.
func (p *urlParser) finishScheme() error {
	scheme := p.buffer.string()
	if p.override != stateNone {
		if p.url.IsSpecial() != isSpecialScheme(scheme) {
			return &kindError{kind: ErrSchemeChange, details: scheme}
		}
		if (p.url.IncludesCredentials() || p.url.HasPort) && scheme == "file" {
			return &kindError{kind: ErrSchemeChange, details: scheme}
		}
		if p.url.Scheme == "file" && p.url.Host.Kind == HostEmpty {
			return &kindError{kind: ErrSchemeChange, details: scheme}
		}
	}
	p.url.Scheme = scheme
	if p.override != stateNone {
		if port, ok := defaultPort(scheme); ok && p.url.HasPort && p.url.Port == port {
			p.url.HasPort = false
			p.url.Port = 0
		}
		p.done = true
		return nil
	}
	p.buffer.reset()

	switch {
	case scheme == "file":
		if !p.input.remainingStartsWith("//") {
			p.validation(SpecialSchemeMissingFollowingSolidus)
		}
		p.state = stateFile
	case p.url.IsSpecial() && p.base != nil && p.base.Scheme == scheme:
		p.state = stateSpecialRelativeOrAuthority
	case p.url.IsSpecial():
		p.state = stateSpecialAuthoritySlashes
	case p.input.remainingStartsWith("/"):
		p.state = statePathOrAuthority
		p.input.pointer++
	default:
		p.url.Path = OpaquePath("")
		p.state = stateOpaquePath
	}
	return nil
}

// parseNoScheme resolves a scheme-less input against the base URL.
func (p *urlParser) parseNoScheme(c rune) error {
	if p.base == nil || (p.base.HasOpaquePath() && c != '#') {
		p.validation(MissingSchemeNonRelativeURL)
		return fatal(ErrMissingScheme, MissingSchemeNonRelativeURL)
	}
	if p.base.HasOpaquePath() {
		p.url.Scheme = p.base.Scheme
		p.url.Path = p.base.Path.clone()
		p.url.Query = p.base.Query
		p.url.HasQuery = p.base.HasQuery
		p.startFragment()
		return nil
	}
	if p.base.Scheme != "file" {
		p.state = stateRelative
	} else {
		p.state = stateFile
	}
	p.input.pointer--
	return nil
}

func (p *urlParser) parseSpecialRelativeOrAuthority(c rune) {
	if c == '/' && p.input.remainingStartsWith("/") {
		p.state = stateSpecialAuthorityIgnoreSlashes
		p.input.pointer++
		return
	}
	p.validation(SpecialSchemeMissingFollowingSolidus)
	p.state = stateRelative
	p.input.pointer--
}

func (p *urlParser) parsePathOrAuthority(c rune) {
	if c == '/' {
		p.state = stateAuthority
		return
	}
	p.state = statePath
	p.input.pointer--
}

// copyAuthority copies username, password, host and port from the base.
func (p *urlParser) copyAuthority() {
	p.url.Username = p.base.Username
	p.url.Password = p.base.Password
	p.url.Host = p.base.Host
	p.url.Port = p.base.Port
	p.url.HasPort = p.base.HasPort
}

// parseRelative inherits everything from the base up to the component the
// input starts with.
func (p *urlParser) parseRelative(c rune) {
	p.url.Scheme = p.base.Scheme
	switch {
	case c == '/':
		p.state = stateRelativeSlash
	case p.isSpecialBackslash(c):
		p.validation(InvalidReverseSolidus)
		p.state = stateRelativeSlash
	default:
		p.copyAuthority()
		p.url.Path = p.base.Path.clone()
		p.url.Query = p.base.Query
		p.url.HasQuery = p.base.HasQuery
		switch c {
		case '?':
			p.startQuery()
		case '#':
			p.startFragment()
		case eof:
		default:
			p.url.Query = ""
			p.url.HasQuery = false
			p.url.shortenPath()
			p.state = statePath
			p.input.pointer--
		}
	}
}

func (p *urlParser) parseRelativeSlash(c rune) {
	switch {
	case p.url.IsSpecial() && (c == '/' || c == '\\'):
		if c == '\\' {
			p.validation(InvalidReverseSolidus)
		}
		p.state = stateSpecialAuthorityIgnoreSlashes
	case c == '/':
		p.state = stateAuthority
	default:
		p.copyAuthority()
		p.state = statePath
		p.input.pointer--
	}
}

func (p *urlParser) parseSpecialAuthoritySlashes(c rune) {
	if c == '/' && p.input.remainingStartsWith("/") {
		p.state = stateSpecialAuthorityIgnoreSlashes
		p.input.pointer++
		return
	}
	p.validation(SpecialSchemeMissingFollowingSolidus)
	p.state = stateSpecialAuthorityIgnoreSlashes
	p.input.pointer--
}

func (p *urlParser) parseSpecialAuthorityIgnoreSlashes(c rune) {
	if c != '/' && c != '\\' {
		p.state = stateAuthority
		p.input.pointer--
		return
	}
	p.validation(SpecialSchemeMissingFollowingSolidus)
}

// parseAuthority collects the authority. Each "@" flushes the buffer into
// the credentials; at the end of the authority the pointer is rewound so
// that the host state reads the host and port again.
func (p *urlParser) parseAuthority(c rune) error {
	switch {
	case c == '@':
		p.validation(InvalidCredentials)
		if p.atSignSeen {
			p.buffer.prepend("%40")
		}
		p.atSignSeen = true
		var username, password strings.Builder
		username.WriteString(p.url.Username)
		password.WriteString(p.url.Password)
		for _, cp := range p.buffer.string() {
			if cp == ':' && !p.passwordTokenSeen {
				p.passwordTokenSeen = true
				continue
			}
			if p.passwordTokenSeen {
				appendPercentEncodedRune(&password, cp, UserinfoSet)
			} else {
				appendPercentEncodedRune(&username, cp, UserinfoSet)
			}
		}
		p.url.Username = username.String()
		p.url.Password = password.String()
		p.buffer.reset()
	case c == eof || c == '/' || c == '?' || c == '#' || p.isSpecialBackslash(c):
		if p.atSignSeen && p.buffer.empty() {
			p.validation(HostMissing)
			return fatal(ErrHostMissing, HostMissing)
		}
		p.input.pointer -= p.buffer.runeCount() + 1
		p.buffer.reset()
		p.state = stateHost
	default:
		p.buffer.writeRune(c)
	}
	return nil
}

// parseHostState implements both the host and the hostname states.
func (p *urlParser) parseHostState(c rune) error {
	if p.override != stateNone && p.url.Scheme == "file" {
		p.input.pointer--
		p.state = stateFileHost
		return nil
	}

	switch {
	case c == ':' && !p.insideBrackets:
		if p.buffer.empty() {
			p.validation(HostMissing)
			return fatal(ErrHostMissing, HostMissing)
		}
		if p.override == stateHostname {
			return &kindError{kind: ErrForbiddenHostCodePoint, char: c}
		}
		host, err := parseHost(p.buffer.string(), !p.url.IsSpecial(), p.hostReporter())
		if err != nil {
			return err
		}
		p.url.Host = host
		p.buffer.reset()
		p.state = statePort
	case c == eof || c == '/' || c == '?' || c == '#' || p.isSpecialBackslash(c):
		p.input.pointer--
		if p.url.IsSpecial() && p.buffer.empty() {
			p.validation(HostMissing)
			return fatal(ErrHostMissing, HostMissing)
		}
		if p.override != stateNone && p.buffer.empty() && (p.url.IncludesCredentials() || p.url.HasPort) {
			return fatal(ErrHostMissing, HostMissing)
		}
		host, err := parseHost(p.buffer.string(), !p.url.IsSpecial(), p.hostReporter())
		if err != nil {
			return err
		}
		p.url.Host = host
		p.buffer.reset()
		p.state = statePathStart
		if p.override != stateNone {
			p.done = true
		}
	default:
		if c == '[' {
			p.insideBrackets = true
		}
		if c == ']' {
			p.insideBrackets = false
		}
		p.buffer.writeRune(c)
	}
	return nil
}

// parsePort accumulates decimal digits. Default ports are stored as absent.
func (p *urlParser) parsePort(c rune) error {
	switch {
	case isASCIIDigit(c):
		p.buffer.writeRune(c)
		return nil
	case c == eof || c == '/' || c == '?' || c == '#' || p.isSpecialBackslash(c) || p.override != stateNone:
		if !p.buffer.empty() {
			port := 0
			for _, d := range p.buffer.string() {
				port = port*10 + int(d-'0')
				if port > maxPort {
					p.validation(PortOutOfRange)
					return &kindError{kind: ErrPort, details: p.buffer.string()}
				}
			}
			if dp, ok := defaultPort(p.url.Scheme); ok && int(dp) == port {
				p.url.HasPort = false
				p.url.Port = 0
			} else {
				p.url.HasPort = true
				p.url.Port = uint16(port)
			}
			p.buffer.reset()
			if p.override != stateNone {
				p.done = true
				return nil
			}
		}
		switch p.override {
		case statePort:
			return fatal(ErrPort, PortInvalid)
		case stateNone:
		default:
			// The host setter keeps the old port when none follows the ":".
			p.done = true
			return nil
		}
		p.state = statePathStart
		p.input.pointer--
		return nil
	}
	p.validation(PortInvalid)
	return &kindError{kind: ErrPort, char: c}
}
