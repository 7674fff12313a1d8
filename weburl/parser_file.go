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

// parseFile handles the part of a file URL that follows "file:".
func (p *urlParser) parseFile(c rune) {
	p.url.Scheme = "file"
	p.url.Host = Host{Kind: HostEmpty}

	if c == '/' || c == '\\' {
		if c == '\\' {
			p.validation(InvalidReverseSolidus)
		}
		p.state = stateFileSlash
		return
	}
	if p.base == nil || p.base.Scheme != "file" {
		p.state = statePath
		p.input.pointer--
		return
	}

	p.url.Host = p.base.Host
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
		if startsWithWindowsDriveLetter(p.input.fromPointer()) {
			p.validation(FileInvalidWindowsDriveLetter)
			p.url.Path = ListPath()
		} else {
			p.url.shortenPath()
		}
		p.state = statePath
		p.input.pointer--
	}
}

// parseFileSlash runs after "file:/". Without a second slash the host and
// drive letter are taken from a file base URL.
func (p *urlParser) parseFileSlash(c rune) {
	if c == '/' || c == '\\' {
		if c == '\\' {
			p.validation(InvalidReverseSolidus)
		}
		p.state = stateFileHost
		return
	}
	if p.base != nil && p.base.Scheme == "file" {
		p.url.Host = p.base.Host
		if !startsWithWindowsDriveLetter(p.input.fromPointer()) &&
			len(p.base.Path.Segments) > 0 && isNormalizedWindowsDriveLetter(p.base.Path.Segments[0]) {
			p.url.Path.Segments = append(p.url.Path.Segments, p.base.Path.Segments[0])
		}
	}
	p.state = statePath
	p.input.pointer--
}

// parseFileHost reads the host of a file URL. A drive letter in host
// position is left in the buffer and becomes the first path segment;
// "localhost" maps to the empty host.
func (p *urlParser) parseFileHost(c rune) error {
	switch c {
	case eof, '/', '\\', '?', '#':
	default:
		p.buffer.writeRune(c)
		return nil
	}

	p.input.pointer--
	switch {
	case p.override == stateNone && isWindowsDriveLetter(p.buffer.string()):
		p.validation(FileInvalidWindowsDriveLetterHost)
		p.state = statePath
		return nil
	case p.buffer.empty():
		p.url.Host = Host{Kind: HostEmpty}
	default:
		host, err := parseHost(p.buffer.string(), false, p.hostReporter())
		if err != nil {
			return err
		}
		if host.Kind == HostDomain && host.Name == "localhost" {
			host = Host{Kind: HostEmpty}
		}
		p.url.Host = host
		p.buffer.reset()
	}
	if p.override != stateNone {
		p.done = true
		return nil
	}
	p.state = statePathStart
	return nil
}
