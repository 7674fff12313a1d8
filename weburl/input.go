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

// eof is the code point returned past the end of the input.
const eof rune = -1

// parserInput holds the preprocessed code points of the input and a pointer
// that the state machine may move backwards as well as forwards.
type parserInput struct {
	runes   []rune
	pointer int
}

// newParserInput removes every ASCII tab and newline from s. When trim is
// true, leading and trailing C0 controls and spaces are stripped first.
// invalid reports whether anything was removed.
func newParserInput(s string, trim bool) (in *parserInput, invalid bool) {
	rs := []rune(s)
	if trim {
		start, end := 0, len(rs)
		for start < end && isC0ControlOrSpace(rs[start]) {
			start++
		}
		for end > start && isC0ControlOrSpace(rs[end-1]) {
			end--
		}
		invalid = start != 0 || end != len(rs)
		rs = rs[start:end]
	}
	out := rs[:0:0]
	for _, r := range rs {
		if isASCIITabOrNewline(r) {
			invalid = true
			continue
		}
		out = append(out, r)
	}
	return &parserInput{runes: out}, invalid
}

// c returns the code point under the pointer, or eof.
func (p *parserInput) c() rune {
	return p.at(p.pointer)
}

// at returns the code point at index i, or eof when i is out of range.
func (p *parserInput) at(i int) rune {
	if i < 0 || i >= len(p.runes) {
		return eof
	}
	return p.runes[i]
}

// atEOF reports whether the pointer is past the last code point.
func (p *parserInput) atEOF() bool {
	return p.pointer >= len(p.runes)
}

// remaining returns the code points after the pointer.
func (p *parserInput) remaining() []rune {
	if p.pointer+1 >= len(p.runes) {
		return nil
	}
	return p.runes[p.pointer+1:]
}

// remainingStartsWith checks if the code points after the pointer start with s.
func (p *parserInput) remainingStartsWith(s string) bool {
	rest := p.remaining()
	i := 0
	for _, r := range s {
		if i >= len(rest) || rest[i] != r {
			return false
		}
		i++
	}
	return true
}

// fromPointer returns the code points from the pointer to the end.
func (p *parserInput) fromPointer() []rune {
	if p.pointer < 0 || p.pointer >= len(p.runes) {
		return nil
	}
	return p.runes[p.pointer:]
}
