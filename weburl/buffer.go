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

// stateBuffer is the string accumulator shared by the states of the parser.
// It also counts the code points written so that the authority state can
// rewind the input pointer by the length of the buffer.
type stateBuffer struct {
	builder strings.Builder
	runes   int
}

// writeRune appends a single code point to the buffer.
func (b *stateBuffer) writeRune(r rune) {
	b.builder.WriteRune(r)
	b.runes++
}

// prepend inserts s at the start of the buffer.
func (b *stateBuffer) prepend(s string) {
	rest := b.builder.String()
	b.builder.Reset()
	b.builder.WriteString(s)
	b.builder.WriteString(rest)
	b.runes += utf8.RuneCountInString(s)
}

// string returns the complete content of the buffer.
func (b *stateBuffer) string() string { return b.builder.String() }

// runeCount returns the number of code points in the buffer.
func (b *stateBuffer) runeCount() int { return b.runes }

// empty reports whether nothing was written since the last reset.
func (b *stateBuffer) empty() bool { return b.runes == 0 }

// reset clears the buffer.
func (b *stateBuffer) reset() {
	b.builder.Reset()
	b.runes = 0
}

// writeEncoded appends r percent-encoded with set. The encoded form is ASCII,
// so the code point count grows by the number of bytes written.
func (b *stateBuffer) writeEncoded(r rune, set EncodeSet) {
	before := b.builder.Len()
	appendPercentEncodedRune(&b.builder, r, set)
	b.runes += b.builder.Len() - before
}
