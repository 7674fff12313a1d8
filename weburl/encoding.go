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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncodingForLabel returns the encoding registered under a WHATWG Encoding
// Standard label such as "windows-1252" or "shift_jis".
func EncodingForLabel(label string) (encoding.Encoding, error) {
	return htmlindex.Get(label)
}

// outputEncoding maps an encoding to the one used for URL queries: UTF-16
// and "replacement" are never used on the wire, so they fall back to UTF-8,
// which is represented by nil.
func outputEncoding(enc encoding.Encoding) encoding.Encoding {
	if enc == nil {
		return nil
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return enc
	}
	switch name {
	case "utf-8", "utf-16be", "utf-16le", "replacement":
		return nil
	}
	return enc
}

// percentEncodeAfterEncoding encodes s with enc and percent-encodes the
// resulting bytes with set. Code points that enc cannot represent are written
// as the percent-encoded HTML numeric character reference "&#N;". Runs of
// representable code points go through a single encoder pass so that stateful
// encodings such as ISO-2022-JP emit one shift sequence per run. A nil enc
// means UTF-8.
func percentEncodeAfterEncoding(b *strings.Builder, enc encoding.Encoding, s string, set EncodeSet, spaceAsPlus bool) {
	if enc == nil {
		appendPercentEncoded(b, s, set, spaceAsPlus)
		return
	}
	check := enc.NewEncoder()
	run := enc.NewEncoder()
	start := 0
	flush := func(end int) {
		if start == end {
			return
		}
		if encoded, err := run.String(s[start:end]); err == nil {
			appendPercentEncoded(b, encoded, set, spaceAsPlus)
			return
		}
		for _, r := range s[start:end] {
			encoded, _ := check.String(string(r))
			appendPercentEncoded(b, encoded, set, spaceAsPlus)
		}
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if _, err := check.String(s[i : i+size]); err != nil {
			flush(i)
			writeCharacterReference(b, r)
			start = i + size
		}
		i += size
	}
	flush(len(s))
}

// writeCharacterReference writes "&#N;" percent-encoded.
func writeCharacterReference(b *strings.Builder, r rune) {
	b.WriteString("%26%23")
	b.WriteString(strconv.Itoa(int(r)))
	b.WriteString("%3B")
}
