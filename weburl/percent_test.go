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

//nolint:testpackage // White-box tests for the encode-set tables.
package weburl

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestEncodeSet_Contains(t *testing.T) {
	testCases := []struct {
		set  EncodeSet
		in   string
		out  string
		name string
	}{
		{C0ControlSet, "\x00\x1f\x7f", " \"#<>?`{}/:@%", "c0 control"},
		{FragmentSet, " \"<>`", "#?{}'^", "fragment"},
		{QuerySet, " \"#<>", "'?`{}^", "query"},
		{SpecialQuerySet, " \"#<>'", "?`{}^", "special query"},
		{PathSet, " \"#<>?`{}", "'^/|", "path"},
		{UserinfoSet, "/:;=@[\\]^|", "$&+,!~", "userinfo"},
		{ComponentSet, "$%&+,", "!'()~*-._", "component"},
		{FormURLEncodedSet, "!'()~", "*-._", "form"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for i := range len(tc.in) {
				if !tc.set.Contains(tc.in[i]) {
					t.Errorf("set should contain %q", tc.in[i])
				}
			}
			for i := range len(tc.out) {
				if tc.set.Contains(tc.out[i]) {
					t.Errorf("set should not contain %q", tc.out[i])
				}
			}
			if !tc.set.Contains(0x80) || !tc.set.Contains(0xFF) {
				t.Error("non-ASCII bytes must always be encoded")
			}
		})
	}
}

func TestPercentEncode(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		set         EncodeSet
		spaceAsPlus bool
		want        string
	}{
		{"unchanged", "abc", PathSet, false, "abc"},
		{"space in path", "a b", PathSet, false, "a%20b"},
		{"utf-8", "ä", C0ControlSet, false, "%C3%A4"},
		{"userinfo", "u:p@h", UserinfoSet, false, "u%3Ap%40h"},
		{"form space as plus", "a b+c", FormURLEncodedSet, true, "a+b%2Bc"},
		{"form tilde", "~", FormURLEncodedSet, true, "%7E"},
		{"component", "a&b=c", ComponentSet, false, "a%26b%3Dc"},
		{"percent kept outside component", "%41", PathSet, false, "%41"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PercentEncode(tc.input, tc.set, tc.spaceAsPlus); got != tc.want {
				t.Errorf("PercentEncode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestPercentDecode(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"abc", "abc"},
		{"%41%42", "AB"},
		{"%c3%A4", "ä"},
		{"%", "%"},
		{"%4", "%4"},
		{"%zz", "%zz"},
		{"100%", "100%"},
		{"%%41", "%A"},
	}
	for _, tc := range testCases {
		if got := PercentDecodeString(tc.input); got != tc.want {
			t.Errorf("PercentDecodeString(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if got := PercentDecode("%FF"); len(got) != 1 || got[0] != 0xFF {
		t.Errorf("PercentDecode(%%FF) = %v, want [0xFF]", got)
	}
}

func TestPercentDecodeEncode_RoundTrip(t *testing.T) {
	for _, s := range []string{"a b/c?d#e", "ünïcödé", "100% & more", "\x01\x7f"} {
		encoded := PercentEncode(s, ComponentSet, false)
		if got := PercentDecodeString(encoded); got != s {
			t.Errorf("decode(encode(%q)) = %q", s, got)
		}
	}
}

func TestOutputEncoding(t *testing.T) {
	if outputEncoding(nil) != nil {
		t.Error("nil should stay nil")
	}
	if outputEncoding(unicode.UTF8) != nil {
		t.Error("UTF-8 should map to nil")
	}
	if outputEncoding(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)) != nil {
		t.Error("UTF-16LE should fall back to UTF-8")
	}
	if outputEncoding(charmap.Windows1252) != charmap.Windows1252 {
		t.Error("windows-1252 should be kept")
	}
}

func TestPercentEncodeAfterEncoding(t *testing.T) {
	enc, err := EncodingForLabel("latin1")
	if err != nil {
		t.Fatalf("EncodingForLabel(latin1) failed: %v", err)
	}
	var b strings.Builder
	percentEncodeAfterEncoding(&b, enc, "é ☃", FormURLEncodedSet, true)
	if got, want := b.String(), "%E9+%26%239731%3B"; got != want {
		t.Errorf("percentEncodeAfterEncoding = %q, want %q", got, want)
	}
	if _, err := EncodingForLabel("no-such-encoding"); err == nil {
		t.Error("EncodingForLabel should reject unknown labels")
	}
}
