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

//nolint:testpackage // White-box tests inspect the pair list directly.
package searchparams

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jplu/urlkit/weburl"
)

func pairsOf(p *Params) [][2]string {
	var out [][2]string
	for name, value := range p.All() {
		out = append(out, [2]string{name, value})
	}
	return out
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  [][2]string
	}{
		{"empty", "", nil},
		{"leading question mark", "?a=b", [][2]string{{"a", "b"}}},
		{"duplicates kept", "a=1&b=2&a=3", [][2]string{{"a", "1"}, {"b", "2"}, {"a", "3"}}},
		{"empty sequences skipped", "&&a=1&&", [][2]string{{"a", "1"}}},
		{"no equals sign", "flag&x=", [][2]string{{"flag", ""}, {"x", ""}}},
		{"plus is space", "q=a+b%2Bc", [][2]string{{"q", "a b+c"}}},
		{"percent-decoded utf-8", "%C3%A4=%E2%9C%93", [][2]string{{"ä", "✓"}}},
		{"invalid utf-8 replaced", "a=%FF", [][2]string{{"a", "\uFFFD"}}},
		{"second equals kept", "a=b=c", [][2]string{{"a", "b=c"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, pairsOf(Parse(tc.query))); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestParams_String(t *testing.T) {
	p := &Params{}
	p.Append("a b", "c&d")
	p.Append("ä", "~*")
	p.Append("empty", "")
	if got, want := p.String(), "a+b=c%26d&%C3%A4=%7E*&empty="; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParams_RoundTrip(t *testing.T) {
	for _, query := range []string{"a=1&b=2", "q=a+b&r=%2B", "x=%E2%9C%93&x=2"} {
		p := Parse(query)
		again := Parse(p.String())
		if diff := cmp.Diff(pairsOf(p), pairsOf(again)); diff != "" {
			t.Errorf("round trip of %q changed pairs (-first +second):\n%s", query, diff)
		}
	}
}

func TestParams_GetHas(t *testing.T) {
	p := Parse("a=1&b=2&a=3")
	if v, ok := p.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if _, ok := p.Get("z"); ok {
		t.Error("Get(z) should report absence")
	}
	if diff := cmp.Diff([]string{"1", "3"}, p.GetAll("a")); diff != "" {
		t.Errorf("GetAll(a) mismatch:\n%s", diff)
	}
	if p.GetAll("z") != nil {
		t.Error("GetAll(z) should be nil")
	}
	if !p.Has("b") || p.Has("c") {
		t.Error("Has mismatch")
	}
	if !p.HasValue("a", "3") || p.HasValue("a", "2") {
		t.Error("HasValue mismatch")
	}
	if p.Size() != 3 {
		t.Errorf("Size() = %d", p.Size())
	}
	if diff := cmp.Diff([]string{"a", "b", "a"}, slices.Collect(p.Keys())); diff != "" {
		t.Errorf("Keys mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, slices.Collect(p.Values())); diff != "" {
		t.Errorf("Values mismatch:\n%s", diff)
	}
}

func TestParams_Set(t *testing.T) {
	p := Parse("a=1&b=2&a=3&c=4&a=5")
	p.Set("a", "x")
	if got, want := p.String(), "a=x&b=2&c=4"; got != want {
		t.Errorf("Set existing: String() = %q, want %q", got, want)
	}
	p.Set("d", "y")
	if got, want := p.String(), "a=x&b=2&c=4&d=y"; got != want {
		t.Errorf("Set new: String() = %q, want %q", got, want)
	}
}

func TestParams_Delete(t *testing.T) {
	p := Parse("a=1&b=2&a=3")
	p.DeleteValue("a", "3")
	if got := p.String(); got != "a=1&b=2" {
		t.Errorf("DeleteValue: String() = %q", got)
	}
	p.Delete("a")
	if got := p.String(); got != "b=2" {
		t.Errorf("Delete: String() = %q", got)
	}
	p.Delete("missing")
	if p.Size() != 1 {
		t.Errorf("Size() = %d after deleting a missing name", p.Size())
	}
}

func TestParams_Sort(t *testing.T) {
	p := Parse("z=1&a=2&z=0&a=1")
	p.Sort()
	if got, want := p.String(), "a=2&a=1&z=1&z=0"; got != want {
		t.Errorf("Sort: String() = %q, want %q", got, want)
	}

	// U+1F600 is encoded as the surrogate pair D83D DE00 and therefore sorts
	// before U+FFFD.
	p = &Params{}
	p.Append("\uFFFD", "a")
	p.Append("\U0001F600", "b")
	p.Sort()
	if diff := cmp.Diff([]string{"\U0001F600", "\uFFFD"}, slices.Collect(p.Keys())); diff != "" {
		t.Errorf("UTF-16 order mismatch:\n%s", diff)
	}
}

func TestParams_URL(t *testing.T) {
	u := weburl.MustParse("http://example.com/path?b=2&a=1#frag")
	p := FromURL(u)
	p.Append("c", "x y")
	p.Sort()
	p.ApplyTo(u)
	if got, want := u.Href(), "http://example.com/path?a=1&b=2&c=x+y#frag"; got != want {
		t.Errorf("ApplyTo href = %q, want %q", got, want)
	}

	empty := &Params{}
	empty.ApplyTo(u)
	if got, want := u.Href(), "http://example.com/path#frag"; got != want {
		t.Errorf("ApplyTo with no pairs href = %q, want %q", got, want)
	}
	if FromURL(u).Size() != 0 {
		t.Error("FromURL on a URL without query should be empty")
	}
}
