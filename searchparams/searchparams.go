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

// Package searchparams reads and writes URL queries in the
// application/x-www-form-urlencoded format, keeping the order and the
// duplicates of the name-value pairs.
package searchparams

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"

	"github.com/jplu/urlkit/weburl"
)

type pair struct {
	name  string
	value string
}

// Params is an ordered list of name-value pairs. The zero value is an empty list.
type Params struct {
	list []pair
}

// Parse decodes a form-urlencoded query. A leading "?" is ignored, "+"
// decodes to a space and invalid UTF-8 after percent-decoding is replaced
// with U+FFFD.
func Parse(query string) *Params {
	p := &Params{}
	for sequence := range strings.SplitSeq(strings.TrimPrefix(query, "?"), "&") {
		if sequence == "" {
			continue
		}
		name, value, _ := strings.Cut(sequence, "=")
		p.list = append(p.list, pair{name: decode(name), value: decode(value)})
	}
	return p
}

// FromURL decodes the query of u.
func FromURL(u *weburl.URL) *Params {
	query, _ := u.Query()
	return Parse(query)
}

func decode(s string) string {
	raw := weburl.PercentDecode(strings.ReplaceAll(s, "+", " "))
	out, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(out)
}

// Append adds a pair at the end of the list.
func (p *Params) Append(name, value string) {
	p.list = append(p.list, pair{name: name, value: value})
}

// Set replaces the value of the first pair named name and removes the other
// pairs with that name. Without such a pair, one is appended.
func (p *Params) Set(name, value string) {
	i := slices.IndexFunc(p.list, func(e pair) bool { return e.name == name })
	if i < 0 {
		p.Append(name, value)
		return
	}
	p.list[i].value = value
	rest := slices.DeleteFunc(p.list[i+1:], func(e pair) bool { return e.name == name })
	p.list = p.list[:i+1+len(rest)]
}

// Delete removes every pair named name.
func (p *Params) Delete(name string) {
	p.list = slices.DeleteFunc(p.list, func(e pair) bool { return e.name == name })
}

// DeleteValue removes every pair with the given name and value.
func (p *Params) DeleteValue(name, value string) {
	p.list = slices.DeleteFunc(p.list, func(e pair) bool { return e.name == name && e.value == value })
}

// Has reports whether a pair named name exists.
func (p *Params) Has(name string) bool {
	return slices.ContainsFunc(p.list, func(e pair) bool { return e.name == name })
}

// HasValue reports whether a pair with the given name and value exists.
func (p *Params) HasValue(name, value string) bool {
	return slices.Contains(p.list, pair{name: name, value: value})
}

// Get returns the value of the first pair named name.
func (p *Params) Get(name string) (string, bool) {
	for _, e := range p.list {
		if e.name == name {
			return e.value, true
		}
	}
	return "", false
}

// GetAll returns the values of all pairs named name, in order.
func (p *Params) GetAll(name string) []string {
	var out []string
	for _, e := range p.list {
		if e.name == name {
			out = append(out, e.value)
		}
	}
	return out
}

// Keys yields the name of every pair, duplicates included.
func (p *Params) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range p.list {
			if !yield(e.name) {
				return
			}
		}
	}
}

// Values yields the value of every pair.
func (p *Params) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range p.list {
			if !yield(e.value) {
				return
			}
		}
	}
}

// All yields every pair in order.
func (p *Params) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range p.list {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// Size returns the number of pairs.
func (p *Params) Size() int {
	return len(p.list)
}

// Sort orders the pairs by name, comparing UTF-16 code units. Pairs with
// equal names keep their relative order.
func (p *Params) Sort() {
	slices.SortStableFunc(p.list, func(a, b pair) int {
		return slices.Compare(utf16.Encode([]rune(a.name)), utf16.Encode([]rune(b.name)))
	})
}

// String serializes the pairs as application/x-www-form-urlencoded.
func (p *Params) String() string {
	var b strings.Builder
	for i, e := range p.list {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(weburl.PercentEncode(e.name, weburl.FormURLEncodedSet, true))
		b.WriteByte('=')
		b.WriteString(weburl.PercentEncode(e.value, weburl.FormURLEncodedSet, true))
	}
	return b.String()
}

// ApplyTo writes the serialization into the query of u. An empty list
// removes the query.
func (p *Params) ApplyTo(u *weburl.URL) {
	u.SetSearch(p.String())
}
