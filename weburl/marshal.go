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
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// A URL is encoded as its href in every format. Decoding parses the href
// again, so a decoded URL is always valid and normalized.

// MarshalText implements encoding.TextMarshaler.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.Href()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URL) UnmarshalText(text []byte) error {
	return u.SetHref(string(text))
}

// MarshalJSON encodes the URL as a JSON string.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Href())
}

// UnmarshalJSON decodes a JSON string holding an absolute URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	var href string
	if err := json.Unmarshal(data, &href); err != nil {
		return err
	}
	return u.SetHref(href)
}

// MarshalYAML implements yaml.Marshaler.
func (u *URL) MarshalYAML() (any, error) {
	return u.Href(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The node must be a scalar.
func (u *URL) UnmarshalYAML(value *yaml.Node) error {
	var href string
	if err := value.Decode(&href); err != nil {
		return err
	}
	return u.SetHref(href)
}
