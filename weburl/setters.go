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

// update applies fn to a copy of the record and commits the copy only when
// fn succeeds.
func (u *URL) update(fn func(r *Record) error) error {
	r := u.rec.Clone()
	if err := fn(r); err != nil {
		return newParseError(err)
	}
	u.rec = *r
	return nil
}

// reparse runs the parser over value with a state override on r.
func reparse(r *Record, value string, override state) error {
	_, err := basicParse(value, nil, r, override, nil, nil)
	return err
}

// SetHref replaces the whole URL with the result of parsing href.
func (u *URL) SetHref(href string) error {
	parsed, err := Parse(href)
	if err != nil {
		return err
	}
	u.rec = parsed.rec
	return nil
}

// SetProtocol changes the scheme. Anything from the first ":" on is ignored.
// Switching between special and non-special schemes is rejected, as is
// switching to "file" while credentials or a port are set, or away from
// "file" while the host is empty.
func (u *URL) SetProtocol(protocol string) error {
	return u.update(func(r *Record) error {
		return reparse(r, protocol+":", stateSchemeStart)
	})
}

// SetUsername replaces the username, percent-encoding it with the userinfo set.
func (u *URL) SetUsername(username string) error {
	return u.update(func(r *Record) error {
		if r.CannotHaveCredentialsOrPort() {
			return ErrCannotHaveCredentials
		}
		r.Username = PercentEncode(username, UserinfoSet, false)
		return nil
	})
}

// SetPassword replaces the password, percent-encoding it with the userinfo set.
func (u *URL) SetPassword(password string) error {
	return u.update(func(r *Record) error {
		if r.CannotHaveCredentialsOrPort() {
			return ErrCannotHaveCredentials
		}
		r.Password = PercentEncode(password, UserinfoSet, false)
		return nil
	})
}

// SetHost replaces the host and, when the value carries ":port", the port.
// A value without a port keeps the current one.
func (u *URL) SetHost(host string) error {
	return u.update(func(r *Record) error {
		if r.HasOpaquePath() {
			return ErrOpaquePath
		}
		return reparse(r, host, stateHost)
	})
}

// SetHostname replaces the host. Values containing ":" outside brackets are
// rejected.
func (u *URL) SetHostname(hostname string) error {
	return u.update(func(r *Record) error {
		if r.HasOpaquePath() {
			return ErrOpaquePath
		}
		return reparse(r, hostname, stateHostname)
	})
}

// SetPort replaces the port. The empty string removes it, trailing
// non-digits are ignored and the scheme's default port is stored as absent.
func (u *URL) SetPort(port string) error {
	return u.update(func(r *Record) error {
		if r.CannotHaveCredentialsOrPort() {
			return ErrCannotHaveCredentials
		}
		if port == "" {
			r.Port = 0
			r.HasPort = false
			return nil
		}
		return reparse(r, port, statePort)
	})
}

// SetPathname replaces the path. Dot segments are resolved. On a URL with an
// opaque path the value replaces the opaque string; a leading "/" is then
// rejected since the URL would re-parse as hierarchical.
func (u *URL) SetPathname(pathname string) error {
	return u.update(func(r *Record) error {
		if r.HasOpaquePath() {
			if strings.HasPrefix(pathname, "/") {
				return &kindError{kind: ErrPath, details: pathname}
			}
			r.Path = OpaquePath(encodeOpaquePath(pathname))
			return nil
		}
		r.Path = ListPath()
		return reparse(r, pathname, statePathStart)
	})
}

// SetSearch replaces the query. A leading "?" is ignored and the empty
// string removes the query.
func (u *URL) SetSearch(search string) {
	r := u.rec.Clone()
	if search == "" {
		r.Query = ""
		r.HasQuery = false
		stripTrailingSpacesFromOpaquePath(r)
		u.rec = *r
		return
	}
	r.Query = ""
	r.HasQuery = true
	if reparse(r, strings.TrimPrefix(search, "?"), stateQuery) == nil {
		u.rec = *r
	}
}

// SetHash replaces the fragment. A leading "#" is ignored and the empty
// string removes the fragment.
func (u *URL) SetHash(hash string) {
	r := u.rec.Clone()
	if hash == "" {
		r.Fragment = ""
		r.HasFragment = false
		stripTrailingSpacesFromOpaquePath(r)
		u.rec = *r
		return
	}
	r.Fragment = ""
	r.HasFragment = true
	if reparse(r, strings.TrimPrefix(hash, "#"), stateFragment) == nil {
		u.rec = *r
	}
}
