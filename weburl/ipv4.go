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
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	// maxIPv4Parts is the largest number of dot-separated parts in an IPv4 host.
	maxIPv4Parts = 4
	// maxIPv4Octet is the largest value of every part but the last.
	maxIPv4Octet = 255
)

// errIPv4Number is returned by parseIPv4Number for a part that is not a number.
var errIPv4Number = errors.New("not an IPv4 number")

// parseIPv4Number parses one part of an IPv4 address. "0x" or "0X" selects
// hexadecimal and a leading "0" selects octal; nonDecimal reports either
// case. Values that overflow uint64 saturate, since they are out of range
// anyway.
func parseIPv4Number(input string) (value uint64, nonDecimal bool, err error) {
	if input == "" {
		return 0, false, errIPv4Number
	}
	radix := 10
	switch {
	case len(input) >= 2 && (input[:2] == "0x" || input[:2] == "0X"):
		radix = 16
		input = input[2:]
		nonDecimal = true
	case len(input) >= 2 && input[0] == '0':
		radix = 8
		input = input[1:]
		nonDecimal = true
	}
	if input == "" {
		return 0, nonDecimal, nil
	}
	// strconv accepts "_" only with base 0, and never a sign for ParseUint.
	v, perr := strconv.ParseUint(input, radix, 64)
	if perr != nil {
		if errors.Is(perr, strconv.ErrRange) {
			return math.MaxUint64, nonDecimal, nil
		}
		return 0, nonDecimal, errIPv4Number
	}
	return v, nonDecimal, nil
}

// parseIPv4 implements the IPv4 parser. Every part except the last must fit
// in one byte; the last part fills the remaining bytes.
func parseIPv4(input string, report reporter) ([4]byte, error) {
	var addr [4]byte
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		report.add(IPv4EmptyPart)
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) > maxIPv4Parts {
		report.add(IPv4TooManyParts)
		return addr, fatal(ErrInvalidIPv4, IPv4TooManyParts)
	}

	numbers := make([]uint64, 0, len(parts))
	for _, part := range parts {
		n, nonDecimal, err := parseIPv4Number(part)
		if err != nil {
			report.add(IPv4NonNumericPart)
			return addr, &kindError{kind: ErrInvalidIPv4, details: part}
		}
		if nonDecimal {
			report.add(IPv4NonDecimalPart)
		}
		numbers = append(numbers, n)
	}

	for i, n := range numbers {
		if n > maxIPv4Octet {
			report.add(IPv4OutOfRangePart)
			if i != len(numbers)-1 {
				return addr, fatal(ErrInvalidIPv4, IPv4OutOfRangePart)
			}
		}
	}

	last := numbers[len(numbers)-1]
	if last >= uint64(1)<<(8*(5-len(numbers))) {
		return addr, fatal(ErrInvalidIPv4, IPv4OutOfRangePart)
	}

	ipv4 := last
	for i, n := range numbers[:len(numbers)-1] {
		ipv4 += n << (8 * (3 - i))
	}
	addr[0] = byte(ipv4 >> 24)
	addr[1] = byte(ipv4 >> 16)
	addr[2] = byte(ipv4 >> 8)
	addr[3] = byte(ipv4)
	return addr, nil
}
