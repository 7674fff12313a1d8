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
)

const (
	// ipv6Pieces is the number of 16-bit pieces in an IPv6 address.
	ipv6Pieces = 8
	// maxHexDigitsPerPiece bounds the digits read for one piece.
	maxHexDigitsPerPiece = 4
)

// parseIPv6 implements the IPv6 parser over the code points between the
// brackets. At most one "::" is allowed and a dotted IPv4 address may fill
// the last two pieces.
func parseIPv6(input []rune, report reporter) ([ipv6Pieces]uint16, error) {
	var address [ipv6Pieces]uint16
	pieceIndex := 0
	compress := -1
	pointer := 0

	at := func(i int) rune {
		if i < len(input) {
			return input[i]
		}
		return eof
	}
	fail := func(code ValidationCode) ([ipv6Pieces]uint16, error) {
		report.add(code)
		return [ipv6Pieces]uint16{}, fatal(ErrInvalidIPv6, code)
	}

	if at(pointer) == ':' {
		if at(pointer+1) != ':' {
			return fail(IPv6InvalidCompression)
		}
		pointer += 2
		pieceIndex++
		compress = pieceIndex
	}

	for at(pointer) != eof {
		if pieceIndex == ipv6Pieces {
			return fail(IPv6TooManyPieces)
		}
		if at(pointer) == ':' {
			if compress != -1 {
				return fail(IPv6MultipleCompression)
			}
			pointer++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		value, length := 0, 0
		for length < maxHexDigitsPerPiece && isASCIIHexDigit(at(pointer)) {
			value = value*0x10 + int(unhex(byte(at(pointer))))
			pointer++
			length++
		}

		switch at(pointer) {
		case '.':
			if length == 0 {
				return fail(IPv4InIPv6InvalidCodePoint)
			}
			pointer -= length
			if pieceIndex > ipv6Pieces-2 {
				return fail(IPv4InIPv6TooManyPieces)
			}
			numbersSeen := 0
			for at(pointer) != eof {
				ipv4Piece := -1
				if numbersSeen > 0 {
					if at(pointer) == '.' && numbersSeen < 4 {
						pointer++
					} else {
						return fail(IPv4InIPv6InvalidCodePoint)
					}
				}
				if !isASCIIDigit(at(pointer)) {
					return fail(IPv4InIPv6InvalidCodePoint)
				}
				for isASCIIDigit(at(pointer)) {
					number := int(at(pointer) - '0')
					switch ipv4Piece {
					case -1:
						ipv4Piece = number
					case 0:
						return fail(IPv4InIPv6InvalidCodePoint)
					default:
						ipv4Piece = ipv4Piece*10 + number
					}
					if ipv4Piece > maxIPv4Octet {
						return fail(IPv4InIPv6OutOfRangePart)
					}
					pointer++
				}
				address[pieceIndex] = address[pieceIndex]*0x100 + uint16(ipv4Piece)
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieceIndex++
				}
			}
			if numbersSeen != 4 {
				return fail(IPv4InIPv6TooFewParts)
			}
			return compressIPv6(address, pieceIndex, compress, report)
		case ':':
			pointer++
			if at(pointer) == eof {
				return fail(IPv6InvalidCodePoint)
			}
		case eof:
		default:
			return fail(IPv6InvalidCodePoint)
		}

		address[pieceIndex] = uint16(value)
		pieceIndex++
	}

	return compressIPv6(address, pieceIndex, compress, report)
}

// compressIPv6 moves the pieces that follow a "::" to the end of the address.
func compressIPv6(address [ipv6Pieces]uint16, pieceIndex, compress int, report reporter) ([ipv6Pieces]uint16, error) {
	if compress != -1 {
		swaps := pieceIndex - compress
		pieceIndex = ipv6Pieces - 1
		for pieceIndex != 0 && swaps > 0 {
			address[pieceIndex], address[compress+swaps-1] = address[compress+swaps-1], address[pieceIndex]
			pieceIndex--
			swaps--
		}
		return address, nil
	}
	if pieceIndex != ipv6Pieces {
		report.add(IPv6TooFewPieces)
		return [ipv6Pieces]uint16{}, fatal(ErrInvalidIPv6, IPv6TooFewPieces)
	}
	return address, nil
}

// serializeIPv6 writes the address in lowercase hex, replacing the first
// longest run of two or more zero pieces with "::".
func serializeIPv6(address [ipv6Pieces]uint16) string {
	compress, longest := -1, 1
	for i := 0; i < ipv6Pieces; {
		if address[i] != 0 {
			i++
			continue
		}
		j := i
		for j < ipv6Pieces && address[j] == 0 {
			j++
		}
		if j-i > longest {
			compress, longest = i, j-i
		}
		i = j
	}

	var b strings.Builder
	ignore0 := false
	for i := 0; i < ipv6Pieces; i++ {
		if ignore0 && address[i] == 0 {
			continue
		}
		ignore0 = false
		if compress == i {
			if i == 0 {
				b.WriteString("::")
			} else {
				b.WriteByte(':')
			}
			ignore0 = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(address[i]), 16))
		if i != ipv6Pieces-1 {
			b.WriteByte(':')
		}
	}
	return b.String()
}
