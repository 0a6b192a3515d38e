// Copyright (c) 2026 The MetaSpace developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meta

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Bytes32 array of 32 bytes, mostly used as the output of blake2b.
type Bytes32 [32]byte

var errInvalidBytes32 = errors.New("invalid bytes32")

// String implements stringer.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// AbbrevString returns the abbreviated form 0xAAAA..BBBB.
func (b Bytes32) AbbrevString() string {
	s := hex.EncodeToString(b[:])
	return "0x" + s[:4] + ".." + s[len(s)-4:]
}

// Bytes returns the underlying byte slice.
func (b Bytes32) Bytes() []byte {
	return b[:]
}

// MarshalJSON implements json.Marshaler.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", b.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := ParseBytes32(hexStr)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// IsZero returns true if all bytes are zero.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// BytesToBytes32 converts a byte slice to Bytes32, left-padding with zeros.
func BytesToBytes32(b []byte) Bytes32 {
	var b32 Bytes32
	if len(b) > len(b32) {
		b = b[len(b)-32:]
	}
	copy(b32[32-len(b):], b)
	return b32
}

// ParseBytes32 converts a hex string into Bytes32.
func ParseBytes32(s string) (Bytes32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) != 64 {
		return Bytes32{}, errInvalidBytes32
	}
	var b32 Bytes32
	_, err := hex.Decode(b32[:], []byte(s))
	if err != nil {
		return Bytes32{}, err
	}
	return b32, nil
}

// MustParseBytes32 parses a bytes32 hex string or panics.
func MustParseBytes32(s string) Bytes32 {
	b32, err := ParseBytes32(s)
	if err != nil {
		panic(fmt.Sprintf("invalid bytes32 %q: %v", s, err))
	}
	return b32
}
