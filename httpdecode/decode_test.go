// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpdecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBasic(t *testing.T) {
	got, err := Decode([]byte("Hello,%20world"))
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello, world"), got)
}

func TestDecodePlusIsSpace(t *testing.T) {
	got, err := Decode([]byte("a+b+c"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a b c"), got)
}

func TestDecodeInvalidByte(t *testing.T) {
	_, err := Decode([]byte("a\x01b"))
	require.Error(t, err)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, DecodeErrorByte, derr.Kind)
}

func TestDecodeInvalidHexSequence(t *testing.T) {
	_, err := Decode([]byte("%2Z"))
	require.Error(t, err)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, DecodeErrorHexSequence, derr.Kind)
}

func TestDecodeTruncatedHexSequence(t *testing.T) {
	_, err := Decode([]byte("abc%2"))
	require.Error(t, err)
}

func TestRoundTripDecodeEncode(t *testing.T) {
	for _, s := range []string{
		"hello",
		"Hello, world!",
		"a/b?c=d&e=f#g",
		"<tag> {brace} |pipe| `tick` ^caret^",
		"!#$&'()*,-./0123456789:;=?@ABCXYZ[]_abcxyz{|}~",
	} {
		encoded := Encode([]byte(s))
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, s, string(decoded))
	}
}
