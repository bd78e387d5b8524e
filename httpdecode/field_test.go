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

func drainField(t *testing.T, it *FieldIterator) []FieldPair {
	t.Helper()
	var pairs []FieldPair
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func TestFieldIteratorNormalizeLowercasesNames(t *testing.T) {
	it := NewFieldIterator([]byte(`COMPRESSION=bzip; BOUNDARY="longrandomboundarystring"`), ';', true)
	pairs := drainField(t, it)
	require.Len(t, pairs, 2)
	assert.Equal(t, "compression", string(pairs[0].Name))
	assert.Equal(t, "bzip", string(pairs[0].Value))
	assert.Equal(t, "boundary", string(pairs[1].Name))
	assert.Equal(t, "longrandomboundarystring", string(pairs[1].Value))
}

func TestFieldIteratorContentTypeSlashInName(t *testing.T) {
	it := NewFieldIterator([]byte(`multipart/form-data; boundary=abc; charset=UTF-8`), ';', true)
	pairs := drainField(t, it)
	require.Len(t, pairs, 3)
	assert.Equal(t, "multipart/form-data", string(pairs[0].Name))
	assert.False(t, pairs[0].HasValue)
	assert.Equal(t, "boundary", string(pairs[1].Name))
	assert.Equal(t, "abc", string(pairs[1].Value))
	assert.Equal(t, "charset", string(pairs[2].Name))
	assert.Equal(t, "UTF-8", string(pairs[2].Value))
}

func TestFieldIteratorQuotedValueWithEscapes(t *testing.T) {
	it := NewFieldIterator([]byte(`name="a \"quoted\" value"`), ';', false)
	pairs := drainField(t, it)
	require.Len(t, pairs, 1)
	assert.Equal(t, "name", string(pairs[0].Name))
	assert.Equal(t, `a "quoted" value`, string(pairs[0].Value))
}

func TestFieldIteratorNameWithoutValue(t *testing.T) {
	it := NewFieldIterator([]byte("gzip; deflate"), ';', false)
	pairs := drainField(t, it)
	require.Len(t, pairs, 2)
	assert.Equal(t, "gzip", string(pairs[0].Name))
	assert.False(t, pairs[0].HasValue)
	assert.Equal(t, "deflate", string(pairs[1].Name))
	assert.False(t, pairs[1].HasValue)
}

func TestFieldIteratorRoundTripQuotedEscape(t *testing.T) {
	escaped := `val\\ue with \"quotes\"`
	expected := `val\ue with "quotes"`
	it := NewFieldIterator([]byte(`name="`+escaped+`"`), ';', false)
	pairs := drainField(t, it)
	require.Len(t, pairs, 1)
	assert.Equal(t, "name", string(pairs[0].Name))
	assert.Equal(t, expected, string(pairs[0].Value))
}

func TestFieldIteratorInvalidNameByte(t *testing.T) {
	var gotErr *FieldError
	it := NewFieldIterator([]byte("na\x01me=value"), ';', false).OnError(func(e *FieldError) {
		gotErr = e
	})
	_, ok := it.Next()
	assert.False(t, ok)
	require.NotNil(t, gotErr)
	assert.Equal(t, FieldErrorName, gotErr.Kind)
}

func TestFieldIteratorUnterminatedQuote(t *testing.T) {
	var gotErr *FieldError
	it := NewFieldIterator([]byte(`name="unterminated`), ';', false).OnError(func(e *FieldError) {
		gotErr = e
	})
	_, ok := it.Next()
	assert.False(t, ok)
	require.NotNil(t, gotErr)
	assert.Equal(t, FieldErrorValue, gotErr.Kind)
}

func TestFieldIteratorEmptyInput(t *testing.T) {
	it := NewFieldIterator(nil, ';', false)
	_, ok := it.Next()
	assert.False(t, ok)
}
