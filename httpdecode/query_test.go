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

func drainQuery(t *testing.T, it *QueryIterator) []QueryPair {
	t.Helper()
	var pairs []QueryPair
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func TestQueryIteratorBasic(t *testing.T) {
	it := NewQueryIterator([]byte("a=1&b=2;c=3"))
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 3)
	assert.Equal(t, "a", string(pairs[0].Name))
	assert.Equal(t, "1", string(pairs[0].Value))
	assert.Equal(t, "b", string(pairs[1].Name))
	assert.Equal(t, "2", string(pairs[1].Value))
	assert.Equal(t, "c", string(pairs[2].Name))
	assert.Equal(t, "3", string(pairs[2].Value))
}

func TestQueryIteratorLeadingQuestionMark(t *testing.T) {
	it := NewQueryIterator([]byte("?a=1"))
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", string(pairs[0].Name))
	assert.Equal(t, "1", string(pairs[0].Value))
}

func TestQueryIteratorMissingEquals(t *testing.T) {
	it := NewQueryIterator([]byte("flag&b=2"))
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 2)
	assert.Equal(t, "flag", string(pairs[0].Name))
	assert.False(t, pairs[0].HasValue)
	assert.Equal(t, "b", string(pairs[1].Name))
}

func TestQueryIteratorEmptyValue(t *testing.T) {
	it := NewQueryIterator([]byte("a="))
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].HasValue)
	assert.Equal(t, "", string(pairs[0].Value))
}

func TestQueryIteratorPlusAndPercent(t *testing.T) {
	it := NewQueryIterator([]byte("na+me=val%20ue"))
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 1)
	assert.Equal(t, "na me", string(pairs[0].Name))
	assert.Equal(t, "val ue", string(pairs[0].Value))
}

func TestQueryIteratorEmptyNameErrors(t *testing.T) {
	var gotErr *QueryError
	it := NewQueryIterator([]byte("=value")).OnError(func(e *QueryError) {
		gotErr = e
	})
	_, ok := it.Next()
	assert.False(t, ok)
	require.NotNil(t, gotErr)
	assert.Equal(t, QueryErrorName, gotErr.Kind)
}

func TestQueryIteratorRoundTripSinglePair(t *testing.T) {
	name := []byte("a name & value")
	value := []byte("v=1, special?")

	input := append(append(append([]byte{}, Encode(name)...), '='), Encode(value)...)

	it := NewQueryIterator(input)
	pairs := drainQuery(t, it)
	require.Len(t, pairs, 1)
	assert.Equal(t, name, pairs[0].Name)
	assert.True(t, pairs[0].HasValue)
	assert.Equal(t, value, pairs[0].Value)
}

func TestQueryIteratorEmptyInput(t *testing.T) {
	it := NewQueryIterator(nil)
	_, ok := it.Next()
	assert.False(t, ok)
}
