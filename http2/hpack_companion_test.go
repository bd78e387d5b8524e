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

package http2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldMap(fields []HeaderField) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

func TestHeaderDecoderSingleHeader(t *testing.T) {
	dec := NewHeaderDecoder()
	defer dec.Release()

	input := []byte{
		0x40, 0x0c, 'c', 'o', 'n', 't', 'e', 'n', 't', '-', 't', 'y', 'p', 'e',
		0x10, 'a', 'p', 'p', 'l', 'i', 'c', 'a', 't', 'i', 'o', 'n', '/', 'j', 's', 'o', 'n',
	}
	fields, err := dec.Decode(input)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"content-type": "application/json"}, fieldMap(fields))
}

func TestHeaderDecoderMultipleHeadersAndStaticTable(t *testing.T) {
	dec := NewHeaderDecoder()
	defer dec.Release()

	input := []byte{
		0x82,
		0x44, 0x0b, '/', 'i', 'n', 'd', 'e', 'x', '.', 'h', 't', 'm', 'l',
		0x40, 0x0a, 'u', 's', 'e', 'r', '-', 'a', 'g', 'e', 'n', 't',
		0x0b, 't', 'e', 's', 't', '-', 'c', 'l', 'i', 'e', 'n', 't',
	}
	fields, err := dec.Decode(input)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		":method":    "GET",
		":path":      "/index.html",
		"user-agent": "test-client",
	}, fieldMap(fields))
}

func TestHeaderDecoderEmptyInput(t *testing.T) {
	dec := NewHeaderDecoder()
	defer dec.Release()

	fields, err := dec.Decode(nil)
	assert.NoError(t, err)
	assert.Empty(t, fields)
}

func TestHeaderDecoderDynamicTableAcrossCalls(t *testing.T) {
	dec := NewHeaderDecoder()
	defer dec.Release()

	first := []byte{
		0x40, 0x09, 'x', '-', 'v', 'e', 'r', 's', 'i', 'o', 'n',
		0x03, '1', '.', '0',
	}
	fields, err := dec.Decode(first)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"x-version": "1.0"}, fieldMap(fields))

	second := []byte{
		0x40, 0x09, 'x', '-', 'v', 'e', 'r', 's', 'i', 'o', 'n',
		0x03, '2', '.', '0',
	}
	fields, err = dec.Decode(second)
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"x-version": "2.0"}, fieldMap(fields))
}
