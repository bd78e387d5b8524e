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

package httpconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaults(t *testing.T) {
	o := New()
	assert.Equal(t, 4096, o.GetInt(KeyReadBufferHint, 4096))
	assert.Equal(t, false, o.GetBool(KeyLogDecodedEvents, false))
	assert.Equal(t, "x", o.GetString(KeyMaxHeaderLineLength, "x"))
}

func TestOptionsSetAndGet(t *testing.T) {
	o := New().
		Set(KeyReadBufferHint, "8192").
		Set(KeyMaxChunkExtensions, 16).
		Set(KeyLogDecodedEvents, "true")

	assert.Equal(t, 8192, o.GetInt(KeyReadBufferHint, 0))
	assert.Equal(t, 16, o.GetInt(KeyMaxChunkExtensions, 0))
	assert.Equal(t, true, o.GetBool(KeyLogDecodedEvents, false))
}

func TestOptionsWrongTypeFallsBackToDefault(t *testing.T) {
	o := New().Set(KeyMaxHeaderLineLength, "not a bool")
	assert.Equal(t, false, o.GetBool(KeyMaxHeaderLineLength, false))
}
