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

package debughandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetd/httpwire/http1"
	"github.com/packetd/httpwire/http2"
	"github.com/packetd/httpwire/internal/htlog"
)

func TestHTTP1AccumulatesRequestLineAndHeaders(t *testing.T) {
	h := NewHTTP1(htlog.NewStdout())
	p := http1.NewHead()

	input := []byte("GET /index?x=1 HTTP/1.1\r\nHost: example.com\r\n\r\n")
	_, err := p.Resume(h, input)
	require.NoError(t, err)

	assert.Equal(t, "GET", string(h.Method))
	assert.Equal(t, "/index?x=1", string(h.URL))
	assert.EqualValues(t, 1, h.VersionMajor)
	assert.EqualValues(t, 1, h.VersionMinor)
	assert.True(t, h.HeadersFinished)
	assert.True(t, h.InitialFinished)
}

func TestHTTP1ResetClearsAccumulatedFields(t *testing.T) {
	h := NewHTTP1(htlog.NewStdout())
	p := http1.NewHead()

	_, err := p.Resume(h, []byte("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	require.NotEmpty(t, h.Method)

	h.Reset()
	assert.Empty(t, h.Method)
	assert.Empty(t, h.URL)
	assert.False(t, h.HeadersFinished)
}

func TestHTTP1ContentLengthRoundTrip(t *testing.T) {
	h := NewHTTP1(htlog.NewStdout())
	h.SetContentLength(42, true)
	n, ok := h.ContentLength()
	assert.True(t, ok)
	assert.Equal(t, 42, n)
}

func TestHTTP1HidesNonVisibleChunkData(t *testing.T) {
	h := NewHTTP1(htlog.NewStdout())
	ok := h.OnChunkData([]byte{0x00, 0xFF, 0x41})
	assert.True(t, ok)
	assert.Equal(t, []byte{0x00, 0xFF, 0x41}, h.ChunkData)
}

func TestHTTP2AccumulatesFrameFormatAndSettings(t *testing.T) {
	h := NewHTTP2(htlog.NewStdout())
	p := http2.New()

	frame := []byte{0x00, 0x00, 0x06, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00}
	frame = append(frame, 0x00, 0x03, 0x00, 0x00, 0x00, 0x64)
	_, err := p.Resume(h, frame)
	require.NoError(t, err)

	assert.EqualValues(t, 6, h.PayloadLength)
	assert.EqualValues(t, 4, h.FrameType)
	assert.EqualValues(t, 0, h.StreamID)
	assert.Equal(t, uint32(100), h.SettingsSeen[3])
}

func TestHTTP2ResetClearsAccumulatedFields(t *testing.T) {
	h := NewHTTP2(htlog.NewStdout())
	h.OnGoAway(7, 1)
	require.NotZero(t, h.GoAwayLastStreamID)

	h.Reset()
	assert.Zero(t, h.GoAwayLastStreamID)
	assert.Empty(t, h.SettingsSeen)
}
