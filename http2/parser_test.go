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
	"fmt"
	"testing"

	"github.com/packetd/httpwire/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	BaseHandler
	events []string
}

func (r *recordingHandler) OnFrameFormat(payloadLength uint32, frameType uint8, flags uint8, streamID uint32) bool {
	r.events = append(r.events, fmt.Sprintf("frame_format %d 0x%02x 0x%02x %d", payloadLength, frameType, flags, streamID))
	return true
}
func (r *recordingHandler) OnSettings(id uint16, value uint32) bool {
	r.events = append(r.events, fmt.Sprintf("settings %d %d", id, value))
	return true
}
func (r *recordingHandler) OnData(data []byte, finished bool) bool {
	r.events = append(r.events, fmt.Sprintf("data %q finished=%v", data, finished))
	return true
}
func (r *recordingHandler) OnHeaders(exclusive bool, dependency uint32, weight uint8) bool {
	r.events = append(r.events, fmt.Sprintf("headers excl=%v dep=%d weight=%d", exclusive, dependency, weight))
	return true
}
func (r *recordingHandler) OnHeadersFragment(fragment []byte, finished bool) bool {
	r.events = append(r.events, fmt.Sprintf("headers_fragment %q finished=%v", fragment, finished))
	return true
}
func (r *recordingHandler) OnPing(data []byte, finished bool) bool {
	r.events = append(r.events, fmt.Sprintf("ping %q finished=%v", data, finished))
	return true
}
func (r *recordingHandler) OnGoAway(lastStreamID, errorCode uint32) bool {
	r.events = append(r.events, fmt.Sprintf("go_away %d %d", lastStreamID, errorCode))
	return true
}
func (r *recordingHandler) OnGoAwayDebugData(data []byte, finished bool) bool {
	r.events = append(r.events, fmt.Sprintf("go_away_debug_data %q finished=%v", data, finished))
	return true
}
func (r *recordingHandler) OnWindowUpdate(increment uint32) bool {
	r.events = append(r.events, fmt.Sprintf("window_update %d", increment))
	return true
}
func (r *recordingHandler) OnRSTStream(errorCode uint32) bool {
	r.events = append(r.events, fmt.Sprintf("rst_stream %d", errorCode))
	return true
}
func (r *recordingHandler) OnPriority(exclusive bool, dependency uint32, weight uint8) bool {
	r.events = append(r.events, fmt.Sprintf("priority excl=%v dep=%d weight=%d", exclusive, dependency, weight))
	return true
}
func (r *recordingHandler) OnPushPromise(promisedStreamID uint32) bool {
	r.events = append(r.events, fmt.Sprintf("push_promise %d", promisedStreamID))
	return true
}
func (r *recordingHandler) OnUnsupported(data []byte, finished bool) bool {
	r.events = append(r.events, fmt.Sprintf("unsupported %q finished=%v", data, finished))
	return true
}

func TestScenario5SettingsFrame(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x06, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x03, 0x00, 0x00, 0x00, 0x64,
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, fsm.SuccessEos, s.Kind)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 6 0x04 0x00 0",
		"settings 3 100",
	}, h.events)

	s, err = p.Resume(h, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.N)
	assert.Equal(t, []string{
		"frame_format 6 0x04 0x00 0",
		"settings 3 100",
	}, h.events)
}

func TestDataFrameWithPadding(t *testing.T) {
	// length=6 type=DATA(0x0) flags=PADDED(0x8) stream=1
	// payload: pad_length(1)=2, data="abc", padding=2 bytes
	input := []byte{
		0x00, 0x00, 0x06, 0x00, 0x08, 0x00, 0x00, 0x00, 0x01,
		0x02, 'a', 'b', 'c', 0x00, 0x00,
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 6 0x00 0x08 1",
		`data "abc" finished=true`,
	}, h.events)
}

func TestHeadersFrameWithPriority(t *testing.T) {
	// length=10 type=HEADERS(0x1) flags=END_HEADERS|PRIORITY(0x24) stream=3
	// payload: dependency word (exclusive=0, dep=5), weight=9, fragment "hello"
	input := []byte{
		0x00, 0x00, 0x0a, 0x01, 0x24, 0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x05, 0x09, 'h', 'e', 'l', 'l', 'o',
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 10 0x01 0x24 3",
		"headers excl=false dep=5 weight=9",
		`headers_fragment "hello" finished=true`,
	}, h.events)
}

func TestPingFrame(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x08, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00,
		1, 2, 3, 4, 5, 6, 7, 8,
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 8 0x06 0x00 0",
		`ping "\x01\x02\x03\x04\x05\x06\a\b" finished=true`,
	}, h.events)
}

func TestGoAwayFrame(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x0a, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x00,
		'n', 'o',
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 10 0x07 0x00 0",
		"go_away 9 0",
		`go_away_debug_data "no" finished=true`,
	}, h.events)
}

func TestEmptySliceReturnsEosZero(t *testing.T) {
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.N)
	assert.Empty(t, h.events)
}

func TestRestartabilityAcrossArbitraryPartitions(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x06, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x03, 0x00, 0x00, 0x00, 0x64,
	}
	whole := &recordingHandler{}
	pWhole := New()
	_, err := pWhole.Resume(whole, input)
	require.NoError(t, err)

	piecemeal := &recordingHandler{}
	p := New()
	total := 0
	for _, b := range input {
		s, err := p.Resume(piecemeal, []byte{b})
		require.NoError(t, err)
		total += s.N
	}
	assert.Equal(t, len(input), total)
	assert.Equal(t, whole.events, piecemeal.events, "byte-by-byte feeding must match whole-buffer feeding")
}

func TestMultipleFramesInSequence(t *testing.T) {
	// WINDOW_UPDATE(4) then PRIORITY(5) on the same connection
	input := []byte{
		0x00, 0x00, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x64,
		0x00, 0x00, 0x05, 0x02, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x80, 0x00, 0x00, 0x02, 0x10,
	}
	p := New()
	h := &recordingHandler{}
	s, err := p.Resume(h, input)
	require.NoError(t, err)
	assert.Equal(t, len(input), s.N)
	assert.Equal(t, []string{
		"frame_format 4 0x08 0x00 0",
		"window_update 100",
		"frame_format 5 0x02 0x00 1",
		"priority excl=true dep=2 weight=16",
	}, h.events)
}
