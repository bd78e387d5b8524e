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
	"github.com/packetd/httpwire/http2"
	"github.com/packetd/httpwire/internal/htlog"
)

// HTTP2 镜像 HTTP1 的思路 只不过累积的是帧级别的回调: 最近一次帧头 以及
// 每种帧体各自的字段 同一个 StreamID 上的多个帧会覆盖上一次的累积值
// 调用方如果要跨帧保留历史 请在每次 OnFrameFormat 之后自行读出并 Reset
type HTTP2 struct {
	http2.BaseHandler

	logger  htlog.Logger
	verbose bool

	PayloadLength uint32
	FrameType     uint8
	Flags         uint8
	StreamID      uint32

	Data         []byte
	DataFinished bool

	GoAwayLastStreamID uint32
	GoAwayErrorCode    uint32
	GoAwayDebugData    []byte

	HeadersExclusive        bool
	HeadersStreamDependency uint32
	HeadersWeight           uint8
	HeadersFragment         []byte
	HeadersFragmentFinished bool

	PingData         []byte
	PingDataFinished bool

	PriorityExclusive        bool
	PriorityStreamDependency uint32
	PriorityWeight           uint8

	PromisedStreamID uint32

	RSTStreamErrorCode uint32

	SettingsSeen map[uint16]uint32

	UnsupportedData     []byte
	UnsupportedFinished bool

	WindowUpdateIncrement uint32
}

var _ http2.Handler = (*HTTP2)(nil)

// NewHTTP2 用给定的 logger 构造一个 HTTP2 调试 handler
func NewHTTP2(logger htlog.Logger) *HTTP2 {
	return &HTTP2{logger: logger, verbose: true, SettingsSeen: make(map[uint16]uint32)}
}

// NewHTTP2Stdout 是 NewHTTP2(htlog.NewStdout()) 的简写
func NewHTTP2Stdout() *HTTP2 {
	return NewHTTP2(htlog.NewStdout())
}

// Reset 把所有累积字段清空 保留底层 logger
func (h *HTTP2) Reset() {
	*h = HTTP2{logger: h.logger, verbose: h.verbose, SettingsSeen: make(map[uint16]uint32)}
}

func (h *HTTP2) OnFrameFormat(payloadLength uint32, frameType uint8, flags uint8, streamID uint32) bool {
	h.logf("on_frame_format: type=%d flags=%#x stream=%d length=%d", frameType, flags, streamID, payloadLength)
	h.PayloadLength = payloadLength
	h.FrameType = frameType
	h.Flags = flags
	h.StreamID = streamID
	return true
}

func (h *HTTP2) OnData(data []byte, finished bool) bool {
	if containsNonVisibleASCII(data) {
		h.logf("on_data [%d] finished=%v: *hidden*", len(data), finished)
	} else {
		h.logf("on_data [%d] finished=%v: %q", len(data), finished, data)
	}
	h.Data = append(h.Data, data...)
	h.DataFinished = finished
	return true
}

func (h *HTTP2) OnGoAway(lastStreamID uint32, errorCode uint32) bool {
	h.logf("on_goaway: last_stream=%d error=%d", lastStreamID, errorCode)
	h.GoAwayLastStreamID = lastStreamID
	h.GoAwayErrorCode = errorCode
	return true
}

func (h *HTTP2) OnGoAwayDebugData(data []byte, finished bool) bool {
	h.logf("on_goaway_debug_data [%d] finished=%v: %q", len(data), finished, data)
	h.GoAwayDebugData = append(h.GoAwayDebugData, data...)
	return true
}

func (h *HTTP2) OnHeaders(exclusive bool, streamDependency uint32, weight uint8) bool {
	h.logf("on_headers: exclusive=%v depends_on=%d weight=%d", exclusive, streamDependency, weight)
	h.HeadersExclusive = exclusive
	h.HeadersStreamDependency = streamDependency
	h.HeadersWeight = weight
	return true
}

func (h *HTTP2) OnHeadersFragment(fragment []byte, finished bool) bool {
	h.logf("on_headers_fragment [%d] finished=%v", len(fragment), finished)
	h.HeadersFragment = append(h.HeadersFragment, fragment...)
	h.HeadersFragmentFinished = finished
	return true
}

func (h *HTTP2) OnPing(data []byte, finished bool) bool {
	h.logf("on_ping [%d] finished=%v: %q", len(data), finished, data)
	h.PingData = append(h.PingData, data...)
	h.PingDataFinished = finished
	return true
}

func (h *HTTP2) OnPriority(exclusive bool, streamDependency uint32, weight uint8) bool {
	h.logf("on_priority: exclusive=%v depends_on=%d weight=%d", exclusive, streamDependency, weight)
	h.PriorityExclusive = exclusive
	h.PriorityStreamDependency = streamDependency
	h.PriorityWeight = weight
	return true
}

func (h *HTTP2) OnPushPromise(promisedStreamID uint32) bool {
	h.logf("on_push_promise: promised_stream=%d", promisedStreamID)
	h.PromisedStreamID = promisedStreamID
	return true
}

func (h *HTTP2) OnRSTStream(errorCode uint32) bool {
	h.logf("on_rst_stream: error=%d", errorCode)
	h.RSTStreamErrorCode = errorCode
	return true
}

func (h *HTTP2) OnSettings(id uint16, value uint32) bool {
	h.logf("on_settings: id=%d value=%d", id, value)
	h.SettingsSeen[id] = value
	return true
}

func (h *HTTP2) OnUnsupported(data []byte, finished bool) bool {
	h.logf("on_unsupported [%d] finished=%v", len(data), finished)
	h.UnsupportedData = append(h.UnsupportedData, data...)
	h.UnsupportedFinished = finished
	return true
}

func (h *HTTP2) OnWindowUpdate(increment uint32) bool {
	h.logf("on_window_update: increment=%d", increment)
	h.WindowUpdateIncrement = increment
	return true
}

func (h *HTTP2) logf(format string, args ...any) {
	if !h.verbose {
		return
	}
	h.logger.Debugf(format, args...)
}
