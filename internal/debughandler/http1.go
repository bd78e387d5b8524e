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

// Package debughandler 提供两个示范性的 Handler 实现 (HTTP/1 与 HTTP/2
// 各一个) 把解析器推送的每一个回调都原样累积到可导出字段里 同时借助
// internal/htlog 打一条调试轨迹 它们不是生产代码路径的一部分 只用来
// 在文档示例和集成测试里观察一次 Resume 调用到底触发了哪些回调
package debughandler

import (
	"github.com/packetd/httpwire/http1"
	"github.com/packetd/httpwire/internal/htlog"
)

// HTTP1 把 http1.Handler 的每一个回调都累积到对应的公开字段上 二进制数据
// 字段在多次回调之间是追加的 因为同一个结构体字段在一次消息里可能被
// 分多次推送
type HTTP1 struct {
	http1.BaseHandler

	logger  htlog.Logger
	verbose bool

	ContentLengthValue int
	ContentLengthKnown bool

	Method              []byte
	URL                 []byte
	StatusCode          uint16
	Status              []byte
	VersionMajor        uint8
	VersionMinor        uint8
	HeaderName          []byte
	HeaderValue         []byte
	HeadersFinished     bool
	InitialFinished     bool
	ChunkLength         uint64
	ChunkBeginCount     int
	ChunkData           []byte
	ChunkExtensionName  []byte
	ChunkExtensionValue []byte
	MultipartBeginCount int
	MultipartData       []byte
	BodyFinished        bool
	URLEncodedName      []byte
	URLEncodedValue     []byte
}

var _ http1.Handler = (*HTTP1)(nil)

// NewHTTP1 用给定的 logger 构造一个 HTTP1 调试 handler
func NewHTTP1(logger htlog.Logger) *HTTP1 {
	return &HTTP1{logger: logger, verbose: true}
}

// NewHTTP1Stdout 是 NewHTTP1(htlog.NewStdout()) 的简写 方便在文档示例里
// 一行建起来
func NewHTTP1Stdout() *HTTP1 {
	return NewHTTP1(htlog.NewStdout())
}

// Reset 把所有累积字段清空 方便在同一个 handler 上解析下一条消息
func (h *HTTP1) Reset() {
	*h = HTTP1{logger: h.logger, verbose: h.verbose}
}

// SetContentLength 配置 ContentLength 回调的返回值 用于驱动 multipart
// 分段的边界识别
func (h *HTTP1) SetContentLength(n int, ok bool) {
	h.ContentLengthValue = n
	h.ContentLengthKnown = ok
}

func (h *HTTP1) ContentLength() (int, bool) {
	return h.ContentLengthValue, h.ContentLengthKnown
}

func (h *HTTP1) OnMethod(method []byte) bool {
	h.logf("on_method [%d]: %q", len(method), method)
	h.Method = append(h.Method, method...)
	return true
}

func (h *HTTP1) OnURL(url []byte) bool {
	h.logf("on_url [%d]: %q", len(url), url)
	h.URL = append(h.URL, url...)
	return true
}

func (h *HTTP1) OnStatusCode(code uint16) bool {
	h.logf("on_status_code: %d", code)
	h.StatusCode = code
	return true
}

func (h *HTTP1) OnStatus(status []byte) bool {
	h.logf("on_status [%d]: %q", len(status), status)
	h.Status = append(h.Status, status...)
	return true
}

func (h *HTTP1) OnVersion(major, minor uint8) bool {
	h.logf("on_version: %d.%d", major, minor)
	h.VersionMajor = major
	h.VersionMinor = minor
	return true
}

func (h *HTTP1) OnHeaderName(name []byte) bool {
	h.logf("on_header_name [%d]: %q", len(name), name)
	h.HeaderName = append(h.HeaderName, name...)
	return true
}

func (h *HTTP1) OnHeaderValue(value []byte) bool {
	h.logf("on_header_value [%d]: %q", len(value), value)
	h.HeaderValue = append(h.HeaderValue, value...)
	return true
}

func (h *HTTP1) OnHeadersFinished() bool {
	h.logf("on_headers_finished")
	h.HeadersFinished = true
	return true
}

func (h *HTTP1) OnInitialFinished() bool {
	h.logf("on_initial_finished")
	h.InitialFinished = true
	return true
}

func (h *HTTP1) OnChunkLength(length uint64) bool {
	h.logf("on_chunk_length: %d", length)
	h.ChunkLength = length
	return true
}

func (h *HTTP1) OnChunkBegin() bool {
	h.logf("on_chunk_begin")
	h.ChunkBeginCount++
	return true
}

// OnChunkData 镜像了被移植来源对不可打印字节的处理: 只要这一段数据里出现
// 任何一个非 ASCII 可见字节 日志就只打印长度 用 *hidden* 代替内容 不影响
// 累积到 ChunkData 字段里的原始字节
func (h *HTTP1) OnChunkData(data []byte) bool {
	if containsNonVisibleASCII(data) {
		h.logf("on_chunk_data [%d]: *hidden*", len(data))
	} else {
		h.logf("on_chunk_data [%d]: %q", len(data), data)
	}
	h.ChunkData = append(h.ChunkData, data...)
	return true
}

func (h *HTTP1) OnChunkExtensionName(name []byte) bool {
	h.logf("on_chunk_extension_name [%d]: %q", len(name), name)
	h.ChunkExtensionName = append(h.ChunkExtensionName, name...)
	return true
}

func (h *HTTP1) OnChunkExtensionValue(value []byte) bool {
	h.logf("on_chunk_extension_value [%d]: %q", len(value), value)
	h.ChunkExtensionValue = append(h.ChunkExtensionValue, value...)
	return true
}

func (h *HTTP1) OnChunkExtensionFinished() bool {
	h.logf("on_chunk_extension_finished")
	return true
}

func (h *HTTP1) OnChunkExtensionsFinished() bool {
	h.logf("on_chunk_extensions_finished")
	return true
}

func (h *HTTP1) OnMultipartBegin() bool {
	h.logf("on_multipart_begin")
	h.MultipartBeginCount++
	return true
}

func (h *HTTP1) OnMultipartData(data []byte) bool {
	h.logf("on_multipart_data [%d]: %q", len(data), data)
	h.MultipartData = append(h.MultipartData, data...)
	return true
}

func (h *HTTP1) OnBodyFinished() bool {
	h.logf("on_body_finished")
	h.BodyFinished = true
	return true
}

func (h *HTTP1) OnURLEncodedName(name []byte) bool {
	h.logf("on_url_encoded_name [%d]: %q", len(name), name)
	h.URLEncodedName = append(h.URLEncodedName, name...)
	return true
}

func (h *HTTP1) OnURLEncodedValue(value []byte) bool {
	h.logf("on_url_encoded_value [%d]: %q", len(value), value)
	h.URLEncodedValue = append(h.URLEncodedValue, value...)
	return true
}

func (h *HTTP1) logf(format string, args ...any) {
	if !h.verbose {
		return
	}
	h.logger.Debugf(format, args...)
}

func containsNonVisibleASCII(data []byte) bool {
	for _, b := range data {
		if b > 0x7F {
			return true
		}
	}
	return false
}
