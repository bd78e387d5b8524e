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

package http1

// Handler 是 HTTP/1 解析器调用的能力集合 所有推送类回调返回 bool：
// 返回 false 会让解析器在当前字节处挂起 下一次 Resume 时从同一个状态
// 继续 —— 调用方不需要实现全部方法 只需要嵌入 BaseHandler 并覆盖自己
// 关心的那几个
//
// 传给回调的字节切片借用调用者喂给 Resume 的缓冲区 仅在回调期间有效
// handler 如果要保留数据 必须自己拷贝
type Handler interface {
	// ContentLength 在 multipart 分段边界被解析器拉取一次 返回 false
	// 表示"未知长度" 此时分段数据改由扫描下一个边界来确定
	ContentLength() (n int, ok bool)

	OnBodyFinished() bool
	OnChunkBegin() bool
	OnChunkData(data []byte) bool
	OnChunkExtensionFinished() bool
	OnChunkExtensionName(name []byte) bool
	OnChunkExtensionValue(value []byte) bool
	OnChunkExtensionsFinished() bool
	OnChunkLength(length uint64) bool
	OnHeaderName(name []byte) bool
	OnHeaderValue(value []byte) bool
	OnHeadersFinished() bool
	OnInitialFinished() bool
	OnMethod(method []byte) bool
	OnMultipartBegin() bool
	OnMultipartData(data []byte) bool
	OnStatus(status []byte) bool
	OnStatusCode(code uint16) bool
	OnURL(url []byte) bool
	OnURLEncodedName(name []byte) bool
	OnURLEncodedValue(value []byte) bool
	OnVersion(major, minor uint8) bool
}

// BaseHandler 为 Handler 的每一个方法提供"什么都不做 返回 true"的默认
// 实现 具体的 handler 只需要匿名嵌入它 然后覆盖自己关心的那几个方法
type BaseHandler struct{}

var _ Handler = BaseHandler{}

func (BaseHandler) ContentLength() (int, bool)            { return 0, false }
func (BaseHandler) OnBodyFinished() bool                  { return true }
func (BaseHandler) OnChunkBegin() bool                    { return true }
func (BaseHandler) OnChunkData(data []byte) bool          { return true }
func (BaseHandler) OnChunkExtensionFinished() bool        { return true }
func (BaseHandler) OnChunkExtensionName(name []byte) bool { return true }
func (BaseHandler) OnChunkExtensionValue(v []byte) bool   { return true }
func (BaseHandler) OnChunkExtensionsFinished() bool       { return true }
func (BaseHandler) OnChunkLength(length uint64) bool      { return true }
func (BaseHandler) OnHeaderName(name []byte) bool         { return true }
func (BaseHandler) OnHeaderValue(value []byte) bool       { return true }
func (BaseHandler) OnHeadersFinished() bool                { return true }
func (BaseHandler) OnInitialFinished() bool                { return true }
func (BaseHandler) OnMethod(method []byte) bool             { return true }
func (BaseHandler) OnMultipartBegin() bool                  { return true }
func (BaseHandler) OnMultipartData(data []byte) bool        { return true }
func (BaseHandler) OnStatus(status []byte) bool              { return true }
func (BaseHandler) OnStatusCode(code uint16) bool             { return true }
func (BaseHandler) OnURL(url []byte) bool                      { return true }
func (BaseHandler) OnURLEncodedName(name []byte) bool           { return true }
func (BaseHandler) OnURLEncodedValue(value []byte) bool          { return true }
func (BaseHandler) OnVersion(major, minor uint8) bool              { return true }
