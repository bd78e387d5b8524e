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

// Handler 接收 http2 帧解析过程中产生的每一个回调 所有方法都返回 bool
// false 会让当前 Resume 调用挂起 之后带着更多数据再次 Resume 会从
// 挂起点精确续传
//
// data/fragment 类回调额外带一个 finished 标志 用来区分"这个结构体的
// 最后一段数据" 与"这次调用只是恰好用完了当前 slice"——两者含义不同
type Handler interface {
	// OnFrameFormat 在 9 字节的帧头被完整组装之后 对应帧的 payload
	// 状态机运行之前调用一次 payloadLength 不包含头部本身的 9 字节
	OnFrameFormat(payloadLength uint32, frameType uint8, flags uint8, streamID uint32) bool

	OnData(data []byte, finished bool) bool
	OnGoAway(lastStreamID uint32, errorCode uint32) bool
	OnGoAwayDebugData(data []byte, finished bool) bool
	OnHeaders(exclusive bool, streamDependency uint32, weight uint8) bool
	OnHeadersFragment(fragment []byte, finished bool) bool
	OnPing(data []byte, finished bool) bool
	OnPriority(exclusive bool, streamDependency uint32, weight uint8) bool
	OnPushPromise(promisedStreamID uint32) bool
	OnRSTStream(errorCode uint32) bool
	OnSettings(id uint16, value uint32) bool
	OnUnsupported(data []byte, finished bool) bool
	OnWindowUpdate(increment uint32) bool
}

// BaseHandler 为 Handler 的每一个方法提供默认实现 (全部放行 返回 true)
// 嵌入它的具体 handler 只需要覆写自己关心的回调 —— Go 没有 trait 默认
// 方法 这是等价的写法
type BaseHandler struct{}

func (BaseHandler) OnFrameFormat(uint32, uint8, uint8, uint32) bool { return true }
func (BaseHandler) OnData([]byte, bool) bool                       { return true }
func (BaseHandler) OnGoAway(uint32, uint32) bool                    { return true }
func (BaseHandler) OnGoAwayDebugData([]byte, bool) bool             { return true }
func (BaseHandler) OnHeaders(bool, uint32, uint8) bool              { return true }
func (BaseHandler) OnHeadersFragment([]byte, bool) bool             { return true }
func (BaseHandler) OnPing([]byte, bool) bool                        { return true }
func (BaseHandler) OnPriority(bool, uint32, uint8) bool             { return true }
func (BaseHandler) OnPushPromise(uint32) bool                       { return true }
func (BaseHandler) OnRSTStream(uint32) bool                         { return true }
func (BaseHandler) OnSettings(uint16, uint32) bool                  { return true }
func (BaseHandler) OnUnsupported([]byte, bool) bool                 { return true }
func (BaseHandler) OnWindowUpdate(uint32) bool                      { return true }

var _ Handler = BaseHandler{}
