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

// HTTP/2 标准定义的帧类型
//
// * DATA: 传输流的应用数据
// * HEADERS: 传输头部信息 一般用于发起新流
// * PRIORITY: 指定或重新指定流的优先级
// * RST_STREAM: 终止流
// * SETTINGS: 协商连接级参数
// * PUSH_PROMISE: 服务器向客户端表明将发起流
// * PING: 测量往返时间 检查连接活性
// * GOAWAY: 通知对端不再接受新流
// * WINDOW_UPDATE: 实现流量控制 调整窗口大小
// * CONTINUATION: 继续传输因单个 HEADERS 或 PUSH_PROMISE 帧无法容纳的头部块
const (
	frameData         uint8 = 0x0
	frameHeaders      uint8 = 0x1
	framePriority     uint8 = 0x2
	frameRSTStream    uint8 = 0x3
	frameSettings     uint8 = 0x4
	framePushPromise  uint8 = 0x5
	framePing         uint8 = 0x6
	frameGoAway       uint8 = 0x7
	frameWindowUpdate uint8 = 0x8
	frameContinuation uint8 = 0x9
)

const (
	// flagEndStream 用于 DATA 和 HEADERS 帧 表示当前是流的最后一帧
	flagEndStream uint8 = 0x1

	// flagEndHeaders 用于 HEADERS/PUSH_PROMISE/CONTINUATION 帧
	// 表示完整的头部块已传输完毕
	flagEndHeaders uint8 = 0x4

	// flagPadded 用于 DATA/HEADERS/PUSH_PROMISE 帧 (这里额外地对任何
	// "other" 帧类型也一视同仁地尊重这个标志位) 表示帧携带填充数据
	flagPadded uint8 = 0x8

	// flagPriority 用于 HEADERS 帧 表示负载里携带优先级信息
	flagPriority uint8 = 0x20
)

// headerLength 是帧头固定长度
const headerLength = 9

// streamIDMask 屏蔽掉流标识符最高的保留位
const streamIDMask uint32 = 0x7fffffff

// State 枚举 Parser 可能所处的状态 一个状态机连接维持整个 TCP 连接
// 生命周期内反复处理帧: 每个帧的 payload 状态机跑完之后回到
// StateFrameHeader 处理下一帧 没有终态 (Finished) 的概念 —— 不同于
// http1 的一次性消息 http2 是一个不间断的帧流
type State uint8

const (
	StateFrameHeader State = iota

	StateDataPadLength
	StateDataBody
	StateDataPadding

	StateHeadersPadLength
	StateHeadersPriority
	StateHeadersFragment
	StateHeadersPadding

	StatePriority

	StateRSTStream

	StateSettingsPair
	StateSettingsTrailer

	StatePushPromisePadLength
	StatePushPromiseStreamID
	StatePushPromiseFragment
	StatePushPromisePadding

	StatePing

	StateGoAwayFixed
	StateGoAwayDebugData

	StateWindowUpdate

	StateContinuationFragment

	StateUnsupportedPadLength
	StateUnsupportedData
	StateUnsupportedPadding

	StateDead
)

func (s State) String() string {
	switch s {
	case StateFrameHeader:
		return "FrameHeader"
	case StateDataPadLength:
		return "DataPadLength"
	case StateDataBody:
		return "DataBody"
	case StateDataPadding:
		return "DataPadding"
	case StateHeadersPadLength:
		return "HeadersPadLength"
	case StateHeadersPriority:
		return "HeadersPriority"
	case StateHeadersFragment:
		return "HeadersFragment"
	case StateHeadersPadding:
		return "HeadersPadding"
	case StatePriority:
		return "Priority"
	case StateRSTStream:
		return "RSTStream"
	case StateSettingsPair:
		return "SettingsPair"
	case StateSettingsTrailer:
		return "SettingsTrailer"
	case StatePushPromisePadLength:
		return "PushPromisePadLength"
	case StatePushPromiseStreamID:
		return "PushPromiseStreamID"
	case StatePushPromiseFragment:
		return "PushPromiseFragment"
	case StatePushPromisePadding:
		return "PushPromisePadding"
	case StatePing:
		return "Ping"
	case StateGoAwayFixed:
		return "GoAwayFixed"
	case StateGoAwayDebugData:
		return "GoAwayDebugData"
	case StateWindowUpdate:
		return "WindowUpdate"
	case StateContinuationFragment:
		return "ContinuationFragment"
	case StateUnsupportedPadLength:
		return "UnsupportedPadLength"
	case StateUnsupportedData:
		return "UnsupportedData"
	case StateUnsupportedPadding:
		return "UnsupportedPadding"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}
