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

// Package http2 实现一个零拷贝 可在任意字节边界挂起/恢复的 HTTP/2
// 帧解析器 它只负责帧格式本身 (RFC 7540 §4.1/§6) 不解释帧内容 —— 比如
// HEADERS 帧里 HPACK 压缩的头部块原样交给 handler 不在这里解码
package http2

import (
	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/fsm"
)

// Parser 是一个单线程 单所有者的 http2 帧状态机 不保存输入字节的拷贝
// 每次 Resume 都重新绑定到调用方提供的切片上 一个 Parser 对应一条
// TCP 连接 (而不是单个 stream) —— 流的多路复用由调用方在回调层面自行
// 按 stream_id 拆分
type Parser struct {
	state State

	// headerPos 是帧头逐字节累积模式下已经收集的字节数 仅在一次 Resume
	// 调用里剩余字节不足 9 个时使用 足够时直接整体借用切片
	headerPos int

	payloadLen uint32
	frameType  uint8
	flags      uint8
	streamID   uint32

	// length 是当前帧 payload 里尚未处理的字节数 含义随 state 变化:
	// 进入某个帧类型的 payload 状态机时被置为 payloadLen 随着消费递减
	length uint32

	// padLen 是 PADDED 标志位声明的填充字节数 在读到 pad-length 字节
	// 之后才有效
	padLen uint32

	// dataRemaining / padRemaining 是具体数据阶段与填充阶段各自剩余的
	// 字节数 由对应的 enterXxxBody 在进入阶段时从 length/padLen 派生
	dataRemaining uint32
	padRemaining  uint32

	// scratch 用来拼接跨 Resume 边界的定长字段 (比如 RST_STREAM 的 4
	// 字节错误码 PING 的 8 字节不适用这里——它走 data 流式路径) 足够
	// 容纳最大的定长字段 (GOAWAY 的 last_stream_id+error_code 共 8 字节)
	scratch     [8]byte
	scratchFill int

	processed uint64
	dead      bool
	deadErr   *ParserError
}

// New 构造一个新的 http2 帧解析器 从帧头开始解析 http2 没有 http1
// 那样的多种模式 —— 一个连接上的所有帧共用同一套状态机
func New() *Parser {
	return &Parser{state: StateFrameHeader}
}

// Reset 让解析器回到初始状态 可以在错误之后或者连接复用时调用
func (p *Parser) Reset() {
	*p = Parser{state: StateFrameHeader}
}

// State 返回解析器当前所处的状态 纯粹用于观测/调试
func (p *Parser) State() State { return p.state }

// Processed 返回自构造或上次 Reset 以来累计处理的字节数
func (p *Parser) Processed() uint64 { return p.processed }

// IsDead 返回解析器是否已经因为错误被锁死
func (p *Parser) IsDead() bool { return p.dead }

// Resume 把 data 喂给解析器 驱动状态机前进 直到:
//   - data 耗尽 (返回 Success{Kind: SuccessEos})
//   - 某个 handler 回调返回 false (返回 Success{Kind: SuccessCallback})
//   - 出现格式错误 (返回非 nil 的 *ParserError 同时解析器进入 dead 状态)
//
// http2 是一个不间断的帧流 正常情况下永远不会产生 Finished —— 一帧的
// payload 跑完之后立刻回到 StateFrameHeader 处理下一帧
func (p *Parser) Resume(h Handler, data []byte) (fsm.Success, error) {
	if p.dead {
		return fsm.Success{}, p.deadErr
	}
	if len(data) == 0 {
		return fsm.Success{Kind: fsm.SuccessEos, N: 0}, nil
	}

	c := bytestream.New(data)

	for {
		var outcome fsm.Outcome
		var err error

		switch p.state {
		case StateFrameHeader:
			outcome, err = p.doFrameHeader(h, c)
		case StateDataPadLength:
			outcome, err = p.doDataPadLength(h, c)
		case StateDataBody:
			outcome, err = p.doDataBody(h, c)
		case StateDataPadding:
			outcome, err = p.doDataPadding(h, c)
		case StateHeadersPadLength:
			outcome, err = p.doHeadersPadLength(h, c)
		case StateHeadersPriority:
			outcome, err = p.doHeadersPriority(h, c)
		case StateHeadersFragment:
			outcome, err = p.doHeadersFragment(h, c)
		case StateHeadersPadding:
			outcome, err = p.doHeadersPadding(h, c)
		case StatePriority:
			outcome, err = p.doPriority(h, c)
		case StateRSTStream:
			outcome, err = p.doRSTStream(h, c)
		case StateSettingsPair:
			outcome, err = p.doSettingsPair(h, c)
		case StateSettingsTrailer:
			outcome, err = p.doSettingsTrailer(h, c)
		case StatePushPromisePadLength:
			outcome, err = p.doPushPromisePadLength(h, c)
		case StatePushPromiseStreamID:
			outcome, err = p.doPushPromiseStreamID(h, c)
		case StatePushPromiseFragment:
			outcome, err = p.doPushPromiseFragment(h, c)
		case StatePushPromisePadding:
			outcome, err = p.doPushPromisePadding(h, c)
		case StatePing:
			outcome, err = p.doPing(h, c)
		case StateGoAwayFixed:
			outcome, err = p.doGoAwayFixed(h, c)
		case StateGoAwayDebugData:
			outcome, err = p.doGoAwayDebugData(h, c)
		case StateWindowUpdate:
			outcome, err = p.doWindowUpdate(h, c)
		case StateContinuationFragment:
			outcome, err = p.doContinuationFragment(h, c)
		case StateUnsupportedPadLength:
			outcome, err = p.doUnsupportedPadLength(h, c)
		case StateUnsupportedData:
			outcome, err = p.doUnsupportedData(h, c)
		case StateUnsupportedPadding:
			outcome, err = p.doUnsupportedPadding(h, c)
		default:
			err = ErrDeadState
		}

		if err != nil {
			pe, ok := err.(*ParserError)
			if !ok {
				pe = &ParserError{Code: ErrDead}
			}
			p.dead = true
			p.deadErr = pe
			p.state = StateDead
			return fsm.Success{}, pe
		}

		if outcome.IsExit() {
			s := outcome.AsSuccess()
			p.processed += uint64(s.N)
			return s, nil
		}
	}
}

// doFrameHeader 读取 9 字节固定帧头: 24 位 payload 长度 8 位类型 8 位
// 标志位 1 位保留 + 31 位流标识符 足够字节一次性可用时整体借用切片
// (零拷贝) 否则逐字节累积 跨任意多次 Resume 调用续传
func (p *Parser) doFrameHeader(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if p.headerPos == 0 && c.Available() >= headerLength {
		c.Mark()
		c.Jump(headerLength)
		buf := c.Slice()
		p.assembleHeader(buf)
		return p.frameHeaderAssembled(h, c)
	}

	for p.headerPos < headerLength {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		p.scratch[p.headerPos] = c.Next()
		p.headerPos++
	}
	p.assembleHeader(p.scratch[:headerLength])
	p.headerPos = 0
	return p.frameHeaderAssembled(h, c)
}

func (p *Parser) assembleHeader(buf []byte) {
	p.payloadLen = uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
	p.frameType = buf[3]
	p.flags = buf[4]
	p.streamID = (uint32(buf[5])<<24 | uint32(buf[6])<<16 | uint32(buf[7])<<8 | uint32(buf[8])) & streamIDMask
}

// frameHeaderAssembled 触发 on_frame_format 然后根据帧类型与标志位
// 把状态路由到对应的 payload 状态机入口
func (p *Parser) frameHeaderAssembled(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if !h.OnFrameFormat(p.payloadLen, p.frameType, p.flags, p.streamID) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.length = p.payloadLen
	p.padLen = 0
	p.scratchFill = 0

	switch p.frameType {
	case frameData:
		if p.flags&flagPadded != 0 {
			p.state = StateDataPadLength
		} else {
			p.enterDataBody()
			p.state = StateDataBody
		}
	case frameHeaders:
		if p.flags&flagPadded != 0 {
			p.state = StateHeadersPadLength
		} else if p.flags&flagPriority != 0 {
			p.state = StateHeadersPriority
		} else {
			p.enterHeadersFragment()
			p.state = StateHeadersFragment
		}
	case framePriority:
		p.state = StatePriority
	case frameRSTStream:
		p.state = StateRSTStream
	case frameSettings:
		p.state = StateSettingsPair
	case framePushPromise:
		if p.flags&flagPadded != 0 {
			p.state = StatePushPromisePadLength
		} else {
			p.state = StatePushPromiseStreamID
		}
	case framePing:
		p.dataRemaining = 8
		p.state = StatePing
	case frameGoAway:
		p.state = StateGoAwayFixed
	case frameWindowUpdate:
		p.state = StateWindowUpdate
	case frameContinuation:
		p.dataRemaining = p.length
		p.state = StateContinuationFragment
	default:
		if p.flags&flagPadded != 0 {
			p.state = StateUnsupportedPadLength
		} else {
			p.dataRemaining = p.length
			p.state = StateUnsupportedData
		}
	}
	return fsm.Continue, nil
}

func (p *Parser) enterDataBody() {
	p.dataRemaining = p.length - p.padLen
	p.padRemaining = p.padLen
}

func (p *Parser) enterHeadersFragment() {
	p.dataRemaining = p.length - p.padLen
	p.padRemaining = p.padLen
}

// readPadLength 消费 payload 的第一个字节作为 pad length 并从 length
// 里扣掉这一个字节 共享给 DATA/HEADERS/PUSH_PROMISE/unsupported 四种
// 帧类型的 pad-length 阶段
func (p *Parser) readPadLength(c *bytestream.Cursor) (uint32, bool) {
	if c.IsEOS() {
		return 0, false
	}
	b := c.Next()
	p.length--
	return uint32(b), true
}

// fixedField 收集一个 need 字节的定长字段 足够字节一次性可用时直接
// 借用切片 否则逐字节拷贝进 p.scratch 直到凑齐 跨 Resume 调用续传
func (p *Parser) fixedField(c *bytestream.Cursor, need int) ([]byte, bool) {
	if p.scratchFill == 0 && c.Available() >= need {
		c.Mark()
		c.Jump(need)
		return c.Slice(), true
	}
	for p.scratchFill < need {
		if c.IsEOS() {
			return nil, false
		}
		p.scratch[p.scratchFill] = c.Next()
		p.scratchFill++
	}
	p.scratchFill = 0
	return p.scratch[:need], true
}

// streamRemaining 把 *remaining 指向的剩余字节数逐段消费 每消费一段就
// 调用一次 deliver 传入这段数据以及 finished (remaining 降为 0) 被
// DATA/HEADERS fragment/PUSH_PROMISE fragment/CONTINUATION/PING/GOAWAY
// debug data/unsupported 共用
func (p *Parser) streamRemaining(c *bytestream.Cursor, remaining *uint32, deliver func([]byte, bool) bool) (fsm.Outcome, error) {
	for *remaining > 0 {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		avail := uint32(c.Available())
		take := *remaining
		if avail < take {
			take = avail
		}
		c.Mark()
		c.Jump(int(take))
		*remaining -= take
		if !deliver(c.Slice(), *remaining == 0) {
			return fsm.ExitCallback(c.Index()), nil
		}
	}
	return fsm.Continue, nil
}

// discardRemaining 和 streamRemaining 类似但不交付数据给 handler 只是
// 跳过 用于消费填充字节
func discardRemaining(c *bytestream.Cursor, remaining *uint32) (fsm.Outcome, bool) {
	for *remaining > 0 {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), false
		}
		avail := uint32(c.Available())
		take := *remaining
		if avail < take {
			take = avail
		}
		c.Jump(int(take))
		*remaining -= take
	}
	return fsm.Outcome{}, true
}
