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

// Package http1 实现一个零拷贝 可在任意字节边界挂起/恢复的 HTTP/1.x
// 解析器 调用方反复把任意大小的切片喂给 Resume 解析器通过 Handler
// 把解析到的片段回调出去 片段本身借用调用方的切片 仅在回调期间有效
package http1

import (
	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/fsm"
)

// Parser 是一个单线程 单所有者的 HTTP/1 状态机 它本身不保存任何输入
// 字节的拷贝 —— 每次 Resume 调用都会重新绑定到调用方提供的切片上
type Parser struct {
	mode  Mode
	state State

	// 四个互斥的模式标志 对应 spec 中 packed bit field 的四个 flag bit
	// 这里没有把它们打包进 32 位整数 按照设计说明 打包只是一种优化
	// 而不是契约的一部分
	chunked         bool
	chunkExtensions bool
	multipart       bool
	urlEncoded      bool

	// lower / upper 是在不同状态间复用的 scratch 字段：
	// - 初始行: lower = 版本号 major, upper = 版本号 minor
	// - chunk length: 已累积的十六进制值放在下面的 length 里 (需要 64 位)
	// - multipart boundary: upper = 当前比对到 boundary 的第几个字节
	lower uint32
	upper uint32

	// length 是长度受限采集状态的剩余字节数 (chunk payload / multipart
	// 分段 / url-encoded body 的剩余长度) 解析 chunk length 时也用它累积
	// 十六进制值
	length uint64

	boundary []byte

	// 是否请求行 (response==false) 由 StripDetect 阶段判定 影响版本
	// 解析之后走向状态码还是 CRLF
	isResponse bool

	// processed 是自构造以来跨越多次 Resume 调用的累计字节数
	processed uint64

	dead    bool
	deadErr *ParserError

	// scratch 累加用的字节缓冲 只在 slow-path 的大写字母规整化以及
	// chunk extension / header 值的转义处理中使用 不会跨 Resume 持有
	// 对调用方切片的引用 —— 它是解析器自己的小块内存 不受"零拷贝"
	// 约束的限制 因为它只保存解析器自己生成的字节 (比如规整化后的
	// 大写字母) 而不是对调用方缓冲区的借用
	pending []byte
}

// NewHead 构造一个从请求行/状态行开始解析的解析器
func NewHead() *Parser {
	p := &Parser{}
	p.InitHead()
	return p
}

// NewChunked 构造一个只解析 chunked body 的解析器
func NewChunked() *Parser {
	p := &Parser{}
	p.InitChunked()
	return p
}

// NewMultipart 构造一个只解析 multipart body 的解析器 boundary 必须在
// 喂数据之前通过 SetBoundary 设置
func NewMultipart() *Parser {
	p := &Parser{}
	p.InitMultipart()
	return p
}

// NewUrlEncoded 构造一个只解析 x-www-form-urlencoded body 的解析器
// 长度必须在喂数据之前通过 SetBodyLength 设置
func NewUrlEncoded() *Parser {
	p := &Parser{}
	p.InitUrlEncoded()
	return p
}

func (p *Parser) resetFlags() {
	p.chunked = false
	p.chunkExtensions = false
	p.multipart = false
	p.urlEncoded = false
	p.lower = 0
	p.upper = 0
	p.length = 0
	p.isResponse = false
	p.dead = false
	p.deadErr = nil
	p.pending = p.pending[:0]
}

// InitHead 将解析器重置为 Head 模式
func (p *Parser) InitHead() {
	p.resetFlags()
	p.mode = ModeHead
	p.state = StateStripDetect
}

// InitChunked 将解析器重置为 Chunked 模式
func (p *Parser) InitChunked() {
	p.resetFlags()
	p.mode = ModeChunked
	p.chunked = true
	p.state = StateChunkLengthFirst
}

// InitMultipart 将解析器重置为 Multipart 模式 boundary 需要随后设置
func (p *Parser) InitMultipart() {
	p.resetFlags()
	p.mode = ModeMultipart
	p.multipart = true
	p.state = StateMultipartPreamble
}

// InitUrlEncoded 将解析器重置为 UrlEncoded 模式 长度需要随后设置
func (p *Parser) InitUrlEncoded() {
	p.resetFlags()
	p.mode = ModeUrlEncoded
	p.urlEncoded = true
	p.state = StateUrlEncodedName
}

// Reset 让解析器回到当前模式的初始状态 等价于重新调用对应的 Init_* 方法
func (p *Parser) Reset() {
	switch p.mode {
	case ModeChunked:
		p.InitChunked()
	case ModeMultipart:
		p.InitMultipart()
	case ModeUrlEncoded:
		p.InitUrlEncoded()
	default:
		p.InitHead()
	}
}

// SetBoundary 设置 multipart 的边界字节串 解析器只持有对它的引用 直到
// 边界被显式替换或者解析器被重置
func (p *Parser) SetBoundary(boundary []byte) {
	p.boundary = boundary
}

// SetBodyLength 设置 url-encoded body 的总长度 每次 Resume 会把输入
// 截断到 min(len(data), 剩余长度)
func (p *Parser) SetBodyLength(n uint64) {
	p.length = n
}

// Mode 返回解析器当前的模式
func (p *Parser) Mode() Mode { return p.mode }

// State 返回解析器当前所处的状态 纯粹用于观测/调试
func (p *Parser) State() State { return p.state }

// Processed 返回自构造或上次 Reset 以来累计处理的字节数
func (p *Parser) Processed() uint64 { return p.processed }

// IsDead 返回解析器是否已经因为错误被锁死
func (p *Parser) IsDead() bool { return p.dead }

// Resume 把 data 喂给解析器 驱动状态机前进 直到:
//   - data 耗尽 (返回 Success{Kind: SuccessEos})
//   - 某个 handler 回调返回 false (返回 Success{Kind: SuccessCallback})
//   - 消息解析完整 (返回 Success{Kind: SuccessFinished})
//   - 出现格式错误 (返回非 nil 的 *ParserError 同时解析器进入 dead 状态)
//
// n 永远是"本次调用中从 data 消费的字节数" 不是跨调用的累计值
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

		switch {
		case p.state < stateHeaderBoundary:
			outcome, err = p.dispatchInitialAndHeaders(h, c)
		case p.state < stateChunkedBoundary:
			outcome, err = p.dispatchChunked(h, c)
		case p.state < stateMultipartBoundary:
			outcome, err = p.dispatchMultipart(h, c)
		case p.state < stateUrlEncodedBoundary:
			outcome, err = p.dispatchUrlEncoded(h, c)
		default:
			outcome, err = fsm.Continue, nil
			switch p.state {
			case StateFinished:
				outcome = fsm.ExitFinished(c.Index())
			case StateDead:
				err = ErrDeadState
			}
		}

		if err != nil {
			pe, ok := err.(*ParserError)
			if !ok {
				pe = newParserError(ErrDead, 0)
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

// 状态值的分段边界 用来在 Resume 的主循环里用一次区间比较代替一个
// 巨大的 switch 把调度分流到各个子文件实现的 dispatch 函数里
const (
	stateHeaderBoundary     = StateChunkLengthFirst
	stateChunkedBoundary    = StateMultipartPreamble
	stateMultipartBoundary  = StateUrlEncodedName
	stateUrlEncodedBoundary = StateFinished
)
