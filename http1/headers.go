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

import (
	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/classify"
	"github.com/packetd/httpwire/fsm"
)

// dispatchHeaders 路由 headers 相关的状态 被 Head 模式的初始行之后
// 以及 Multipart 分段 headers 共用
func (p *Parser) dispatchHeaders(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	switch p.state {
	case StateStripHeaderName:
		return p.doStripHeaderName(h, c)
	case StateHeaderName:
		return p.doHeaderName(h, c)
	case StateHeaderColon:
		return p.doHeaderColon(h, c)
	case StateStripHeaderValue:
		return p.doStripHeaderValue(h, c)
	case StateHeaderValueQuotedOrNot:
		return p.doHeaderValueQuotedOrNot(h, c)
	case StateHeaderValue:
		return p.doHeaderValue(h, c)
	case StateHeaderValueQuoted:
		return p.doHeaderValueQuoted(h, c)
	case StateHeaderValueQuotedEscape:
		return p.doHeaderValueQuotedEscape(h, c)
	case StateHeaderValueCr:
		return p.doHeaderValueCr(h, c)
	case StateHeaderLf:
		return p.doHeaderLf(h, c)
	case StateHeaderCr2:
		return p.doHeaderCr2(h, c)
	case StateHeaderLf2OrFold:
		return p.doHeaderLf2OrFold(h, c)
	default:
		return fsm.Continue, newParserError(ErrDead, 0)
	}
}

func (p *Parser) doStripHeaderName(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' || b == '\t' {
			c.Next()
			continue
		}
		if b == '\r' {
			c.Next()
			p.state = StateHeaderCr2
			return fsm.Continue, nil
		}
		p.state = StateHeaderName
		return fsm.Continue, nil
	}
}

// doHeaderName 逐字节采集 header 名字 遇到大写字母时先送出已标记的
// 片段 再单独送出其小写形式的单字节片段 遇到 `:` 结束名字采集
func (p *Parser) doHeaderName(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ':' {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateStripHeaderValue
			return fsm.Continue, nil
		}
		if b >= 'A' && b <= 'Z' {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			lower := toLowerASCII(b)
			c.Next()
			if !h.OnHeaderName([]byte{lower}) {
				return fsm.ExitCallback(c.Index()), nil
			}
			c.Mark()
			continue
		}
		if !classify.IsToken(b) {
			return fsm.Continue, newParserError(ErrHeaderName, b)
		}
		c.Next()
	}
}

// doHeaderColon 未被使用 名字的 `:` 由 doHeaderName 内联处理 保留作为
// 调度表的防御分支
func (p *Parser) doHeaderColon(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	p.state = StateStripHeaderValue
	return fsm.Continue, nil
}

func (p *Parser) doStripHeaderValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' || b == '\t' {
			c.Next()
			continue
		}
		p.state = StateHeaderValueQuotedOrNot
		return fsm.Continue, nil
	}
}

func (p *Parser) doHeaderValueQuotedOrNot(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '"' {
			c.Next()
			p.state = StateHeaderValueQuoted
			return fsm.Continue, nil
		}
		p.state = StateHeaderValue
		return fsm.Continue, nil
	}
}

func (p *Parser) doHeaderValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '\r' {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateHeaderLf
			return fsm.Continue, nil
		}
		if !classify.IsVisible7Bit(b) && b != ' ' && b != '\t' {
			return fsm.Continue, newParserError(ErrHeaderValue, b)
		}
		c.Next()
	}
}

func (p *Parser) doHeaderValueQuoted(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '"' {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateHeaderValueCr
			return fsm.Continue, nil
		}
		if b == '\\' {
			if c.Index() > c.MarkIndex() {
				if !h.OnHeaderValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateHeaderValueQuotedEscape
			return fsm.Continue, nil
		}
		c.Next()
	}
}

func (p *Parser) doHeaderValueQuotedEscape(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if !h.OnHeaderValue([]byte{b}) {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.state = StateHeaderValueQuoted
		return fsm.Continue, nil
	}
}

func (p *Parser) doHeaderValueCr(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\r' {
			return fsm.Continue, newParserError(ErrHeaderValue, b)
		}
		p.state = StateHeaderLf
		return fsm.Continue, nil
	}
}

// doHeaderLf 消费一个 header value 末尾的 `\n` 随后转入 fold 探测
func (p *Parser) doHeaderLf(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		p.state = StateHeaderLf2OrFold
		return fsm.Continue, nil
	}
}

// doHeaderCr2 处理 headers 整体结束的第二个 CR (第一个 CR 已经在
// doStripHeaderName 碰到空行时消费)
func (p *Parser) doHeaderCr2(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		return p.headersFinished(h, c)
	}
}

// doHeaderLf2OrFold 在一个 header value 的 CRLF 之后 窥视下一个字节：
// 如果是空格/tab 这是一个 obs-fold 延续行 —— 送出一个合成的单空格
// 然后回到 StripHeaderValue (它会自己吃掉真正的前导空白); 否则说明
// 下一个 header (或者空行) 开始 转入 StripHeaderName
func (p *Parser) doHeaderLf2OrFold(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' || b == '\t' {
			if !h.OnHeaderValue([]byte{' '}) {
				return fsm.ExitCallback(c.Index()), nil
			}
			p.state = StateStripHeaderValue
			return fsm.Continue, nil
		}
		p.state = StateStripHeaderName
		return fsm.Continue, nil
	}
}

// headersFinished 在空行 (CRLFCRLF) 被完整识别之后调用 通知 handler
// 并根据当前模式决定下一步: Head 进入 Finished body 留给调用方处理;
// Multipart 转入分段数据; Chunked 不会从这里进入 (它共享 header
// 语法但结束方式不同 见 chunked.go)
func (p *Parser) headersFinished(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if !h.OnHeadersFinished() {
		return fsm.ExitCallback(c.Index()), nil
	}
	if p.multipart {
		return p.afterMultipartSectionHeaders(h, c)
	}
	if p.chunked {
		if !h.OnBodyFinished() {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.state = StateFinished
		return fsm.ExitFinished(c.Index()), nil
	}
	p.state = StateFinished
	return fsm.ExitFinished(c.Index()), nil
}
