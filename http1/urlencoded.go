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

// dispatchUrlEncoded 路由 x-www-form-urlencoded body 相关的状态
//
// p.length 是调用方通过 SetBodyLength 设置的 body 总长度里尚未消费的
// 剩余字节数 每消费一个输入字节就递减一次 —— 这就是 spec 所说的
// "resume 把输入截断到 min(slice_len, remaining_length)" 的等效实现：
// 一旦剩余长度归零 解析器就地结束 不会去看 data 里超出 body 范围的
// 剩余字节
func (p *Parser) dispatchUrlEncoded(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	switch p.state {
	case StateUrlEncodedName:
		return p.doUrlEncodedName(h, c)
	case StateUrlEncodedNamePctFirst:
		return p.doUrlEncodedNamePct(h, c, true)
	case StateUrlEncodedNamePctSecond:
		return p.doUrlEncodedNamePct(h, c, false)
	case StateUrlEncodedValue:
		return p.doUrlEncodedValue(h, c)
	case StateUrlEncodedValuePctFirst:
		return p.doUrlEncodedValuePct(h, c, true)
	case StateUrlEncodedValuePctSecond:
		return p.doUrlEncodedValuePct(h, c, false)
	default:
		return fsm.Continue, newParserError(ErrDead, 0)
	}
}

// urlEncodedBodyDone 检查调用方通过 SetBodyLength 设置的剩余长度是否已经
// 归零 归零时这一段正在累积的 name/value 片段还没有被冲刷出去 (它是在
// 每次消费完一个字节之后才检查长度 而不是在遇到分隔符的时候) 所以必须
// 先用 flush 把 c.Mark() 到当前位置之间已经收集到的字节交给 handler 再
// 宣布 body 结束 —— 否则 "body 长度恰好在输入末尾归零" 这种最常见的情形
// 会把最后一段 name/value 丢在地上
func (p *Parser) urlEncodedBodyDone(h Handler, c *bytestream.Cursor, flush func() bool) (fsm.Outcome, bool, error) {
	if p.length == 0 {
		if c.Index() > c.MarkIndex() {
			if !flush() {
				return fsm.ExitCallback(c.Index()), true, nil
			}
		}
		if !h.OnBodyFinished() {
			return fsm.ExitCallback(c.Index()), true, nil
		}
		p.state = StateFinished
		return fsm.ExitFinished(c.Index()), true, nil
	}
	return fsm.Outcome{}, false, nil
}

func (p *Parser) doUrlEncodedName(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if out, done, err := p.urlEncodedBodyDone(h, c, func() bool { return h.OnURLEncodedName(c.Slice()) }); done {
			return out, err
		}
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		switch b {
		case '=':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			p.state = StateUrlEncodedValue
			return fsm.Continue, nil
		case '&', ';':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			if !h.OnURLEncodedValue(nil) {
				return fsm.ExitCallback(c.Index()), nil
			}
			c.Mark()
			continue
		case '+':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			if !h.OnURLEncodedName([]byte{' '}) {
				return fsm.ExitCallback(c.Index()), nil
			}
			c.Mark()
			continue
		case '%':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			p.state = StateUrlEncodedNamePctFirst
			return fsm.Continue, nil
		default:
			c.Next()
			p.length--
		}
	}
}

func (p *Parser) doUrlEncodedNamePct(h Handler, c *bytestream.Cursor, first bool) (fsm.Outcome, error) {
	if c.IsEOS() {
		return fsm.ExitEos(c.Index()), nil
	}
	b := c.Peek()
	if !classify.IsHex(b) {
		return fsm.Continue, newParserError(ErrUrlEncodedName, b)
	}
	c.Next()
	p.length--
	if first {
		p.lower = uint32(classify.HexValue(b))
		p.state = StateUrlEncodedNamePctSecond
		return fsm.Continue, nil
	}
	decoded := byte(p.lower)<<4 | classify.HexValue(b)
	if !h.OnURLEncodedName([]byte{decoded}) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateUrlEncodedName
	return fsm.Continue, nil
}

func (p *Parser) doUrlEncodedValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if out, done, err := p.urlEncodedBodyDone(h, c, func() bool { return h.OnURLEncodedValue(c.Slice()) }); done {
			return out, err
		}
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		switch b {
		case '&', ';':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			p.state = StateUrlEncodedName
			return fsm.Continue, nil
		case '+':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			if !h.OnURLEncodedValue([]byte{' '}) {
				return fsm.ExitCallback(c.Index()), nil
			}
			c.Mark()
			continue
		case '%':
			if c.Index() > c.MarkIndex() {
				if !h.OnURLEncodedValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.length--
			p.state = StateUrlEncodedValuePctFirst
			return fsm.Continue, nil
		default:
			c.Next()
			p.length--
		}
	}
}

func (p *Parser) doUrlEncodedValuePct(h Handler, c *bytestream.Cursor, first bool) (fsm.Outcome, error) {
	if c.IsEOS() {
		return fsm.ExitEos(c.Index()), nil
	}
	b := c.Peek()
	if !classify.IsHex(b) {
		return fsm.Continue, newParserError(ErrUrlEncodedValue, b)
	}
	c.Next()
	p.length--
	if first {
		p.lower = uint32(classify.HexValue(b))
		p.state = StateUrlEncodedValuePctSecond
		return fsm.Continue, nil
	}
	decoded := byte(p.lower)<<4 | classify.HexValue(b)
	if !h.OnURLEncodedValue([]byte{decoded}) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateUrlEncodedValue
	return fsm.Continue, nil
}
