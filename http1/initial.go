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

var httpLiteral = []byte("HTTP/")

func toUpperASCII(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 0x20
	}
	return b
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}
	return b
}

// dispatchInitialAndHeaders 把请求行/状态行以及 headers 的状态路由到
// 各自的处理函数 只在 Head 模式以及 Multipart 分段 headers 下使用
func (p *Parser) dispatchInitialAndHeaders(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	switch p.state {
	case StateStripDetect:
		return p.doStripDetect(h, c)
	case StateDetectHTTP:
		return p.doDetectHTTP(h, c)
	case StateMethodCollect:
		return p.doMethodCollect(h, c)
	case StateURL:
		return p.doURL(h, c)
	case StateVersionMajor:
		return p.doVersionMajor(h, c)
	case StateVersionMinorRequest:
		return p.doVersionMinor(h, c, true)
	case StateVersionMinorResponse:
		return p.doVersionMinor(h, c, false)
	case StateStatusCodeSpace:
		return p.doStatusCodeSpace(h, c)
	case StateStatusCode:
		return p.doStatusCode(h, c)
	case StateStatusTextSpace:
		return p.doStatusTextSpace(h, c)
	case StateStatusText:
		return p.doStatusText(h, c)
	case StateInitialCr:
		return p.doInitialCr(h, c)
	case StateInitialLf:
		return p.doInitialLf(h, c)
	default:
		return p.dispatchHeaders(h, c)
	}
}

func (p *Parser) doStripDetect(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' || b == '\t' {
			c.Next()
			continue
		}
		if b == 'H' || b == 'h' {
			p.lower = 0
			p.pending = p.pending[:0]
			p.state = StateDetectHTTP
			return fsm.Continue, nil
		}
		p.pending = p.pending[:0]
		p.state = StateMethodCollect
		return fsm.Continue, nil
	}
}

func (p *Parser) doDetectHTTP(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for int(p.lower) < len(httpLiteral) {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		want := httpLiteral[p.lower]
		matches := b == want
		if !matches && want != '/' {
			matches = toUpperASCII(b) == want
		}
		if !matches {
			c.Replay()
			p.state = StateMethodCollect
			return fsm.Continue, nil
		}
		p.pending = append(p.pending, toUpperASCII(b))
		p.lower++
	}
	p.isResponse = true
	p.pending = p.pending[:0]
	p.lower = 0
	p.upper = 0
	p.state = StateVersionMajor
	return fsm.Continue, nil
}

// doMethodCollect 先 (如果需要) 把 StripDetect/DetectHTTP 阶段已经消费
// 但尚未交付的前缀字节通过 on_method 一次性送出 然后进入正常的逐字节
// 采集 碰到小写字母时原地规整化为大写单字节回调 碰到空格结束方法名
func (p *Parser) doMethodCollect(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if len(p.pending) > 0 {
		if !h.OnMethod(p.pending) {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.pending = p.pending[:0]
	}

	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnMethod(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' {
			if c.Index() > c.MarkIndex() {
				if !h.OnMethod(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateURL
			return fsm.Continue, nil
		}
		if b >= 'a' && b <= 'z' {
			if c.Index() > c.MarkIndex() {
				if !h.OnMethod(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			upper := toUpperASCII(b)
			c.Next()
			if !h.OnMethod([]byte{upper}) {
				return fsm.ExitCallback(c.Index()), nil
			}
			c.Mark()
			continue
		}
		if !classify.IsToken(b) {
			return fsm.Continue, newParserError(ErrMethod, b)
		}
		c.Next()
	}
}

func (p *Parser) doURL(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnURL(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ' ' {
			if c.Index() > c.MarkIndex() {
				if !h.OnURL(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.lower = 0
			p.upper = 0
			p.state = StateVersionMajor
			return fsm.Continue, nil
		}
		if !classify.IsVisible7Bit(b) {
			return fsm.Continue, newParserError(ErrUrl, b)
		}
		c.Next()
	}
}

func (p *Parser) doVersionMajor(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		// 请求行的版本号前面是 `HTTP/` 前缀 (响应的前缀已由 DetectHTTP 消费)
		// upper 在这里记录已比对到前缀的第几个字节
		if !p.isResponse && int(p.upper) < len(httpLiteral) {
			c.Next()
			if toUpperASCII(b) != httpLiteral[p.upper] {
				return fsm.Continue, newParserError(ErrVersion, b)
			}
			p.upper++
			continue
		}
		if b >= '0' && b <= '9' {
			p.lower = p.lower*10 + uint32(b-'0')
			c.Next()
			continue
		}
		if b == '.' {
			c.Next()
			p.upper = 0
			if p.isResponse {
				p.state = StateVersionMinorResponse
			} else {
				p.state = StateVersionMinorRequest
			}
			return fsm.Continue, nil
		}
		return fsm.Continue, newParserError(ErrVersion, b)
	}
}

func (p *Parser) doVersionMinor(h Handler, c *bytestream.Cursor, request bool) (fsm.Outcome, error) {
	terminator := byte(' ')
	if request {
		terminator = '\r'
	}
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b >= '0' && b <= '9' {
			p.upper = p.upper*10 + uint32(b-'0')
			c.Next()
			continue
		}
		if b == terminator {
			c.Next()
			if !h.OnVersion(uint8(p.lower), uint8(p.upper)) {
				return fsm.ExitCallback(c.Index()), nil
			}
			if request {
				p.state = StateInitialLf
			} else {
				// 版本号后的空格已经被消费 直接进入状态码
				p.lower = 0
				p.upper = 0 // upper doubles as "digits seen" counter here
				p.state = StateStatusCode
			}
			return fsm.Continue, nil
		}
		return fsm.Continue, newParserError(ErrVersion, b)
	}
}

func (p *Parser) doStatusCodeSpace(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != ' ' {
			return fsm.Continue, newParserError(ErrStatusCode, b)
		}
		p.lower = 0
		p.upper = 0 // upper doubles as "digits seen" counter here
		p.state = StateStatusCode
		return fsm.Continue, nil
	}
}

func (p *Parser) doStatusCode(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b >= '0' && b <= '9' && p.upper < 3 {
			p.lower = p.lower*10 + uint32(b-'0')
			p.upper++
			c.Next()
			continue
		}
		if b == ' ' && p.upper == 3 {
			c.Next()
			if !h.OnStatusCode(uint16(p.lower)) {
				return fsm.ExitCallback(c.Index()), nil
			}
			p.state = StateStatusText
			return fsm.Continue, nil
		}
		return fsm.Continue, newParserError(ErrStatusCode, b)
	}
}

func (p *Parser) doStatusTextSpace(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	p.state = StateStatusText
	return fsm.Continue, nil
}

func (p *Parser) doStatusText(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnStatus(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '\r' {
			if c.Index() > c.MarkIndex() {
				if !h.OnStatus(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateInitialLf
			return fsm.Continue, nil
		}
		if !classify.IsToken(b) && b != ' ' && b != '\t' {
			return fsm.Continue, newParserError(ErrStatus, b)
		}
		c.Next()
	}
}

func (p *Parser) doInitialCr(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\r' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		p.state = StateInitialLf
		return fsm.Continue, nil
	}
}

func (p *Parser) doInitialLf(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		if !h.OnInitialFinished() {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.state = StateStripHeaderName
		return fsm.Continue, nil
	}
}
