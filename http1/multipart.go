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
	"github.com/packetd/httpwire/fsm"
)

// dispatchMultipart 路由 multipart body 相关的状态 一个分段的 headers
// 复用 dispatchInitialAndHeaders 共用的 header 语法 (通过把 state 设为
// StateStripHeaderName 来"借道")
func (p *Parser) dispatchMultipart(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	switch p.state {
	case StateMultipartPreamble:
		return p.doMultipartPreambleEntry(h, c)
	case StateMultipartBoundaryMatch, StateMultipartDataScan:
		return p.doMultipartBoundaryMatch(h, c)
	case StateMultipartAfterBoundaryCr:
		return p.doMultipartAfterBoundaryCr(h, c)
	case StateMultipartAfterBoundaryLf:
		return p.doMultipartAfterBoundaryLf(h, c)
	case StateMultipartAfterBoundaryHyphen:
		return p.doMultipartAfterBoundaryHyphen(h, c)
	case StateMultipartHeaders:
		return p.doMultipartHeadersBegin(h, c)
	case StateMultipartDataKnownLength:
		return p.doMultipartDataKnownLength(h, c)
	default:
		return fsm.Continue, newParserError(ErrDead, 0)
	}
}

const multipartPatternPrefix = "\r\n--"

// patternLen 是完整识别模式 "\r\n--" + boundary 的字节数
func (p *Parser) patternLen() int {
	return len(multipartPatternPrefix) + len(p.boundary)
}

func (p *Parser) patternByte(idx int) byte {
	if idx < len(multipartPatternPrefix) {
		return multipartPatternPrefix[idx]
	}
	return p.boundary[idx-len(multipartPatternPrefix)]
}

// doMultipartPreambleEntry 是 body 最开始的入口 —— 第一个边界前面没有
// 真正的前导 CRLF 所以把匹配计数预置为 2 (假装 "\r\n" 已经匹配过)
// 直接复用通用的边界匹配状态机
func (p *Parser) doMultipartPreambleEntry(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	p.upper = 2
	p.state = StateMultipartBoundaryMatch
	return fsm.Continue, nil
}

// doMultipartBoundaryMatch 同时承担两个职责：
//  1. 在分段数据里逐字节扫描 寻找下一个 "\r\n--boundary"
//  2. 已知长度的分段数据消费完之后 原地校验紧跟着的就是边界
//
// p.upper 是已经试探性匹配上的模式字节数 一旦某个字节与模式不符 已经
// 暂存 (尚未交付) 的那部分字节会带着 "\r\n--" 前缀重新当作 multipart
// data 交付出去 数据扫描从这个不匹配的字节重新开始 不会丢字节也不会
// 重复交付
func (p *Parser) doMultipartBoundaryMatch(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnMultipartData(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		matchCount := int(p.upper)
		b := c.Peek()
		if b == p.patternByte(matchCount) {
			if matchCount == 0 && c.Index() > c.MarkIndex() {
				if !h.OnMultipartData(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			matchCount++
			if matchCount == p.patternLen() {
				p.upper = 0
				p.state = StateMultipartAfterBoundaryCr
				return fsm.Continue, nil
			}
			p.upper = uint32(matchCount)
			continue
		}
		if matchCount > 0 {
			held := make([]byte, matchCount)
			for i := 0; i < matchCount; i++ {
				held[i] = p.patternByte(i)
			}
			if !h.OnMultipartData(held) {
				return fsm.ExitCallback(c.Index()), nil
			}
			p.upper = 0
			c.Mark()
			continue
		}
		c.Next()
	}
}

func (p *Parser) doMultipartAfterBoundaryCr(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		switch b {
		case '\r':
			p.state = StateMultipartAfterBoundaryLf
			return fsm.Continue, nil
		case '-':
			p.state = StateMultipartAfterBoundaryHyphen
			return fsm.Continue, nil
		default:
			return fsm.Continue, newParserError(ErrMultipartBoundary, b)
		}
	}
}

func (p *Parser) doMultipartAfterBoundaryLf(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		p.state = StateMultipartHeaders
		return fsm.Continue, nil
	}
}

func (p *Parser) doMultipartAfterBoundaryHyphen(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '-' {
			return fsm.Continue, newParserError(ErrMultipartBoundary, b)
		}
		if !h.OnBodyFinished() {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.state = StateFinished
		return fsm.ExitFinished(c.Index()), nil
	}
}

func (p *Parser) doMultipartHeadersBegin(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if !h.OnMultipartBegin() {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateStripHeaderName
	return fsm.Continue, nil
}

// afterMultipartSectionHeaders 在一个分段的 headers 结束 (on_headers_finished
// 已经触发) 之后被调用 决定这个分段的数据是按 handler 提供的
// content_length 定长消费 还是逐字节扫描下一个边界
func (p *Parser) afterMultipartSectionHeaders(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if n, ok := h.ContentLength(); ok {
		p.length = uint64(n)
		p.state = StateMultipartDataKnownLength
	} else {
		p.upper = 0
		p.state = StateMultipartDataScan
	}
	return fsm.Continue, nil
}

func (p *Parser) doMultipartDataKnownLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for p.length > 0 {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		avail := uint64(c.Available())
		take := p.length
		if avail < take {
			take = avail
		}
		c.Mark()
		c.Jump(int(take))
		p.length -= take
		if !h.OnMultipartData(c.Slice()) {
			return fsm.ExitCallback(c.Index()), nil
		}
	}
	p.upper = 0
	p.state = StateMultipartBoundaryMatch
	return fsm.Continue, nil
}
