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
	"math"

	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/classify"
	"github.com/packetd/httpwire/fsm"
)

// dispatchChunked 路由 chunked body 相关的状态 trailer 的 headers 部分
// 被重新路由回 dispatchInitialAndHeaders 共用的 header 语法 (见
// headersFinished 里对 p.chunked 的特殊处理)
func (p *Parser) dispatchChunked(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	switch p.state {
	case StateChunkLengthFirst:
		return p.doChunkLengthFirst(h, c)
	case StateChunkLength:
		return p.doChunkLength(h, c)
	case StateChunkExtensionStripName:
		p.state = StateChunkExtensionName
		return fsm.Continue, nil
	case StateChunkExtensionName:
		return p.doChunkExtensionName(h, c)
	case StateChunkExtensionEqualOrSemiOrCr:
		return p.doChunkExtensionAfterQuotedValue(h, c)
	case StateChunkExtensionStripValue:
		return p.doChunkExtensionStripValue(h, c)
	case StateChunkExtensionValue:
		return p.doChunkExtensionValue(h, c)
	case StateChunkExtensionValueQuoted:
		return p.doChunkExtensionValueQuoted(h, c)
	case StateChunkExtensionValueQuotedEscape:
		return p.doChunkExtensionValueQuotedEscape(h, c)
	case StateChunkExtensionsCr:
		return p.doChunkExtensionsLf(h, c)
	case StateChunkExtensionsLf:
		return p.doChunkExtensionsLf(h, c)
	case StateChunkDataCr:
		return p.doChunkDataCr(h, c)
	case StateChunkDataLf:
		return p.doChunkDataLf(h, c)
	case StateChunkData:
		return p.doChunkData(h, c)
	default:
		return fsm.Continue, newParserError(ErrDead, 0)
	}
}

// doChunkLengthFirst 触发一次 on_chunk_begin (用 p.upper 做"是否已经
// 触发"的标记 避免回调挂起重入时重复触发) 然后要求至少一个十六进制数字
func (p *Parser) doChunkLengthFirst(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	if p.upper == 0 {
		if !h.OnChunkBegin() {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.upper = 1
	}
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if !classify.IsHex(b) {
			return fsm.Continue, newParserError(ErrChunkLength, b)
		}
		p.length = uint64(classify.HexValue(b))
		c.Next()
		p.upper = 0
		p.state = StateChunkLength
		return fsm.Continue, nil
	}
}

const maxChunkLength = math.MaxUint64 >> 4

func (p *Parser) doChunkLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if classify.IsHex(b) {
			if p.length > maxChunkLength {
				return fsm.Continue, &ParserError{Code: ErrChunkLengthOverflow}
			}
			p.length = p.length*16 + uint64(classify.HexValue(b))
			c.Next()
			continue
		}
		if b == ';' {
			c.Next()
			if !h.OnChunkLength(p.length) {
				return fsm.ExitCallback(c.Index()), nil
			}
			p.chunkExtensions = true
			p.state = StateChunkExtensionName
			return fsm.Continue, nil
		}
		if b == '\r' {
			c.Next()
			if !h.OnChunkLength(p.length) {
				return fsm.ExitCallback(c.Index()), nil
			}
			p.state = StateChunkExtensionsLf
			return fsm.Continue, nil
		}
		return fsm.Continue, newParserError(ErrChunkLength, b)
	}
}

func (p *Parser) doChunkExtensionName(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '=' {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateChunkExtensionStripValue
			return fsm.Continue, nil
		}
		if b == ';' || b == '\r' {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionName(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			if !h.OnChunkExtensionFinished() {
				return fsm.ExitCallback(c.Index()), nil
			}
			if b == ';' {
				c.Next()
				p.state = StateChunkExtensionName
				return fsm.Continue, nil
			}
			c.Next()
			p.state = StateChunkExtensionsLf
			return fsm.Continue, nil
		}
		if !classify.IsToken(b) {
			return fsm.Continue, newParserError(ErrChunkExtensionName, b)
		}
		c.Next()
	}
}

func (p *Parser) doChunkExtensionStripValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '"' {
			c.Next()
			p.state = StateChunkExtensionValueQuoted
			return fsm.Continue, nil
		}
		p.state = StateChunkExtensionValue
		return fsm.Continue, nil
	}
}

func (p *Parser) doChunkExtensionValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == ';' || b == '\r' {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			if !h.OnChunkExtensionFinished() {
				return fsm.ExitCallback(c.Index()), nil
			}
			if b == ';' {
				c.Next()
				p.state = StateChunkExtensionName
				return fsm.Continue, nil
			}
			c.Next()
			p.state = StateChunkExtensionsLf
			return fsm.Continue, nil
		}
		if !classify.IsToken(b) {
			return fsm.Continue, newParserError(ErrChunkExtensionValue, b)
		}
		c.Next()
	}
}

func (p *Parser) doChunkExtensionValueQuoted(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	c.Mark()
	for {
		if c.IsEOS() {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Peek()
		if b == '"' {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateChunkExtensionEqualOrSemiOrCr
			return fsm.Continue, nil
		}
		if b == '\\' {
			if c.Index() > c.MarkIndex() {
				if !h.OnChunkExtensionValue(c.Slice()) {
					return fsm.ExitCallback(c.Index()), nil
				}
			}
			c.Next()
			p.state = StateChunkExtensionValueQuotedEscape
			return fsm.Continue, nil
		}
		c.Next()
	}
}

func (p *Parser) doChunkExtensionValueQuotedEscape(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if !h.OnChunkExtensionValue([]byte{b}) {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.state = StateChunkExtensionValueQuoted
		return fsm.Continue, nil
	}
}

// doChunkExtensionAfterQuotedValue 在带引号的扩展值结束之后 期待 `;`
// (下一个扩展) 或者 `\r` (扩展部分结束)
func (p *Parser) doChunkExtensionAfterQuotedValue(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if !h.OnChunkExtensionFinished() {
			return fsm.ExitCallback(c.Index()), nil
		}
		if b == ';' {
			p.state = StateChunkExtensionName
			return fsm.Continue, nil
		}
		if b == '\r' {
			p.state = StateChunkExtensionsLf
			return fsm.Continue, nil
		}
		return fsm.Continue, newParserError(ErrChunkExtensionValue, b)
	}
}

func (p *Parser) doChunkExtensionsLf(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		if !h.OnChunkExtensionsFinished() {
			return fsm.ExitCallback(c.Index()), nil
		}
		p.chunkExtensions = false
		if p.length == 0 {
			p.state = StateStripHeaderName
			return fsm.Continue, nil
		}
		p.state = StateChunkData
		return fsm.Continue, nil
	}
}

func (p *Parser) doChunkData(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
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
		if !h.OnChunkData(c.Slice()) {
			return fsm.ExitCallback(c.Index()), nil
		}
	}
	p.state = StateChunkDataCr
	return fsm.Continue, nil
}

func (p *Parser) doChunkDataCr(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\r' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		p.state = StateChunkDataLf
		return fsm.Continue, nil
	}
}

func (p *Parser) doChunkDataLf(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for {
		if c.IsEOS() {
			return fsm.ExitEos(c.Index()), nil
		}
		b := c.Next()
		if b != '\n' {
			return fsm.Continue, newParserError(ErrCrlfSequence, b)
		}
		p.lower = 0
		p.upper = 0
		p.state = StateChunkLengthFirst
		return fsm.Continue, nil
	}
}
