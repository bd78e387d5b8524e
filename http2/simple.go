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

import (
	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/fsm"
)

// PRIORITY 帧: 4 字节 (独占位 + 31 位依赖流) + 1 字节权重
func (p *Parser) doPriority(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 5)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	word := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	exclusive := word&0x80000000 != 0
	dependency := word & streamIDMask
	weight := buf[4]
	if !h.OnPriority(exclusive, dependency, weight) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}

// RST_STREAM 帧: 4 字节错误码
func (p *Parser) doRSTStream(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 4)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	code := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	if !h.OnRSTStream(code) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}

// WINDOW_UPDATE 帧: 4 字节 (保留位 + 31 位窗口增量)
func (p *Parser) doWindowUpdate(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 4)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	increment := (uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])) & streamIDMask
	if !h.OnWindowUpdate(increment) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
