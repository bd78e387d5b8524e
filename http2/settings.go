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

// SETTINGS 帧负载是任意多组 6 字节条目 (2 字节 id + 4 字节 value) 的
// 重复 一次消费一组 直到剩余字节不足以再构成一组完整的条目 —— 剩下
// 的零头 (不满 6 字节 正常情况下不应该出现) 原样丢弃 解析器不对此
// 报错 这不属于帧格式层面的问题
func (p *Parser) doSettingsPair(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	for p.length >= 6 {
		buf, ok := p.fixedField(c, 6)
		if !ok {
			return fsm.ExitEos(c.Index()), nil
		}
		id := uint16(buf[0])<<8 | uint16(buf[1])
		value := uint32(buf[2])<<24 | uint32(buf[3])<<16 | uint32(buf[4])<<8 | uint32(buf[5])
		p.length -= 6
		if !h.OnSettings(id, value) {
			return fsm.ExitCallback(c.Index()), nil
		}
	}
	if p.length == 0 {
		p.state = StateFrameHeader
		return fsm.Continue, nil
	}
	p.state = StateSettingsTrailer
	return fsm.Continue, nil
}

func (p *Parser) doSettingsTrailer(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, done := discardRemaining(c, &p.length)
	if !done {
		return out, nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
