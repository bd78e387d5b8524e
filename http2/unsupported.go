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

// 任何不在已知帧类型表里的帧类型都落到这里 整个 payload 原样交给
// on_unsupported —— 解析器不知道未知类型自己的内部布局 但依然通用地
// 尊重 PADDED 标志位: 如果设置了 就按 DATA 帧那样先读一个 pad-length
// 字节 再把 (length-1-pad) 字节交付 最后丢弃 pad 字节; 否则整个
// payload 都交付
func (p *Parser) doUnsupportedPadLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	n, ok := p.readPadLength(c)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	p.padLen = n
	p.dataRemaining = p.length - p.padLen
	p.padRemaining = p.padLen
	p.state = StateUnsupportedData
	return fsm.Continue, nil
}

func (p *Parser) doUnsupportedData(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnUnsupported)
	if err != nil || out.IsExit() {
		return out, err
	}
	if p.padRemaining == 0 {
		p.state = StateFrameHeader
		return fsm.Continue, nil
	}
	p.state = StateUnsupportedPadding
	return fsm.Continue, nil
}

func (p *Parser) doUnsupportedPadding(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, done := discardRemaining(c, &p.padRemaining)
	if !done {
		return out, nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
