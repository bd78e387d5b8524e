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

// PUSH_PROMISE 帧布局:
//
// +---------------+
// |Pad Length? (8)|
// +-+-------------+-----------------------------------------------+
// |R|                  Promised Stream ID (31)                    |
// +-+-----------------------------+-------------------------------+
// |                   Header Block Fragment (*)                 ...
// +---------------------------------------------------------------+
// |                           Padding (*)                       ...
// +---------------------------------------------------------------+
//
// 头部块分片复用 on_headers_fragment 回调 —— handler 接口里没有单独的
// "push promise fragment" 回调 推送承诺和普通 HEADERS 帧的分片在这里
// 是同一种东西

func (p *Parser) doPushPromisePadLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	n, ok := p.readPadLength(c)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	p.padLen = n
	p.state = StatePushPromiseStreamID
	return fsm.Continue, nil
}

func (p *Parser) doPushPromiseStreamID(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 4)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	promisedStreamID := (uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])) & streamIDMask
	p.length -= 4
	if !h.OnPushPromise(promisedStreamID) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.dataRemaining = p.length - p.padLen
	p.padRemaining = p.padLen
	p.state = StatePushPromiseFragment
	return fsm.Continue, nil
}

func (p *Parser) doPushPromiseFragment(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnHeadersFragment)
	if err != nil || out.IsExit() {
		return out, err
	}
	if p.padRemaining == 0 {
		p.state = StateFrameHeader
		return fsm.Continue, nil
	}
	p.state = StatePushPromisePadding
	return fsm.Continue, nil
}

func (p *Parser) doPushPromisePadding(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, done := discardRemaining(c, &p.padRemaining)
	if !done {
		return out, nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
