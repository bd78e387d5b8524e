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

// HEADERS 帧布局:
//
// +---------------+
// |Pad Length? (8)|
// +-+-------------+-----------------------------------------------+
// |E|                 Stream Dependency? (31)                     |
// +-+-------------+-----------------------------------------------+
// |  Weight? (8)  |
// +---------------+-----------------------------------------------+
// |                   Header Block Fragment (*)                 ...
// +---------------------------------------------------------------+
// |                           Padding (*)                       ...
// +---------------------------------------------------------------+

func (p *Parser) doHeadersPadLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	n, ok := p.readPadLength(c)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	p.padLen = n
	if p.flags&flagPriority != 0 {
		p.state = StateHeadersPriority
		return fsm.Continue, nil
	}
	p.enterHeadersFragment()
	p.state = StateHeadersFragment
	return fsm.Continue, nil
}

func (p *Parser) doHeadersPriority(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 5)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	word := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	exclusive := word&0x80000000 != 0
	dependency := word & streamIDMask
	weight := buf[4]
	p.length -= 5
	if !h.OnHeaders(exclusive, dependency, weight) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.enterHeadersFragment()
	p.state = StateHeadersFragment
	return fsm.Continue, nil
}

func (p *Parser) doHeadersFragment(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnHeadersFragment)
	if err != nil || out.IsExit() {
		return out, err
	}
	if p.padRemaining == 0 {
		p.state = StateFrameHeader
		return fsm.Continue, nil
	}
	p.state = StateHeadersPadding
	return fsm.Continue, nil
}

func (p *Parser) doHeadersPadding(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, done := discardRemaining(c, &p.padRemaining)
	if !done {
		return out, nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
