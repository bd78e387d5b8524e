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

// GOAWAY 帧布局:
//
// +-+-------------------------------------------------------------+
// |R|                  Last-Stream-ID (31)                        |
// +-+-------------------------------------------------------------+
// |                      Error Code (32)                          |
// +---------------------------------------------------------------+
// |                  Additional Debug Data (*)                  ...
// +---------------------------------------------------------------+

func (p *Parser) doGoAwayFixed(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	buf, ok := p.fixedField(c, 8)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	lastStreamID := (uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])) & streamIDMask
	errorCode := uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7])
	p.length -= 8
	if !h.OnGoAway(lastStreamID, errorCode) {
		return fsm.ExitCallback(c.Index()), nil
	}
	p.dataRemaining = p.length
	p.state = StateGoAwayDebugData
	return fsm.Continue, nil
}

func (p *Parser) doGoAwayDebugData(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnGoAwayDebugData)
	if err != nil || out.IsExit() {
		return out, err
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
