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

// DATA 帧布局:
//
// +---------------+
// |Pad Length? (8)|
// +---------------+-----------------------------------------------+
// |                            Data (*)                         ...
// +---------------------------------------------------------------+
// |                           Padding (*)                       ...
// +---------------------------------------------------------------+

func (p *Parser) doDataPadLength(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	n, ok := p.readPadLength(c)
	if !ok {
		return fsm.ExitEos(c.Index()), nil
	}
	p.padLen = n
	p.enterDataBody()
	p.state = StateDataBody
	return fsm.Continue, nil
}

func (p *Parser) doDataBody(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnData)
	if err != nil || out.IsExit() {
		return out, err
	}
	if p.padRemaining == 0 {
		p.state = StateFrameHeader
		return fsm.Continue, nil
	}
	p.state = StateDataPadding
	return fsm.Continue, nil
}

func (p *Parser) doDataPadding(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, done := discardRemaining(c, &p.padRemaining)
	if !done {
		return out, nil
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
