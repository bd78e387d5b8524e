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

// PING 帧的 payload 恰好是 8 字节 不透明数据 按数据流的方式交付 (而不是
// 拼成一个整数) 因为 handler 接口里 on_ping 就是一个 data+finished 回调
func (p *Parser) doPing(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnPing)
	if err != nil || out.IsExit() {
		return out, err
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
