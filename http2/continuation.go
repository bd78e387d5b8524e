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

// CONTINUATION 帧的 payload 整体就是头部块分片 没有 pad length 也没有
// 填充字节 (RFC 7540 没有为它定义 PADDED 语义)
func (p *Parser) doContinuationFragment(h Handler, c *bytestream.Cursor) (fsm.Outcome, error) {
	out, err := p.streamRemaining(c, &p.dataRemaining, h.OnHeadersFragment)
	if err != nil || out.IsExit() {
		return out, err
	}
	p.state = StateFrameHeader
	return fsm.Continue, nil
}
