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
	fasthttp2 "github.com/dgrr/http2"
	"github.com/pkg/errors"
)

// HeaderField 是 HPACK 解码之后的一个键值对 Name 已经是 HPACK 静态/动态表
// 还原出来的小写头名 不需要调用方再做大小写归一化
type HeaderField struct {
	Name  string
	Value string
}

// HeaderDecoder 把帧解析器通过 OnHeadersFragment/OnPushPromise 回调吐出来
// 的原始 header block 片段喂给 HPACK 还原成 Name/Value 对
//
// 帧解析器本身不做这件事: 它只负责把 HEADERS/CONTINUATION 帧的 payload
// 按边界切出来交给调用方 (参见 Parser 的 doc comment) HPACK 状态是连接
// 级别的 同一个 HeaderDecoder 需要在一条 TCP 连接的生命周期内复用 因为
// 动态表的内容依赖之前处理过的所有 header block
//
// HeaderDecoder 不是并发安全的 一条连接只应该有一个 HeaderDecoder
type HeaderDecoder struct {
	decoder *fasthttp2.HPACK
}

// NewHeaderDecoder 从共享池里取一个 HPACK 实例 调用方必须在用完之后调用
// Release 把它还回池里
func NewHeaderDecoder() *HeaderDecoder {
	return &HeaderDecoder{decoder: fasthttp2.AcquireHPACK()}
}

// Release 归还底层 HPACK 实例 归还之后这个 HeaderDecoder 不应该再被使用
func (d *HeaderDecoder) Release() {
	d.decoder.Reset()
	fasthttp2.ReleaseHPACK(d.decoder)
}

// Decode 把一个完整的 header block (一个 HEADERS 帧的 payload 加上它所有
// CONTINUATION 帧的 payload 拼接之后的整体 由调用方负责拼接) 解码成一组
// HeaderField 遇到第一个解码错误就停止 返回已经成功解码的部分和那个错误
func (d *HeaderDecoder) Decode(block []byte) ([]HeaderField, error) {
	var fields []HeaderField
	field := &fasthttp2.HeaderField{}
	buf := block
	for len(buf) > 0 {
		field.Reset()

		var err error
		buf, err = d.decoder.Next(field, buf)
		if err != nil {
			return fields, errors.Wrap(err, "hpack decode")
		}

		if field.Key() == "" {
			continue
		}
		fields = append(fields, HeaderField{Name: field.Key(), Value: field.Value()})
	}
	return fields, nil
}
