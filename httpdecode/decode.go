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

// Package httpdecode 提供百分号解码 查询字符串迭代器与分号分隔字段迭代器
//
// 三者共用同一种契约: 在一个已借出的字节切片上构造 然后反复调用迭代
// 原语直到耗尽 格式错误时调用一次可选的错误回调并让迭代器进入耗尽状态
package httpdecode

import (
	"fmt"

	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/classify"
	"github.com/packetd/httpwire/internal/bufpool"
)

// DecodeErrorKind 标识百分号解码失败的原因
type DecodeErrorKind int

const (
	// DecodeErrorByte 表示遇到了一个既不可见也不是 % 或 + 的字节
	DecodeErrorByte DecodeErrorKind = iota
	// DecodeErrorHexSequence 表示 % 后面没有跟着两个合法的十六进制数字
	DecodeErrorHexSequence
)

// DecodeError 携带触发失败的那个字节
type DecodeError struct {
	Kind DecodeErrorKind
	Byte byte
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeErrorHexSequence:
		return fmt.Sprintf("invalid hex sequence at byte %q", e.Byte)
	default:
		return fmt.Sprintf("invalid byte %q in percent-encoded data", e.Byte)
	}
}

func newDecodeError(kind DecodeErrorKind, b byte) *DecodeError {
	return &DecodeError{Kind: kind, Byte: b}
}

// Decode 对 input 做百分号解码 '+' 解码为空格 '%XX' 解码为对应字节
// 除了 '%' 和 '+' 之外 任何不可见的 7 位 ASCII 字节都被拒绝
//
// 返回的切片借助 internal/bufpool 中的可复用缓冲区拼接完成 调用方拥有
// 返回的字节 可以自由保留
func Decode(input []byte) ([]byte, error) {
	buf := bufpool.Acquire()
	defer bufpool.Release(buf)

	c := bytestream.New(input)
	for !c.IsEOS() {
		c.Mark()
		for !c.IsEOS() {
			b := c.Peek()
			if b == '%' || b == '+' {
				break
			}
			if !classify.IsVisible7Bit(b) {
				return nil, newDecodeError(DecodeErrorByte, b)
			}
			c.Next()
		}
		buf.Write(c.Slice())

		if c.IsEOS() {
			break
		}

		b := c.Next()
		if b == '+' {
			buf.WriteByte(' ')
			continue
		}

		// b == '%'
		if c.Available() < 2 {
			return nil, newDecodeError(DecodeErrorHexSequence, b)
		}
		hi := c.Next()
		lo := c.Next()
		if !classify.IsHex(hi) || !classify.IsHex(lo) {
			return nil, newDecodeError(DecodeErrorHexSequence, b)
		}
		buf.WriteByte(classify.HexValue(hi)<<4 | classify.HexValue(lo))
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// Encode 对 input 做百分号编码 需要转义的字节由 classify.IsEncoded 判定
//
// 与 Decode 互为往返律的另一半: Decode(Encode(b)) == b 对任意仅由可见
// ASCII 字节组成的 b 成立
func Encode(input []byte) []byte {
	buf := bufpool.Acquire()
	defer bufpool.Release(buf)

	for _, b := range input {
		if classify.IsEncoded(b) {
			buf.WriteByte('%')
			buf.WriteByte(hexDigits[b>>4])
			buf.WriteByte(hexDigits[b&0x0f])
		} else {
			buf.WriteByte(b)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

const hexDigits = "0123456789ABCDEF"
