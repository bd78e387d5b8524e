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

package httpdecode

import (
	"fmt"

	"github.com/packetd/httpwire/bytestream"
	"github.com/packetd/httpwire/classify"
	"github.com/valyala/bytebufferpool"
)

// FieldErrorKind 标识字段解析失败发生在名称还是值里
type FieldErrorKind int

const (
	FieldErrorName FieldErrorKind = iota
	FieldErrorValue
)

// FieldError 携带触发失败的那个字节
type FieldError struct {
	Kind FieldErrorKind
	Byte byte
}

func (e *FieldError) Error() string {
	side := "name"
	if e.Kind == FieldErrorValue {
		side = "value"
	}
	return fmt.Sprintf("invalid field %s at byte %q", side, e.Byte)
}

// FieldPair 是字段迭代器产出的一个名值对
type FieldPair struct {
	Name     []byte
	Value    []byte
	HasValue bool
}

// FieldIterator 在以 delimiter 分隔的 "name" 或 "name=value" 或
// `name="quoted value"` 列表上逐段迭代 典型用法是 Content-Type 头部的
// `multipart/form-data; boundary="abc"; charset=UTF-8`
//
// 名称部分允许出现 '/' (content-type 首个 token 需要) 当 normalize 为真
// 时 名称里的大写字母在产出前被转换成小写 值可以是未加引号的字节串
// 也可以是带 '\<any>' 转义的加引号字符串 段与段之间的前导空白被跳过
type FieldIterator struct {
	c         *bytestream.Cursor
	delimiter byte
	normalize bool
	nameBuf   *bytebufferpool.ByteBuffer
	valueBuf  *bytebufferpool.ByteBuffer
	onError   func(*FieldError)
	done      bool
}

// NewFieldIterator 在 field 上构造一个字段迭代器
func NewFieldIterator(field []byte, delimiter byte, normalize bool) *FieldIterator {
	return &FieldIterator{
		c:         bytestream.New(field),
		delimiter: delimiter,
		normalize: normalize,
		nameBuf:   &bytebufferpool.ByteBuffer{},
		valueBuf:  &bytebufferpool.ByteBuffer{},
	}
}

// OnError 设置一个可选的错误回调 在解析失败时被调用一次
func (f *FieldIterator) OnError(fn func(*FieldError)) *FieldIterator {
	f.onError = fn
	return f
}

func (f *FieldIterator) fail(kind FieldErrorKind, b byte) {
	f.done = true
	if f.onError != nil {
		f.onError(&FieldError{Kind: kind, Byte: b})
	}
}

func isLeadingSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isUpperAlpha(b byte) bool {
	return b > 0x40 && b < 0x5B
}

// Next 产出下一个名值对 在耗尽或出错时返回 ok=false
func (f *FieldIterator) Next() (pair FieldPair, ok bool) {
	if f.done {
		return FieldPair{}, false
	}

	c := f.c
	f.nameBuf.Reset()
	f.valueBuf.Reset()

	for {
		for !c.IsEOS() && isLeadingSpace(c.Peek()) {
			c.Next()
		}
		if c.IsEOS() {
			f.done = true
			return FieldPair{}, false
		}

		c.Mark()
		for {
			if c.IsEOS() {
				break
			}
			b := c.Peek()
			if b == '=' || b == f.delimiter || b == '/' || (f.normalize && isUpperAlpha(b)) {
				break
			}
			if !classify.IsToken(b) {
				f.nameBuf.Write(c.Slice())
				f.fail(FieldErrorName, b)
				return FieldPair{}, false
			}
			c.Next()
		}
		f.nameBuf.Write(c.Slice())

		if c.IsEOS() {
			f.done = true
			return f.submitName(), true
		}

		b := c.Next()
		switch {
		case b == '=':
			return f.parseValue()
		case b == '/':
			f.nameBuf.WriteByte('/')
		case b == f.delimiter:
			return f.submitName(), true
		default:
			// normalize 情形下触发停止的大写字母 小写化后并入名字
			f.nameBuf.WriteByte(b + 0x20)
		}
	}
}

func (f *FieldIterator) submitName() FieldPair {
	name := append([]byte(nil), f.nameBuf.B...)
	return FieldPair{Name: name, HasValue: false}
}

func (f *FieldIterator) parseValue() (FieldPair, bool) {
	c := f.c
	name := append([]byte(nil), f.nameBuf.B...)

	if c.IsEOS() {
		// '=' 是字段的最后一个字节: 名字没有值
		f.done = true
		return FieldPair{Name: name, HasValue: false}, true
	}

	if c.Peek() == '"' {
		c.Next()
		return f.parseQuotedValue(name)
	}

	c.Mark()
	for !c.IsEOS() && c.Peek() != f.delimiter {
		b := c.Peek()
		if !classify.IsVisible7Bit(b) {
			f.valueBuf.Write(c.Slice())
			f.fail(FieldErrorValue, b)
			return FieldPair{}, false
		}
		c.Next()
	}
	f.valueBuf.Write(c.Slice())

	if c.IsEOS() {
		f.done = true
		return FieldPair{Name: name, Value: append([]byte(nil), f.valueBuf.B...), HasValue: true}, true
	}

	c.Next() // 消费 delimiter
	return FieldPair{Name: name, Value: append([]byte(nil), f.valueBuf.B...), HasValue: true}, true
}

func (f *FieldIterator) parseQuotedValue(name []byte) (FieldPair, bool) {
	c := f.c
	for {
		c.Mark()
		for {
			if c.IsEOS() {
				f.fail(FieldErrorValue, 0)
				return FieldPair{}, false
			}
			b := c.Peek()
			if b == '"' || b == '\\' {
				break
			}
			if !classify.IsVisible7Bit(b) && b != ' ' {
				f.valueBuf.Write(c.Slice())
				f.fail(FieldErrorValue, b)
				return FieldPair{}, false
			}
			c.Next()
		}

		if c.Peek() == '"' {
			f.valueBuf.Write(c.Slice())
			c.Next()

			for !c.IsEOS() && isLeadingSpace(c.Peek()) {
				c.Next()
			}
			if c.IsEOS() {
				f.done = true
				return FieldPair{Name: name, Value: append([]byte(nil), f.valueBuf.B...), HasValue: true}, true
			}

			b := c.Next()
			if b == f.delimiter {
				return FieldPair{Name: name, Value: append([]byte(nil), f.valueBuf.B...), HasValue: true}, true
			}

			// 引号结束后既不是字符串结尾也不是分隔符
			f.fail(FieldErrorValue, b)
			return FieldPair{}, false
		}

		// 遇到反斜杠 转义下一个字节
		f.valueBuf.Write(c.Slice())
		c.Next() // 消费反斜杠
		if c.IsEOS() {
			f.fail(FieldErrorValue, 0)
			return FieldPair{}, false
		}
		f.valueBuf.WriteByte(c.Next())
	}
}
