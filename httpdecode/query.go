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

// QueryErrorKind 标识查询字符串解析失败发生在名称还是值里
type QueryErrorKind int

const (
	QueryErrorName QueryErrorKind = iota
	QueryErrorValue
)

// QueryError 携带触发失败的那个字节
type QueryError struct {
	Kind QueryErrorKind
	Byte byte
}

func (e *QueryError) Error() string {
	side := "name"
	if e.Kind == QueryErrorValue {
		side = "value"
	}
	return fmt.Sprintf("invalid query string %s at byte %q", side, e.Byte)
}

// QueryPair 是查询字符串迭代器产出的一个名值对
//
// HasValue 为 false 表示这个名字后面没有跟 '='; 为 true 且 Value 为空
// 切片表示 '=' 后面紧跟着分隔符或字符串结尾 (空值)
type QueryPair struct {
	Name     []byte
	Value    []byte
	HasValue bool
}

// QueryIterator 在 '&' 或 ';' 分隔的 name=value 列表上逐对迭代
//
// 每一侧的 '+' 解码为空格 '%XX' 解码为对应字节 与 original_source 里
// url.rs::parse_query_string 的语法完全一致 只是用游标代替了宏展开
type QueryIterator struct {
	c        *bytestream.Cursor
	nameBuf  *bytebufferpool.ByteBuffer
	valueBuf *bytebufferpool.ByteBuffer
	onError  func(*QueryError)
	done     bool
}

// NewQueryIterator 在 data 上构造一个查询字符串迭代器
//
// 如果 data 以 '?' 开头 这个前导字节会被跳过
func NewQueryIterator(data []byte) *QueryIterator {
	c := bytestream.New(data)
	if !c.IsEOS() && c.Peek() == '?' {
		c.Next()
	}
	return &QueryIterator{
		c:        c,
		nameBuf:  &bytebufferpool.ByteBuffer{},
		valueBuf: &bytebufferpool.ByteBuffer{},
	}
}

// OnError 设置一个可选的错误回调 在解析失败时被调用一次
func (q *QueryIterator) OnError(fn func(*QueryError)) *QueryIterator {
	q.onError = fn
	return q
}

func (q *QueryIterator) fail(kind QueryErrorKind, b byte) {
	q.done = true
	if q.onError != nil {
		q.onError(&QueryError{Kind: kind, Byte: b})
	}
}

func isPairDelimiter(b byte) bool {
	return b == '&' || b == ';'
}

// decodeSegment 从 q.c 的当前位置开始 把字节收集进 into 直到遇到 stop
// 中的任一字节或字符串结尾 并沿途把 '+' 解码为空格 '%XX' 解码为字节
//
// 返回在结尾处观察到的字节 (0 表示字符串结尾) 以及是否出错
func (q *QueryIterator) decodeSegment(into *bytebufferpool.ByteBuffer, kind QueryErrorKind, stopAtEquals bool) (stop byte, ok bool) {
	c := q.c
	c.Mark()
	for {
		if c.IsEOS() {
			into.Write(c.Slice())
			return 0, true
		}

		b := c.Peek()
		if stopAtEquals && b == '=' {
			into.Write(c.Slice())
			c.Next()
			return '=', true
		}
		if isPairDelimiter(b) {
			into.Write(c.Slice())
			c.Next()
			return b, true
		}
		if b == '%' {
			into.Write(c.Slice())
			c.Next()
			if c.Available() < 2 {
				q.fail(kind, b)
				return 0, false
			}
			hi := c.Next()
			lo := c.Next()
			if !classify.IsHex(hi) || !classify.IsHex(lo) {
				q.fail(kind, b)
				return 0, false
			}
			into.WriteByte(classify.HexValue(hi)<<4 | classify.HexValue(lo))
			c.Mark()
			continue
		}
		if b == '+' {
			into.Write(c.Slice())
			into.WriteByte(' ')
			c.Next()
			c.Mark()
			continue
		}
		if !classify.IsVisible7Bit(b) {
			into.Write(c.Slice())
			q.fail(kind, b)
			return 0, false
		}
		c.Next()
	}
}

// Next 产出下一个名值对 在耗尽时返回 ok=false
func (q *QueryIterator) Next() (pair QueryPair, ok bool) {
	for !q.done {
		if q.c.IsEOS() {
			q.done = true
			return QueryPair{}, false
		}

		q.nameBuf.Reset()
		stop, good := q.decodeSegment(q.nameBuf, QueryErrorName, true)
		if !good {
			return QueryPair{}, false
		}

		if q.nameBuf.Len() == 0 {
			q.fail(QueryErrorName, q.c.Byte())
			return QueryPair{}, false
		}

		name := append([]byte(nil), q.nameBuf.B...)

		if stop != '=' {
			// 没有 '=' 的名字 没有值
			return QueryPair{Name: name, HasValue: false}, true
		}

		q.valueBuf.Reset()
		if _, good := q.decodeSegment(q.valueBuf, QueryErrorValue, false); !good {
			return QueryPair{}, false
		}
		value := append([]byte(nil), q.valueBuf.B...)
		return QueryPair{Name: name, Value: value, HasValue: true}, true
	}
	return QueryPair{}, false
}
