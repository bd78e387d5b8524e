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

// Package bytestream 提供解析器共享的游标原语
//
// Cursor 借用调用方传入的字节切片 自身只持有三个可变的标量索引 所有操作
// 均为 O(1) 且不会拷贝底层数据 生命周期仅限于单次 Resume 调用 —— 调用方
// 每次 Resume 都需要重新构造 (或重置) 一个 Cursor 绑定到新的切片上
package bytestream

// Cursor 是对调用方传入字节切片的一个只读借用 加上三个游标标量
//
// 不变式: mark_index <= stream_index <= len(stream)
type Cursor struct {
	stream []byte // 当前 resume 调用传入的字节切片 不持有所有权
	index  int    // 下一个待读取字节的位置
	mark   int    // 当前发送窗口的起始位置
	last   byte   // 最近一次读取到的字节
}

// New 创建一个绑定到 stream 的 Cursor 起始游标位于 0
func New(stream []byte) *Cursor {
	return &Cursor{stream: stream}
}

// Rebind 将 Cursor 重新绑定到一个新的切片 游标归零
//
// 每次 Resume 调用都应该 Rebind 到本次传入的切片 这样 Cursor 本身可以被
// Parser 长期持有而不必每次重新分配
func (c *Cursor) Rebind(stream []byte) {
	c.stream = stream
	c.index = 0
	c.mark = 0
}

// Available 返回从 index 起尚未读取的字节数
func (c *Cursor) Available() int {
	return len(c.stream) - c.index
}

// IsEOS 返回游标是否已经到达切片末尾
func (c *Cursor) IsEOS() bool {
	return c.index == len(c.stream)
}

// Byte 返回最近一次 Next/Jump 读取到的字节
func (c *Cursor) Byte() byte {
	return c.last
}

// Index 返回当前 stream_index 便于解析器计算本次 resume 消费的字节数
func (c *Cursor) Index() int {
	return c.index
}

// Peek 查看下一个待读取的字节 不推进游标
//
// 调用方必须保证 Available() > 0
func (c *Cursor) Peek() byte {
	return c.stream[c.index]
}

// PeekAt 查看相对当前位置偏移 n 的字节 调用方必须保证其可读
func (c *Cursor) PeekAt(n int) byte {
	return c.stream[c.index+n]
}

// Next 读取下一个字节 推进游标并记录为 last byte
func (c *Cursor) Next() byte {
	b := c.stream[c.index]
	c.index++
	c.last = b
	return b
}

// Jump 向前跳过 n 个字节 并将 last byte 设置为跳过的最后一个字节
//
// 调用方必须保证 n 个字节可读且 n > 0
func (c *Cursor) Jump(n int) {
	c.index += n
	c.last = c.stream[c.index-1]
}

// Replay 将游标回退一个字节 用于"先探测后反悔"的场景
// (例如把已消费的 `HTTP` 前缀重新解释为请求方法的开头)
func (c *Cursor) Replay() {
	c.index--
}

// RewindTo 将游标直接设置到 index 用于多字节探测失败后的整体回退
func (c *Cursor) RewindTo(index int) {
	c.index = index
}

// Mark 将发送窗口起点设置为当前位置
func (c *Cursor) Mark() {
	c.mark = c.index
}

// MarkAt 将发送窗口起点设置为给定位置
func (c *Cursor) MarkAt(index int) {
	c.mark = index
}

// MarkIndex 返回当前发送窗口的起始位置
func (c *Cursor) MarkIndex() int {
	return c.mark
}

// Slice 返回 [mark, index) 区间 即自上次 Mark 以来收集到的字节
func (c *Cursor) Slice() []byte {
	return c.stream[c.mark:c.index]
}

// SliceIgnore 返回 [mark, index-1) 区间 用于终止符本身不应计入已发送数据的场景
// (例如 headers 一行中结尾的 CR 不应该出现在 header value 里)
func (c *Cursor) SliceIgnore() []byte {
	return c.stream[c.mark : c.index-1]
}

// StartsWith 判断从当前位置起的字节是否与 prefix 完全匹配
//
// 如果剩余字节数不足以覆盖 prefix 直接返回 false 不会越界读取
func (c *Cursor) StartsWith(prefix []byte) bool {
	if c.Available() < len(prefix) {
		return false
	}
	for i, want := range prefix {
		if c.stream[c.index+i] != want {
			return false
		}
	}
	return true
}

// IndexByte 从当前位置起查找 b 第一次出现的位置 返回相对 index 的偏移
// 未找到时返回 -1
func (c *Cursor) IndexByte(b byte) int {
	for i := c.index; i < len(c.stream); i++ {
		if c.stream[i] == b {
			return i - c.index
		}
	}
	return -1
}
