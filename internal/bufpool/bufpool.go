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

// Package bufpool 提供 Acquire/Release 形式的可复用字节缓冲区
//
// 调用方在 Release 之后不得再持有或引用缓冲区底层数组
package bufpool

import "github.com/valyala/bytebufferpool"

var pool bytebufferpool.Pool

// Acquire 取出一个已清空的缓冲区
func Acquire() *bytebufferpool.ByteBuffer {
	return pool.Get()
}

// Release 归还缓冲区供下次复用
func Release(buf *bytebufferpool.ByteBuffer) {
	pool.Put(buf)
}
