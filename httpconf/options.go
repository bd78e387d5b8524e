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

// Package httpconf 提供一个弱类型的配置选项袋 供解析器的上层调用方使用
//
// 核心解析器本身不强制任何上限 (参见 http1/http2 的 Resume 契约) 这里
// 的选项只用来配置围绕解析器的东西: 缓冲区初始容量提示 调试处理器的
// 行为 以及用于判定"足够可疑值得报错"的软性上限
package httpconf

import "github.com/spf13/cast"

// 常用选项键
const (
	// KeyReadBufferHint 建议的单次读取缓冲区大小 用于驱动解析器的调用方
	KeyReadBufferHint = "read_buffer_hint"
	// KeyMaxHeaderLineLength 一个头部行被认为可疑过长之前允许的最大字节数
	// 仅供调用方在 on_header_name/on_header_value 回调里自行实施 核心
	// 解析器不读取这个值
	KeyMaxHeaderLineLength = "max_header_line_length"
	// KeyMaxChunkExtensions 一个 chunk 里允许出现的最大扩展个数 同样只
	// 供调用方自行实施
	KeyMaxChunkExtensions = "max_chunk_extensions"
	// KeyLogDecodedEvents 调试处理器是否把每个解码事件都记录下来
	KeyLogDecodedEvents = "log_decoded_events"
)

// Options 是一个 map[string]any 的配置袋 取值时借助 spf13/cast 做宽松
// 类型转换 调用方可以塞入任意具体类型 读取时不需要关心写入时的类型
type Options map[string]any

// New 创建一个空的选项袋
func New() Options {
	return make(Options)
}

// Set 写入或覆盖一个选项
func (o Options) Set(key string, value any) Options {
	o[key] = value
	return o
}

// GetInt 读取一个整数选项 未设置时返回 def
func (o Options) GetInt(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// GetBool 读取一个布尔选项 未设置时返回 def
func (o Options) GetBool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// GetString 读取一个字符串选项 未设置时返回 def
func (o Options) GetString(key string, def string) string {
	v, ok := o[key]
	if !ok {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}
