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

package http1

import "fmt"

// ErrorCode 枚举 HTTP/1 解析过程中可能出现的所有错误类型 每一种都携带
// 触发错误的那个字节 (Dead 与 ChunkLengthOverflow 除外)
type ErrorCode uint8

const (
	ErrChunkExtensionName ErrorCode = iota
	ErrChunkExtensionValue
	ErrChunkLength
	ErrChunkLengthOverflow
	ErrCrlfSequence
	ErrDead
	ErrHeaderName
	ErrHeaderValue
	ErrMethod
	ErrMultipart
	ErrMultipartBoundary
	ErrStatus
	ErrStatusCode
	ErrUrl
	ErrUrlEncodedName
	ErrUrlEncodedValue
	ErrVersion
)

func (c ErrorCode) String() string {
	switch c {
	case ErrChunkExtensionName:
		return "ChunkExtensionName"
	case ErrChunkExtensionValue:
		return "ChunkExtensionValue"
	case ErrChunkLength:
		return "ChunkLength"
	case ErrChunkLengthOverflow:
		return "ChunkLengthOverflow"
	case ErrCrlfSequence:
		return "CrlfSequence"
	case ErrDead:
		return "Dead"
	case ErrHeaderName:
		return "HeaderName"
	case ErrHeaderValue:
		return "HeaderValue"
	case ErrMethod:
		return "Method"
	case ErrMultipart:
		return "Multipart"
	case ErrMultipartBoundary:
		return "MultipartBoundary"
	case ErrStatus:
		return "Status"
	case ErrStatusCode:
		return "StatusCode"
	case ErrUrl:
		return "Url"
	case ErrUrlEncodedName:
		return "UrlEncodedName"
	case ErrUrlEncodedValue:
		return "UrlEncodedValue"
	case ErrVersion:
		return "Version"
	default:
		return "Unknown"
	}
}

// ParserError 是 http1 解析器返回的唯一错误类型 携带错误码以及 (对于
// 除 Dead 与 ChunkLengthOverflow 之外的错误) 触发错误的字节
//
// 一旦产生 ParserError 解析器就会被锁死到 dead 状态 后续的 Resume 调用
// 不再做任何实际解析工作 只会重复返回同一个错误 (ErrDead 的情形除外它
// 本身就代表"已经死锁")
type ParserError struct {
	Code ErrorCode
	Byte byte
	// HasByte 区分不携带字节的错误 (Dead 与 ChunkLengthOverflow) 与其它
	// 携带触发字节的错误
	HasByte bool
}

func newParserError(code ErrorCode, b byte) *ParserError {
	return &ParserError{Code: code, Byte: b, HasByte: true}
}

// ErrDeadState 是锁死之后每次 Resume 都会返回的哨兵错误
var ErrDeadState = &ParserError{Code: ErrDead}

func (e *ParserError) Error() string {
	if !e.HasByte {
		return fmt.Sprintf("http1: parser error %s", e.Code)
	}
	return fmt.Sprintf("http1: parser error %s at byte 0x%02x", e.Code, e.Byte)
}
