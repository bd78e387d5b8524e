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

// Package fsm 定义 http1/http2 两个解析器共用的状态机返回值原语
//
// 每一个 state 函数在消费零个或多个字节 可能触发若干次 handler 回调之后
// 要么返回 Continue (循环进入下一个 state 函数) 要么返回一个 Outcome
// 三选一地携带 Callback / Eos / Finished 中的一种 Success
package fsm

import "fmt"

// outcomeKind 标记 Outcome 携带的是哪一种退出结果
type outcomeKind uint8

const (
	// continueLoop 表示 state 函数希望继续在同一次 Resume 内循环
	continueLoop outcomeKind = iota

	// exitCallback 表示某个 handler 回调返回了 false 解析器需要挂起
	exitCallback

	// exitEos 表示当前切片已经耗尽 解析器需要更多数据才能继续
	exitEos

	// exitFinished 表示消息已经完整解析结束
	exitFinished
)

func (k outcomeKind) String() string {
	switch k {
	case continueLoop:
		return "Continue"
	case exitCallback:
		return "Callback"
	case exitEos:
		return "Eos"
	case exitFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Outcome 是 state 函数的返回值 —— Continue 或者携带字节计数的 Exit
//
// n 始终是"本次 Resume 调用中已经消费的字节数" 而不是跨 Resume 调用的
// 累计值 —— 这样的约定让恢复 (resume) 永远是相对当前切片而言的
type Outcome struct {
	kind outcomeKind
	n    int
}

// Continue 让解析循环在当前 Resume 调用内继续处理下一个 state
var Continue = Outcome{kind: continueLoop}

// ExitCallback 退出本次 Resume 因为某个 handler 回调返回了 false
func ExitCallback(n int) Outcome {
	return Outcome{kind: exitCallback, n: n}
}

// ExitEos 退出本次 Resume 因为当前切片字节已经耗尽
func ExitEos(n int) Outcome {
	return Outcome{kind: exitEos, n: n}
}

// ExitFinished 退出本次 Resume 因为消息已经解析完整
func ExitFinished(n int) Outcome {
	return Outcome{kind: exitFinished, n: n}
}

// IsContinue 判断是否为 Continue
func (o Outcome) IsContinue() bool {
	return o.kind == continueLoop
}

// IsExit 判断是否为任意一种 Exit
func (o Outcome) IsExit() bool {
	return o.kind != continueLoop
}

// Success 描述解析循环退出时的最终结果 对调用方可见
//
// n 是本次 Resume 调用消费的字节数 调用方应当据此推进自己的读游标
type Success struct {
	Kind SuccessKind
	N    int
}

// SuccessKind 枚举三种终止结果
type SuccessKind uint8

const (
	// SuccessCallback 某个 handler 回调要求挂起解析 (返回了 false)
	SuccessCallback SuccessKind = iota

	// SuccessEos 本次传入的切片已经耗尽 需要更多数据
	SuccessEos

	// SuccessFinished 消息已经解析完整
	SuccessFinished
)

// AsSuccess 将一个 Exit 态的 Outcome 转换为公开的 Success 值
//
// 调用方 (parser.Resume) 保证只在 o.IsExit() 为真时调用本方法
func (o Outcome) AsSuccess() Success {
	switch o.kind {
	case exitCallback:
		return Success{Kind: SuccessCallback, N: o.n}
	case exitEos:
		return Success{Kind: SuccessEos, N: o.n}
	case exitFinished:
		return Success{Kind: SuccessFinished, N: o.n}
	default:
		panic("fsm: AsSuccess called on a Continue outcome")
	}
}

func (s Success) String() string {
	switch s.Kind {
	case SuccessCallback:
		return fmt.Sprintf("Success::Callback(%d)", s.N)
	case SuccessEos:
		return fmt.Sprintf("Success::Eos(%d)", s.N)
	case SuccessFinished:
		return fmt.Sprintf("Success::Finished(%d)", s.N)
	default:
		return fmt.Sprintf("Success::Unknown(%d)", s.N)
	}
}
