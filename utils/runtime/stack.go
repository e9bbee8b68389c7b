/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package runtime formats call stacks for panic reports.
package runtime

import (
	"fmt"
	"runtime"
	"strings"
)

// maxDepth 最多记录的栈帧数
const maxDepth = 32

// Stack 获取堆栈信息
// Stack returns the caller's stack, one "function file:line" frame per line,
// skipping Stack itself and its direct caller.
func Stack() string {
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		b.WriteString(fmt.Sprintf(" %s %s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}

// Recover converts a recovered panic value into an error carrying the stack.
//
//	defer func() {
//		if e := recover(); e != nil {
//			err = runtime.Recover(e)
//		}
//	}()
func Recover(e interface{}) error {
	return fmt.Errorf("panic: %v\n%s", e, Stack())
}
