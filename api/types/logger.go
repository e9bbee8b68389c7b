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

package types

import (
	"io"
	"log"
	"os"
)

// Logger 日志接口
// Logger receives restore problems, dictionary misses, script failures and server requests.
type Logger interface {
	Printf(format string, v ...interface{})
}

var _ Logger = (*log.Logger)(nil)

// DefaultLogger 输出到标准输出
func DefaultLogger() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags)
}

// DiscardLogger 丢弃所有日志，用于测试
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// NewLogger returns custom, or DefaultLogger when custom is nil.
func NewLogger(custom Logger) Logger {
	if custom != nil {
		return custom
	}
	return DefaultLogger()
}
