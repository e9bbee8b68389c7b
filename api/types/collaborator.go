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

// DataAccess 领域数据只读访问接口
// DataAccess is indexed, read-only access to domain records.
// Implementations return zero values for missing data.
type DataAccess interface {
	GetString(id RecordId, prop PropId) string
	GetMultiString(id RecordId, prop PropId, ws string) string
	GetVectorSize(id RecordId, prop PropId) int
	GetVectorItem(id RecordId, prop PropId, index int) RecordId
	GetObjectProperty(id RecordId, prop PropId) RecordId
}

// Collator 排序规则
// Collator orders strings of a writing system.
type Collator interface {
	Compare(a, b string, ws string) int
}

// SpellingProvider 拼写检查
// Check returns ErrNoDictionary when no dictionary exists for ws.
type SpellingProvider interface {
	Check(word string, ws string) (bool, error)
}

// ProgressSink 进度回调
// ProgressSink receives percent-done values (0-100, non-decreasing within one pass) and
// status messages. Calls must be cheap and must not block.
type ProgressSink interface {
	SetPercentDone(percent int)
	SetMessage(message string)
}

// ProgressFunc adapts a function to ProgressSink; messages are dropped.
type ProgressFunc func(percent int)

func (f ProgressFunc) SetPercentDone(percent int) {
	f(percent)
}

func (f ProgressFunc) SetMessage(string) {
}

// BindContext 运行时上下文
// BindContext carries the live collaborators supplied by Bind after a restore.
type BindContext struct {
	DataAccess DataAccess
	Collator   Collator
	Spelling   SpellingProvider
	Logger     Logger
}
