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

// Package matcher provides the string predicates used by record filters.
//
// A matcher is immutable once restored. Configuration problems (an unparsable
// regular expression, an over-long pattern) do not fail Init; they are reported by
// IsValid and ErrorMessage, and MakeValid returns a repaired copy when possible.
//
// Registered types:
//
//   - exactMatch, beginMatch, endMatch, anywhereMatch: literal pattern search
//   - regExpMatch: regular expression search
//   - blankMatch, nonBlankMatch: null/empty/whitespace test
//   - invertMatch: negation of a child matcher
//   - rangeIntMatch, notEqualIntMatch: integer tests
//   - dateTimeMatch: ordinary and generic (partial) dates
//   - badSpellingMatch: dictionary check
//   - exprMatch: expr-lang expression over `value`
//   - jsMatch: JavaScript `function Match(value)`
//
// Persisted form:
//
//	<matcher type="beginMatch" pattern="cat" matchCase="false" matchDiacritics="false" ws="fr"/>
package matcher

import (
	"github.com/rulego/sift/api/types"
)

// Registry 默认matcher组件注册表
var Registry = new(types.SafeComponentSlice)

// 所有matcher共享的属性名
const (
	// ChildMatcher invertMatch 子节点名称
	ChildMatcher = types.NodeMatcher
)
