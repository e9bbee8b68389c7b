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

// Package filter provides the record filters: predicates over PathItems built from a
// string finder and a matcher, and their conjunction.
//
//   - finderFilter: accepts an item when the matcher matches the finder's key
//   - filterBarFilter: a finderFilter created from a column filter bar, visible to the user
//   - andFilter: accepts an item when every child filter accepts it
//
// Persisted form:
//
//	<filter type="andFilter">
//	  <filter type="filterBarFilter">
//	    <finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
//	    <matcher type="beginMatch" pattern="c"/>
//	  </filter>
//	</filter>
package filter

import (
	"github.com/rulego/sift/api/types"
)

// Registry 默认filter组件注册表
var Registry = new(types.SafeComponentSlice)

// 子节点名称
const (
	ChildFinder  = types.NodeFinder
	ChildMatcher = types.NodeMatcher
	ChildFilter  = types.NodeFilter
)
