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

package matcher

import (
	"strings"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/utils/cast"
)

func init() {
	Registry.Add(&RangeIntMatcher{}, &NotEqualIntMatcher{})
}

// RangeIntMatcherConfiguration 节点配置
type RangeIntMatcherConfiguration struct {
	// Min 最小值（包含）
	Min int64
	// Max 最大值（包含）
	Max int64
}

// RangeIntMatcher matches space-separated integer lists. The value matches when every
// token parses as an integer and at least one lies in [Min, Max]. A token that fails
// to parse, by syntax or overflow, makes the whole value a non-match.
type RangeIntMatcher struct {
	Config RangeIntMatcherConfiguration
}

// NewRangeIntMatcher creates a matcher of [min, max].
func NewRangeIntMatcher(min, max int64) *RangeIntMatcher {
	return &RangeIntMatcher{Config: RangeIntMatcherConfiguration{Min: min, Max: max}}
}

// Type 组件类型
func (x *RangeIntMatcher) Type() string {
	return "rangeIntMatch"
}

func (x *RangeIntMatcher) New() types.Component {
	return &RangeIntMatcher{}
}

// Init 初始化
func (x *RangeIntMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "min", "max")
}

func (x *RangeIntMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *RangeIntMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *RangeIntMatcher) Matches(value types.Text) bool {
	if !value.Valid {
		return false
	}
	tokens := strings.Fields(value.Value)
	found := false
	for _, token := range tokens {
		n, err := cast.ToInt64E(token)
		if err != nil {
			return false
		}
		if n >= x.Config.Min && n <= x.Config.Max {
			found = true
		}
	}
	return found
}

func (x *RangeIntMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *RangeIntMatcher) IsValid() bool {
	return x.Config.Min <= x.Config.Max
}

func (x *RangeIntMatcher) ErrorMessage() string {
	if x.IsValid() {
		return ""
	}
	return "minimum is greater than maximum"
}

func (x *RangeIntMatcher) CanMakeValid() bool {
	return !x.IsValid()
}

// MakeValid swaps the bounds of an inverted range.
func (x *RangeIntMatcher) MakeValid() types.Matcher {
	if x.IsValid() {
		return NewRangeIntMatcher(x.Config.Min, x.Config.Max)
	}
	return NewRangeIntMatcher(x.Config.Max, x.Config.Min)
}

// NotEqualIntMatcherConfiguration 节点配置
type NotEqualIntMatcherConfiguration struct {
	// Value 比较值
	Value int64
}

// NotEqualIntMatcher matches a single integer different from Value. A value that is
// not an integer does not match.
type NotEqualIntMatcher struct {
	Config NotEqualIntMatcherConfiguration
}

// NewNotEqualIntMatcher creates a matcher of integers other than value.
func NewNotEqualIntMatcher(value int64) *NotEqualIntMatcher {
	return &NotEqualIntMatcher{Config: NotEqualIntMatcherConfiguration{Value: value}}
}

// Type 组件类型
func (x *NotEqualIntMatcher) Type() string {
	return "notEqualIntMatch"
}

func (x *NotEqualIntMatcher) New() types.Component {
	return &NotEqualIntMatcher{}
}

// Init 初始化
func (x *NotEqualIntMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "value")
}

func (x *NotEqualIntMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *NotEqualIntMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *NotEqualIntMatcher) Matches(value types.Text) bool {
	if !value.Valid {
		return false
	}
	n, err := cast.ToInt64E(value.Value)
	if err != nil {
		return false
	}
	return n != x.Config.Value
}

func (x *NotEqualIntMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *NotEqualIntMatcher) IsValid() bool {
	return true
}

func (x *NotEqualIntMatcher) ErrorMessage() string {
	return ""
}

func (x *NotEqualIntMatcher) CanMakeValid() bool {
	return false
}

func (x *NotEqualIntMatcher) MakeValid() types.Matcher {
	return NewNotEqualIntMatcher(x.Config.Value)
}
