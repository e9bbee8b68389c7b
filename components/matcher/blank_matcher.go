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
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/utils/str"
)

func init() {
	Registry.Add(&BlankMatcher{}, &NonBlankMatcher{})
}

// alwaysValid 无配置的matcher
type alwaysValid struct{}

func (alwaysValid) Persist(*types.PersistNode) error {
	return nil
}

func (alwaysValid) Bind(types.BindContext) error {
	return nil
}

func (alwaysValid) IsValid() bool {
	return true
}

func (alwaysValid) ErrorMessage() string {
	return ""
}

func (alwaysValid) CanMakeValid() bool {
	return false
}

// BlankMatcher 匹配空值：null、空字符串或只含空白
type BlankMatcher struct {
	alwaysValid
}

// Type 组件类型
func (x *BlankMatcher) Type() string {
	return "blankMatch"
}

func (x *BlankMatcher) New() types.Component {
	return &BlankMatcher{}
}

// Init 初始化
func (x *BlankMatcher) Init(types.Config, *types.PersistNode) error {
	return nil
}

func (x *BlankMatcher) Matches(value types.Text) bool {
	return !value.Valid || str.IsBlank(value.Value)
}

func (x *BlankMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *BlankMatcher) MakeValid() types.Matcher {
	return &BlankMatcher{}
}

// NonBlankMatcher 匹配非空值
type NonBlankMatcher struct {
	alwaysValid
}

// Type 组件类型
func (x *NonBlankMatcher) Type() string {
	return "nonBlankMatch"
}

func (x *NonBlankMatcher) New() types.Component {
	return &NonBlankMatcher{}
}

// Init 初始化
func (x *NonBlankMatcher) Init(types.Config, *types.PersistNode) error {
	return nil
}

func (x *NonBlankMatcher) Matches(value types.Text) bool {
	return value.Valid && !str.IsBlank(value.Value)
}

func (x *NonBlankMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *NonBlankMatcher) MakeValid() types.Matcher {
	return &NonBlankMatcher{}
}
