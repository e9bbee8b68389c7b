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
)

func init() {
	Registry.Add(&InvertMatcher{})
}

// InvertMatcher 对子matcher取反。null 值不匹配。
//
//	<matcher type="invertMatch">
//	  <matcher type="anywhereMatch" pattern="x"/>
//	</matcher>
type InvertMatcher struct {
	Matcher types.Matcher
}

// NewInvertMatcher wraps matcher.
func NewInvertMatcher(matcher types.Matcher) *InvertMatcher {
	return &InvertMatcher{Matcher: matcher}
}

// Type 组件类型
func (x *InvertMatcher) Type() string {
	return "invertMatch"
}

func (x *InvertMatcher) New() types.Component {
	return &InvertMatcher{}
}

// Init 初始化
func (x *InvertMatcher) Init(config types.Config, node *types.PersistNode) (err error) {
	x.Matcher, err = base.InitChildAs[types.Matcher](config, node, ChildMatcher)
	return err
}

func (x *InvertMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.PersistChild(node, ChildMatcher, x.Matcher)
}

func (x *InvertMatcher) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.Matcher)
}

func (x *InvertMatcher) Matches(value types.Text) bool {
	return value.Valid && x.Matcher != nil && !x.Matcher.Matches(value)
}

func (x *InvertMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *InvertMatcher) IsValid() bool {
	return x.Matcher != nil && x.Matcher.IsValid()
}

func (x *InvertMatcher) ErrorMessage() string {
	if x.Matcher == nil {
		return "missing matcher"
	}
	return x.Matcher.ErrorMessage()
}

func (x *InvertMatcher) CanMakeValid() bool {
	return x.Matcher != nil && x.Matcher.CanMakeValid()
}

func (x *InvertMatcher) MakeValid() types.Matcher {
	if x.Matcher == nil {
		return &InvertMatcher{}
	}
	return &InvertMatcher{Matcher: x.Matcher.MakeValid()}
}
