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

package filter

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&FinderFilter{}, &FilterBarFilter{})
}

// leafFilter applies a matcher to the key a finder reads from the item.
type leafFilter struct {
	Finder  types.StringFinder
	Matcher types.Matcher
}

func (x *leafFilter) init(config types.Config, node *types.PersistNode) (err error) {
	if x.Finder, err = base.InitChildAs[types.StringFinder](config, node, ChildFinder); err != nil {
		return err
	}
	x.Matcher, err = base.InitChildAs[types.Matcher](config, node, ChildMatcher)
	return err
}

func (x *leafFilter) Persist(node *types.PersistNode) error {
	if err := base.NodeUtils.PersistChild(node, ChildFinder, x.Finder); err != nil {
		return err
	}
	return base.NodeUtils.PersistChild(node, ChildMatcher, x.Matcher)
}

func (x *leafFilter) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.Finder, x.Matcher)
}

func (x *leafFilter) Accept(item types.PathItem) bool {
	if x.Finder == nil || x.Matcher == nil {
		return false
	}
	return x.Matcher.Matches(x.Finder.Key(item))
}

func (x *leafFilter) Preload(root types.RecordId) {
	if x.Finder != nil {
		x.Finder.Preload(root)
	}
}

// FinderFilter 用matcher匹配finder读取的值
type FinderFilter struct {
	leafFilter
}

// NewFinderFilter creates a filter matching the key of finder.
func NewFinderFilter(finder types.StringFinder, matcher types.Matcher) *FinderFilter {
	return &FinderFilter{leafFilter{Finder: finder, Matcher: matcher}}
}

// Type 组件类型
func (x *FinderFilter) Type() string {
	return "finderFilter"
}

func (x *FinderFilter) New() types.Component {
	return &FinderFilter{}
}

// Init 初始化
func (x *FinderFilter) Init(config types.Config, node *types.PersistNode) error {
	return x.init(config, node)
}

func (x *FinderFilter) SameFilter(other types.RecordFilter) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *FinderFilter) IsUserVisible() bool {
	return false
}

// FilterBarFilter 过滤栏过滤器，和 FinderFilter 相同但对用户可见
type FilterBarFilter struct {
	leafFilter
}

// NewFilterBarFilter creates a user-visible filter matching the key of finder.
func NewFilterBarFilter(finder types.StringFinder, matcher types.Matcher) *FilterBarFilter {
	return &FilterBarFilter{leafFilter{Finder: finder, Matcher: matcher}}
}

// Type 组件类型
func (x *FilterBarFilter) Type() string {
	return "filterBarFilter"
}

func (x *FilterBarFilter) New() types.Component {
	return &FilterBarFilter{}
}

// Init 初始化
func (x *FilterBarFilter) Init(config types.Config, node *types.PersistNode) error {
	return x.init(config, node)
}

func (x *FilterBarFilter) SameFilter(other types.RecordFilter) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *FilterBarFilter) IsUserVisible() bool {
	return true
}
