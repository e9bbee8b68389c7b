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
	Registry.Add(&AndFilter{})
}

// AndFilter 所有子过滤器都接受时才接受。没有子过滤器时接受所有记录。
type AndFilter struct {
	Filters []types.RecordFilter
}

// NewAndFilter creates a conjunction of filters. Duplicates are not checked.
func NewAndFilter(filters ...types.RecordFilter) *AndFilter {
	return &AndFilter{Filters: filters}
}

// Type 组件类型
func (x *AndFilter) Type() string {
	return "andFilter"
}

func (x *AndFilter) New() types.Component {
	return &AndFilter{}
}

// Init 初始化
func (x *AndFilter) Init(config types.Config, node *types.PersistNode) error {
	x.Filters = nil
	for _, child := range node.ChildrenNamed(ChildFilter) {
		component, err := base.NodeUtils.InitComponent(config, child)
		if err != nil {
			return err
		}
		f, err := base.As[types.RecordFilter](child, component)
		if err != nil {
			return err
		}
		x.Filters = append(x.Filters, f)
	}
	return nil
}

func (x *AndFilter) Persist(node *types.PersistNode) error {
	for _, f := range x.Filters {
		if err := base.NodeUtils.PersistChild(node, ChildFilter, f); err != nil {
			return err
		}
	}
	return nil
}

func (x *AndFilter) Bind(ctx types.BindContext) error {
	for _, f := range x.Filters {
		if err := f.Bind(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (x *AndFilter) Accept(item types.PathItem) bool {
	for _, f := range x.Filters {
		if !f.Accept(item) {
			return false
		}
	}
	return true
}

func (x *AndFilter) SameFilter(other types.RecordFilter) bool {
	return base.NodeUtils.SameConfig(x, other)
}

// IsUserVisible reports whether any child is visible.
func (x *AndFilter) IsUserVisible() bool {
	for _, f := range x.Filters {
		if f.IsUserVisible() {
			return true
		}
	}
	return false
}

func (x *AndFilter) Preload(root types.RecordId) {
	for _, f := range x.Filters {
		f.Preload(root)
	}
}

// Add appends filter, or returns types.ErrDuplicateFilter when an equal one is present.
func (x *AndFilter) Add(filter types.RecordFilter) error {
	if filter == nil {
		return nil
	}
	if x.indexOf(filter) >= 0 {
		return types.ErrDuplicateFilter
	}
	x.Filters = append(x.Filters, filter)
	return nil
}

// Remove removes the child equal to filter, or returns types.ErrFilterNotFound.
func (x *AndFilter) Remove(filter types.RecordFilter) error {
	i := x.indexOf(filter)
	if i < 0 {
		return types.ErrFilterNotFound
	}
	x.Filters = append(x.Filters[:i], x.Filters[i+1:]...)
	return nil
}

// Contains reports whether a direct child equals filter.
func (x *AndFilter) Contains(filter types.RecordFilter) bool {
	return x.indexOf(filter) >= 0
}

func (x *AndFilter) indexOf(filter types.RecordFilter) int {
	if filter == nil {
		return -1
	}
	for i, f := range x.Filters {
		if f.SameFilter(filter) {
			return i
		}
	}
	return -1
}

// EqualContainedFilter returns the receiver or the first filter found depth-first
// that equals other, or nil.
func (x *AndFilter) EqualContainedFilter(other types.RecordFilter) types.RecordFilter {
	if other == nil {
		return nil
	}
	if x.SameFilter(other) {
		return x
	}
	for _, f := range x.Filters {
		if and, ok := f.(*AndFilter); ok {
			if found := and.EqualContainedFilter(other); found != nil {
				return found
			}
			continue
		}
		if f.SameFilter(other) {
			return f
		}
	}
	return nil
}
