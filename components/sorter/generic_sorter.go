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

package sorter

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/components/finder"
)

func init() {
	Registry.Add(&GenericSorter{}, &AndSorter{})
}

// GenericSorter 使用一个比较器的稳定归并排序
// The optional finder decides how roots expand into items; without one the comparator's
// own finder is used.
type GenericSorter struct {
	Comparator types.Comparator
	Finder     types.StringFinder
}

// NewGenericSorter creates a sorter ordering by comparator.
func NewGenericSorter(comparator types.Comparator) *GenericSorter {
	return &GenericSorter{Comparator: comparator}
}

// Type 组件类型
func (x *GenericSorter) Type() string {
	return "genericSorter"
}

func (x *GenericSorter) New() types.Component {
	return &GenericSorter{}
}

// Init 初始化
func (x *GenericSorter) Init(config types.Config, node *types.PersistNode) (err error) {
	if x.Comparator, err = base.InitChildAs[types.Comparator](config, node, ChildComparer); err != nil {
		return err
	}
	x.Finder = nil
	if node.Child(ChildFinder) != nil {
		x.Finder, err = base.InitChildAs[types.StringFinder](config, node, ChildFinder)
	}
	return err
}

func (x *GenericSorter) Persist(node *types.PersistNode) error {
	if err := base.NodeUtils.PersistChild(node, ChildComparer, x.Comparator); err != nil {
		return err
	}
	if x.Finder != nil {
		return base.NodeUtils.PersistChild(node, ChildFinder, x.Finder)
	}
	return nil
}

func (x *GenericSorter) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.Comparator, x.Finder)
}

func (x *GenericSorter) Comparer() types.Comparator {
	return x.Comparator
}

func (x *GenericSorter) compare(a, b types.PathItem) (int, error) {
	return x.Comparator.Compare(a, b)
}

// Sort sorts items in place with a stable merge sort. progress receives the integer
// percentage of the estimated comparisons each time it changes.
func (x *GenericSorter) Sort(items []types.PathItem, progress types.ProgressSink) error {
	if x.Comparator == nil {
		return nil
	}
	return mergeSort(items, counting(x.compare, len(items), progress))
}

func (x *GenericSorter) MergeInto(sorted []types.PathItem, additions []types.PathItem) ([]types.PathItem, error) {
	if x.Comparator == nil {
		return append(append([]types.PathItem{}, sorted...), additions...), nil
	}
	return mergeInto(sorted, additions, x.compare)
}

// keyFinder returns the finder roots are expanded with.
func (x *GenericSorter) keyFinder() types.StringFinder {
	if x.Finder != nil {
		return x.Finder
	}
	return finderOf(x.Comparator)
}

// CollectItems appends one item per root, or one per element when the key finder is
// multi-valued.
func (x *GenericSorter) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	if f := x.keyFinder(); f != nil && finder.IsMultiValued(f) {
		return f.CollectItems(root, collector)
	}
	return append(collector, types.NewPathItem(root))
}

func (x *GenericSorter) Preload(root types.RecordId) {
	if f := x.keyFinder(); f != nil {
		f.Preload(root)
	}
}

// CompatibleSorter reports whether items sorted by other are ordered compatibly with
// this sorter, ignoring one reverse layer on each side.
func (x *GenericSorter) CompatibleSorter(other types.RecordSorter) bool {
	if other == nil {
		return false
	}
	o, ok := other.(*GenericSorter)
	if !ok {
		return false
	}
	return compatibleComparers(x.Comparator, o.Comparator)
}

func compatibleComparers(a, b types.Comparator) bool {
	if a == nil || b == nil {
		return false
	}
	a, b = unwrap(a), unwrap(b)
	if a == b {
		return true
	}
	if sa, ok := a.(*StringFinderComparer); ok {
		if sb, ok := b.(*StringFinderComparer); ok && sa.WritingSystem() != "" && sa.WritingSystem() == sb.WritingSystem() {
			return true
		}
	}
	if ca, ok := a.(*ChainComparer); ok {
		if cb, ok := b.(*ChainComparer); ok && len(ca.Comparers) == len(cb.Comparers) && len(ca.Comparers) > 0 {
			for i := range ca.Comparers {
				if !compatibleComparers(ca.Comparers[i], cb.Comparers[i]) {
					return false
				}
			}
			return true
		}
	}
	_, intA := a.(*IntStringComparer)
	_, intB := b.(*IntStringComparer)
	if intA && intB {
		return true
	}
	pa, okA := ownFinder(a).(finder.PropertyFinder)
	pb, okB := ownFinder(b).(finder.PropertyFinder)
	return okA && okB && pa.Property() == pb.Property()
}

// ownFinder returns the finder of c itself, without looking through wrappers.
func ownFinder(c types.Comparator) types.StringFinder {
	if fc, ok := c.(FinderComparer); ok {
		return fc.Finder()
	}
	return nil
}

// AndSorter 多个排序器的字典序排序：前一个相等时使用下一个
type AndSorter struct {
	Sorters []types.RecordSorter
}

// NewAndSorter creates a lexicographic sorter.
func NewAndSorter(sorters ...types.RecordSorter) *AndSorter {
	return &AndSorter{Sorters: sorters}
}

// Type 组件类型
func (x *AndSorter) Type() string {
	return "andSorter"
}

func (x *AndSorter) New() types.Component {
	return &AndSorter{}
}

// Init 初始化
func (x *AndSorter) Init(config types.Config, node *types.PersistNode) error {
	x.Sorters = nil
	for _, child := range node.ChildrenNamed(ChildSorter) {
		component, err := base.NodeUtils.InitComponent(config, child)
		if err != nil {
			return err
		}
		s, err := base.As[types.RecordSorter](child, component)
		if err != nil {
			return err
		}
		x.Sorters = append(x.Sorters, s)
	}
	return nil
}

func (x *AndSorter) Persist(node *types.PersistNode) error {
	for _, s := range x.Sorters {
		if err := base.NodeUtils.PersistChild(node, ChildSorter, s); err != nil {
			return err
		}
	}
	return nil
}

func (x *AndSorter) Bind(ctx types.BindContext) error {
	for _, s := range x.Sorters {
		if err := s.Bind(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Comparer returns a chainComparer over the children's comparators.
func (x *AndSorter) Comparer() types.Comparator {
	comparers := make([]types.Comparator, 0, len(x.Sorters))
	for _, s := range x.Sorters {
		if c := s.Comparer(); c != nil {
			comparers = append(comparers, c)
		}
	}
	return NewChainComparer(comparers...)
}

func (x *AndSorter) Sort(items []types.PathItem, progress types.ProgressSink) error {
	return mergeSort(items, counting(x.Comparer().Compare, len(items), progress))
}

func (x *AndSorter) MergeInto(sorted []types.PathItem, additions []types.PathItem) ([]types.PathItem, error) {
	return mergeInto(sorted, additions, x.Comparer().Compare)
}

// CollectItems expands roots the way the primary sorter does.
func (x *AndSorter) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	if len(x.Sorters) == 0 {
		return append(collector, types.NewPathItem(root))
	}
	return x.Sorters[0].CollectItems(root, collector)
}

func (x *AndSorter) Preload(root types.RecordId) {
	for _, s := range x.Sorters {
		s.Preload(root)
	}
}

// CompatibleSorter reports whether other is an andSorter with pairwise compatible children.
func (x *AndSorter) CompatibleSorter(other types.RecordSorter) bool {
	o, ok := other.(*AndSorter)
	if !ok || len(o.Sorters) != len(x.Sorters) {
		return false
	}
	for i := range x.Sorters {
		if !x.Sorters[i].CompatibleSorter(o.Sorters[i]) {
			return false
		}
	}
	return true
}
