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

package finder

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&VectorPropFinder{})
}

// VectorPropFinderConfiguration 节点配置
type VectorPropFinderConfiguration struct {
	// Vector 多值对象属性，例如 LexEntry.Senses
	Vector string `required:"true"`
	// Prop 每个元素上读取的字符串属性，例如 LexSense.Gloss
	Prop string `required:"true"`
	// Ws 书写系统，为空时读取普通字符串属性
	Ws string
}

// VectorPropFinder reads a string of every element of a vector property.
// CollectItems expands a root to one PathItem per element; the key of an expanded
// item is the string of its element, the key of an unexpanded root the string of
// its first element.
type VectorPropFinder struct {
	Config VectorPropFinderConfiguration
	da     types.DataAccess
}

// NewVectorPropFinder creates an unbound finder reading prop of every element of vector.
func NewVectorPropFinder(vector, prop types.PropId, ws string) *VectorPropFinder {
	return &VectorPropFinder{Config: VectorPropFinderConfiguration{Vector: string(vector), Prop: string(prop), Ws: ws}}
}

// Type 组件类型
func (x *VectorPropFinder) Type() string {
	return "vectorProp"
}

func (x *VectorPropFinder) New() types.Component {
	return &VectorPropFinder{}
}

// Init 初始化
func (x *VectorPropFinder) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "vector", "prop")
}

func (x *VectorPropFinder) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *VectorPropFinder) Bind(ctx types.BindContext) (err error) {
	x.da, err = bindDataAccess(ctx)
	return err
}

func (x *VectorPropFinder) Property() types.PropId {
	return types.PropId(x.Config.Prop)
}

func (x *VectorPropFinder) WritingSystem() string {
	return x.Config.Ws
}

func (x *VectorPropFinder) IsMultiValued() bool {
	return true
}

// expanded reports whether item was produced by CollectItems of this finder.
func (x *VectorPropFinder) expanded(item types.PathItem) bool {
	n := len(item.PathProps)
	return n > 0 && item.PathProps[n-1] == types.PropId(x.Config.Vector)
}

func (x *VectorPropFinder) elements(id types.RecordId) []types.RecordId {
	if x.da == nil {
		return nil
	}
	vector := types.PropId(x.Config.Vector)
	size := x.da.GetVectorSize(id, vector)
	result := make([]types.RecordId, 0, size)
	for i := 0; i < size; i++ {
		result = append(result, x.da.GetVectorItem(id, vector, i))
	}
	return result
}

func (x *VectorPropFinder) Strings(item types.PathItem) []string {
	if x.expanded(item) {
		return []string{readString(x.da, item.KeyObject, x.Property(), x.Config.Ws)}
	}
	elements := x.elements(item.KeyObject)
	result := make([]string, 0, len(elements))
	for _, e := range elements {
		result = append(result, readString(x.da, e, x.Property(), x.Config.Ws))
	}
	return result
}

func (x *VectorPropFinder) Key(item types.PathItem) types.Text {
	if x.expanded(item) {
		return types.NewText(readString(x.da, item.KeyObject, x.Property(), x.Config.Ws))
	}
	if x.da == nil || x.da.GetVectorSize(item.KeyObject, types.PropId(x.Config.Vector)) == 0 {
		return types.NullText
	}
	first := x.da.GetVectorItem(item.KeyObject, types.PropId(x.Config.Vector), 0)
	return types.NewText(readString(x.da, first, x.Property(), x.Config.Ws))
}

func (x *VectorPropFinder) SameFinder(other types.StringFinder) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *VectorPropFinder) Preload(types.RecordId) {
}

// CollectItems appends one item per element; a root with no elements is appended as is.
func (x *VectorPropFinder) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	elements := x.elements(root)
	if len(elements) == 0 {
		return append(collector, types.NewPathItem(root))
	}
	rootItem := types.NewPathItem(root)
	for _, e := range elements {
		collector = append(collector, rootItem.Extend(types.PropId(x.Config.Vector), e))
	}
	return collector
}
