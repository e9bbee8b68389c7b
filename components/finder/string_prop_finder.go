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
	Registry.Add(&StringPropFinder{})
}

// StringPropFinderConfiguration 节点配置
type StringPropFinderConfiguration struct {
	// Prop 字符串属性，例如 LexEntry.HomographNumber
	Prop string `required:"true"`
}

// StringPropFinder reads a plain string property of the key object.
type StringPropFinder struct {
	Config StringPropFinderConfiguration
	da     types.DataAccess
}

// NewStringPropFinder creates an unbound finder of prop.
func NewStringPropFinder(prop types.PropId) *StringPropFinder {
	return &StringPropFinder{Config: StringPropFinderConfiguration{Prop: string(prop)}}
}

// Type 组件类型
func (x *StringPropFinder) Type() string {
	return "stringProp"
}

func (x *StringPropFinder) New() types.Component {
	return &StringPropFinder{}
}

// Init 初始化
func (x *StringPropFinder) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "prop")
}

func (x *StringPropFinder) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *StringPropFinder) Bind(ctx types.BindContext) (err error) {
	x.da, err = bindDataAccess(ctx)
	return err
}

func (x *StringPropFinder) Property() types.PropId {
	return types.PropId(x.Config.Prop)
}

func (x *StringPropFinder) WritingSystem() string {
	return ""
}

func (x *StringPropFinder) Strings(item types.PathItem) []string {
	return []string{x.Key(item).Value}
}

func (x *StringPropFinder) Key(item types.PathItem) types.Text {
	return types.NewText(readString(x.da, item.KeyObject, x.Property(), ""))
}

func (x *StringPropFinder) SameFinder(other types.StringFinder) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *StringPropFinder) Preload(types.RecordId) {
}

func (x *StringPropFinder) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	return append(collector, types.NewPathItem(root))
}
