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
	Registry.Add(&MultiStringPropFinder{})
}

// MultiStringPropFinderConfiguration 节点配置
type MultiStringPropFinderConfiguration struct {
	// Prop 多语言字符串属性
	Prop string `required:"true"`
	// Ws 书写系统
	Ws string `required:"true"`
}

// MultiStringPropFinder reads one writing-system alternative of a multi-string property.
type MultiStringPropFinder struct {
	Config MultiStringPropFinderConfiguration
	da     types.DataAccess
}

// NewMultiStringPropFinder creates an unbound finder of the ws alternative of prop.
func NewMultiStringPropFinder(prop types.PropId, ws string) *MultiStringPropFinder {
	return &MultiStringPropFinder{Config: MultiStringPropFinderConfiguration{Prop: string(prop), Ws: ws}}
}

// Type 组件类型
func (x *MultiStringPropFinder) Type() string {
	return "multiStringProp"
}

func (x *MultiStringPropFinder) New() types.Component {
	return &MultiStringPropFinder{}
}

// Init 初始化
func (x *MultiStringPropFinder) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "prop", "ws")
}

func (x *MultiStringPropFinder) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *MultiStringPropFinder) Bind(ctx types.BindContext) (err error) {
	x.da, err = bindDataAccess(ctx)
	return err
}

func (x *MultiStringPropFinder) Property() types.PropId {
	return types.PropId(x.Config.Prop)
}

func (x *MultiStringPropFinder) WritingSystem() string {
	return x.Config.Ws
}

func (x *MultiStringPropFinder) Strings(item types.PathItem) []string {
	return []string{x.Key(item).Value}
}

func (x *MultiStringPropFinder) Key(item types.PathItem) types.Text {
	return types.NewText(readString(x.da, item.KeyObject, x.Property(), x.Config.Ws))
}

func (x *MultiStringPropFinder) SameFinder(other types.StringFinder) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *MultiStringPropFinder) Preload(types.RecordId) {
}

func (x *MultiStringPropFinder) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	return append(collector, types.NewPathItem(root))
}
