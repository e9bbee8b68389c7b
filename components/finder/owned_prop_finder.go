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
	"strings"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&OwnedPropFinder{})
}

// OwnedPropFinderConfiguration 节点配置
type OwnedPropFinderConfiguration struct {
	// Path 以空格分隔的原子对象属性链，例如 "LexEntry.LexemeForm"
	Path string `required:"true"`
	// Prop 最后读取的字符串属性
	Prop string `required:"true"`
	// Ws 书写系统，为空时读取普通字符串属性
	Ws string
}

// OwnedPropFinder follows a chain of atomic object properties from the key object and
// reads a string of the object reached. A missing link yields the null Text.
type OwnedPropFinder struct {
	Config OwnedPropFinderConfiguration
	path   []types.PropId
	da     types.DataAccess
}

// NewOwnedPropFinder creates an unbound finder reading prop (alternative ws, or a plain
// string when ws is empty) of the object reached through path.
func NewOwnedPropFinder(path []types.PropId, prop types.PropId, ws string) *OwnedPropFinder {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = string(p)
	}
	x := &OwnedPropFinder{Config: OwnedPropFinderConfiguration{Path: strings.Join(parts, " "), Prop: string(prop), Ws: ws}}
	x.compile()
	return x
}

// Type 组件类型
func (x *OwnedPropFinder) Type() string {
	return "ownedProp"
}

func (x *OwnedPropFinder) New() types.Component {
	return &OwnedPropFinder{}
}

// Init 初始化
func (x *OwnedPropFinder) Init(_ types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "path", "prop"); err != nil {
		return err
	}
	x.compile()
	return nil
}

// compile parses Path, normalising its separators
func (x *OwnedPropFinder) compile() {
	fields := strings.Fields(x.Config.Path)
	x.path = make([]types.PropId, len(fields))
	for i, p := range fields {
		x.path[i] = types.PropId(p)
	}
	x.Config.Path = strings.Join(fields, " ")
}

func (x *OwnedPropFinder) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *OwnedPropFinder) Bind(ctx types.BindContext) (err error) {
	x.da, err = bindDataAccess(ctx)
	return err
}

func (x *OwnedPropFinder) Property() types.PropId {
	return types.PropId(x.Config.Prop)
}

func (x *OwnedPropFinder) WritingSystem() string {
	return x.Config.Ws
}

// Target returns the object reached from id, or NilRecord when a link is missing.
func (x *OwnedPropFinder) Target(id types.RecordId) types.RecordId {
	if x.da == nil {
		return types.NilRecord
	}
	for _, prop := range x.path {
		if id == types.NilRecord {
			break
		}
		id = x.da.GetObjectProperty(id, prop)
	}
	return id
}

func (x *OwnedPropFinder) Strings(item types.PathItem) []string {
	key := x.Key(item)
	if !key.Valid {
		return nil
	}
	return []string{key.Value}
}

func (x *OwnedPropFinder) Key(item types.PathItem) types.Text {
	target := x.Target(item.KeyObject)
	if target == types.NilRecord {
		return types.NullText
	}
	return types.NewText(readString(x.da, target, x.Property(), x.Config.Ws))
}

func (x *OwnedPropFinder) SameFinder(other types.StringFinder) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *OwnedPropFinder) Preload(types.RecordId) {
}

func (x *OwnedPropFinder) CollectItems(root types.RecordId, collector []types.PathItem) []types.PathItem {
	return append(collector, types.NewPathItem(root))
}
