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

// Package base provides the persistence helpers shared by every sift component.
//
// A component persists its Config struct as flat node attributes (lower-camel field
// names) and its sub-components as typed child nodes. Restoring reverses both steps,
// resolving child types through types.Config.ComponentsRegistry.
package base

import (
	"errors"
	"fmt"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/maps"
	"github.com/rulego/sift/utils/str"
)

// ErrRegistryNil 恢复子组件需要组件注册器
var ErrRegistryNil = errors.New("components registry is nil")

var NodeUtils = &nodeUtils{}

type nodeUtils struct {
}

// DecodeConfig 把节点属性解析到配置结构体
// required lists attribute keys that must be present.
func (n *nodeUtils) DecodeConfig(node *types.PersistNode, config interface{}, required ...string) error {
	if node == nil {
		return types.NewRestoreError(nil, types.ErrMalformedNode)
	}
	for _, key := range required {
		if _, ok := node.Attr(key); !ok {
			return types.NewRestoreError(node, fmt.Errorf("%w: %s", types.ErrMissingAttribute, key))
		}
	}
	if err := maps.WeakMap2Struct(node.Configuration(), config); err != nil {
		return types.NewRestoreError(node, fmt.Errorf("%w: %v", types.ErrMalformedNode, err))
	}
	return nil
}

// EncodeConfig 把配置结构体写入节点属性
func (n *nodeUtils) EncodeConfig(node *types.PersistNode, config interface{}) error {
	values, err := maps.Struct2Map(config)
	if err != nil {
		return err
	}
	for k, v := range values {
		node.SetAttr(str.ToLowerFirst(k), str.ToString(v))
	}
	return nil
}

// InitComponent 根据节点类型创建组件并恢复配置
func (n *nodeUtils) InitComponent(config types.Config, node *types.PersistNode) (types.Component, error) {
	if node == nil {
		return nil, types.NewRestoreError(nil, types.ErrMalformedNode)
	}
	if node.Type == "" {
		return nil, types.NewRestoreError(node, fmt.Errorf("%w: %s", types.ErrMissingAttribute, types.TypeAttr))
	}
	if config.ComponentsRegistry == nil {
		return nil, types.NewRestoreError(node, ErrRegistryNil)
	}
	component, err := config.ComponentsRegistry.NewComponent(node.Type)
	if err != nil {
		return nil, types.NewRestoreError(node, err)
	}
	if err = component.Init(config, node); err != nil {
		return nil, types.NewRestoreError(node, err)
	}
	return component, nil
}

// InitChild 恢复名称为name的子节点
func (n *nodeUtils) InitChild(config types.Config, node *types.PersistNode, name string) (types.Component, error) {
	child := node.Child(name)
	if child == nil {
		return nil, types.NewRestoreError(node, fmt.Errorf("%w: child %s", types.ErrMissingAttribute, name))
	}
	return n.InitComponent(config, child)
}

// PersistChild 把组件写成名称为name的子节点
func (n *nodeUtils) PersistChild(node *types.PersistNode, name string, component types.Component) error {
	if component == nil {
		return fmt.Errorf("persist child %s: component is nil", name)
	}
	child := types.NewPersistNode(name)
	child.Type = component.Type()
	if err := component.Persist(child); err != nil {
		return err
	}
	node.AddChild(child)
	return nil
}

// Snapshot 持久化组件到一个新节点
func (n *nodeUtils) Snapshot(component types.Component) (*types.PersistNode, error) {
	node := types.NewPersistNode(component.Type())
	node.Type = component.Type()
	if err := component.Persist(node); err != nil {
		return nil, err
	}
	return node, nil
}

// SameConfig reports whether a and b have the same type and persist to equal trees.
func (n *nodeUtils) SameConfig(a, b types.Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Type() != b.Type() {
		return false
	}
	na, err := n.Snapshot(a)
	if err != nil {
		return false
	}
	nb, err := n.Snapshot(b)
	if err != nil {
		return false
	}
	return na.Equal(nb)
}

// Bind 依次绑定运行时上下文，跳过nil组件
func (n *nodeUtils) Bind(ctx types.BindContext, components ...types.Component) error {
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Bind(ctx); err != nil {
			return err
		}
	}
	return nil
}

// InitChildAs 恢复子节点并断言为T类型
func InitChildAs[T types.Component](config types.Config, node *types.PersistNode, name string) (T, error) {
	var zero T
	component, err := NodeUtils.InitChild(config, node, name)
	if err != nil {
		return zero, err
	}
	return As[T](node.Child(name), component)
}

// As 断言组件类型，不匹配时返回 ErrMalformedNode
func As[T types.Component](node *types.PersistNode, component types.Component) (T, error) {
	if v, ok := component.(T); ok {
		return v, nil
	}
	var zero T
	return zero, types.NewRestoreError(node, fmt.Errorf("%w: unexpected component type %s", types.ErrMalformedNode, component.Type()))
}
