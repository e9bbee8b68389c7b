/*
 * Copyright 2023 The RuleGo Authors.
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

// Package test provides helpers for component tests: a registry over component
// slices, persisted node builders, round-trip checks and an in-memory lexicon fixture.
package test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	reflect2 "github.com/rulego/sift/utils/reflect"
)

// componentRegistry 测试用组件注册器
type componentRegistry struct {
	components map[string]types.Component
	sync.RWMutex
}

// NewRegistry creates a registry holding every component of the given slices.
func NewRegistry(slices ...*types.SafeComponentSlice) types.ComponentRegistry {
	r := &componentRegistry{components: make(map[string]types.Component)}
	for _, slice := range slices {
		for _, c := range slice.Components() {
			_ = r.Register(c)
		}
	}
	return r
}

func (r *componentRegistry) Register(component types.Component) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[component.Type()]; ok {
		return fmt.Errorf("the component already exists. componentType=%s", component.Type())
	}
	r.components[component.Type()] = component
	return nil
}

func (r *componentRegistry) RegisterPlugin(name string, file string) error {
	return fmt.Errorf("plugins are not supported by the test registry")
}

func (r *componentRegistry) Unregister(componentType string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.components[componentType]; !ok {
		return fmt.Errorf("component not found. componentType=%s", componentType)
	}
	delete(r.components, componentType)
	return nil
}

func (r *componentRegistry) NewComponent(componentType string) (types.Component, error) {
	r.RLock()
	defer r.RUnlock()
	if c, ok := r.components[componentType]; ok {
		return c.New(), nil
	}
	return nil, fmt.Errorf("%w: %s", types.ErrUnknownType, componentType)
}

func (r *componentRegistry) GetComponents() map[string]types.Component {
	r.RLock()
	defer r.RUnlock()
	result := make(map[string]types.Component, len(r.components))
	for k, v := range r.components {
		result[k] = v
	}
	return result
}

func (r *componentRegistry) GetComponentForms() types.ComponentFormList {
	r.RLock()
	defer r.RUnlock()
	forms := make(types.ComponentFormList)
	for k, v := range r.components {
		forms[k] = reflect2.GetComponentForm(v.New())
	}
	return forms
}

// NewConfig creates a quiet config whose registry holds the given component slices.
func NewConfig(slices ...*types.SafeComponentSlice) types.Config {
	return types.NewConfig(
		types.WithComponentsRegistry(NewRegistry(slices...)),
		types.WithLogger(types.DiscardLogger()),
	)
}

// Node 构建持久化节点
func Node(name, componentType string, attrs map[string]string, children ...*types.PersistNode) *types.PersistNode {
	node := types.NewPersistNode(name)
	node.Type = componentType
	for k, v := range attrs {
		node.SetAttr(k, v)
	}
	for _, child := range children {
		node.AddChild(child)
	}
	return node
}

// CreateAndInit 通过注册器创建组件并从节点恢复
func CreateAndInit(config types.Config, node *types.PersistNode) (types.Component, error) {
	return base.NodeUtils.InitComponent(config, node)
}

// ComponentNew 测试创建组件实例以及默认配置
func ComponentNew(t *testing.T, targetType string, target types.Component, defaultConfig types.Configuration, registry *types.SafeComponentSlice) {
	var factory types.Component
	for _, component := range registry.Components() {
		if component.Type() == targetType {
			factory = component
		}
	}
	require.NotNil(t, factory, targetType)
	component := factory.New()
	assert.Equal(t, targetType, component.Type())
	assert.Equal(t, reflect.TypeOf(target), reflect.TypeOf(component))

	componentForm := reflect2.GetComponentForm(component)
	var count = 0
	for k, v := range defaultConfig {
		if field, ok := componentForm.Fields.GetField(k); ok {
			count++
			assert.Equal(t, v, field.DefaultValue, k)
		}
	}
	assert.Equal(t, len(defaultConfig), count)
}

// ComponentInit 测试从节点恢复后的配置
func ComponentInit(t *testing.T, config types.Config, node *types.PersistNode, expected types.Configuration) types.Component {
	component, err := CreateAndInit(config, node)
	require.NoError(t, err)
	componentForm := reflect2.GetComponentForm(component)
	var count = 0
	for k, v := range expected {
		if field, ok := componentForm.Fields.GetField(k); ok {
			count++
			assert.Equal(t, v, field.DefaultValue, k)
		}
	}
	assert.Equal(t, len(expected), count)
	return component
}

// RoundTrip persists component, restores it through config and binds the copy to ctx.
func RoundTrip(t *testing.T, config types.Config, component types.Component, ctx types.BindContext) types.Component {
	node, err := base.NodeUtils.Snapshot(component)
	require.NoError(t, err)
	restored, err := CreateAndInit(config, node)
	require.NoError(t, err)
	require.NoError(t, restored.Bind(ctx))
	assert.True(t, base.NodeUtils.SameConfig(component, restored), "%s differs after round trip", component.Type())
	return restored
}

// ProgressRecorder 记录进度回调
type ProgressRecorder struct {
	Percents []int
	Messages []string
}

func (p *ProgressRecorder) SetPercentDone(percent int) {
	p.Percents = append(p.Percents, percent)
}

func (p *ProgressRecorder) SetMessage(message string) {
	p.Messages = append(p.Messages, message)
}
