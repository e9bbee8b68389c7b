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

package engine

import (
	"errors"
	"fmt"
	"plugin"
	"sync"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/filter"
	"github.com/rulego/sift/components/finder"
	"github.com/rulego/sift/components/matcher"
	"github.com/rulego/sift/components/sorter"
	"github.com/rulego/sift/utils/reflect"
)

// PluginsSymbol is the symbol used to identify plugins in a Go plugin file.
const PluginsSymbol = "Plugins"

// ErrComponentExists is returned when registering a type key twice.
var ErrComponentExists = errors.New("the component already exists")

// Registry is the default registry of finders, matchers, filters, comparators and sorters.
var Registry = new(ComponentRegistry)

// init registers default components to the default component registry.
func init() {
	var components []types.Component
	components = append(components, finder.Registry.Components()...)
	components = append(components, matcher.Registry.Components()...)
	components = append(components, filter.Registry.Components()...)
	components = append(components, sorter.Registry.Components()...)

	for _, component := range components {
		_ = Registry.Register(component)
	}
}

// ComponentRegistry maps type keys to component factories.
type ComponentRegistry struct {
	// components is a map of component prototypes by type key.
	components map[string]types.Component
	// plugins is a map of plugin components by plugin name.
	plugins map[string][]types.Component
	sync.RWMutex
}

// Register adds a component to the registry.
func (r *ComponentRegistry) Register(component types.Component) error {
	r.Lock()
	defer r.Unlock()
	if r.components == nil {
		r.components = make(map[string]types.Component)
	}
	if _, ok := r.components[component.Type()]; ok {
		return fmt.Errorf("%w. componentType=%s", ErrComponentExists, component.Type())
	}
	r.components[component.Type()] = component
	return nil
}

// RegisterPlugin adds the components of a Go plugin file.
func (r *ComponentRegistry) RegisterPlugin(name string, file string) error {
	builder := &PluginComponentRegistry{name: name, file: file}
	if err := builder.Init(); err != nil {
		return err
	}
	return r.registerPlugin(name, builder.Components())
}

func (r *ComponentRegistry) registerPlugin(name string, components []types.Component) error {
	r.Lock()
	defer r.Unlock()

	for _, component := range components {
		if _, ok := r.components[component.Type()]; ok {
			return fmt.Errorf("%w. componentType=%s", ErrComponentExists, component.Type())
		}
	}
	if r.components == nil {
		r.components = make(map[string]types.Component)
	}
	if r.plugins == nil {
		r.plugins = make(map[string][]types.Component)
	}
	for _, component := range components {
		r.components[component.Type()] = component
	}
	r.plugins[name] = components
	return nil
}

// Unregister removes a component by its type, or every component of a plugin by the plugin name.
func (r *ComponentRegistry) Unregister(componentType string) error {
	r.Lock()
	defer r.Unlock()
	var removed = false

	if components, ok := r.plugins[componentType]; ok {
		for _, component := range components {
			delete(r.components, component.Type())
		}
		delete(r.plugins, componentType)
		removed = true
	}

	if _, ok := r.components[componentType]; ok {
		delete(r.components, componentType)
		removed = true
	}

	if !removed {
		return fmt.Errorf("component not found. componentType=%s", componentType)
	}
	return nil
}

// NewComponent creates a new instance of a component by its type.
func (r *ComponentRegistry) NewComponent(componentType string) (types.Component, error) {
	r.RLock()
	defer r.RUnlock()

	if component, ok := r.components[componentType]; !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownType, componentType)
	} else {
		return component.New(), nil
	}
}

// GetComponents returns a map of all registered components.
func (r *ComponentRegistry) GetComponents() map[string]types.Component {
	r.RLock()
	defer r.RUnlock()
	var components = map[string]types.Component{}
	for k, v := range r.components {
		components[k] = v
	}
	return components
}

// GetComponentForms returns the forms of all registered components.
func (r *ComponentRegistry) GetComponentForms() types.ComponentFormList {
	r.RLock()
	defer r.RUnlock()

	var components = make(types.ComponentFormList)
	for _, component := range r.components {
		components[component.Type()] = reflect.GetComponentForm(component.New())
	}
	return components
}

// PluginComponentRegistry is an initializer for Go plugin components.
type PluginComponentRegistry struct {
	name     string
	file     string
	registry types.PluginRegistry
}

// Init loads the plugin from its file.
func (p *PluginComponentRegistry) Init() error {
	pluginRegistry, err := loadPlugin(p.file)
	if err != nil {
		return err
	}
	if err = pluginRegistry.Init(); err != nil {
		return err
	}
	p.registry = pluginRegistry
	return nil
}

// Components returns the components provided by the plugin.
func (p *PluginComponentRegistry) Components() []types.Component {
	if p.registry != nil {
		return p.registry.Components()
	}
	return nil
}

// loadPlugin opens file and looks up the exported Plugins symbol.
func loadPlugin(file string) (types.PluginRegistry, error) {
	p, err := plugin.Open(file)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(PluginsSymbol)
	if err != nil {
		return nil, err
	}
	registry, ok := sym.(types.PluginRegistry)
	if !ok {
		return nil, errors.New("invalid plugin")
	}
	return registry, nil
}
