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
	"github.com/rulego/sift/api/types"
)

// CustomComponentRegistry combines default and custom component registries
type CustomComponentRegistry struct {
	defaultComponents types.ComponentRegistry
	customComponents  types.ComponentRegistry
}

// NewCustomComponentRegistry creates a composite registry that checks
// custom components first, then falls back to default components.
func NewCustomComponentRegistry(defaultComponents, customComponents types.ComponentRegistry) types.ComponentRegistry {
	return &CustomComponentRegistry{
		defaultComponents: defaultComponents,
		customComponents:  customComponents,
	}
}

// Register adds a custom component to the registry
func (r *CustomComponentRegistry) Register(component types.Component) error {
	return r.customComponents.Register(component)
}

// RegisterPlugin loads a plugin containing components into the custom registry
func (r *CustomComponentRegistry) RegisterPlugin(name string, file string) error {
	return r.customComponents.RegisterPlugin(name, file)
}

// Unregister removes a component from the custom registry
func (r *CustomComponentRegistry) Unregister(componentType string) error {
	return r.customComponents.Unregister(componentType)
}

// NewComponent creates a component, custom components first
func (r *CustomComponentRegistry) NewComponent(componentType string) (types.Component, error) {
	if component, err := r.customComponents.NewComponent(componentType); err == nil {
		return component, nil
	}
	return r.defaultComponents.NewComponent(componentType)
}

// GetComponents merges both registries, custom components taking precedence
func (r *CustomComponentRegistry) GetComponents() map[string]types.Component {
	components := r.defaultComponents.GetComponents()
	for k, v := range r.customComponents.GetComponents() {
		components[k] = v
	}
	return components
}

// GetComponentForms merges the forms of both registries
func (r *CustomComponentRegistry) GetComponentForms() types.ComponentFormList {
	forms := r.defaultComponents.GetComponentForms()
	for k, v := range r.customComponents.GetComponentForms() {
		forms[k] = v
	}
	return forms
}
