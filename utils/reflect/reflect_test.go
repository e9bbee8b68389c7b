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

package reflect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulego/sift/api/types"
)

type lengthConfiguration struct {
	MaxLength int    `label:"最大长度" desc:"允许的最大长度" required:"true"`
	Unit      string `json:"unitName" component:"{\"type\":\"select\"}"`
	Inner     struct {
		Strict bool
	}
	hidden bool
}

type lengthMatcher struct {
	Config lengthConfiguration
}

func (x *lengthMatcher) New() types.Component {
	return &lengthMatcher{Config: lengthConfiguration{MaxLength: 10}}
}

func (x *lengthMatcher) Type() string {
	return "lengthMatch"
}

func (x *lengthMatcher) Init(types.Config, *types.PersistNode) error {
	return nil
}

func (x *lengthMatcher) Persist(*types.PersistNode) error {
	return nil
}

func (x *lengthMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *lengthMatcher) Desc() string {
	return "matches short strings"
}

type noConfig struct{}

func (x *noConfig) New() types.Component { return &noConfig{} }
func (x *noConfig) Type() string { return "noConfig" }
func (x *noConfig) Init(types.Config, *types.PersistNode) error { return nil }
func (x *noConfig) Persist(*types.PersistNode) error { return nil }
func (x *noConfig) Bind(types.BindContext) error { return nil }

func TestGetComponentConfig(t *testing.T) {
	ty, configField, configValue := GetComponentConfig(&lengthMatcher{})
	assert.Equal(t, "lengthMatcher", ty.Name())
	assert.Equal(t, "Config", configField.Name)
	assert.True(t, configValue.IsValid())

	_, configField, _ = GetComponentConfig(&noConfig{})
	assert.Nil(t, configField.Type)
}

func TestGetComponentForm(t *testing.T) {
	form := GetComponentForm((&lengthMatcher{}).New())
	assert.Equal(t, "lengthMatch", form.Type)
	assert.Equal(t, "lengthMatcher", form.Label)
	assert.Equal(t, "matches short strings", form.Desc)
	assert.Equal(t, 3, len(form.Fields))

	field, ok := form.Fields.GetField("maxLength")
	assert.True(t, ok)
	assert.Equal(t, "int", field.Type)
	assert.Equal(t, 10, field.DefaultValue)
	assert.Equal(t, "最大长度", field.Label)
	assert.True(t, field.Required)
	assert.Equal(t, 1, len(field.Rules))

	field, ok = form.Fields.GetField("unitName")
	assert.True(t, ok)
	assert.Equal(t, "select", field.Component["type"])

	field, ok = form.Fields.GetField("inner")
	assert.True(t, ok)
	assert.Equal(t, "struct", field.Type)
	assert.Equal(t, "strict", field.Fields[0].Name)

	form = GetComponentForm(&noConfig{})
	assert.Equal(t, 0, len(form.Fields))
}
