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

// Package reflect builds component configuration forms by reflection.
//
// By convention a component keeps its persisted configuration in an exported field
// named Config; every exported field of that struct becomes a form field whose name is
// the lower-camel field name, which is also the persisted attribute key.
package reflect

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/json"
	"github.com/rulego/sift/utils/str"
)

// componentsPkgPrefix 组件包路径前缀，剩余部分作为分类
const componentsPkgPrefix = "github.com/rulego/sift/components/"

// GetComponentForm 获取组件的表单结构
func GetComponentForm(component types.Component) types.ComponentForm {
	var componentForm types.ComponentForm

	t, configField, configValue := GetComponentConfig(component)
	componentForm.Label = t.Name()
	componentForm.Type = component.Type()
	componentForm.Category = strings.TrimPrefix(t.PkgPath(), componentsPkgPrefix)
	componentForm.Fields = GetFields(configField, configValue)
	//如果实现ComponentDefGetter接口，使用接口定义的代替
	if componentDefGetter, ok := component.(types.ComponentDefGetter); ok {
		componentForm = coverComponentForm(componentDefGetter, componentForm)
	}
	if categoryGetter, ok := component.(types.CategoryGetter); ok {
		componentForm.Category = categoryGetter.Category()
	}
	if descGetter, ok := component.(types.DescGetter); ok {
		componentForm.Desc = descGetter.Desc()
	}
	return componentForm
}

// 使用ComponentDefGetter接口定义的覆盖
func coverComponentForm(from types.ComponentDefGetter, toComponentForm types.ComponentForm) types.ComponentForm {
	def := from.Def()
	if def.Type != "" {
		toComponentForm.Type = def.Type
	}
	if def.Category != "" {
		toComponentForm.Category = def.Category
	}
	if len(def.Fields) != 0 {
		toComponentForm.Fields = def.Fields
	}
	if def.Label != "" {
		toComponentForm.Label = def.Label
	}
	if def.Desc != "" {
		toComponentForm.Desc = def.Desc
	}
	if def.Version != "" {
		toComponentForm.Version = def.Version
	}
	if def.Icon != "" {
		toComponentForm.Icon = def.Icon
	}
	toComponentForm.Disabled = def.Disabled
	return toComponentForm
}

// GetComponentConfig 获取组件类型、Config字段和它的当前值
func GetComponentConfig(component types.Component) (reflect.Type, reflect.StructField, reflect.Value) {
	t := reflect.TypeOf(component)
	v := reflect.ValueOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		v = v.Elem()
	}
	if t.Kind() != reflect.Struct {
		return t, reflect.StructField{}, reflect.Value{}
	}
	configField, ok := t.FieldByName("Config")
	if !ok || configField.Type.Kind() != reflect.Struct {
		return t, reflect.StructField{}, reflect.Value{}
	}
	return t, configField, v.FieldByName("Config")
}

// GetFields 获取组件config字段
func GetFields(configField reflect.StructField, configValue reflect.Value) []types.ComponentFormField {
	var fields []types.ComponentFormField
	if configField.Type == nil {
		return fields
	}
	for i := 0; i < configField.Type.NumField(); i++ {
		field := configField.Type.Field(i)
		// 跳过私有字段
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		var defaultValue interface{}
		if configValue.IsValid() && configValue.Field(i).CanInterface() {
			defaultValue = configValue.Field(i).Interface()
		}
		required, _ := strconv.ParseBool(field.Tag.Get("required"))
		typeName := field.Type.Name()
		var subFields []types.ComponentFormField
		switch field.Type.Kind() {
		case reflect.Map:
			typeName = "map"
		case reflect.Slice, reflect.Array:
			typeName = "array"
		case reflect.Struct:
			typeName = "struct"
			var subValue reflect.Value
			if configValue.IsValid() {
				subValue = configValue.Field(i)
			}
			subFields = GetFields(field, subValue)
		}
		var rules []map[string]interface{}
		if required {
			rules = append(rules, map[string]interface{}{
				"required": true,
				"message":  "This field is required",
			})
		}
		// rules标签，例如: rules:"[{\"min\":1,\"message\":\"最小值为1\"}]"
		if rulesTag := field.Tag.Get("rules"); rulesTag != "" {
			var tagRules []map[string]interface{}
			if err := json.Unmarshal([]byte(rulesTag), &tagRules); err == nil {
				rules = append(rules, tagRules...)
			}
		}
		fieldName := str.ToLowerFirst(field.Name)
		if name, _, _ := strings.Cut(jsonTag, ","); name != "" {
			fieldName = name
		}
		// component标签，例如: component:"{\"type\":\"select\",\"options\":[...]}"
		var component map[string]interface{}
		if componentTag := field.Tag.Get("component"); componentTag != "" {
			_ = json.Unmarshal([]byte(componentTag), &component)
		}
		fields = append(fields, types.ComponentFormField{
			Name:         fieldName,
			Type:         typeName,
			DefaultValue: defaultValue,
			Label:        field.Tag.Get("label"),
			Desc:         field.Tag.Get("desc"),
			Rules:        rules,
			Fields:       subFields,
			Component:    component,
			Required:     required,
		})
	}
	return fields
}
