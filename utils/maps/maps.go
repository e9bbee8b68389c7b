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

package maps

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// Map2Struct Decode takes an input structure and uses reflection to translate it to
// the output structure. output must be a pointer to a map or struct.
func Map2Struct(input interface{}, output interface{}) error {
	return mapstructure.Decode(input, output)
}

// WeakMap2Struct is Map2Struct with weakly typed input: persisted attributes are strings,
// so "true" decodes into a bool field, "12" into an int field and "5s" into a time.Duration.
func WeakMap2Struct(input interface{}, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Struct2Map translates a flat struct into a map keyed by field name.
func Struct2Map(input interface{}) (map[string]interface{}, error) {
	result := make(map[string]interface{})
	if err := mapstructure.Decode(input, &result); err != nil {
		return nil, err
	}
	for k, v := range result {
		if d, ok := v.(time.Duration); ok {
			result[k] = d.String()
		}
	}
	return result, nil
}
