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

// Package engine restores, runs and pools views: working lists of records narrowed
// by a filter and ordered by a sorter.
//
// A view definition is persisted as a node tree:
//
//	<view id="v1" name="Nouns">
//	  <filter type="finderFilter">...</filter>
//	  <sorter type="genericSorter">...</sorter>
//	</view>
package engine

import (
	"github.com/rulego/sift/api/types"
)

// 视图节点属性
const (
	AttrId   = "id"
	AttrName = "name"
)

// NewConfig creates a new Config and applies the options.
// Parser defaults to XmlParser and ComponentsRegistry to Registry.
func NewConfig(opts ...types.Option) types.Config {
	c := types.NewConfig(opts...)
	if c.Parser == nil {
		c.Parser = &XmlParser{}
	}
	if c.ComponentsRegistry == nil {
		c.ComponentsRegistry = Registry
	}
	return c
}
