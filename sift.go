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

// Package sift filters and sorts domain records with persistable filter/sorter graphs.
//
// # Usage
//
// A view is restored from a persisted definition: one optional filter and one optional sorter,
// each a tree of components resolved by type through the component registry. Definition format:
//
//	<view id="nouns" name="Nouns">
//	  <filter type="filterBarFilter">
//	    <finder type="stringProp" prop="LexEntry.HomographNumber"/>
//	    <matcher type="rangeIntMatch" min="1" max="10"/>
//	  </filter>
//	  <sorter type="genericSorter">
//	    <comparer type="stringFinderComparer" ws="fr">
//	      <finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
//	    </comparer>
//	  </sorter>
//	</view>
//
// Create View Instance
//
//	view, err := sift.New("nouns", []byte(def), sift.WithBindContext(types.BindContext{
//		DataAccess: data,
//		Collator:   collation.New(),
//	}))
//
// Apply View
//
//	err := view.Apply(data.Ids(), nil)
//	items := view.Items()
//
// Load All Views
//
//	err := sift.Load("./views")
//
// Get View Instance
//
//	view, ok := sift.Get("nouns")
package sift

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/engine"
)

// Registry 默认组件注册器
var Registry = engine.Registry

// DefaultPool 默认视图池
var DefaultPool = engine.DefaultPool

// View 视图
type View = engine.View

// ViewOption 视图选项
type ViewOption = engine.ViewOption

// NewConfig 创建默认配置
func NewConfig(opts ...types.Option) types.Config {
	return engine.NewConfig(opts...)
}

// WithConfig 指定配置
func WithConfig(config types.Config) ViewOption {
	return engine.WithConfig(config)
}

// WithBindContext 创建后绑定运行时上下文
func WithBindContext(ctx types.BindContext) ViewOption {
	return engine.WithBindContext(ctx)
}

// NewView 创建视图，不放入视图池
func NewView(id string, def []byte, opts ...ViewOption) (*View, error) {
	return engine.NewView(id, def, opts...)
}

// Load 加载指定文件夹所有视图定义到默认视图池
func Load(folderPath string, opts ...ViewOption) error {
	return DefaultPool.Load(folderPath, opts...)
}

// New 创建视图并放入默认视图池，如果已经存在返回已存在的视图
func New(id string, def []byte, opts ...ViewOption) (*View, error) {
	return DefaultPool.New(id, def, opts...)
}

// Get 获取指定ID视图
func Get(id string) (*View, bool) {
	return DefaultPool.Get(id)
}

// Del 删除指定ID视图
func Del(id string) {
	DefaultPool.Del(id)
}

// Stop 释放所有视图
func Stop() {
	DefaultPool.Stop()
}
