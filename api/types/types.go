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

package types

// Configuration 组件配置类型
// Configuration is the flat attribute set of one persisted component.
type Configuration map[string]interface{}

// PluginRegistry go plugin 方式提供组件接口
// 示例：
// package main
// var Plugins MyPlugins// plugin entry point
// type MyPlugins struct{}
//
//	func (p *MyPlugins) Init() error {
//		return nil
//	}
//
//	func (p *MyPlugins) Components() []types.Component {
//		return []types.Component{&LengthMatcher{}}
//	}
//
// go build -buildmode=plugin -o plugin.so plugin.go
// sift.Registry.RegisterPlugin("test", "./plugin.so")
type PluginRegistry interface {
	//Init 初始化
	Init() error
	//Components 组件列表
	Components() []Component
}

// ComponentRegistry 组件注册器
// ComponentRegistry maps a stable type key to a component factory.
type ComponentRegistry interface {
	//Register 注册组件，如果`component.Type()`已经存在则返回一个`已存在`错误
	Register(component Component) error
	//RegisterPlugin 通过plugin机制加载外部.so文件注册组件
	RegisterPlugin(name string, file string) error
	//Unregister 删除组件或者通过插件名称删除一批组件
	Unregister(componentType string) error
	//NewComponent 通过类型创建一个新的组件实例，类型未注册返回 ErrUnknownType
	NewComponent(componentType string) (Component, error)
	//GetComponents 获取所有注册组件列表
	GetComponents() map[string]Component
	//GetComponentForms 获取所有注册组件配置表单
	GetComponentForms() ComponentFormList
}

// Component 可持久化组件接口
// Component is a persistable part of a filter/sorter graph: a matcher, a string finder,
// a record filter, a comparator or a record sorter.
//
// Restoring a component is two-phase: Init restores the configuration from a persisted node,
// then Bind supplies the live collaborators that cannot be persisted.
type Component interface {
	//New 创建一个组件新实例
	New() Component
	//Type 组件类型，类型不能重复，持久化时作为类型标识
	Type() string
	//Init 从持久化节点恢复配置
	Init(config Config, node *PersistNode) error
	//Persist 把配置写入持久化节点，包括子组件
	Persist(node *PersistNode) error
	//Bind 注入运行时上下文，恢复之后、第一次使用之前调用
	Bind(ctx BindContext) error
}

// StringFinder 从记录中提取字符串
// StringFinder extracts strings, or one canonical sort key, from a record.
// Missing data yields empty strings, never an error.
type StringFinder interface {
	Component
	// Strings returns every string of the item; multi-valued properties yield several.
	Strings(item PathItem) []string
	// Key returns the single string used for matching and sorting.
	Key(item PathItem) Text
	// SameFinder reports configuration equality.
	SameFinder(other StringFinder) bool
	// Preload may bulk-fetch data before many calls for records under root.
	Preload(root RecordId)
	// CollectItems appends the PathItems root expands to.
	CollectItems(root RecordId, collector []PathItem) []PathItem
}

// Matcher 字符串谓词
// Matcher is a predicate over a single string value. Configuration problems are reported
// through IsValid and ErrorMessage instead of errors.
type Matcher interface {
	Component
	Matches(value Text) bool
	SameMatcher(other Matcher) bool
	IsValid() bool
	ErrorMessage() string
	CanMakeValid() bool
	// MakeValid returns a repaired copy; the receiver is unchanged.
	MakeValid() Matcher
}

// Highlighter is implemented by matchers able to report every matching range of a value.
type Highlighter interface {
	MatchRanges(value string) []Range
}

// RecordFilter 记录过滤器
type RecordFilter interface {
	Component
	Accept(item PathItem) bool
	SameFilter(other RecordFilter) bool
	// IsUserVisible reports whether the filter should drive a "filtered" indicator.
	IsUserVisible() bool
	Preload(root RecordId)
}

// Comparator 记录比较器
// Comparator orders two items. An error aborts the sort in progress.
type Comparator interface {
	Component
	Compare(a, b PathItem) (int, error)
}

// RecordSorter 记录排序器
type RecordSorter interface {
	Component
	Comparer() Comparator
	// Sort sorts items in place, stably. progress may be nil.
	Sort(items []PathItem, progress ProgressSink) error
	// MergeInto merges additions, ordered by the same comparator, into the ordered sorted list.
	MergeInto(sorted []PathItem, additions []PathItem) ([]PathItem, error)
	CompatibleSorter(other RecordSorter) bool
	CollectItems(root RecordId, collector []PathItem) []PathItem
	Preload(root RecordId)
}

// Parser 持久化格式编解码接口
type Parser interface {
	// Decode parses persisted bytes into a node tree.
	Decode(data []byte) (*PersistNode, error)
	// Encode writes a node tree.
	Encode(node *PersistNode) ([]byte, error)
}

// Pool 协程池
type Pool interface {
	//Submit 往协程池提交一个任务
	//如果协程池满返回错误
	Submit(task func()) error
	//Release 释放
	Release()
}
