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

package sorter

import (
	"fmt"
	"strings"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/components/finder"
	"github.com/rulego/sift/utils/cast"
	"github.com/rulego/sift/utils/js"
)

func init() {
	Registry.Add(&StringFinderComparer{}, &IntStringComparer{}, &ReverseComparer{}, &ChainComparer{}, &JsComparer{})
}

// finderComparer 持有finder子节点的比较器
type finderComparer struct {
	finder types.StringFinder
}

func (x *finderComparer) Finder() types.StringFinder {
	return x.finder
}

func (x *finderComparer) initFinder(config types.Config, node *types.PersistNode) (err error) {
	x.finder, err = base.InitChildAs[types.StringFinder](config, node, ChildFinder)
	return err
}

func (x *finderComparer) persistFinder(node *types.PersistNode) error {
	return base.NodeUtils.PersistChild(node, ChildFinder, x.finder)
}

func (x *finderComparer) keys(a, b types.PathItem) (types.Text, types.Text) {
	if x.finder == nil {
		return types.NullText, types.NullText
	}
	return x.finder.Key(a), x.finder.Key(b)
}

// compareNull orders null values first; ok is false when both are valid.
func compareNull(a, b types.Text) (result int, ok bool) {
	switch {
	case !a.Valid && !b.Valid:
		return 0, true
	case !a.Valid:
		return -1, true
	case !b.Valid:
		return 1, true
	default:
		return 0, false
	}
}

// StringFinderComparerConfiguration 节点配置
type StringFinderComparerConfiguration struct {
	// Ws 排序规则的书写系统
	Ws string
}

// StringFinderComparer orders items by the collation order of the finder's key in Ws.
// Null keys order first.
type StringFinderComparer struct {
	finderComparer
	Config   StringFinderComparerConfiguration
	collator types.Collator
}

// NewStringFinderComparer creates an unbound comparator. An empty ws takes the finder's
// writing system.
func NewStringFinderComparer(f types.StringFinder, ws string) *StringFinderComparer {
	if ws == "" {
		if pf, ok := f.(finder.PropertyFinder); ok {
			ws = pf.WritingSystem()
		}
	}
	return &StringFinderComparer{finderComparer: finderComparer{finder: f}, Config: StringFinderComparerConfiguration{Ws: ws}}
}

// Type 组件类型
func (x *StringFinderComparer) Type() string {
	return "stringFinderComparer"
}

func (x *StringFinderComparer) New() types.Component {
	return &StringFinderComparer{}
}

// Init 初始化
func (x *StringFinderComparer) Init(config types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config); err != nil {
		return err
	}
	return x.initFinder(config, node)
}

func (x *StringFinderComparer) Persist(node *types.PersistNode) error {
	if err := base.NodeUtils.EncodeConfig(node, x.Config); err != nil {
		return err
	}
	return x.persistFinder(node)
}

func (x *StringFinderComparer) Bind(ctx types.BindContext) error {
	if ctx.Collator == nil {
		return fmt.Errorf("%w: collator", types.ErrNotBound)
	}
	x.collator = ctx.Collator
	return base.NodeUtils.Bind(ctx, x.finder)
}

// WritingSystem returns the collation writing system.
func (x *StringFinderComparer) WritingSystem() string {
	return x.Config.Ws
}

func (x *StringFinderComparer) Compare(a, b types.PathItem) (int, error) {
	ka, kb := x.keys(a, b)
	if result, ok := compareNull(ka, kb); ok {
		return result, nil
	}
	if x.collator == nil {
		return strings.Compare(ka.Value, kb.Value), nil
	}
	return x.collator.Compare(ka.Value, kb.Value, x.Config.Ws), nil
}

// IntStringComparer orders items by the integer value of the finder's key. Keys that are
// not integers order before all integers, by their text; null orders first.
type IntStringComparer struct {
	finderComparer
}

// NewIntStringComparer creates a numeric comparator over finder's key.
func NewIntStringComparer(f types.StringFinder) *IntStringComparer {
	return &IntStringComparer{finderComparer{finder: f}}
}

// Type 组件类型
func (x *IntStringComparer) Type() string {
	return "intStringComparer"
}

func (x *IntStringComparer) New() types.Component {
	return &IntStringComparer{}
}

// Init 初始化
func (x *IntStringComparer) Init(config types.Config, node *types.PersistNode) error {
	return x.initFinder(config, node)
}

func (x *IntStringComparer) Persist(node *types.PersistNode) error {
	return x.persistFinder(node)
}

func (x *IntStringComparer) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.finder)
}

func (x *IntStringComparer) Compare(a, b types.PathItem) (int, error) {
	ka, kb := x.keys(a, b)
	if result, ok := compareNull(ka, kb); ok {
		return result, nil
	}
	na, errA := cast.ToInt64E(ka.Value)
	nb, errB := cast.ToInt64E(kb.Value)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(ka.Value, kb.Value), nil
	case errA != nil:
		return -1, nil
	case errB != nil:
		return 1, nil
	case na < nb:
		return -1, nil
	case na > nb:
		return 1, nil
	default:
		return 0, nil
	}
}

// ReverseComparer 反转子比较器的顺序
type ReverseComparer struct {
	Comparer types.Comparator
}

// NewReverseComparer wraps comparer.
func NewReverseComparer(comparer types.Comparator) *ReverseComparer {
	return &ReverseComparer{Comparer: comparer}
}

// Type 组件类型
func (x *ReverseComparer) Type() string {
	return "reverseComparer"
}

func (x *ReverseComparer) New() types.Component {
	return &ReverseComparer{}
}

// Init 初始化
func (x *ReverseComparer) Init(config types.Config, node *types.PersistNode) (err error) {
	x.Comparer, err = base.InitChildAs[types.Comparator](config, node, ChildComparer)
	return err
}

func (x *ReverseComparer) Persist(node *types.PersistNode) error {
	return base.NodeUtils.PersistChild(node, ChildComparer, x.Comparer)
}

func (x *ReverseComparer) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.Comparer)
}

func (x *ReverseComparer) Unwrap() types.Comparator {
	return x.Comparer
}

func (x *ReverseComparer) Compare(a, b types.PathItem) (int, error) {
	if x.Comparer == nil {
		return 0, nil
	}
	result, err := x.Comparer.Compare(a, b)
	// 只取符号，-math.MinInt 会溢出
	switch {
	case result < 0:
		return 1, err
	case result > 0:
		return -1, err
	}
	return 0, err
}

// ChainComparer 依次使用子比较器，返回第一个不相等的结果
type ChainComparer struct {
	Comparers []types.Comparator
}

// NewChainComparer creates a lexicographic comparator.
func NewChainComparer(comparers ...types.Comparator) *ChainComparer {
	return &ChainComparer{Comparers: comparers}
}

// Type 组件类型
func (x *ChainComparer) Type() string {
	return "chainComparer"
}

func (x *ChainComparer) New() types.Component {
	return &ChainComparer{}
}

// Init 初始化
func (x *ChainComparer) Init(config types.Config, node *types.PersistNode) error {
	x.Comparers = nil
	for _, child := range node.ChildrenNamed(ChildComparer) {
		component, err := base.NodeUtils.InitComponent(config, child)
		if err != nil {
			return err
		}
		c, err := base.As[types.Comparator](child, component)
		if err != nil {
			return err
		}
		x.Comparers = append(x.Comparers, c)
	}
	return nil
}

func (x *ChainComparer) Persist(node *types.PersistNode) error {
	for _, c := range x.Comparers {
		if err := base.NodeUtils.PersistChild(node, ChildComparer, c); err != nil {
			return err
		}
	}
	return nil
}

func (x *ChainComparer) Bind(ctx types.BindContext) error {
	for _, c := range x.Comparers {
		if err := c.Bind(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (x *ChainComparer) Compare(a, b types.PathItem) (int, error) {
	for _, c := range x.Comparers {
		result, err := c.Compare(a, b)
		if err != nil || result != 0 {
			return result, err
		}
	}
	return 0, nil
}

// JsComparerConfiguration 节点配置
type JsComparerConfiguration struct {
	//JsScript 配置函数体脚本内容
	//完整脚本函数：
	//function Compare(a, b) { ${JsScript} }
	//a, b 为两个记录的key，null 值为 null
	//return int
	JsScript string `required:"true"`
}

// JsComparer 使用js脚本比较两个key
type JsComparer struct {
	finderComparer
	Config   JsComparerConfiguration
	jsEngine *js.GojaJsEngine
}

// NewJsComparer creates a script comparator over finder's key.
func NewJsComparer(config types.Config, f types.StringFinder, jsScript string) (*JsComparer, error) {
	x := &JsComparer{finderComparer: finderComparer{finder: f}, Config: JsComparerConfiguration{JsScript: jsScript}}
	return x, x.compile(config)
}

// Type 组件类型
func (x *JsComparer) Type() string {
	return "jsComparer"
}

func (x *JsComparer) New() types.Component {
	return &JsComparer{}
}

// Init 初始化
func (x *JsComparer) Init(config types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "jsScript"); err != nil {
		return err
	}
	if err := x.initFinder(config, node); err != nil {
		return err
	}
	if err := x.compile(config); err != nil {
		return types.NewRestoreError(node, fmt.Errorf("%w: %v", types.ErrMalformedNode, err))
	}
	return nil
}

func (x *JsComparer) compile(config types.Config) (err error) {
	jsScript := fmt.Sprintf("function Compare(a, b) { %s }", x.Config.JsScript)
	x.jsEngine, err = js.NewGojaJsEngine(config, jsScript, nil)
	return err
}

func (x *JsComparer) Persist(node *types.PersistNode) error {
	if err := base.NodeUtils.EncodeConfig(node, x.Config); err != nil {
		return err
	}
	return x.persistFinder(node)
}

func (x *JsComparer) Bind(ctx types.BindContext) error {
	return base.NodeUtils.Bind(ctx, x.finder)
}

func jsValue(t types.Text) interface{} {
	if !t.Valid {
		return nil
	}
	return t.Value
}

func (x *JsComparer) Compare(a, b types.PathItem) (int, error) {
	if x.jsEngine == nil {
		return 0, fmt.Errorf("jsComparer: %w", types.ErrNotBound)
	}
	ka, kb := x.keys(a, b)
	out, err := x.jsEngine.Execute("Compare", jsValue(ka), jsValue(kb))
	if err != nil {
		return 0, fmt.Errorf("jsComparer: %w", err)
	}
	result, err := cast.ToIntE(out)
	if err != nil {
		return 0, fmt.Errorf("jsComparer: %w", err)
	}
	return result, nil
}
