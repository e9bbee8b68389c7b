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

package matcher

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&ExactMatcher{}, &BeginMatcher{}, &EndMatcher{}, &AnywhereMatcher{}, &RegExpMatcher{})
}

// 各模式匹配器对出现位置的要求
var (
	whole    = func(r types.Range, n int) bool { return r.Start == 0 && r.End == n }
	atBegin  = func(r types.Range, n int) bool { return r.Start == 0 }
	atEnd    = func(r types.Range, n int) bool { return r.End == n }
	anywhere = func(r types.Range, n int) bool { return true }
)

// patternMatcher is the state shared by the pattern search matchers.
type patternMatcher struct {
	// Config 节点配置
	Config PatternConfiguration
	regExp bool
	p      *pattern
}

func newPatternMatcher(config PatternConfiguration, regExp bool) patternMatcher {
	return patternMatcher{Config: config, regExp: regExp, p: newPattern(config, regExp)}
}

func (x *patternMatcher) init(node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "pattern"); err != nil {
		return err
	}
	x.p = newPattern(x.Config, x.regExp)
	return nil
}

func (x *patternMatcher) compiled() *pattern {
	if x.p == nil {
		x.p = newPattern(x.Config, x.regExp)
	}
	return x.p
}

func (x *patternMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *patternMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *patternMatcher) IsValid() bool {
	return x.compiled().valid()
}

func (x *patternMatcher) ErrorMessage() string {
	return x.compiled().err.String()
}

// ErrorKind 模式错误类型
func (x *patternMatcher) ErrorKind() PatternError {
	return x.compiled().err
}

func (x *patternMatcher) CanMakeValid() bool {
	return x.compiled().repairable()
}

func (x *patternMatcher) repaired() patternMatcher {
	p := x.compiled()
	if p.repairable() {
		p = p.repaired()
	}
	return patternMatcher{Config: p.config, regExp: x.regExp, p: p}
}

func (x *patternMatcher) matches(value types.Text, accept func(types.Range, int) bool) bool {
	if !value.Valid {
		return false
	}
	return len(x.compiled().scan(value.Value, false, accept)) > 0
}

func (x *patternMatcher) ranges(value string, accept func(types.Range, int) bool) []types.Range {
	return x.compiled().scan(value, true, accept)
}

// ExactMatcher 整个值匹配模式
type ExactMatcher struct {
	patternMatcher
}

// NewExactMatcher creates a literal whole-value matcher.
func NewExactMatcher(config PatternConfiguration) *ExactMatcher {
	return &ExactMatcher{newPatternMatcher(config, false)}
}

// Type 组件类型
func (x *ExactMatcher) Type() string {
	return "exactMatch"
}

func (x *ExactMatcher) New() types.Component {
	return &ExactMatcher{}
}

// Init 初始化
func (x *ExactMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return x.init(node)
}

func (x *ExactMatcher) Matches(value types.Text) bool {
	return x.matches(value, whole)
}

func (x *ExactMatcher) MatchRanges(value string) []types.Range {
	return x.ranges(value, whole)
}

func (x *ExactMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *ExactMatcher) MakeValid() types.Matcher {
	return &ExactMatcher{x.repaired()}
}

// BeginMatcher 值以模式开头
type BeginMatcher struct {
	patternMatcher
}

// NewBeginMatcher creates a literal prefix matcher.
func NewBeginMatcher(config PatternConfiguration) *BeginMatcher {
	return &BeginMatcher{newPatternMatcher(config, false)}
}

// Type 组件类型
func (x *BeginMatcher) Type() string {
	return "beginMatch"
}

func (x *BeginMatcher) New() types.Component {
	return &BeginMatcher{}
}

// Init 初始化
func (x *BeginMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return x.init(node)
}

func (x *BeginMatcher) Matches(value types.Text) bool {
	return x.matches(value, atBegin)
}

func (x *BeginMatcher) MatchRanges(value string) []types.Range {
	return x.ranges(value, atBegin)
}

func (x *BeginMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *BeginMatcher) MakeValid() types.Matcher {
	return &BeginMatcher{x.repaired()}
}

// EndMatcher 值以模式结尾
// Occurrences are searched left to right without overlap, each search resuming at the
// end of the previous occurrence, so an occurrence overlapping an earlier one is not
// seen: endMatch "aa" does not match "aaa".
type EndMatcher struct {
	patternMatcher
}

// NewEndMatcher creates a literal suffix matcher.
func NewEndMatcher(config PatternConfiguration) *EndMatcher {
	return &EndMatcher{newPatternMatcher(config, false)}
}

// Type 组件类型
func (x *EndMatcher) Type() string {
	return "endMatch"
}

func (x *EndMatcher) New() types.Component {
	return &EndMatcher{}
}

// Init 初始化
func (x *EndMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return x.init(node)
}

func (x *EndMatcher) Matches(value types.Text) bool {
	return x.matches(value, atEnd)
}

func (x *EndMatcher) MatchRanges(value string) []types.Range {
	return x.ranges(value, atEnd)
}

func (x *EndMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *EndMatcher) MakeValid() types.Matcher {
	return &EndMatcher{x.repaired()}
}

// AnywhereMatcher 值包含模式
type AnywhereMatcher struct {
	patternMatcher
}

// NewAnywhereMatcher creates a literal substring matcher.
func NewAnywhereMatcher(config PatternConfiguration) *AnywhereMatcher {
	return &AnywhereMatcher{newPatternMatcher(config, false)}
}

// Type 组件类型
func (x *AnywhereMatcher) Type() string {
	return "anywhereMatch"
}

func (x *AnywhereMatcher) New() types.Component {
	return &AnywhereMatcher{}
}

// Init 初始化
func (x *AnywhereMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return x.init(node)
}

func (x *AnywhereMatcher) Matches(value types.Text) bool {
	return x.matches(value, anywhere)
}

func (x *AnywhereMatcher) MatchRanges(value string) []types.Range {
	return x.ranges(value, anywhere)
}

func (x *AnywhereMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *AnywhereMatcher) MakeValid() types.Matcher {
	return &AnywhereMatcher{x.repaired()}
}

// RegExpMatcher 值包含正则表达式的匹配
type RegExpMatcher struct {
	patternMatcher
}

// NewRegExpMatcher creates a regular expression matcher.
func NewRegExpMatcher(config PatternConfiguration) *RegExpMatcher {
	return &RegExpMatcher{newPatternMatcher(config, true)}
}

// Type 组件类型
func (x *RegExpMatcher) Type() string {
	return "regExpMatch"
}

func (x *RegExpMatcher) New() types.Component {
	return &RegExpMatcher{patternMatcher{regExp: true}}
}

// Init 初始化
func (x *RegExpMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return x.init(node)
}

func (x *RegExpMatcher) Matches(value types.Text) bool {
	return x.matches(value, anywhere)
}

func (x *RegExpMatcher) MatchRanges(value string) []types.Range {
	return x.ranges(value, anywhere)
}

func (x *RegExpMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *RegExpMatcher) MakeValid() types.Matcher {
	return &RegExpMatcher{x.repaired()}
}
