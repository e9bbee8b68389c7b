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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/test"
)

func literal(pattern string) PatternConfiguration {
	return PatternConfiguration{Pattern: pattern}
}

func text(s string) types.Text {
	return types.NewText(s)
}

func TestPatternMatcherNew(t *testing.T) {
	defaultConfig := types.Configuration{"pattern": "", "matchCase": false, "matchDiacritics": false, "ws": ""}
	test.ComponentNew(t, "exactMatch", &ExactMatcher{}, defaultConfig, Registry)
	test.ComponentNew(t, "beginMatch", &BeginMatcher{}, defaultConfig, Registry)
	test.ComponentNew(t, "endMatch", &EndMatcher{}, defaultConfig, Registry)
	test.ComponentNew(t, "anywhereMatch", &AnywhereMatcher{}, defaultConfig, Registry)
	test.ComponentNew(t, "regExpMatch", &RegExpMatcher{}, defaultConfig, Registry)
}

func TestPatternMatcherInit(t *testing.T) {
	config := test.NewConfig(Registry)
	m := test.ComponentInit(t, config, test.Node(types.NodeMatcher, "beginMatch", map[string]string{"pattern": "Cat", "matchCase": "true"}),
		types.Configuration{"pattern": "Cat", "matchCase": true, "matchDiacritics": false})
	assert.True(t, m.(types.Matcher).Matches(text("Catalog")))
	assert.False(t, m.(types.Matcher).Matches(text("catalog")))

	_, err := test.CreateAndInit(config, test.Node(types.NodeMatcher, "exactMatch", nil))
	assert.True(t, errors.Is(err, types.ErrMissingAttribute))

	_, err = test.CreateAndInit(config, test.Node(types.NodeMatcher, "exactMatch", map[string]string{"pattern": "a", "matchCase": "maybe"}))
	assert.True(t, errors.Is(err, types.ErrMalformedNode))
}

func TestPatternMatchers(t *testing.T) {
	assert.True(t, NewExactMatcher(literal("cat")).Matches(text("cat")))
	assert.False(t, NewExactMatcher(literal("cat")).Matches(text("cats")))
	assert.True(t, NewBeginMatcher(literal("cat")).Matches(text("catalog")))
	assert.False(t, NewBeginMatcher(literal("cat")).Matches(text("bobcat")))
	assert.True(t, NewEndMatcher(literal("cat")).Matches(text("bobcat")))
	assert.False(t, NewEndMatcher(literal("cat")).Matches(text("catalog")))
	assert.True(t, NewAnywhereMatcher(literal("cat")).Matches(text("bobcatfish")))
	assert.False(t, NewAnywhereMatcher(literal("cat")).Matches(text("dog")))

	// 后面的出现也要检查
	assert.True(t, NewBeginMatcher(literal("ab")).Matches(text("abxab")))
	assert.True(t, NewEndMatcher(literal("ab")).Matches(text("abxab")))
	// 出现位置不重叠
	assert.False(t, NewEndMatcher(literal("aa")).Matches(text("aaa")))

	// 模式中的正则元字符按普通字符处理
	assert.True(t, NewAnywhereMatcher(literal("a.c")).Matches(text("xa.cx")))
	assert.False(t, NewAnywhereMatcher(literal("a.c")).Matches(text("abc")))

	assert.False(t, NewAnywhereMatcher(literal("cat")).Matches(types.NullText))
	assert.False(t, NewExactMatcher(literal("")).Matches(types.NullText))
}

func TestPatternEmpty(t *testing.T) {
	m := NewAnywhereMatcher(literal(""))
	assert.True(t, m.IsValid())
	assert.True(t, m.Matches(text("abc")))
	assert.True(t, m.Matches(text("")))
	assert.True(t, NewExactMatcher(literal("")).Matches(text("")))
	assert.False(t, NewExactMatcher(literal("")).Matches(text("abc")))
	assert.Equal(t, []types.Range{{Start: 0, End: 0}}, m.MatchRanges("abc"))
}

func TestPatternCaseAndDiacritics(t *testing.T) {
	assert.True(t, NewBeginMatcher(literal("CAT")).Matches(text("Catalog")))
	assert.False(t, NewBeginMatcher(PatternConfiguration{Pattern: "CAT", MatchCase: true}).Matches(text("Catalog")))

	assert.True(t, NewExactMatcher(literal("elan")).Matches(text("Élan")))
	assert.True(t, NewExactMatcher(literal("élan")).Matches(text("Elan")))
	assert.False(t, NewExactMatcher(PatternConfiguration{Pattern: "elan", MatchDiacritics: true}).Matches(text("Élan")))
	assert.True(t, NewExactMatcher(PatternConfiguration{Pattern: "élan", MatchDiacritics: true}).Matches(text("Élan")))
	assert.False(t, NewExactMatcher(PatternConfiguration{Pattern: "elan", MatchCase: true}).Matches(text("Élan")))

	// 分解形式的原文
	decomposed := "E\u0301lan"
	m := NewAnywhereMatcher(literal("elan"))
	assert.True(t, m.Matches(text(decomposed)))
	assert.Equal(t, []types.Range{{Start: 0, End: 5}}, m.MatchRanges(decomposed))
	assert.Equal(t, []types.Range{{Start: 2, End: 6}}, m.MatchRanges("a Élan"))
}

func TestPatternDecomposedSource(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	for _, value := range []string{composed, decomposed} {
		assert.True(t, NewExactMatcher(literal("cafe")).Matches(text(value)), value)
		assert.True(t, NewEndMatcher(literal("cafe")).Matches(text(value)), value)
		assert.True(t, NewEndMatcher(literal("fe")).Matches(text(value)), value)
		assert.True(t, NewBeginMatcher(literal("cafe")).Matches(text(value)), value)
	}
	assert.Equal(t, []types.Range{{Start: 0, End: 4}}, NewExactMatcher(literal("cafe")).MatchRanges(composed))
	assert.Equal(t, []types.Range{{Start: 0, End: 5}}, NewExactMatcher(literal("cafe")).MatchRanges(decomposed))
	assert.Equal(t, []types.Range{{Start: 2, End: 5}}, NewEndMatcher(literal("fe")).MatchRanges(decomposed))
	// 去掉的附加符号属于前一个字符
	assert.Equal(t, []types.Range{{Start: 0, End: 5}}, NewAnywhereMatcher(literal("cafe")).MatchRanges("cafe\u0301s"))
	assert.Equal(t, []types.Range{{Start: 5, End: 6}}, NewAnywhereMatcher(literal("s")).MatchRanges("cafe\u0301s"))

	// 区分附加符号时两种形式都不匹配
	strict := PatternConfiguration{Pattern: "cafe", MatchDiacritics: true}
	assert.False(t, NewExactMatcher(strict).Matches(text(decomposed)))
	assert.False(t, NewExactMatcher(strict).Matches(text(composed)))
}

func TestPatternMatchRanges(t *testing.T) {
	m := NewAnywhereMatcher(literal("a"))
	assert.Equal(t, []types.Range{{Start: 1, End: 2}, {Start: 3, End: 4}, {Start: 5, End: 6}}, m.MatchRanges("banana"))
	assert.Nil(t, m.MatchRanges("xyz"))

	assert.Equal(t, []types.Range{{Start: 0, End: 2}}, NewBeginMatcher(literal("ab")).MatchRanges("abxab"))
	assert.Equal(t, []types.Range{{Start: 3, End: 5}}, NewEndMatcher(literal("ab")).MatchRanges("abxab"))
	assert.Equal(t, []types.Range{{Start: 0, End: 3}}, NewExactMatcher(literal("CAT")).MatchRanges("cat"))

	r := NewRegExpMatcher(literal("o+"))
	assert.Equal(t, []types.Range{{Start: 1, End: 3}, {Start: 5, End: 6}}, r.MatchRanges("foo bo"))

	// 零宽匹配不会死循环
	zero := NewRegExpMatcher(literal("x*"))
	assert.Equal(t, []types.Range{{Start: 0, End: 0}}, zero.MatchRanges("abc"))
	assert.True(t, zero.Matches(text("abc")))
}

func TestRegExpMatcher(t *testing.T) {
	m := NewRegExpMatcher(literal("^c.t$"))
	assert.True(t, m.IsValid())
	assert.True(t, m.Matches(text("cat")))
	assert.True(t, m.Matches(text("Cot")))
	assert.False(t, m.Matches(text("cart")))
	assert.False(t, NewRegExpMatcher(PatternConfiguration{Pattern: "^c.t$", MatchCase: true}).Matches(text("Cat")))
	assert.True(t, NewRegExpMatcher(literal("^el")).Matches(text("Élan")))
	assert.True(t, NewRegExpMatcher(literal(`\d{2}`)).Matches(text("a12")))
}

func TestRegExpErrors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    PatternError
	}{
		{"(ab", PatternUnmatchedParen},
		{"ab)", PatternUnmatchedParen},
		{"[ab", PatternUnmatchedBracket},
		{"a{3,1}", PatternBadInterval},
		{`(a)\2`, PatternInvalidBackReference},
		{`ab\`, PatternInvalidEscape},
	}
	for _, tt := range tests {
		m := NewRegExpMatcher(literal(tt.pattern))
		assert.False(t, m.IsValid(), tt.pattern)
		assert.Equal(t, tt.kind, m.ErrorKind(), tt.pattern)
		assert.Equal(t, tt.kind.String(), m.ErrorMessage(), tt.pattern)
		assert.False(t, m.CanMakeValid(), tt.pattern)
		assert.False(t, m.Matches(text(tt.pattern)), tt.pattern)
		assert.Nil(t, m.MatchRanges(tt.pattern))
	}
	// 普通文本模式没有语法错误
	assert.True(t, NewAnywhereMatcher(literal("(ab")).IsValid())
	assert.True(t, NewAnywhereMatcher(literal("(ab")).Matches(text("x(abc")))
	assert.Equal(t, "", NewAnywhereMatcher(literal("ab")).ErrorMessage())
}

func TestPatternTooLong(t *testing.T) {
	long := strings.Repeat("a", MaxPatternLength+1)
	m := NewAnywhereMatcher(literal(long))
	assert.False(t, m.IsValid())
	assert.Equal(t, PatternTooLong, m.ErrorKind())
	assert.True(t, m.CanMakeValid())

	fixed := m.MakeValid()
	require.True(t, fixed.IsValid())
	assert.Equal(t, MaxPatternLength, len(fixed.(*AnywhereMatcher).Config.Pattern))
	assert.True(t, fixed.Matches(text(long)))
	// 原matcher不变
	assert.False(t, m.IsValid())
	assert.Equal(t, long, m.Config.Pattern)

	// 截断后仍然无效
	broken := NewRegExpMatcher(literal("(" + strings.Repeat("a", MaxPatternLength)))
	assert.Equal(t, PatternTooLong, broken.ErrorKind())
	assert.False(t, broken.CanMakeValid())

	exact := strings.Repeat("b", MaxPatternLength)
	assert.True(t, NewExactMatcher(literal(exact)).IsValid())
}

func TestPatternMatcherRoundTrip(t *testing.T) {
	config := test.NewConfig(Registry)
	ctx := test.NewBindContext(test.NewLexicon())
	c := PatternConfiguration{Pattern: "Cat", MatchCase: true, MatchDiacritics: true, Ws: "tr"}
	for _, m := range []types.Matcher{NewExactMatcher(c), NewBeginMatcher(c), NewEndMatcher(c), NewAnywhereMatcher(c), NewRegExpMatcher(literal("^c.t$"))} {
		restored := test.RoundTrip(t, config, m, ctx).(types.Matcher)
		assert.True(t, m.SameMatcher(restored), m.Type())
		assert.True(t, restored.SameMatcher(m), m.Type())
		assert.Equal(t, m.Matches(text("Cat")), restored.Matches(text("Cat")), m.Type())
	}
	restored := test.RoundTrip(t, config, NewRegExpMatcher(literal("^c.t$")), ctx).(types.Matcher)
	assert.True(t, restored.Matches(text("cut")))
}

func TestPatternSameMatcher(t *testing.T) {
	a := NewBeginMatcher(literal("cat"))
	assert.True(t, a.SameMatcher(NewBeginMatcher(literal("cat"))))
	assert.False(t, a.SameMatcher(NewBeginMatcher(literal("dog"))))
	assert.False(t, a.SameMatcher(NewEndMatcher(literal("cat"))))
	assert.False(t, a.SameMatcher(NewBeginMatcher(PatternConfiguration{Pattern: "cat", MatchCase: true})))
	assert.False(t, a.SameMatcher(nil))
}
