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
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&BadSpellingMatcher{})
}

// BadSpellingMatcherConfiguration 节点配置
type BadSpellingMatcherConfiguration struct {
	// Ws 检查使用的书写系统词典
	Ws string `required:"true"`
	// WordFormingChars 额外的构词字符，例如 '-
	WordFormingChars string
}

// BadSpellingMatcher matches values containing a misspelled word.
//
// Words are maximal runs of letters, marks, digits and WordFormingChars. A run mixing
// scripts is always a misspelling; any other run containing a letter is NFC-normalized
// and checked against the dictionary of Ws. Without a dictionary nothing is misspelled.
type BadSpellingMatcher struct {
	Config   BadSpellingMatcherConfiguration
	spelling types.SpellingProvider
	logger   types.Logger
	warnOnce sync.Once
}

// NewBadSpellingMatcher creates an unbound matcher for ws.
func NewBadSpellingMatcher(ws, wordFormingChars string) *BadSpellingMatcher {
	return &BadSpellingMatcher{Config: BadSpellingMatcherConfiguration{Ws: ws, WordFormingChars: wordFormingChars}}
}

// Type 组件类型
func (x *BadSpellingMatcher) Type() string {
	return "badSpellingMatch"
}

func (x *BadSpellingMatcher) New() types.Component {
	return &BadSpellingMatcher{}
}

// Init 初始化
func (x *BadSpellingMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "ws")
}

func (x *BadSpellingMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *BadSpellingMatcher) Bind(ctx types.BindContext) error {
	x.spelling = ctx.Spelling
	x.logger = ctx.Logger
	return nil
}

func (x *BadSpellingMatcher) isWordForming(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || strings.ContainsRune(x.Config.WordFormingChars, r)
}

// Words splits value into the runs checked against the dictionary.
func (x *BadSpellingMatcher) Words(value string) []string {
	var words []string
	start := -1
	runes := []rune(value)
	for i, r := range runes {
		if x.isWordForming(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, string(runes[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, string(runes[start:]))
	}
	return words
}

func (x *BadSpellingMatcher) Matches(value types.Text) bool {
	if !value.Valid {
		return false
	}
	for _, word := range x.Words(value.Value) {
		script, mixed := scriptOf(word)
		if mixed {
			return true
		}
		if script == "" {
			// 没有字母，例如纯数字
			continue
		}
		if x.spelling == nil {
			return false
		}
		ok, err := x.spelling.Check(norm.NFC.String(word), x.Config.Ws)
		if errors.Is(err, types.ErrNoDictionary) {
			x.warnOnce.Do(func() {
				if x.logger != nil {
					x.logger.Printf("no spelling dictionary for ws=%s", x.Config.Ws)
				}
			})
			return false
		}
		if err != nil {
			if x.logger != nil {
				x.logger.Printf("spelling check word=%s error: %s", word, err.Error())
			}
			continue
		}
		if !ok {
			return true
		}
	}
	return false
}

// scriptOf returns the script of the letters of word, or mixed when they belong to
// more than one script. Common and inherited characters are ignored.
func scriptOf(word string) (script string, mixed bool) {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		s := letterScript(r)
		if s == "" {
			continue
		}
		if script == "" {
			script = s
		} else if s != script {
			return script, true
		}
	}
	return script, false
}

// 常见文字优先判断
var commonScripts = []string{"Latin", "Cyrillic", "Greek", "Arabic", "Hebrew", "Han", "Devanagari", "Thai", "Hangul", "Hiragana", "Katakana"}

func letterScript(r rune) string {
	for _, name := range commonScripts {
		if unicode.Is(unicode.Scripts[name], r) {
			return name
		}
	}
	for name, table := range unicode.Scripts {
		if name == "Common" || name == "Inherited" {
			continue
		}
		if unicode.Is(table, r) {
			return name
		}
	}
	return ""
}

func (x *BadSpellingMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *BadSpellingMatcher) IsValid() bool {
	return x.Config.Ws != ""
}

func (x *BadSpellingMatcher) ErrorMessage() string {
	if x.IsValid() {
		return ""
	}
	return "writing system is required"
}

func (x *BadSpellingMatcher) CanMakeValid() bool {
	return false
}

func (x *BadSpellingMatcher) MakeValid() types.Matcher {
	return &BadSpellingMatcher{Config: x.Config, spelling: x.spelling, logger: x.logger}
}
