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
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/dlclark/regexp2/syntax"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/str"
)

// MaxPatternLength 模式最大字符数
const MaxPatternLength = 1000

// matchTimeout 单次正则搜索超时，超时视为不匹配
const matchTimeout = time.Second

// PatternError classifies why a pattern cannot be used.
type PatternError int

const (
	PatternOk PatternError = iota
	PatternSyntax
	PatternUnmatchedParen
	PatternUnmatchedBracket
	PatternBadInterval
	PatternInvalidBackReference
	PatternInvalidEscape
	PatternTooLong
)

func (e PatternError) String() string {
	switch e {
	case PatternOk:
		return ""
	case PatternUnmatchedParen:
		return "unmatched parenthesis in pattern"
	case PatternUnmatchedBracket:
		return "unmatched bracket in pattern"
	case PatternBadInterval:
		return "bad interval in pattern"
	case PatternInvalidBackReference:
		return "invalid back-reference in pattern"
	case PatternInvalidEscape:
		return "invalid escape in pattern"
	case PatternTooLong:
		return "pattern is too long"
	default:
		return "pattern syntax error"
	}
}

// classify maps a regexp2 compile error to a PatternError.
func classify(err error) PatternError {
	var syntaxErr *syntax.Error
	if !errors.As(err, &syntaxErr) {
		return PatternSyntax
	}
	switch syntaxErr.Code {
	case syntax.ErrUnexpectedParen, syntax.ErrMissingParen:
		return PatternUnmatchedParen
	case syntax.ErrUnterminatedBracket:
		return PatternUnmatchedBracket
	case syntax.ErrInvalidRepeatSize, syntax.ErrMissingBrace, syntax.ErrInvalidRepeatOp, syntax.ErrMissingRepeatArgument:
		return PatternBadInterval
	case syntax.ErrUndefinedBackRef, syntax.ErrUndefinedNameRef, syntax.ErrMalformedNameRef,
		syntax.ErrCapNumNotZero, syntax.ErrCaptureGroupOutOfRange:
		return PatternInvalidBackReference
	case syntax.ErrIllegalEndEscape, syntax.ErrUnrecognizedEscape, syntax.ErrMalformedSlashP,
		syntax.ErrIncompleteSlashP, syntax.ErrUnknownSlashP, syntax.ErrMissingControl,
		syntax.ErrUnrecognizedControl, syntax.ErrTooFewHex, syntax.ErrInvalidHex:
		return PatternInvalidEscape
	default:
		return PatternSyntax
	}
}

// PatternConfiguration 模式匹配配置
type PatternConfiguration struct {
	// Pattern 模式文本；regExpMatch 为正则表达式，其它为普通文本
	Pattern string
	// MatchCase 是否区分大小写
	MatchCase bool
	// MatchDiacritics 是否区分变音符号
	MatchDiacritics bool
	// Ws 模式的书写系统，用于大小写转换，例如 tr
	Ws string
}

// pattern is a compiled search pattern. Searches run over a prepared copy of the
// source (lower-cased and/or stripped of diacritics) and report ranges as rune
// offsets into the original source.
type pattern struct {
	config  PatternConfiguration
	regExp  bool
	re      *regexp2.Regexp
	err     PatternError
	lang    language.Tag
	prepare bool
}

func newPattern(config PatternConfiguration, regExp bool) *pattern {
	p := &pattern{config: config, regExp: regExp}
	p.compile()
	return p
}

func (p *pattern) compile() {
	p.re = nil
	p.err = PatternOk
	if utf8.RuneCountInString(p.config.Pattern) > MaxPatternLength {
		p.err = PatternTooLong
		return
	}
	p.lang = language.Und
	if p.config.Ws != "" {
		if tag, err := language.Parse(p.config.Ws); err == nil {
			p.lang = tag
		}
	}
	// 普通文本模式通过转换源文本和模式忽略大小写；正则表达式使用 IgnoreCase 选项
	p.prepare = !p.config.MatchDiacritics || (!p.regExp && !p.config.MatchCase)
	expr := p.config.Pattern
	if p.prepare {
		expr = string(p.transform(expr))
	}
	opts := regexp2.None
	if p.regExp {
		if !p.config.MatchCase {
			opts |= regexp2.IgnoreCase
		}
	} else {
		expr = regexp2.Escape(expr)
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		p.err = classify(err)
		return
	}
	re.MatchTimeout = matchTimeout
	p.re = re
}

func (p *pattern) valid() bool {
	return p.err == PatternOk
}

// repairable reports whether truncating the pattern makes it valid.
func (p *pattern) repairable() bool {
	if p.err != PatternTooLong {
		return false
	}
	return p.repaired().valid()
}

func (p *pattern) repaired() *pattern {
	config := p.config
	config.Pattern = str.Truncate(config.Pattern, MaxPatternLength)
	return newPattern(config, p.regExp)
}

func (p *pattern) transformer() transform.Transformer {
	var chain []transform.Transformer
	if !p.regExp && !p.config.MatchCase {
		chain = append(chain, cases.Lower(p.lang))
	}
	if !p.config.MatchDiacritics {
		chain = append(chain, norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	}
	return transform.Chain(chain...)
}

// transform prepares a whole string, used for the pattern itself.
func (p *pattern) transform(s string) []rune {
	out, _, err := transform.String(p.transformer(), s)
	if err != nil {
		return []rune(s)
	}
	return []rune(out)
}

// source prepares the search text rune by rune, recording for each prepared rune
// the offset of the original rune it came from. index has one extra entry holding
// the original length.
func (p *pattern) source(s string) (prepared []rune, index []int) {
	original := []rune(s)
	if !p.prepare {
		return original, nil
	}
	t := p.transformer()
	prepared = make([]rune, 0, len(original))
	index = make([]int, 0, len(original)+1)
	for i, r := range original {
		t.Reset()
		out, _, err := transform.String(t, string(r))
		if err != nil {
			out = string(r)
		}
		for _, c := range out {
			prepared = append(prepared, c)
			index = append(index, i)
		}
	}
	index = append(index, len(original))
	return prepared, index
}

// originalRange maps a range of prepared offsets back to original offsets. The end
// maps to the original rune of the next prepared rune, so marks removed after the
// last matched rune stay inside the range.
func originalRange(index []int, start, end int) types.Range {
	if index == nil {
		return types.Range{Start: start, End: end}
	}
	if start == end {
		return types.Range{Start: index[start], End: index[start]}
	}
	// 一个原字符展开为多个字符时，匹配可能止于其中间
	if index[end] == index[end-1] {
		return types.Range{Start: index[start], End: index[end-1] + 1}
	}
	return types.Range{Start: index[start], End: index[end]}
}

// search finds the first occurrence at or after start (a prepared offset).
func (p *pattern) search(prepared []rune, start int) (types.Range, bool) {
	if p.re == nil || start > len(prepared) {
		return types.Range{}, false
	}
	m, err := p.re.FindRunesMatchStartingAt(prepared, start)
	if err != nil || m == nil {
		return types.Range{}, false
	}
	return types.Range{Start: m.Index, End: m.Index + m.Length}, true
}

// scan runs the occurrence loop over s: search from the current start, stop when an
// occurrence repeats the previous one, otherwise continue after its end. accept is
// called with each occurrence in original offsets and the original length; scan stops
// at the first accepted occurrence unless all is set. Accepted ranges are returned.
func (p *pattern) scan(s string, all bool, accept func(r types.Range, length int) bool) []types.Range {
	if !p.valid() {
		return nil
	}
	prepared, index := p.source(s)
	length := utf8.RuneCountInString(s)
	var result []types.Range
	var previous types.Range
	first := true
	start := 0
	for start <= len(prepared) {
		found, ok := p.search(prepared, start)
		if !ok {
			break
		}
		if !first && found == previous {
			break
		}
		first = false
		previous = found
		r := originalRange(index, found.Start, found.End)
		if accept(r, length) {
			if len(result) == 0 || result[len(result)-1] != r {
				result = append(result, r)
			}
			if !all {
				return result
			}
		}
		start = found.End
	}
	return result
}
