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
	"strings"
	"time"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&DateTimeMatcher{})
}

// 日期匹配模式
const (
	DateModeRange    = "range"
	DateModeOn       = "on"
	DateModeBefore   = "before"
	DateModeAfter    = "after"
	DateModeNotRange = "notRange"
)

// dateLayouts 普通日期格式
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// DateTimeMatcherConfiguration 节点配置
type DateTimeMatcherConfiguration struct {
	// Mode 匹配模式：range, on, before, after, notRange
	Mode string `required:"true"`
	// Start 开始日期，before 模式与它比较；为空表示不限
	Start string
	// End 结束日期，after 模式与它比较；为空表示不限。没有时间的日期包含当天
	End string
	// UnspecificMatching 部分日期可能匹配时也算匹配
	UnspecificMatching bool
}

// DateTimeMatcher matches ordinary date/time values and generic (partial) dates.
//
// Every value denotes a closed interval of instants: a whole day for a date without
// clock, a single instant for a date-time, and every possible day for a generic date.
// A match is certain when the whole interval satisfies the mode and possible when part
// of it does; with UnspecificMatching a possible match counts. Values that are neither
// form do not match in any mode.
type DateTimeMatcher struct {
	Config   DateTimeMatcherConfiguration
	start    time.Time
	end      time.Time
	errorMsg string
	compiled bool
}

// NewDateTimeMatcher creates a matcher; start/end accept the value syntax and may be empty.
func NewDateTimeMatcher(mode, start, end string, unspecificMatching bool) *DateTimeMatcher {
	x := &DateTimeMatcher{Config: DateTimeMatcherConfiguration{Mode: mode, Start: start, End: end, UnspecificMatching: unspecificMatching}}
	x.compile()
	return x
}

// Type 组件类型
func (x *DateTimeMatcher) Type() string {
	return "dateTimeMatch"
}

func (x *DateTimeMatcher) New() types.Component {
	return &DateTimeMatcher{Config: DateTimeMatcherConfiguration{Mode: DateModeRange}}
}

// Init 初始化
func (x *DateTimeMatcher) Init(_ types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "mode"); err != nil {
		return err
	}
	x.compile()
	return nil
}

func (x *DateTimeMatcher) compile() {
	x.compiled = true
	x.errorMsg = ""
	x.start, x.end = minTime, maxTime
	switch x.Config.Mode {
	case DateModeRange, DateModeOn, DateModeBefore, DateModeAfter, DateModeNotRange:
	default:
		x.errorMsg = "unknown date mode " + x.Config.Mode
		return
	}
	if strings.TrimSpace(x.Config.Start) != "" {
		lo, _, ok := ParseDateValue(x.Config.Start)
		if !ok {
			x.errorMsg = "bad start date " + x.Config.Start
			return
		}
		x.start = lo
	}
	if strings.TrimSpace(x.Config.End) != "" {
		_, hi, ok := ParseDateValue(x.Config.End)
		if !ok {
			x.errorMsg = "bad end date " + x.Config.End
			return
		}
		x.end = hi
	}
	if x.start.After(x.end) {
		x.errorMsg = "start date is after end date"
	}
}

func (x *DateTimeMatcher) ensureCompiled() {
	if !x.compiled {
		x.compile()
	}
}

// ParseDateValue parses an ordinary date/time or a generic date into the closed
// interval it denotes.
func ParseDateValue(s string) (time.Time, time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, time.Time{}, false
	}
	for i, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			if i == 0 {
				return t, t.AddDate(0, 0, 1).Add(-time.Nanosecond), true
			}
			return t, t, true
		}
	}
	g, err := ParseGenDate(s)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	lo, hi := g.Interval()
	return lo, hi, true
}

func (x *DateTimeMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *DateTimeMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *DateTimeMatcher) Matches(value types.Text) bool {
	x.ensureCompiled()
	if !value.Valid || x.errorMsg != "" {
		return false
	}
	lo, hi, ok := ParseDateValue(value.Value)
	if !ok {
		return false
	}
	switch x.Config.Mode {
	case DateModeBefore:
		return x.decide(hi.Before(x.start), lo.Before(x.start))
	case DateModeAfter:
		return x.decide(lo.After(x.end), hi.After(x.end))
	case DateModeNotRange:
		return !x.inRange(lo, hi)
	default:
		return x.inRange(lo, hi)
	}
}

func (x *DateTimeMatcher) inRange(lo, hi time.Time) bool {
	certain := !lo.Before(x.start) && !hi.After(x.end)
	possible := !lo.After(x.end) && !hi.Before(x.start)
	return x.decide(certain, possible)
}

func (x *DateTimeMatcher) decide(certain, possible bool) bool {
	return certain || (x.Config.UnspecificMatching && possible)
}

func (x *DateTimeMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *DateTimeMatcher) IsValid() bool {
	x.ensureCompiled()
	return x.errorMsg == ""
}

func (x *DateTimeMatcher) ErrorMessage() string {
	x.ensureCompiled()
	return x.errorMsg
}

func (x *DateTimeMatcher) CanMakeValid() bool {
	return false
}

func (x *DateTimeMatcher) MakeValid() types.Matcher {
	c := x.Config
	return NewDateTimeMatcher(c.Mode, c.Start, c.End, c.UnspecificMatching)
}
