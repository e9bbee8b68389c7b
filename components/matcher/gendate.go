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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Precision 通用日期的精度
type Precision int

const (
	PrecisionOn Precision = iota
	PrecisionBefore
	PrecisionAfter
	PrecisionAbout
)

func (p Precision) String() string {
	switch p {
	case PrecisionBefore:
		return "before"
	case PrecisionAfter:
		return "after"
	case PrecisionAbout:
		return "about"
	default:
		return "on"
	}
}

// ErrBadGenDate 通用日期格式错误
var ErrBadGenDate = errors.New("bad generic date")

var (
	minTime = time.Date(-1000000, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(1000000, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// GenDate is a generic, possibly partial, date: "[before|after|about|on] Y[-M[-D]] [BC|AD]".
// Month and Day are 0 when unknown.
type GenDate struct {
	Precision Precision
	// Year is the year as written, always positive.
	Year  int
	BC    bool
	Month int
	Day   int
}

// ParseGenDate 解析通用日期，月、日可以用 ? 或 0 表示未知
func ParseGenDate(s string) (GenDate, error) {
	var g GenDate
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return g, ErrBadGenDate
	}
	switch fields[0] {
	case "before":
		g.Precision, fields = PrecisionBefore, fields[1:]
	case "after":
		g.Precision, fields = PrecisionAfter, fields[1:]
	case "about":
		g.Precision, fields = PrecisionAbout, fields[1:]
	case "on":
		fields = fields[1:]
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "bc", "bce", "b.c.":
			g.BC = true
		case "ad", "ce", "a.d.":
		default:
			return g, fmt.Errorf("%w: unknown era %q", ErrBadGenDate, fields[1])
		}
		fields = fields[:1]
	}
	if len(fields) != 1 {
		return g, fmt.Errorf("%w: %q", ErrBadGenDate, s)
	}
	parts := strings.Split(fields[0], "-")
	if len(parts) > 3 {
		return g, fmt.Errorf("%w: %q", ErrBadGenDate, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return g, fmt.Errorf("%w: bad year %q", ErrBadGenDate, parts[0])
	}
	g.Year = year
	if len(parts) > 1 {
		if g.Month, err = unknownOrInt(parts[1], 12); err != nil {
			return g, err
		}
	}
	if len(parts) > 2 {
		if g.Day, err = unknownOrInt(parts[2], 31); err != nil {
			return g, err
		}
	}
	if g.Day > 0 {
		if g.Month == 0 {
			return g, fmt.Errorf("%w: day without month", ErrBadGenDate)
		}
		if g.Day > daysIn(g.AstronomicalYear(), g.Month) {
			return g, fmt.Errorf("%w: bad day %d", ErrBadGenDate, g.Day)
		}
	}
	return g, nil
}

func unknownOrInt(s string, max int) (int, error) {
	if s == "?" || s == "??" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0, fmt.Errorf("%w: bad field %q", ErrBadGenDate, s)
	}
	return n, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AstronomicalYear returns the year on a continuous scale: 1 BC is 0, 2 BC is -1.
func (g GenDate) AstronomicalYear() int {
	if g.BC {
		return 1 - g.Year
	}
	return g.Year
}

// Interval returns the closed range of instants the date may denote.
func (g GenDate) Interval() (time.Time, time.Time) {
	y := g.AstronomicalYear()
	var lo, next time.Time
	switch {
	case g.Month == 0:
		lo = time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
		next = lo.AddDate(1, 0, 0)
	case g.Day == 0:
		lo = time.Date(y, time.Month(g.Month), 1, 0, 0, 0, 0, time.UTC)
		next = lo.AddDate(0, 1, 0)
	default:
		lo = time.Date(y, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC)
		next = lo.AddDate(0, 0, 1)
	}
	hi := next.Add(-time.Nanosecond)
	switch g.Precision {
	case PrecisionBefore:
		return minTime, lo.Add(-time.Nanosecond)
	case PrecisionAfter:
		return next, maxTime
	default:
		return lo, hi
	}
}

// String formats the date in the form ParseGenDate reads.
func (g GenDate) String() string {
	var b strings.Builder
	if g.Precision != PrecisionOn {
		b.WriteString(g.Precision.String())
		b.WriteByte(' ')
	}
	b.WriteString(strconv.Itoa(g.Year))
	if g.Month > 0 || g.Day > 0 {
		b.WriteString(fmt.Sprintf("-%02d", g.Month))
	}
	if g.Day > 0 {
		b.WriteString(fmt.Sprintf("-%02d", g.Day))
	}
	if g.BC {
		b.WriteString(" BC")
	}
	return b.String()
}
