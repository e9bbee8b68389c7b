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
	"math/bits"

	"github.com/rulego/sift/api/types"
)

type compareFunc func(a, b types.PathItem) (int, error)

// progressCounter 单次排序的进度累计
type progressCounter struct {
	sink        types.ProgressSink
	estimated   int
	comparisons int
	percent     int
}

// estimatedComparisons returns max(1, n*ceil(log2 n)).
func estimatedComparisons(n int) int {
	if n < 2 {
		return 1
	}
	return max(1, n*bits.Len(uint(n-1)))
}

func (p *progressCounter) tick() {
	p.comparisons++
	percent := min(100, p.comparisons*100/p.estimated)
	if percent != p.percent {
		p.percent = percent
		p.sink.SetPercentDone(percent)
	}
}

// counting wraps compare so that every call reports progress to sink.
// The counter lives only as long as the returned function.
func counting(compare compareFunc, n int, sink types.ProgressSink) compareFunc {
	if sink == nil {
		return compare
	}
	p := &progressCounter{sink: sink, estimated: estimatedComparisons(n)}
	return func(a, b types.PathItem) (int, error) {
		result, err := compare(a, b)
		p.tick()
		return result, err
	}
}

// mergeSort sorts items in place, stably. The first comparator error aborts the sort;
// items are then left in an unspecified order.
func mergeSort(items []types.PathItem, compare compareFunc) error {
	if len(items) < 2 {
		return nil
	}
	buf := make([]types.PathItem, len(items))
	return mergeSortRange(items, buf, compare)
}

func mergeSortRange(items, buf []types.PathItem, compare compareFunc) error {
	n := len(items)
	if n < 2 {
		return nil
	}
	mid := n / 2
	if err := mergeSortRange(items[:mid], buf[:mid], compare); err != nil {
		return err
	}
	if err := mergeSortRange(items[mid:], buf[mid:], compare); err != nil {
		return err
	}
	i, j, k := 0, mid, 0
	for i < mid && j < n {
		c, err := compare(items[i], items[j])
		if err != nil {
			return err
		}
		// 相等时取左边，保持稳定
		if c <= 0 {
			buf[k] = items[i]
			i++
		} else {
			buf[k] = items[j]
			j++
		}
		k++
	}
	k += copy(buf[k:], items[i:mid])
	copy(buf[k:], items[j:n])
	copy(items, buf[:n])
	return nil
}

// mergeInto walks sorted and inserts each addition before the first element that
// compares greater than it.
func mergeInto(sorted, additions []types.PathItem, compare compareFunc) ([]types.PathItem, error) {
	result := make([]types.PathItem, 0, len(sorted)+len(additions))
	i := 0
	for _, addition := range additions {
		for i < len(sorted) {
			c, err := compare(sorted[i], addition)
			if err != nil {
				return nil, err
			}
			if c > 0 {
				break
			}
			result = append(result, sorted[i])
			i++
		}
		result = append(result, addition)
	}
	return append(result, sorted[i:]...), nil
}
