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

// Package sorter provides the record sorters and the comparators they order items with.
//
// Comparators:
//   - stringFinderComparer: collation order of a finder's key in a writing system, null first
//   - intStringComparer: numeric order of a finder's key, non-numeric keys first by text
//   - reverseComparer: the reverse of a child comparator
//   - chainComparer: the first non-zero result of its child comparators
//   - jsComparer: a script `function Compare(a, b)` over two keys
//
// Sorters:
//   - genericSorter: stable merge sort with one comparator
//   - andSorter: lexicographic sort over several sorters
//
// Persisted form:
//
//	<sorter type="genericSorter">
//	  <comparer type="reverseComparer">
//	    <comparer type="stringFinderComparer" ws="fr">
//	      <finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
//	    </comparer>
//	  </comparer>
//	</sorter>
package sorter

import (
	"github.com/rulego/sift/api/types"
)

// Registry 默认sorter组件注册表
var Registry = new(types.SafeComponentSlice)

// 子节点名称
const (
	ChildComparer = types.NodeComparer
	ChildFinder   = types.NodeFinder
	ChildSorter   = types.NodeSorter
)

// FinderComparer is implemented by comparators ordering items by a finder's key.
type FinderComparer interface {
	types.Comparator
	Finder() types.StringFinder
}

// Unwrapper is implemented by comparators wrapping another comparator.
type Unwrapper interface {
	Unwrap() types.Comparator
}

// unwrap removes one wrapping layer, if any.
func unwrap(c types.Comparator) types.Comparator {
	if u, ok := c.(Unwrapper); ok && u.Unwrap() != nil {
		return u.Unwrap()
	}
	return c
}

// finderOf returns the finder a comparator orders by, looking through wrappers.
func finderOf(c types.Comparator) types.StringFinder {
	for c != nil {
		if fc, ok := c.(FinderComparer); ok {
			return fc.Finder()
		}
		u, ok := c.(Unwrapper)
		if !ok {
			return nil
		}
		c = u.Unwrap()
	}
	return nil
}
