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

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/finder"
	"github.com/rulego/sift/components/matcher"
	"github.com/rulego/sift/test"
)

func citation() types.StringFinder {
	return finder.NewMultiStringPropFinder(test.PropCitationForm, test.WsVern)
}

func homograph() types.StringFinder {
	return finder.NewStringPropFinder(test.PropHomograph)
}

func begins(pattern string) types.Matcher {
	return matcher.NewBeginMatcher(matcher.PatternConfiguration{Pattern: pattern})
}

// accepted 返回被接受的词条
func accepted(f types.RecordFilter) []types.RecordId {
	var result []types.RecordId
	for _, id := range test.EntryIds {
		if f.Accept(types.NewPathItem(id)) {
			result = append(result, id)
		}
	}
	return result
}

func bind(t *testing.T, f types.RecordFilter) types.RecordFilter {
	require.NoError(t, f.Bind(test.NewBindContext(test.NewLexicon())))
	return f
}

func TestFinderFilter(t *testing.T) {
	config := test.NewConfig(Registry, finder.Registry, matcher.Registry)
	test.ComponentNew(t, "finderFilter", &FinderFilter{}, types.Configuration{}, Registry)
	test.ComponentNew(t, "filterBarFilter", &FilterBarFilter{}, types.Configuration{}, Registry)

	f := bind(t, NewFinderFilter(citation(), begins("c")))
	assert.Equal(t, []types.RecordId{1}, accepted(f))
	assert.False(t, f.IsUserVisible())

	bar := bind(t, NewFilterBarFilter(homograph(), matcher.NewRangeIntMatcher(1, 5)))
	assert.Equal(t, []types.RecordId{1, 2}, accepted(bar))
	assert.True(t, bar.IsUserVisible())

	// 缺失的值是空字符串
	blank := bind(t, NewFinderFilter(homograph(), &matcher.BlankMatcher{}))
	assert.Equal(t, []types.RecordId{3}, accepted(blank))

	// null 值只有 blankMatch 匹配
	owned := finder.NewOwnedPropFinder([]types.PropId{test.PropLexemeForm}, test.PropForm, test.WsVern)
	assert.Equal(t, []types.RecordId{3}, accepted(bind(t, NewFinderFilter(owned, &matcher.BlankMatcher{}))))
	inverted := matcher.NewInvertMatcher(begins("c"))
	assert.Equal(t, []types.RecordId{2, 4, 5}, accepted(bind(t, NewFinderFilter(owned, inverted))))

	assert.False(t, (&FinderFilter{}).Accept(types.NewPathItem(1)))

	t.Run("Restore", func(t *testing.T) {
		node := test.Node(types.NodeFilter, "filterBarFilter", nil,
			test.Node(types.NodeFinder, "multiStringProp", map[string]string{"prop": string(test.PropCitationForm), "ws": test.WsVern}),
			test.Node(types.NodeMatcher, "beginMatch", map[string]string{"pattern": "c"}))
		c, err := test.CreateAndInit(config, node)
		require.NoError(t, err)
		restored := bind(t, c.(types.RecordFilter))
		assert.Equal(t, []types.RecordId{1}, accepted(restored))
		assert.True(t, restored.SameFilter(NewFilterBarFilter(citation(), begins("c"))))
		assert.False(t, restored.SameFilter(NewFinderFilter(citation(), begins("c"))))

		_, err = test.CreateAndInit(config, test.Node(types.NodeFilter, "finderFilter", nil,
			test.Node(types.NodeFinder, "stringProp", map[string]string{"prop": "p"})))
		assert.True(t, errors.Is(err, types.ErrMissingAttribute))

		// 子节点类型错误
		_, err = test.CreateAndInit(config, test.Node(types.NodeFilter, "finderFilter", nil,
			test.Node(types.NodeFinder, "beginMatch", map[string]string{"pattern": "c"}),
			test.Node(types.NodeMatcher, "beginMatch", map[string]string{"pattern": "c"})))
		assert.True(t, errors.Is(err, types.ErrMalformedNode))

		_, err = test.CreateAndInit(config, test.Node(types.NodeFilter, "finderFilter", nil,
			test.Node(types.NodeFinder, "stringProp", map[string]string{"prop": "p"}),
			test.Node(types.NodeMatcher, "fuzzyMatch", nil)))
		assert.True(t, errors.Is(err, types.ErrUnknownType))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		ctx := test.NewBindContext(test.NewLexicon())
		for _, f := range []types.RecordFilter{
			NewFinderFilter(citation(), begins("c")),
			NewFilterBarFilter(homograph(), matcher.NewRangeIntMatcher(1, 5)),
			NewFinderFilter(owned, inverted),
		} {
			restored := test.RoundTrip(t, config, f, ctx).(types.RecordFilter)
			assert.True(t, f.SameFilter(restored))
			assert.Equal(t, accepted(bind(t, f)), accepted(restored))
		}
	})
}

func TestAndFilter(t *testing.T) {
	config := test.NewConfig(Registry, finder.Registry, matcher.Registry)
	ctx := test.NewBindContext(test.NewLexicon())

	empty := NewAndFilter()
	assert.Equal(t, test.EntryIds, accepted(empty))
	assert.False(t, empty.IsUserVisible())

	numbered := NewFinderFilter(homograph(), matcher.NewRangeIntMatcher(1, 10))
	notCat := NewFinderFilter(citation(), matcher.NewInvertMatcher(begins("c")))
	and := NewAndFilter(numbered, notCat)
	require.NoError(t, and.Bind(ctx))
	assert.Equal(t, []types.RecordId{2, 4}, accepted(and))
	for _, id := range test.EntryIds {
		item := types.NewPathItem(id)
		assert.Equal(t, numbered.Accept(item) && notCat.Accept(item), and.Accept(item), id)
	}
	assert.False(t, and.IsUserVisible())

	t.Run("AddRemove", func(t *testing.T) {
		f := NewAndFilter()
		require.NoError(t, f.Add(NewFinderFilter(citation(), begins("c"))))
		assert.True(t, errors.Is(f.Add(NewFinderFilter(citation(), begins("c"))), types.ErrDuplicateFilter))
		require.NoError(t, f.Add(NewFilterBarFilter(citation(), begins("c"))))
		assert.Len(t, f.Filters, 2)
		assert.True(t, f.IsUserVisible())

		assert.True(t, errors.Is(f.Remove(NewFinderFilter(citation(), begins("d"))), types.ErrFilterNotFound))
		require.NoError(t, f.Remove(NewFilterBarFilter(citation(), begins("c"))))
		assert.False(t, f.IsUserVisible())
		assert.True(t, f.Contains(NewFinderFilter(citation(), begins("c"))))
		require.NoError(t, f.Remove(NewFinderFilter(citation(), begins("c"))))
		assert.Empty(t, f.Filters)
	})

	t.Run("EqualContainedFilter", func(t *testing.T) {
		inner := NewFilterBarFilter(homograph(), matcher.NewRangeIntMatcher(1, 5))
		nested := NewAndFilter(NewFinderFilter(citation(), begins("a")), NewAndFilter(inner))
		assert.Same(t, nested, nested.EqualContainedFilter(NewAndFilter(NewFinderFilter(citation(), begins("a")), NewAndFilter(inner))))
		found := nested.EqualContainedFilter(NewFilterBarFilter(homograph(), matcher.NewRangeIntMatcher(1, 5)))
		assert.Same(t, inner, found)
		assert.Nil(t, nested.EqualContainedFilter(NewFinderFilter(citation(), begins("z"))))
		assert.Nil(t, nested.EqualContainedFilter(nil))
		assert.True(t, nested.IsUserVisible())
	})

	t.Run("RoundTrip", func(t *testing.T) {
		nested := NewAndFilter(and, NewFilterBarFilter(citation(), begins("a")))
		restored := test.RoundTrip(t, config, nested, ctx).(*AndFilter)
		assert.True(t, nested.SameFilter(restored))
		assert.Len(t, restored.Filters, 2)
		assert.Equal(t, []types.RecordId{4}, accepted(restored))

		node, err := test.CreateAndInit(config, test.Node(types.NodeFilter, "andFilter", nil))
		require.NoError(t, err)
		assert.Empty(t, node.(*AndFilter).Filters)
		assert.False(t, NewAndFilter().SameFilter(nested))
	})
}
