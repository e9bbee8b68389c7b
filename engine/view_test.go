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

package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/filter"
	"github.com/rulego/sift/components/finder"
	"github.com/rulego/sift/components/matcher"
	"github.com/rulego/sift/components/sorter"
	"github.com/rulego/sift/test"
)

// 同形异义词编号在1..10之间，按引用形式排序
var nounsDef = []byte(`
<view id="nouns" name="Nouns">
  <filter type="filterBarFilter">
    <finder type="stringProp" prop="LexEntry.HomographNumber"/>
    <matcher type="rangeIntMatch" min="1" max="10"/>
  </filter>
  <sorter type="genericSorter">
    <comparer type="stringFinderComparer" ws="fr">
      <finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
    </comparer>
  </sorter>
</view>`)

var nounsJsonDef = []byte(`{
  "name": "view",
  "attrs": {"id": "nouns", "name": "Nouns"},
  "children": [
    {
      "name": "filter",
      "type": "filterBarFilter",
      "children": [
        {"name": "finder", "type": "stringProp", "attrs": {"prop": "LexEntry.HomographNumber"}},
        {"name": "matcher", "type": "rangeIntMatch", "attrs": {"min": "1", "max": "10"}}
      ]
    }
  ]
}`)

func quietConfig(opts ...types.Option) types.Config {
	return NewConfig(append([]types.Option{types.WithLogger(types.DiscardLogger())}, opts...)...)
}

func newLexiconView(t *testing.T, def []byte) *View {
	v, err := NewView("", def, WithConfig(quietConfig()), WithBindContext(test.NewBindContext(test.NewLexicon())))
	require.NoError(t, err)
	return v
}

func keys(items []types.PathItem) []types.RecordId {
	var result []types.RecordId
	for _, item := range items {
		result = append(result, item.KeyObject)
	}
	return result
}

func citationComparer() types.Comparator {
	return sorter.NewStringFinderComparer(finder.NewMultiStringPropFinder(test.PropCitationForm, test.WsVern), "")
}

func TestNewView(t *testing.T) {
	v := newLexiconView(t, nounsDef)
	assert.Equal(t, "nouns", v.Id())
	assert.Equal(t, "Nouns", v.Name())
	assert.IsType(t, &filter.FilterBarFilter{}, v.Filter())
	assert.IsType(t, &sorter.GenericSorter{}, v.Sorter())
	assert.True(t, v.IsFiltered())
	assert.Equal(t, 0, v.Len())

	// 参数id优先
	v, err := NewView("other", nounsDef, WithConfig(quietConfig()))
	require.NoError(t, err)
	assert.Equal(t, "other", v.Id())

	// 空视图
	v, err = NewView("empty", nil, WithName("Everything"))
	require.NoError(t, err)
	assert.Nil(t, v.Filter())
	assert.Nil(t, v.Sorter())
	assert.False(t, v.IsFiltered())
	assert.Equal(t, "Everything", v.Name())

	v, err = NewView("json", nounsJsonDef, WithConfig(quietConfig(types.WithParser(&JsonParser{}))))
	require.NoError(t, err)
	assert.Equal(t, "json", v.Id())
	assert.NotNil(t, v.Filter())
	assert.Nil(t, v.Sorter())
}

func TestNewViewErrors(t *testing.T) {
	config := WithConfig(quietConfig())

	_, err := NewView("", []byte{}, config)
	assert.Equal(t, ErrEmptyDefinition, err)

	_, err = NewView("", []byte(`<view><filter`), config)
	assert.True(t, errors.Is(err, types.ErrMalformedNode))

	_, err = NewView("", []byte(`<filter type="andFilter"/>`), config)
	assert.True(t, errors.Is(err, types.ErrMalformedNode))

	_, err = NewView("", []byte(`<view><filter type="orFilter"/></view>`), config)
	assert.True(t, errors.Is(err, types.ErrUnknownType))
	var restoreErr *types.RestoreError
	require.True(t, errors.As(err, &restoreErr))
	assert.Equal(t, "orFilter", restoreErr.Type)

	_, err = NewView("", []byte(`<view><filter type="finderFilter"><matcher type="blankMatch"/></filter></view>`), config)
	assert.True(t, errors.Is(err, types.ErrMissingAttribute))

	// 排序器位置上的过滤器
	_, err = NewView("", []byte(`<view><sorter type="andFilter"/></view>`), config)
	assert.True(t, errors.Is(err, types.ErrMalformedNode))

	// 未绑定排序规则
	_, err = NewView("", nounsDef, config, WithBindContext(types.BindContext{DataAccess: test.NewLexicon()}))
	assert.True(t, errors.Is(err, types.ErrNotBound))
}

func TestViewApply(t *testing.T) {
	v := newLexiconView(t, nounsDef)
	progress := &test.ProgressRecorder{}
	require.NoError(t, v.Apply(test.EntryIds, progress))
	assert.Equal(t, []types.RecordId{4, 1, 2}, keys(v.Items()))
	assert.Equal(t, []string{MsgCollecting, MsgSorting, MsgDone}, progress.Messages)
	for i := 1; i < len(progress.Percents); i++ {
		assert.LessOrEqual(t, progress.Percents[i-1], progress.Percents[i])
	}

	// Items 返回副本
	items := v.Items()
	items[0] = types.NewPathItem(99)
	assert.Equal(t, types.RecordId(4), v.Items()[0].KeyObject)

	// 无过滤无排序保持原顺序
	all, err := NewView("all", nil)
	require.NoError(t, err)
	require.NoError(t, all.Apply(test.EntryIds, nil))
	assert.Equal(t, test.EntryIds, keys(all.Items()))

	// 排序器展开多值属性
	glosses := sorter.NewGenericSorter(sorter.NewStringFinderComparer(
		finder.NewVectorPropFinder(test.PropSenses, test.PropGloss, test.WsAnal), ""))
	_, err = all.SetSorter(glosses)
	require.NoError(t, err)
	require.NoError(t, all.Bind(test.NewBindContext(test.NewLexicon())))
	require.NoError(t, all.Apply(test.EntryIds, nil))
	assert.Equal(t, []types.RecordId{3, 103, 101, 104, 102, 106, 105}, keys(all.Items()))
	assert.Equal(t, types.RecordId(1), all.Items()[2].RootObject())
}

func TestViewApplyError(t *testing.T) {
	comparer, err := sorter.NewJsComparer(quietConfig(), finder.NewStringPropFinder(test.PropHomograph), `throw new Error("boom");`)
	require.NoError(t, err)
	v, err := NewView("js", nil, WithBindContext(test.NewBindContext(test.NewLexicon())))
	require.NoError(t, err)
	require.NoError(t, v.Apply([]types.RecordId{1, 2}, nil))

	_, err = v.SetSorter(sorter.NewGenericSorter(comparer))
	require.NoError(t, err)
	assert.Error(t, v.Apply(test.EntryIds, nil))
	// 出错时保留原结果
	assert.Equal(t, []types.RecordId{1, 2}, keys(v.Items()))
}

func TestViewAdd(t *testing.T) {
	v := newLexiconView(t, nounsDef)
	require.NoError(t, v.Apply([]types.RecordId{1, 2}, nil))
	assert.Equal(t, []types.RecordId{1, 2}, keys(v.Items()))

	require.NoError(t, v.Add([]types.RecordId{5, 4, 3}))
	assert.Equal(t, []types.RecordId{4, 1, 2}, keys(v.Items()))

	// 全部被过滤
	require.NoError(t, v.Add([]types.RecordId{5}))
	assert.Equal(t, 3, v.Len())

	unsorted, err := NewView("unsorted", nil)
	require.NoError(t, err)
	require.NoError(t, unsorted.Add([]types.RecordId{3, 1}))
	require.NoError(t, unsorted.Add([]types.RecordId{2}))
	assert.Equal(t, []types.RecordId{3, 1, 2}, keys(unsorted.Items()))
}

func TestViewFilters(t *testing.T) {
	ctx := test.NewBindContext(test.NewLexicon())
	v, err := NewView("filters", nil, WithBindContext(ctx))
	require.NoError(t, err)

	citation := finder.NewMultiStringPropFinder(test.PropCitationForm, test.WsVern)
	notE := filter.NewFilterBarFilter(citation, matcher.NewInvertMatcher(
		matcher.NewAnywhereMatcher(matcher.PatternConfiguration{Pattern: "e"})))
	ranked := filter.NewFinderFilter(finder.NewStringPropFinder(test.PropHomograph), matcher.NewRangeIntMatcher(1, 10))

	assert.Equal(t, types.ErrFilterNotFound, v.RemoveFilter(ranked))

	require.NoError(t, v.AddFilter(notE))
	assert.Same(t, notE, v.Filter())
	assert.True(t, v.IsFiltered())
	assert.Equal(t, types.ErrDuplicateFilter, v.AddFilter(filter.NewFilterBarFilter(citation, matcher.NewInvertMatcher(
		matcher.NewAnywhereMatcher(matcher.PatternConfiguration{Pattern: "e"})))))

	require.NoError(t, v.AddFilter(ranked))
	assert.IsType(t, &filter.AndFilter{}, v.Filter())
	require.NoError(t, v.Apply(test.EntryIds, nil))
	assert.Equal(t, []types.RecordId{1, 2}, keys(v.Items()))

	require.NoError(t, v.RemoveFilter(notE))
	require.NoError(t, v.Apply(test.EntryIds, nil))
	assert.Equal(t, []types.RecordId{1, 2, 4}, keys(v.Items()))
	assert.False(t, v.IsFiltered())

	require.NoError(t, v.RemoveFilter(ranked))
	assert.Nil(t, v.Filter())

	require.NoError(t, v.SetFilter(ranked))
	require.NoError(t, v.RemoveFilter(ranked))
	assert.Nil(t, v.Filter())
}

func TestViewSetSorter(t *testing.T) {
	v := newLexiconView(t, nounsDef)
	require.NoError(t, v.Apply(test.EntryIds, nil))

	recollect, err := v.SetSorter(sorter.NewGenericSorter(citationComparer()))
	require.NoError(t, err)
	assert.False(t, recollect)

	// 反向排序只需重新排序
	recollect, err = v.SetSorter(sorter.NewGenericSorter(sorter.NewReverseComparer(citationComparer())))
	require.NoError(t, err)
	assert.False(t, recollect)
	progress := &test.ProgressRecorder{}
	require.NoError(t, v.Resort(progress))
	assert.Equal(t, []types.RecordId{2, 1, 4}, keys(v.Items()))
	assert.Equal(t, []string{MsgSorting, MsgDone}, progress.Messages)

	recollect, err = v.SetSorter(sorter.NewGenericSorter(sorter.NewIntStringComparer(finder.NewStringPropFinder(test.PropHomograph))))
	require.NoError(t, err)
	assert.True(t, recollect)
	require.NoError(t, v.Apply(test.EntryIds, nil))
	assert.Equal(t, []types.RecordId{1, 2, 4}, keys(v.Items()))

	recollect, err = v.SetSorter(nil)
	require.NoError(t, err)
	assert.True(t, recollect)
	require.NoError(t, v.Resort(nil))
	assert.Equal(t, 3, v.Len())
	recollect, err = v.SetSorter(nil)
	require.NoError(t, err)
	assert.False(t, recollect)
}

func TestViewPersist(t *testing.T) {
	v := newLexiconView(t, nounsDef)
	dsl, err := v.DSL()
	require.NoError(t, err)

	restored := newLexiconView(t, dsl)
	assert.Equal(t, "nouns", restored.Id())
	assert.Equal(t, "Nouns", restored.Name())
	a, err := v.Persist()
	require.NoError(t, err)
	b, err := restored.Persist()
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, v.Filter().SameFilter(restored.Filter()))
	assert.True(t, v.Sorter().CompatibleSorter(restored.Sorter()))

	require.NoError(t, restored.Apply(test.EntryIds, nil))
	assert.Equal(t, []types.RecordId{4, 1, 2}, keys(restored.Items()))

	// Reload 替换过滤器和排序器
	require.NoError(t, restored.Reload([]byte(`<view name="Renamed"/>`)))
	assert.Equal(t, "nouns", restored.Id())
	assert.Equal(t, "Renamed", restored.Name())
	assert.Nil(t, restored.Filter())
	assert.Equal(t, 0, restored.Len())

	// Reload 失败时视图不变
	require.Error(t, v.Reload([]byte(`<view><sorter type="nope"/></view>`)))
	assert.NotNil(t, v.Sorter())

	// JSON
	jv, err := NewView("", dsl, WithConfig(quietConfig()))
	require.NoError(t, err)
	jv.config.Parser = &JsonParser{}
	jsonDsl, err := jv.DSL()
	require.NoError(t, err)
	back, err := NewView("", jsonDsl, WithConfig(quietConfig(types.WithParser(&JsonParser{}))))
	require.NoError(t, err)
	c, err := back.Persist()
	require.NoError(t, err)
	assert.True(t, a.Equal(c))
}
