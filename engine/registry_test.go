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
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/components/matcher"
)

// lengthMatcher 自定义组件：值的长度等于Length
type lengthMatcher struct {
	Config struct {
		Length int
	}
}

func (x *lengthMatcher) Type() string {
	return "test/length"
}

func (x *lengthMatcher) New() types.Component {
	return &lengthMatcher{}
}

func (x *lengthMatcher) Init(_ types.Config, node *types.PersistNode) error {
	return base.NodeUtils.DecodeConfig(node, &x.Config, "length")
}

func (x *lengthMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *lengthMatcher) Bind(types.BindContext) error {
	return nil
}

func (x *lengthMatcher) Matches(value types.Text) bool {
	return value.Valid && len([]rune(value.Value)) == x.Config.Length
}

func (x *lengthMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *lengthMatcher) IsValid() bool {
	return x.Config.Length >= 0
}

func (x *lengthMatcher) ErrorMessage() string {
	return ""
}

func (x *lengthMatcher) CanMakeValid() bool {
	return false
}

func (x *lengthMatcher) MakeValid() types.Matcher {
	return x
}

func TestRegistry(t *testing.T) {
	components := Registry.GetComponents()
	for _, componentType := range []string{
		"stringProp", "multiStringProp", "ownedProp", "vectorProp",
		"exactMatch", "beginMatch", "endMatch", "anywhereMatch", "regExpMatch", "blankMatch", "nonBlankMatch",
		"invertMatch", "rangeIntMatch", "notEqualIntMatch", "dateTimeMatch", "badSpellingMatch", "exprMatch", "jsMatch",
		"finderFilter", "filterBarFilter", "andFilter",
		"stringFinderComparer", "intStringComparer", "reverseComparer", "chainComparer", "jsComparer",
		"genericSorter", "andSorter",
	} {
		_, ok := components[componentType]
		assert.True(t, ok, componentType)
	}

	forms := Registry.GetComponentForms()
	form, ok := forms.GetComponent("rangeIntMatch")
	require.True(t, ok)
	assert.Equal(t, "matcher", form.Category)
	_, ok = form.Fields.GetField("min")
	assert.True(t, ok)

	c, err := Registry.NewComponent("beginMatch")
	require.NoError(t, err)
	assert.IsType(t, &matcher.BeginMatcher{}, c)

	_, err = Registry.NewComponent("nope")
	assert.True(t, errors.Is(err, types.ErrUnknownType))

	err = Registry.Register(&matcher.BeginMatcher{})
	assert.True(t, errors.Is(err, ErrComponentExists))
}

func TestRegistryRegister(t *testing.T) {
	registry := new(ComponentRegistry)
	require.NoError(t, registry.Register(&lengthMatcher{}))
	assert.Len(t, registry.GetComponents(), 1)

	config := NewConfig(types.WithComponentsRegistry(registry))
	c, err := base.NodeUtils.InitComponent(config, &types.PersistNode{Name: types.NodeMatcher, Type: "test/length", Attrs: map[string]string{"length": "3"}})
	require.NoError(t, err)
	assert.True(t, c.(types.Matcher).Matches(types.NewText("cat")))
	assert.False(t, c.(types.Matcher).Matches(types.NewText("zebra")))

	require.NoError(t, registry.Unregister("test/length"))
	assert.Len(t, registry.GetComponents(), 0)
	assert.Error(t, registry.Unregister("test/length"))

	assert.Error(t, registry.RegisterPlugin("missing", "./testdata/missing.so"))
}

func TestCustomComponentRegistry(t *testing.T) {
	custom := new(ComponentRegistry)
	registry := NewCustomComponentRegistry(Registry, custom)
	require.NoError(t, registry.Register(&lengthMatcher{}))

	c, err := registry.NewComponent("test/length")
	require.NoError(t, err)
	assert.IsType(t, &lengthMatcher{}, c)
	c, err = registry.NewComponent("exactMatch")
	require.NoError(t, err)
	assert.IsType(t, &matcher.ExactMatcher{}, c)

	components := registry.GetComponents()
	assert.Len(t, components, len(Registry.GetComponents())+1)
	forms := registry.GetComponentForms()
	_, ok := forms.GetComponent("test/length")
	assert.True(t, ok)
	// 默认注册器不受影响
	_, ok = Registry.GetComponents()["test/length"]
	assert.False(t, ok)

	// 视图可以使用自定义组件
	v, err := NewView("custom", []byte(`<view><filter type="finderFilter">
		<finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
		<matcher type="test/length" length="3"/>
	</filter></view>`), WithConfig(quietConfig(types.WithComponentsRegistry(registry))))
	require.NoError(t, err)
	assert.NotNil(t, v.Filter())

	require.NoError(t, registry.Unregister("test/length"))
	_, err = registry.NewComponent("test/length")
	assert.True(t, errors.Is(err, types.ErrUnknownType))
}
