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

// Package finder provides the string finders: components that extract the strings,
// or the single sort/match key, of a record through an injected types.DataAccess.
//
//   - stringProp: a plain string property
//   - multiStringProp: one writing-system alternative of a multi-string property
//   - ownedProp: follows a chain of atomic object properties, then reads a string
//   - vectorProp: reads a string of every element of a vector property
//
// Persisted form:
//
//	<finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
package finder

import (
	"fmt"

	"github.com/rulego/sift/api/types"
)

// Registry 默认finder组件注册表
var Registry = new(types.SafeComponentSlice)

// PropertyFinder is implemented by finders reading one named leaf property.
type PropertyFinder interface {
	types.StringFinder
	// Property returns the property the key string is read from.
	Property() types.PropId
	// WritingSystem returns the writing system read, or "" for plain strings.
	WritingSystem() string
}

// MultiValued is implemented by finders expanding a root to several items.
type MultiValued interface {
	IsMultiValued() bool
}

// IsMultiValued reports whether f expands roots to one item per element.
func IsMultiValued(f types.StringFinder) bool {
	if m, ok := f.(MultiValued); ok {
		return m.IsMultiValued()
	}
	return false
}

func bindDataAccess(ctx types.BindContext) (types.DataAccess, error) {
	if ctx.DataAccess == nil {
		return nil, fmt.Errorf("%w: data access", types.ErrNotBound)
	}
	return ctx.DataAccess, nil
}

// readString reads a plain string when ws is empty, otherwise a multi-string alternative.
func readString(da types.DataAccess, id types.RecordId, prop types.PropId, ws string) string {
	if da == nil || id == types.NilRecord {
		return ""
	}
	if ws == "" {
		return da.GetString(id, prop)
	}
	return da.GetMultiString(id, prop, ws)
}
