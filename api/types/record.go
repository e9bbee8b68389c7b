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

package types

import (
	"strconv"
	"strings"
)

// RecordId 记录标识
// RecordId addresses a domain record. NilRecord means "no record".
type RecordId int64

const NilRecord RecordId = 0

// PropId 属性标识，例如 "LexEntry.CitationForm"
type PropId string

// Text is a string read from a record. An invalid Text is the null value,
// e.g. the result of following a missing owned object.
type Text struct {
	Value string
	Valid bool
}

// NullText is the null value.
var NullText = Text{}

// NewText returns a valid Text.
func NewText(s string) Text {
	return Text{Value: s, Valid: true}
}

func (t Text) String() string {
	return t.Value
}

// Range is a half-open range [Start, End) of rune offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// PathItem 路径项
// PathItem references a leaf record (KeyObject), optionally reached from a root record
// through a path. Several PathItems may resolve to the same leaf via different paths.
type PathItem struct {
	// KeyObject is the terminal record used for matching and comparison.
	KeyObject RecordId
	// PathObjects are the records from the root (index 0) to the parent of KeyObject.
	PathObjects []RecordId
	// PathProps[i] is the property leading from PathObjects[i] to the next object.
	PathProps []PropId
}

// NewPathItem returns an item for id with no path.
func NewPathItem(id RecordId) PathItem {
	return PathItem{KeyObject: id}
}

// RootObject returns the record the item was expanded from.
func (p PathItem) RootObject() RecordId {
	if len(p.PathObjects) > 0 {
		return p.PathObjects[0]
	}
	return p.KeyObject
}

// PathLength returns the number of traversals from the root to the key object.
func (p PathItem) PathLength() int {
	return len(p.PathObjects)
}

// Extend returns a new item whose key object is child, reached from p's key object via prop.
func (p PathItem) Extend(prop PropId, child RecordId) PathItem {
	objects := make([]RecordId, 0, len(p.PathObjects)+1)
	objects = append(objects, p.PathObjects...)
	objects = append(objects, p.KeyObject)
	props := make([]PropId, 0, len(p.PathProps)+1)
	props = append(props, p.PathProps...)
	props = append(props, prop)
	return PathItem{KeyObject: child, PathObjects: objects, PathProps: props}
}

// Equal reports whether both items reference the same leaf through the same path.
func (p PathItem) Equal(o PathItem) bool {
	if p.KeyObject != o.KeyObject || len(p.PathObjects) != len(o.PathObjects) || len(p.PathProps) != len(o.PathProps) {
		return false
	}
	for i := range p.PathObjects {
		if p.PathObjects[i] != o.PathObjects[i] {
			return false
		}
	}
	for i := range p.PathProps {
		if p.PathProps[i] != o.PathProps[i] {
			return false
		}
	}
	return true
}

func (p PathItem) String() string {
	var b strings.Builder
	for i, obj := range p.PathObjects {
		b.WriteString(strconv.FormatInt(int64(obj), 10))
		b.WriteByte('/')
		b.WriteString(string(p.PathProps[i]))
		b.WriteByte('/')
	}
	b.WriteString(strconv.FormatInt(int64(p.KeyObject), 10))
	return b.String()
}
