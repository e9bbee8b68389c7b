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
	"encoding/xml"
	"sort"
)

// TypeAttr is the attribute carrying the type discriminator of a persisted node.
const TypeAttr = "type"

// 持久化节点名称
const (
	NodeFilter   = "filter"
	NodeSorter   = "sorter"
	NodeMatcher  = "matcher"
	NodeFinder   = "finder"
	NodeComparer = "comparer"
	NodeView     = "view"
)

// PersistNode 持久化配置树节点
// PersistNode is one node of a persisted configuration tree: a label (Name), a type
// discriminator resolved through the component registry, flat attributes and named children.
//
// In XML the label is the element name and the discriminator the "type" attribute:
//
//	<filter type="finderFilter">
//	  <finder type="stringProp" prop="LexEntry.CitationForm"/>
//	  <matcher type="beginMatch" pattern="cat" matchCase="false"/>
//	</filter>
type PersistNode struct {
	Name     string            `json:"name"`
	Type     string            `json:"type,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*PersistNode    `json:"children,omitempty"`
}

// NewPersistNode creates an empty node labelled name.
func NewPersistNode(name string) *PersistNode {
	return &PersistNode{Name: name}
}

// SetAttr sets an attribute.
func (n *PersistNode) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// Attr returns an attribute and whether it is present.
func (n *PersistNode) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrKeys returns the attribute names in sorted order.
func (n *PersistNode) AttrKeys() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddChild appends a child node.
func (n *PersistNode) AddChild(child *PersistNode) {
	n.Children = append(n.Children, child)
}

// Child returns the first child labelled name, or nil.
func (n *PersistNode) Child(name string) *PersistNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child labelled name, in order.
func (n *PersistNode) ChildrenNamed(name string) []*PersistNode {
	var result []*PersistNode
	for _, c := range n.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// Configuration returns the attributes as a configuration map.
func (n *PersistNode) Configuration() Configuration {
	c := make(Configuration, len(n.Attrs))
	for k, v := range n.Attrs {
		c[k] = v
	}
	return c
}

// Equal reports deep structural equality.
func (n *PersistNode) Equal(o *PersistNode) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.Type != o.Type || len(n.Attrs) != len(o.Attrs) || len(n.Children) != len(o.Children) {
		return false
	}
	for k, v := range n.Attrs {
		if ov, ok := o.Attrs[k]; !ok || ov != v {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// MarshalXML writes the node as an element named after its label, attributes sorted.
func (n *PersistNode) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: n.Name}
	start.Attr = nil
	if n.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: TypeAttr}, Value: n.Type})
	}
	for _, k := range n.AttrKeys() {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: n.Attrs[k]})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := e.EncodeElement(child, xml.StartElement{Name: xml.Name{Local: child.Name}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads an element, its attributes and child elements. Character data is ignored.
func (n *PersistNode) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local
	for _, a := range start.Attr {
		if a.Name.Local == TypeAttr {
			n.Type = a.Value
			continue
		}
		n.SetAttr(a.Name.Local, a.Value)
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &PersistNode{}
			if err := d.DecodeElement(child, &t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}
