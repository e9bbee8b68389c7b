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
	"encoding/xml"
	"fmt"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/json"
)

var (
	_ types.Parser = (*XmlParser)(nil)
	_ types.Parser = (*JsonParser)(nil)
)

// XmlParser 默认的XML持久化格式
type XmlParser struct {
}

// Decode 解析XML节点树
func (p *XmlParser) Decode(data []byte) (*types.PersistNode, error) {
	var node types.PersistNode
	if err := xml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedNode, err)
	}
	return &node, nil
}

// Encode 输出带缩进的XML
func (p *XmlParser) Encode(node *types.PersistNode) ([]byte, error) {
	return xml.MarshalIndent(node, "", "  ")
}

// JsonParser Json
type JsonParser struct {
}

// Decode 解析Json节点树
func (p *JsonParser) Decode(data []byte) (*types.PersistNode, error) {
	var node types.PersistNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedNode, err)
	}
	if node.Name == "" {
		return nil, fmt.Errorf("%w: missing node name", types.ErrMalformedNode)
	}
	return &node, nil
}

func (p *JsonParser) Encode(node *types.PersistNode) ([]byte, error) {
	if v, err := json.Marshal(node); err != nil {
		return nil, err
	} else {
		//格式化Json
		return json.Format(v)
	}
}
