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

// Package collation provides locale-aware string ordering for writing systems,
// backed by golang.org/x/text/collate.
package collation

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Provider implements types.Collator with one collator per writing system.
// A writing system id is a BCP 47 tag; unparsable ids use the root collation.
type Provider struct {
	options   []collate.Option
	collators map[string]*collate.Collator
	// collate.Collator is not safe for concurrent use
	sync.Mutex
}

// New creates a provider; opts (collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric...)
// apply to every writing system.
func New(opts ...collate.Option) *Provider {
	return &Provider{
		options:   opts,
		collators: make(map[string]*collate.Collator),
	}
}

// Compare returns -1, 0 or 1.
func (p *Provider) Compare(a, b string, ws string) int {
	p.Lock()
	defer p.Unlock()
	return p.collator(ws).CompareString(a, b)
}

// Key returns the binary sort key of s, usable for bytes.Compare ordering.
func (p *Provider) Key(s string, ws string) []byte {
	p.Lock()
	defer p.Unlock()
	var buf collate.Buffer
	key := p.collator(ws).KeyFromString(&buf, s)
	result := make([]byte, len(key))
	copy(result, key)
	return result
}

func (p *Provider) collator(ws string) *collate.Collator {
	if c, ok := p.collators[ws]; ok {
		return c
	}
	tag, err := language.Parse(ws)
	if err != nil {
		tag = language.Und
	}
	c := collate.New(tag, p.options...)
	p.collators[ws] = c
	return c
}
