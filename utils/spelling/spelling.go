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

// Package spelling provides a word-list spelling provider keyed by writing system.
//
// A dictionary file holds one word per line; blank lines and lines starting with '#'
// are ignored. LoadDir registers every "<ws>.dic" file of a directory.
package spelling

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/fs"
)

// DictionaryFileSuffix 字典文件后缀
const DictionaryFileSuffix = ".dic"

// Dictionary is the set of correctly spelled words of one writing system.
// Words are stored NFC-normalized; a lower-case entry also accepts capitalized forms.
type Dictionary struct {
	words map[string]struct{}
	fold  cases.Caser
}

// NewDictionary creates a dictionary containing words.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}), fold: cases.Fold()}
	d.Add(words...)
	return d
}

// Load reads a dictionary, one word per line.
func Load(r io.Reader) (*Dictionary, error) {
	d := NewDictionary()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.Add(line)
	}
	return d, scanner.Err()
}

// Add adds words.
func (d *Dictionary) Add(words ...string) {
	for _, w := range words {
		d.words[norm.NFC.String(w)] = struct{}{}
	}
}

// Contains reports whether word is spelled correctly.
func (d *Dictionary) Contains(word string) bool {
	word = norm.NFC.String(word)
	if _, ok := d.words[word]; ok {
		return true
	}
	_, ok := d.words[d.fold.String(word)]
	return ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Provider implements types.SpellingProvider over registered dictionaries.
type Provider struct {
	dictionaries map[string]*Dictionary
	sync.RWMutex
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	return &Provider{dictionaries: make(map[string]*Dictionary)}
}

// Register sets the dictionary of ws.
func (p *Provider) Register(ws string, d *Dictionary) {
	p.Lock()
	defer p.Unlock()
	p.dictionaries[ws] = d
}

// LoadDir registers every "<ws>.dic" file in dir.
func (p *Provider) LoadDir(dir string) error {
	paths, err := fs.GetFilePaths(filepath.Join(dir, "*"+DictionaryFileSuffix))
	if err != nil {
		return err
	}
	for _, path := range paths {
		d, err := Load(bytes.NewReader(fs.LoadFile(path)))
		if err != nil {
			return err
		}
		p.Register(strings.TrimSuffix(filepath.Base(path), DictionaryFileSuffix), d)
	}
	return nil
}

// Check reports whether word is correctly spelled in ws, or types.ErrNoDictionary.
func (p *Provider) Check(word string, ws string) (bool, error) {
	p.RLock()
	d, ok := p.dictionaries[ws]
	p.RUnlock()
	if !ok {
		return false, types.ErrNoDictionary
	}
	return d.Contains(word), nil
}
