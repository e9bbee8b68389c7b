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
	"strings"
	"sync"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/fs"
	"github.com/rulego/sift/utils/str"
)

// DefaultPool is the default global view pool.
var DefaultPool = &Pool{}

// Callbacks 视图生命周期回调
type Callbacks struct {
	// OnNew is called after a view is created from a definition.
	OnNew func(id string, def []byte)
	// OnDeleted is called after a view is removed from the pool.
	OnDeleted func(id string)
}

// Pool 视图池
// Pool holds restored views by id.
type Pool struct {
	// entries maps view ids to *View.
	entries   sync.Map
	Callbacks Callbacks
	// Logger reports definitions that fail to load, defaulting to types.DefaultLogger().
	Logger types.Logger
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Load restores every view definition found under folderPath and its subfolders.
// A folder without a file pattern loads "*.xml". Definitions that fail to restore are
// logged and skipped.
func (g *Pool) Load(folderPath string, opts ...ViewOption) error {
	if !strings.Contains(folderPath, "*") {
		if strings.HasSuffix(folderPath, "/") || strings.HasSuffix(folderPath, "\\") {
			folderPath = folderPath + "*.xml"
		} else if folderPath == "" {
			folderPath = "./*.xml"
		} else {
			folderPath = folderPath + "/*.xml"
		}
	}
	paths, err := fs.GetFilePaths(folderPath)
	if err != nil {
		return err
	}
	for _, path := range paths {
		b := fs.LoadFile(path)
		if b == nil {
			continue
		}
		if _, err := g.New("", b, opts...); err != nil {
			types.NewLogger(g.Logger).Printf("load view %s error: %v", path, err)
		}
	}
	return nil
}

// New restores a view and stores it in the pool. An existing view with the same id is returned as is.
// An empty id takes the id of the definition.
func (g *Pool) New(id string, def []byte, opts ...ViewOption) (*View, error) {
	if id != "" {
		if v, ok := g.entries.Load(id); ok {
			return v.(*View), nil
		}
	}
	view, err := NewView(id, def, opts...)
	if err != nil {
		return nil, err
	}
	if view.Id() != "" {
		if v, loaded := g.entries.LoadOrStore(view.Id(), view); loaded {
			return v.(*View), nil
		}
	}
	if g.Callbacks.OnNew != nil {
		g.Callbacks.OnNew(view.Id(), def)
	}
	return view, nil
}

// Get returns the view with the given id.
func (g *Pool) Get(id string) (*View, bool) {
	if v, ok := g.entries.Load(id); ok {
		return v.(*View), true
	}
	return nil, false
}

// Del removes the view with the given id.
func (g *Pool) Del(id string) {
	if _, ok := g.entries.LoadAndDelete(id); ok {
		if g.Callbacks.OnDeleted != nil {
			g.Callbacks.OnDeleted(id)
		}
	}
}

// Stop removes every view.
func (g *Pool) Stop() {
	g.entries.Range(func(key, value any) bool {
		g.entries.Delete(key)
		if g.Callbacks.OnDeleted != nil {
			g.Callbacks.OnDeleted(str.ToString(key))
		}
		return true
	})
}

// Range iterates over the views of the pool.
func (g *Pool) Range(f func(key, value any) bool) {
	g.entries.Range(f)
}

func (g *Pool) SetCallbacks(callbacks Callbacks) {
	g.Callbacks = callbacks
}

// Load loads view definitions into the default pool.
func Load(folderPath string, opts ...ViewOption) error {
	return DefaultPool.Load(folderPath, opts...)
}

// New restores a view into the default pool.
func New(id string, def []byte, opts ...ViewOption) (*View, error) {
	return DefaultPool.New(id, def, opts...)
}

// Get returns a view of the default pool.
func Get(id string) (*View, bool) {
	return DefaultPool.Get(id)
}

// Del removes a view from the default pool.
func Del(id string) {
	DefaultPool.Del(id)
}

// Stop removes every view of the default pool.
func Stop() {
	DefaultPool.Stop()
}

// Range iterates over the views of the default pool.
func Range(f func(key, value any) bool) {
	DefaultPool.Range(f)
}
