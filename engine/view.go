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
	"fmt"
	"sync"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/components/filter"
)

// 进度消息
const (
	MsgCollecting = "collecting records"
	MsgSorting    = "sorting records"
	MsgDone       = "done"
)

// ErrEmptyDefinition is returned when restoring a view from empty bytes.
var ErrEmptyDefinition = errors.New("view definition is empty")

// ViewOption configures a View.
type ViewOption func(*View) error

// WithConfig sets the engine configuration used for restore and persist.
func WithConfig(config types.Config) ViewOption {
	return func(v *View) error {
		if config.Parser == nil {
			config.Parser = &XmlParser{}
		}
		if config.ComponentsRegistry == nil {
			config.ComponentsRegistry = Registry
		}
		v.config = config
		return nil
	}
}

// WithBindContext binds the restored filter and sorter to ctx.
func WithBindContext(ctx types.BindContext) ViewOption {
	return func(v *View) error {
		v.ctx = &ctx
		return nil
	}
}

// WithName sets the display name of the view.
func WithName(name string) ViewOption {
	return func(v *View) error {
		v.name = name
		return nil
	}
}

// View 视图
// View is a working list: the items produced by the last Apply, and the filter and sorter
// that produced them. A nil filter accepts everything; a nil sorter keeps collection order.
type View struct {
	id     string
	name   string
	config types.Config
	ctx    *types.BindContext

	filter types.RecordFilter
	sorter types.RecordSorter
	items  []types.PathItem

	locker sync.RWMutex
}

// NewView creates a view. def is a persisted view definition and may be nil.
// An empty id takes the id attribute of the definition.
func NewView(id string, def []byte, opts ...ViewOption) (*View, error) {
	v := &View{id: id, config: NewConfig()}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	if def != nil {
		if err := v.Reload(def); err != nil {
			return nil, err
		}
	}
	if v.ctx != nil {
		if err := v.Bind(*v.ctx); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Id returns the view id.
func (v *View) Id() string {
	return v.id
}

// Name returns the display name.
func (v *View) Name() string {
	v.locker.RLock()
	defer v.locker.RUnlock()
	return v.name
}

// Config returns the engine configuration.
func (v *View) Config() types.Config {
	return v.config
}

// Reload decodes def with the configured parser and restores the view from it.
// The view is unchanged on error.
func (v *View) Reload(def []byte) error {
	if len(def) == 0 {
		return ErrEmptyDefinition
	}
	node, err := v.config.Parser.Decode(def)
	if err != nil {
		return err
	}
	return v.RestoreNode(node)
}

// RestoreNode restores the filter and sorter from a view node. Bind is not called.
func (v *View) RestoreNode(node *types.PersistNode) error {
	if node == nil || node.Name != types.NodeView {
		return types.NewRestoreError(node, fmt.Errorf("%w: expected <%s>", types.ErrMalformedNode, types.NodeView))
	}
	var f types.RecordFilter
	var s types.RecordSorter
	var err error
	if node.Child(types.NodeFilter) != nil {
		if f, err = base.InitChildAs[types.RecordFilter](v.config, node, types.NodeFilter); err != nil {
			return err
		}
	}
	if node.Child(types.NodeSorter) != nil {
		if s, err = base.InitChildAs[types.RecordSorter](v.config, node, types.NodeSorter); err != nil {
			return err
		}
	}
	v.locker.Lock()
	defer v.locker.Unlock()
	if id, ok := node.Attr(AttrId); ok && v.id == "" {
		v.id = id
	}
	if name, ok := node.Attr(AttrName); ok {
		v.name = name
	}
	v.filter = f
	v.sorter = s
	v.items = nil
	return nil
}

// Persist writes the view definition into a new node.
func (v *View) Persist() (*types.PersistNode, error) {
	v.locker.RLock()
	defer v.locker.RUnlock()
	node := types.NewPersistNode(types.NodeView)
	if v.id != "" {
		node.SetAttr(AttrId, v.id)
	}
	if v.name != "" {
		node.SetAttr(AttrName, v.name)
	}
	if v.filter != nil {
		if err := base.NodeUtils.PersistChild(node, types.NodeFilter, v.filter); err != nil {
			return nil, err
		}
	}
	if v.sorter != nil {
		if err := base.NodeUtils.PersistChild(node, types.NodeSorter, v.sorter); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// DSL returns the view definition encoded with the configured parser.
func (v *View) DSL() ([]byte, error) {
	node, err := v.Persist()
	if err != nil {
		return nil, err
	}
	return v.config.Parser.Encode(node)
}

// Bind supplies the live collaborators to the filter and sorter.
// Components added later with SetFilter, AddFilter or SetSorter are bound to the same context.
func (v *View) Bind(ctx types.BindContext) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	if ctx.Logger == nil {
		ctx.Logger = v.config.Logger
	}
	v.ctx = &ctx
	return base.NodeUtils.Bind(ctx, v.filter, v.sorter)
}

func (v *View) bind(components ...types.Component) error {
	if v.ctx == nil {
		return nil
	}
	return base.NodeUtils.Bind(*v.ctx, components...)
}

// Filter returns the current filter, or nil.
func (v *View) Filter() types.RecordFilter {
	v.locker.RLock()
	defer v.locker.RUnlock()
	return v.filter
}

// Sorter returns the current sorter, or nil.
func (v *View) Sorter() types.RecordSorter {
	v.locker.RLock()
	defer v.locker.RUnlock()
	return v.sorter
}

// SetFilter replaces the filter. The items are kept until the next Apply.
func (v *View) SetFilter(f types.RecordFilter) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	if err := v.bind(f); err != nil {
		return err
	}
	v.filter = f
	return nil
}

// AddFilter narrows the current filter with f, combining both in an AndFilter.
func (v *View) AddFilter(f types.RecordFilter) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	if err := v.bind(f); err != nil {
		return err
	}
	switch current := v.filter.(type) {
	case nil:
		v.filter = f
	case *filter.AndFilter:
		return current.Add(f)
	default:
		if current.SameFilter(f) {
			return types.ErrDuplicateFilter
		}
		v.filter = filter.NewAndFilter(current, f)
	}
	return nil
}

// RemoveFilter removes f from the current filter.
func (v *View) RemoveFilter(f types.RecordFilter) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	switch current := v.filter.(type) {
	case nil:
		return types.ErrFilterNotFound
	case *filter.AndFilter:
		if err := current.Remove(f); err != nil {
			return err
		}
		if len(current.Filters) == 0 {
			v.filter = nil
		}
		return nil
	default:
		if !current.SameFilter(f) {
			return types.ErrFilterNotFound
		}
		v.filter = nil
		return nil
	}
}

// SetSorter replaces the sorter and reports whether the roots must be collected again.
// A sorter compatible with the previous one expands roots into the same items, so Resort
// is enough to reorder the current items.
func (v *View) SetSorter(s types.RecordSorter) (bool, error) {
	v.locker.Lock()
	defer v.locker.Unlock()
	if err := v.bind(s); err != nil {
		return false, err
	}
	recollect := true
	if v.sorter != nil && s != nil {
		recollect = !v.sorter.CompatibleSorter(s)
	} else if v.sorter == nil && s == nil {
		recollect = false
	}
	v.sorter = s
	return recollect, nil
}

// Resort sorts the current items again without collecting them.
func (v *View) Resort(progress types.ProgressSink) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	if v.sorter == nil {
		return nil
	}
	items := make([]types.PathItem, len(v.items))
	copy(items, v.items)
	message(progress, MsgSorting)
	if err := v.sorter.Sort(items, progress); err != nil {
		return err
	}
	v.items = items
	message(progress, MsgDone)
	return nil
}

// IsFiltered reports whether a user visible filter narrows the view.
func (v *View) IsFiltered() bool {
	v.locker.RLock()
	defer v.locker.RUnlock()
	return v.filter != nil && v.filter.IsUserVisible()
}

// Items returns a copy of the current items.
func (v *View) Items() []types.PathItem {
	v.locker.RLock()
	defer v.locker.RUnlock()
	items := make([]types.PathItem, len(v.items))
	copy(items, v.items)
	return items
}

// Len returns the number of current items.
func (v *View) Len() int {
	v.locker.RLock()
	defer v.locker.RUnlock()
	return len(v.items)
}

// Apply collects the items of roots, keeps those the filter accepts and sorts them.
// progress may be nil. On error the previous items are kept.
func (v *View) Apply(roots []types.RecordId, progress types.ProgressSink) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	message(progress, MsgCollecting)
	items := v.collect(roots)
	if v.sorter != nil {
		message(progress, MsgSorting)
		if err := v.sorter.Sort(items, progress); err != nil {
			return err
		}
	}
	v.items = items
	message(progress, MsgDone)
	return nil
}

// Add merges the items of new roots into the current items, keeping them ordered.
func (v *View) Add(roots []types.RecordId) error {
	v.locker.Lock()
	defer v.locker.Unlock()
	additions := v.collect(roots)
	if len(additions) == 0 {
		return nil
	}
	if v.sorter == nil {
		v.items = append(v.items, additions...)
		return nil
	}
	if err := v.sorter.Sort(additions, nil); err != nil {
		return err
	}
	merged, err := v.sorter.MergeInto(v.items, additions)
	if err != nil {
		return err
	}
	v.items = merged
	return nil
}

// collect expands roots into items and filters them. The caller holds the lock.
func (v *View) collect(roots []types.RecordId) []types.PathItem {
	var items []types.PathItem
	for _, root := range roots {
		if v.sorter != nil {
			v.sorter.Preload(root)
			items = v.sorter.CollectItems(root, items)
		} else {
			items = append(items, types.NewPathItem(root))
		}
	}
	if v.filter == nil {
		return items
	}
	for _, root := range roots {
		v.filter.Preload(root)
	}
	accepted := items[:0]
	for _, item := range items {
		if v.filter.Accept(item) {
			accepted = append(accepted, item)
		}
	}
	return accepted
}

func message(progress types.ProgressSink, msg string) {
	if progress != nil {
		progress.SetMessage(msg)
	}
}
