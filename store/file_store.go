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

package store

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rulego/sift/utils/fs"
)

var _ Store = (*FileStore)(nil)

// FileStore 每个视图一个文件
type FileStore struct {
	dir string
	ext string
	// locker 串行化同一个存储的写操作
	locker sync.RWMutex
}

// NewFileStore creates a store writing "<id><ext>" files under dir, ext defaulting to ".xml".
// dir is created if missing.
func NewFileStore(dir string, ext string) (*FileStore, error) {
	if ext == "" {
		ext = ".xml"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if err := fs.CreateDirs(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, ext: ext}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+s.ext)
}

func (s *FileStore) Save(_ context.Context, id string, def []byte) (string, error) {
	id, err := resolveId(id)
	if err != nil {
		return "", err
	}
	s.locker.Lock()
	defer s.locker.Unlock()
	return id, fs.SaveFile(s.path(id), def)
}

func (s *FileStore) Get(_ context.Context, id string) ([]byte, error) {
	if err := CheckId(id); err != nil {
		return nil, err
	}
	s.locker.RLock()
	defer s.locker.RUnlock()
	path := s.path(id)
	if !fs.IsExist(path) {
		return nil, ErrNotFound
	}
	if b := fs.LoadFile(path); b != nil {
		return b, nil
	}
	return []byte{}, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := CheckId(id); err != nil {
		return err
	}
	s.locker.Lock()
	defer s.locker.Unlock()
	path := s.path(id)
	if !fs.IsExist(path) {
		return ErrNotFound
	}
	return fs.RemoveFile(path)
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()
	paths, err := fs.GetFilePaths(filepath.Join(s.dir, "*"+s.ext))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, path := range paths {
		// 只包含存储目录下的文件
		if filepath.Dir(path) != filepath.Clean(s.dir) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(filepath.Base(path), s.ext))
	}
	sort.Strings(ids)
	return ids, nil
}
