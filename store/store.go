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

// Package store persists view definitions, either as one file per view (FileStore)
// or as rows of a SQL table (SqlStore).
package store

import (
	"context"
	"errors"
	"regexp"

	"github.com/gofrs/uuid/v5"
)

var (
	// ErrNotFound is returned when no definition is stored under an id.
	ErrNotFound = errors.New("view not found")
	// ErrInvalidId is returned for ids that are not usable as keys.
	ErrInvalidId = errors.New("invalid view id")
)

// idPattern 视图id只能包含字母、数字、下划线、点和横线
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// Store 视图定义存储
type Store interface {
	// Save stores def under id and returns the id. An empty id is replaced by a new one.
	Save(ctx context.Context, id string, def []byte) (string, error)
	// Get returns the definition stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)
	// Delete removes id. Deleting a missing id returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// List returns every stored id in ascending order.
	List(ctx context.Context) ([]string, error)
}

// NewId generates a view id.
func NewId() string {
	id, _ := uuid.NewV4()
	return id.String()
}

// CheckId validates id.
func CheckId(id string) error {
	if !idPattern.MatchString(id) || id == "." || id == ".." {
		return ErrInvalidId
	}
	return nil
}

func resolveId(id string) (string, error) {
	if id == "" {
		return NewId(), nil
	}
	return id, CheckId(id)
}
