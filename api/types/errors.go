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
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a type key has no registered factory.
	ErrUnknownType = errors.New("unknown type key")
	// ErrMissingAttribute is returned when a mandatory attribute or child is absent.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrMalformedNode is returned when a persisted node cannot be decoded.
	ErrMalformedNode = errors.New("malformed node")
	// ErrDuplicateFilter is returned when adding a filter equal to one already present.
	ErrDuplicateFilter = errors.New("filter already present")
	// ErrFilterNotFound is returned when removing a filter that is not present.
	ErrFilterNotFound = errors.New("filter not found")
	// ErrNoDictionary is returned by a SpellingProvider without a dictionary for the writing system.
	ErrNoDictionary = errors.New("no spelling dictionary")
	// ErrNotBound is returned when a component is used before Bind supplied a collaborator.
	ErrNotBound = errors.New("component not bound")
)

// RestoreError 恢复失败错误
// RestoreError reports that one persisted node could not be reconstructed.
type RestoreError struct {
	// Node is the label of the failing node.
	Node string
	// Type is its type discriminator.
	Type string
	Err  error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore failed: node=%s type=%s: %v", e.Node, e.Type, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// NewRestoreError wraps err for node, keeping an existing RestoreError as is.
func NewRestoreError(node *PersistNode, err error) error {
	var restoreErr *RestoreError
	if errors.As(err, &restoreErr) {
		return err
	}
	if node == nil {
		return &RestoreError{Err: err}
	}
	return &RestoreError{Node: node.Name, Type: node.Type, Err: err}
}
