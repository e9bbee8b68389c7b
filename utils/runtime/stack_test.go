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

package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	stackTrace := Stack()
	assert.True(t, strings.Contains(stackTrace, "testing.go"))
	assert.True(t, strings.Contains(stackTrace, ":"))
}

func TestRecover(t *testing.T) {
	err := func() (err error) {
		defer func() {
			if e := recover(); e != nil {
				err = Recover(e)
			}
		}()
		panic("boom")
	}()
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "panic: boom"))
}
