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

package maps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type User struct {
	Username string
	Age      int
	Address  Address
	Hobbies  []string
}

type Address struct {
	Detail string
}

func TestMap2Struct(t *testing.T) {
	m := make(map[string]interface{})
	m["userName"] = "lala"
	m["Age"] = float64(5)
	m["Address"] = Address{"test"}
	m["Hobbies"] = []string{"c"}
	var user User
	user.Hobbies = []string{"a", "b"}
	_ = Map2Struct(m, &user)
	assert.Equal(t, "lala", user.Username)
	assert.Equal(t, 5, user.Age)
	assert.Equal(t, "test", user.Address.Detail)
	assert.Equal(t, 1, len(user.Hobbies))

	// Test with non-pointer output
	var userNonPointer User
	err := Map2Struct(m, userNonPointer)
	assert.NotNil(t, err)

	// Test with nil input
	var userNilInput User
	err = Map2Struct(nil, &userNilInput)
	assert.Nil(t, err)
	assert.Equal(t, "", userNilInput.Username)
}

type matcherConfig struct {
	Pattern   string
	MatchCase bool
	Min       int64
	Timeout   time.Duration
}

func TestWeakMap2Struct(t *testing.T) {
	var cfg matcherConfig
	err := WeakMap2Struct(map[string]interface{}{
		"pattern":   "cat",
		"matchCase": "true",
		"min":       "-12",
		"timeout":   "5s",
	}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, "cat", cfg.Pattern)
	assert.True(t, cfg.MatchCase)
	assert.Equal(t, int64(-12), cfg.Min)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	err = WeakMap2Struct(map[string]interface{}{"min": "abc"}, &cfg)
	assert.Error(t, err)
}

func TestStruct2Map(t *testing.T) {
	m, err := Struct2Map(matcherConfig{Pattern: "cat", MatchCase: true, Min: 3, Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "cat", m["Pattern"])
	assert.Equal(t, true, m["MatchCase"])
	assert.Equal(t, int64(3), m["Min"])
	assert.Equal(t, "1s", m["Timeout"])

	var back matcherConfig
	require.NoError(t, WeakMap2Struct(m, &back))
	assert.Equal(t, matcherConfig{Pattern: "cat", MatchCase: true, Min: 3, Timeout: time.Second}, back)
}
