/*
 * Copyright 2023 The RuleGo Authors.
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

package js

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
)

func TestJsEngine(t *testing.T) {
	config := types.NewConfig()
	config.RegisterUdf("add", func(a, b int) int {
		return a + b
	})
	config.RegisterUdf("isShort", "function isShort(s) { return s.length < 4; }")

	jsEngine, err := NewGojaJsEngine(config, `function Match(value) { return isShort(value) && add(1, 2) === 3 && prefix === "x"; }`,
		map[string]interface{}{"prefix": "x"})
	require.NoError(t, err)

	out, err := jsEngine.Execute("Match", "cat")
	require.NoError(t, err)
	assert.Equal(t, true, out)

	out, err = jsEngine.Execute("Match", "horse")
	require.NoError(t, err)
	assert.Equal(t, false, out)

	_, err = jsEngine.Execute("NoSuch")
	assert.Error(t, err)
}

func TestJsEngineConcurrent(t *testing.T) {
	jsEngine, err := NewGojaJsEngine(types.NewConfig(), `function Compare(a, b) { return a < b ? -1 : (a > b ? 1 : 0); }`, nil)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := jsEngine.Execute("Compare", "a", "b")
			assert.NoError(t, err)
			assert.Equal(t, int64(-1), out)
		}()
	}
	wg.Wait()
}

func TestJsEngineErrors(t *testing.T) {
	_, err := NewGojaJsEngine(types.NewConfig(), `function Match(value) {`, nil)
	assert.Error(t, err)

	_, err = NewGojaJsEngine(types.NewConfig(), `throw new Error("init")`, nil)
	assert.Error(t, err)

	config := types.NewConfig(types.WithLogger(types.DiscardLogger()), types.WithScriptMaxExecutionTime(100*time.Millisecond))
	jsEngine, err := NewGojaJsEngine(config, `function Loop() { while (true) {} } function Ok() { return 1; }`, nil)
	require.NoError(t, err)
	_, err = jsEngine.Execute("Loop")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "execution timeout"))

	// the interrupted vm is usable again
	out, err := jsEngine.Execute("Ok")
	require.NoError(t, err)
	assert.Equal(t, int64(1), out)
}
