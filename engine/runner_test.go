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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/test"
	"github.com/rulego/sift/utils/pool"
)

// fullPool 总是返回协程池已满
type fullPool struct {
}

func (p *fullPool) Submit(func()) error {
	return pool.ErrNoIdleWorkers
}

func (p *fullPool) Release() {
}

func TestRunner(t *testing.T) {
	wp := pool.NewWorkerPool(2)
	defer wp.Release()

	for _, config := range []types.Config{
		quietConfig(),
		quietConfig(types.WithPool(wp)),
		quietConfig(types.WithPool(&fullPool{})),
	} {
		runner := NewRunner(config)
		ran := false
		require.NoError(t, runner.Run(context.Background(), "noop", func() error {
			ran = true
			return nil
		}))
		assert.True(t, ran)

		errBoom := errors.New("boom")
		err := runner.Run(context.Background(), "failing", func() error {
			return errBoom
		})
		assert.True(t, errors.Is(err, errBoom))
		assert.Equal(t, "failing: boom", err.Error())

		err = runner.Run(context.Background(), "panicking", func() error {
			panic("oops")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panicking: panic: oops")
	}
}

func TestRunnerContext(t *testing.T) {
	runner := NewRunner(quietConfig())
	release := make(chan struct{})
	defer close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := runner.Run(ctx, "blocked", func() error {
		<-release
		return nil
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRunnerApply(t *testing.T) {
	wp := pool.NewWorkerPool(1)
	defer wp.Release()
	runner := NewRunner(quietConfig(types.WithPool(wp)))
	v := newLexiconView(t, nounsDef)

	progress := &test.ProgressRecorder{}
	require.NoError(t, runner.Apply(context.Background(), v, []types.RecordId{1, 2}, progress))
	assert.Equal(t, []types.RecordId{1, 2}, keys(v.Items()))
	assert.Equal(t, MsgDone, progress.Messages[len(progress.Messages)-1])

	require.NoError(t, runner.Add(context.Background(), v, []types.RecordId{4}))
	assert.Equal(t, []types.RecordId{4, 1, 2}, keys(v.Items()))
}
