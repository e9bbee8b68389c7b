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
	"fmt"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/runtime"
)

// Runner 执行器
// Runner runs long passes on a worker of Config.Pool, or on a new goroutine when
// no pool is configured or the pool is full, and waits for them.
type Runner struct {
	config types.Config
}

// NewRunner creates a runner using config.Pool and config.Logger.
func NewRunner(config types.Config) *Runner {
	return &Runner{config: config}
}

// Run runs task and returns its error, wrapped with name. A panic is returned as an error.
// If ctx is done first Run returns ctx.Err(); the task itself is not interrupted.
func (r *Runner) Run(ctx context.Context, name string, task func() error) error {
	done := make(chan error, 1)
	fn := func() {
		var err error
		defer func() {
			if e := recover(); e != nil {
				err = runtime.Recover(e)
				if r.config.Logger != nil {
					r.config.Logger.Printf("%s panic: %v", name, err)
				}
			}
			done <- err
		}()
		err = task()
	}
	if r.config.Pool != nil {
		if err := r.config.Pool.Submit(fn); err != nil {
			go fn()
		}
	} else {
		go fn()
	}
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Apply runs view.Apply.
func (r *Runner) Apply(ctx context.Context, view *View, roots []types.RecordId, progress types.ProgressSink) error {
	return r.Run(ctx, "apply view "+view.Id(), func() error {
		return view.Apply(roots, progress)
	})
}

// Add runs view.Add.
func (r *Runner) Add(ctx context.Context, view *View, roots []types.RecordId) error {
	return r.Run(ctx, "add to view "+view.Id(), func() error {
		return view.Add(roots)
	})
}
