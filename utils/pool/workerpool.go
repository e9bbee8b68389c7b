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

// Package pool provides the goroutine pool engine.Runner executes passes on.
//
// Note: This file is inspired by:
// Valyala, A. (2023) workerpool.go (Version 1.48.0)
// [Source code]. https://github.com/valyala/fasthttp/blob/master/workerpool.go
// 1.Change the Serve(c net.Conn) method to Submit(fn func()) error method
package pool

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

// ErrNoIdleWorkers 所有worker都忙且已达到上限
var ErrNoIdleWorkers = errors.New("no idle workers")

// DefaultMaxIdleWorkerDuration 默认worker最大空闲时间
const DefaultMaxIdleWorkerDuration = 10 * time.Second

// WorkerPool serves submitted functions using a pool of workers in FILO order.
// The most recently released worker serves the next function.
//
//	wp := &WorkerPool{MaxWorkersCount: 100}
//	wp.Start()
//	defer wp.Stop()
//	err := wp.Submit(func() {...})
type WorkerPool struct {
	// MaxWorkersCount 最大worker数量
	MaxWorkersCount int
	// MaxIdleWorkerDuration 空闲超过该时间的worker会被回收，默认10秒
	MaxIdleWorkerDuration time.Duration

	lock         sync.Mutex
	workersCount int
	mustStop     bool
	ready        []*workerChan
	stopCh       chan struct{}
	startOnce    sync.Once
}

type workerChan struct {
	lastUseTime time.Time
	ch          chan func()
}

// NewWorkerPool creates and starts a pool.
func NewWorkerPool(maxWorkersCount int) *WorkerPool {
	wp := &WorkerPool{MaxWorkersCount: maxWorkersCount}
	wp.Start()
	return wp
}

// Start starts the idle worker cleaner. Calling Start more than once has no effect.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		wp.lock.Lock()
		wp.mustStop = false
		wp.stopCh = make(chan struct{})
		stopCh := wp.stopCh
		wp.lock.Unlock()
		go func() {
			var scratch []*workerChan
			for {
				wp.clean(&scratch)
				select {
				case <-stopCh:
					return
				case <-time.After(wp.getMaxIdleWorkerDuration()):
				}
			}
		}()
	})
}

// Stop stops idle workers; busy workers exit after finishing their function.
func (wp *WorkerPool) Stop() {
	wp.lock.Lock()
	defer wp.lock.Unlock()
	if wp.stopCh == nil {
		return
	}
	close(wp.stopCh)
	wp.stopCh = nil
	for _, ch := range wp.ready {
		ch.ch <- nil
	}
	wp.ready = nil
	wp.mustStop = true
}

// Release stops the pool. A released pool runs each later Submit on a new goroutine.
func (wp *WorkerPool) Release() {
	wp.Stop()
}

func (wp *WorkerPool) getMaxIdleWorkerDuration() time.Duration {
	if wp.MaxIdleWorkerDuration <= 0 {
		return DefaultMaxIdleWorkerDuration
	}
	return wp.MaxIdleWorkerDuration
}

// clean stops workers idle for longer than MaxIdleWorkerDuration. ready is ordered
// by last use, so the expired workers form a prefix.
func (wp *WorkerPool) clean(scratch *[]*workerChan) {
	criticalTime := time.Now().Add(-wp.getMaxIdleWorkerDuration())

	wp.lock.Lock()
	ready := wp.ready
	i := 0
	for i < len(ready) && ready[i].lastUseTime.Before(criticalTime) {
		i++
	}
	*scratch = append((*scratch)[:0], ready[:i]...)
	if i > 0 {
		m := copy(ready, ready[i:])
		for j := m; j < len(ready); j++ {
			ready[j] = nil
		}
		wp.ready = ready[:m]
	}
	wp.lock.Unlock()

	tmp := *scratch
	for j := range tmp {
		tmp[j].ch <- nil
		tmp[j] = nil
	}
}

// Submit runs fn on an idle or new worker. It returns ErrNoIdleWorkers when every
// worker is busy and MaxWorkersCount is reached.
func (wp *WorkerPool) Submit(fn func()) error {
	wp.lock.Lock()
	stopped := wp.mustStop
	wp.lock.Unlock()
	if stopped {
		go fn()
		return nil
	}
	ch := wp.getCh()
	if ch == nil {
		return ErrNoIdleWorkers
	}
	ch.ch <- fn
	return nil
}

var workerChanCap = func() int {
	// 单核时使用阻塞通道，立即切换到worker
	if runtime.GOMAXPROCS(0) == 1 {
		return 0
	}
	return 1
}()

func (wp *WorkerPool) getCh() *workerChan {
	var ch *workerChan
	createWorker := false

	wp.lock.Lock()
	ready := wp.ready
	n := len(ready) - 1
	if n < 0 {
		if wp.workersCount < wp.MaxWorkersCount {
			createWorker = true
			wp.workersCount++
		}
	} else {
		ch = ready[n]
		ready[n] = nil
		wp.ready = ready[:n]
	}
	wp.lock.Unlock()

	if ch == nil {
		if !createWorker {
			return nil
		}
		ch = &workerChan{ch: make(chan func(), workerChanCap)}
		go wp.workerFunc(ch)
	}
	return ch
}

func (wp *WorkerPool) release(ch *workerChan) bool {
	ch.lastUseTime = time.Now()
	wp.lock.Lock()
	defer wp.lock.Unlock()
	if wp.mustStop {
		return false
	}
	wp.ready = append(wp.ready, ch)
	return true
}

func (wp *WorkerPool) workerFunc(ch *workerChan) {
	for fn := range ch.ch {
		if fn == nil {
			break
		}
		fn()
		if !wp.release(ch) {
			break
		}
	}
	wp.lock.Lock()
	wp.workersCount--
	wp.lock.Unlock()
}
