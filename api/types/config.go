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
	"time"
)

// Config 引擎配置
// Config defines the configuration shared by every component of a filter/sorter graph.
type Config struct {
	// ScriptMaxExecutionTime is the maximum execution time of one script call, defaulting to 2000 milliseconds.
	ScriptMaxExecutionTime time.Duration
	// Pool runs long passes for engine.Runner. If not configured, a goroutine is used.
	Pool Pool
	// ComponentsRegistry resolves type keys during restore, defaulting to `sift.Registry`.
	ComponentsRegistry ComponentRegistry
	// Parser is the persisted configuration codec, defaulting to `engine.XmlParser`.
	Parser Parser
	// Logger is the logging interface, defaulting to `DefaultLogger()`.
	Logger Logger
	// Udf registers custom Golang functions callable from jsMatch/jsComparer scripts
	// and exprMatch expressions.
	Udf map[string]interface{}
}

// RegisterUdf registers a custom function.
func (c *Config) RegisterUdf(name string, value interface{}) {
	if c.Udf == nil {
		c.Udf = make(map[string]interface{})
	}
	c.Udf[name] = value
}

// NewConfig creates a new Config with default values and applies the provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		ScriptMaxExecutionTime: time.Millisecond * 2000,
		Logger:                 DefaultLogger(),
	}
	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
