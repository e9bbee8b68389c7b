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

package main

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/ini.v1"
)

// cronParser 与cron.WithSeconds()一致的解析器
var cronParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Config 服务配置
type Config struct {
	// Server http服务器地址
	Server string `ini:"server"`
	// LogFile 日志文件，为空输出到标准输出
	LogFile string `ini:"log_file"`
	// DataFile 记录数据文件，JSON格式
	DataFile string `ini:"data_file"`
	// DictionaryDir 拼写词典目录，每个书写系统一个<ws>.dic文件
	DictionaryDir string `ini:"dictionary_dir"`
	// Format 视图定义格式，xml或json
	Format string `ini:"format"`
	// ScriptMaxExecutionTime 脚本最大执行时间，单位毫秒
	ScriptMaxExecutionTime int `ini:"script_max_execution_time"`
	// PoolSize 执行视图的协程池大小，0表示不使用协程池
	PoolSize int `ini:"pool_size"`
	// ResultTtl 应用结果缓存时间，例如：5m
	ResultTtl string `ini:"result_ttl"`
	// MaxPageSize 分页最大条数
	MaxPageSize int `ini:"max_page_size"`
	// PluginDir Go插件目录，加载其中所有.so文件提供的组件
	PluginDir string `ini:"plugin_dir"`
	// Refresh 定时重新加载词典并清除缓存的cron表达式（支持秒），例如：0 */10 * * * *
	Refresh string `ini:"refresh"`
	// Store 视图存储配置
	Store Store `ini:"store"`
}

// Store 视图存储配置
type Store struct {
	// Type file或者sql
	Type string `ini:"type"`
	// Dir 文件存储目录
	Dir string `ini:"dir"`
	// DriverName sql驱动，mysql或postgres
	DriverName string `ini:"driver_name"`
	// Dsn sql连接配置
	Dsn string `ini:"dsn"`
	// PoolSize 连接池大小
	PoolSize int `ini:"pool_size"`
	// Table 表名
	Table string `ini:"table"`
}

// DefaultConfig 默认配置
var DefaultConfig = Config{
	Server:                 ":9090",
	Format:                 "xml",
	ScriptMaxExecutionTime: 2000,
	PoolSize:               64,
	ResultTtl:              "5m",
	MaxPageSize:            1000,
	Store: Store{
		Type: "file",
		Dir:  "./data/views",
	},
}

// loadConfig 加载配置文件，file为空使用默认配置
func loadConfig(file string) (Config, error) {
	c := DefaultConfig
	if file == "" {
		return c, nil
	}
	cfg, err := ini.Load(file)
	if err != nil {
		return c, err
	}
	if err = cfg.MapTo(&c); err != nil {
		return c, err
	}
	return c, c.check()
}

func (c Config) check() error {
	if c.Format != "xml" && c.Format != "json" {
		return fmt.Errorf("unsupported format=%s", c.Format)
	}
	if c.Store.Type != "file" && c.Store.Type != "sql" {
		return fmt.Errorf("unsupported store type=%s", c.Store.Type)
	}
	if _, err := c.resultTtl(); err != nil {
		return err
	}
	if c.Refresh != "" {
		if _, err := cronParser.Parse(c.Refresh); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) resultTtl() (time.Duration, error) {
	if c.ResultTtl == "" {
		return 0, nil
	}
	return time.ParseDuration(c.ResultTtl)
}
