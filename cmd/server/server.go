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

// Command server serves views over the records of a JSON data file.
//
//	server -c config.ini
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/endpoint/rest"
	"github.com/rulego/sift/engine"
	"github.com/rulego/sift/store"
	"github.com/rulego/sift/utils/collation"
	"github.com/rulego/sift/utils/fs"
	"github.com/rulego/sift/utils/memdata"
	"github.com/rulego/sift/utils/pool"
	"github.com/rulego/sift/utils/spelling"
)

const (
	version = "1.0.0"
)

var (
	//是否是查询版本
	ver bool
	//配置文件
	configFile string
)

func init() {
	flag.StringVar(&configFile, "c", "", "配置文件")
	flag.BoolVar(&ver, "v", false, "打印版本")
}

func main() {
	flag.Parse()

	if ver {
		fmt.Printf("Sift Server v%s", version)
		os.Exit(0)
	}

	c, err := loadConfig(configFile)
	if err != nil {
		log.Fatal("error:", err)
	}
	logger, closeLogger := initLogger(c)
	defer closeLogger()
	logger.Printf("use config file=%s \n", configFile)

	server, release, err := newServer(c, logger)
	if err != nil {
		logger.Fatal("setup server error:", err)
	}
	defer release()

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("error:", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	// 监听系统信号，包括中断信号和终止信号
	signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Println("stop server error:", err)
	}
	logger.Println("stopped server")
}

// 初始化日志记录器
func initLogger(c Config) (*log.Logger, func()) {
	if c.LogFile == "" {
		return log.New(os.Stdout, "", log.LstdFlags), func() {}
	}
	f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatal(err)
	}
	return log.New(f, "", log.LstdFlags), func() {
		_ = f.Close()
	}
}

// loadData 加载记录数据，文件为空返回空数据
func loadData(file string) (*memdata.Store, error) {
	if file == "" {
		return memdata.New(), nil
	}
	if !fs.IsExist(file) {
		return nil, fmt.Errorf("data file not found: %s", file)
	}
	return memdata.Load(bytes.NewReader(fs.LoadFile(file)))
}

// loadPlugins 注册插件目录下每个.so文件的组件，插件名为去掉扩展名的文件名
func loadPlugins(dir string, registry *engine.ComponentRegistry, logger types.Logger) error {
	if dir == "" {
		return nil
	}
	if !fs.IsExist(dir) {
		return fmt.Errorf("plugin dir not found: %s", dir)
	}
	paths, err := fs.GetFilePaths(filepath.Join(dir, "*.so"))
	if err != nil {
		return err
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := registry.RegisterPlugin(name, path); err != nil {
			return fmt.Errorf("load plugin %s error: %w", path, err)
		}
		logger.Printf("loaded plugin %s from %s", name, path)
	}
	return nil
}

// newStore 创建视图存储，返回的函数关闭存储
func newStore(c Config) (store.Store, func(), error) {
	if c.Store.Type == "sql" {
		s, err := store.NewSqlStore(context.Background(), store.SqlStoreConfiguration{
			DriverName: c.Store.DriverName,
			Dsn:        c.Store.Dsn,
			PoolSize:   c.Store.PoolSize,
			Table:      c.Store.Table,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			_ = s.Close()
		}, nil
	}
	s, err := store.NewFileStore(c.Store.Dir, "."+c.Format)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {}, nil
}

// newServer 根据配置创建服务，返回的函数释放协程池和存储
func newServer(c Config, logger types.Logger) (*rest.Server, func(), error) {
	if err := loadPlugins(c.PluginDir, engine.Registry, logger); err != nil {
		return nil, nil, err
	}
	data, err := loadData(c.DataFile)
	if err != nil {
		return nil, nil, err
	}
	dictionaries := spelling.NewProvider()
	if c.DictionaryDir != "" {
		if err = dictionaries.LoadDir(c.DictionaryDir); err != nil {
			return nil, nil, err
		}
	}
	st, closeStore, err := newStore(c)
	if err != nil {
		return nil, nil, err
	}
	ttl, _ := c.resultTtl()

	opts := []types.Option{
		types.WithLogger(logger),
		types.WithScriptMaxExecutionTime(time.Duration(c.ScriptMaxExecutionTime) * time.Millisecond),
	}
	if c.Format == "json" {
		opts = append(opts, types.WithParser(&engine.JsonParser{}))
	}
	var wp *pool.WorkerPool
	if c.PoolSize > 0 {
		wp = pool.NewWorkerPool(c.PoolSize)
		opts = append(opts, types.WithPool(wp))
	}

	server := rest.NewServer(rest.Config{
		Addr:        c.Server,
		ResultTTL:   ttl,
		MaxPageSize: c.MaxPageSize,
	},
		rest.WithEngineConfig(engine.NewConfig(opts...)),
		rest.WithStore(st),
		rest.WithBindContext(types.BindContext{
			DataAccess: data,
			Collator:   collation.New(),
			Spelling:   dictionaries,
			Logger:     logger,
		}),
	)
	logger.Printf("loaded %d records from %s", data.Len(), c.DataFile)

	release := func() {
		if wp != nil {
			wp.Release()
		}
		closeStore()
	}
	if c.Refresh == "" {
		return server, release, nil
	}
	scheduler := cron.New(cron.WithParser(cronParser))
	if _, err = scheduler.AddFunc(c.Refresh, func() {
		refresh(c, dictionaries, server, logger)
	}); err != nil {
		release()
		return nil, nil, err
	}
	scheduler.Start()
	return server, func() {
		scheduler.Stop()
		release()
	}, nil
}

// refresh 重新加载词典，清除缓存的视图和结果
func refresh(c Config, dictionaries *spelling.Provider, server *rest.Server, logger types.Logger) {
	if c.DictionaryDir != "" {
		if err := dictionaries.LoadDir(c.DictionaryDir); err != nil {
			logger.Printf("reload dictionaries error: %v", err)
			return
		}
	}
	server.Refresh()
}
