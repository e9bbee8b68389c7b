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
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/endpoint/rest"
	"github.com/rulego/sift/engine"
	"github.com/rulego/sift/test"
	"github.com/rulego/sift/utils/fs"
	"github.com/rulego/sift/utils/json"
	"github.com/rulego/sift/utils/spelling"
)

const nounsDef = `<view id="nouns" name="Nouns">
  <filter type="filterBarFilter">
    <finder type="stringProp" prop="LexEntry.HomographNumber"/>
    <matcher type="rangeIntMatch" min="1" max="10"/>
  </filter>
  <sorter type="genericSorter">
    <comparer type="stringFinderComparer" ws="fr">
      <finder type="multiStringProp" prop="LexEntry.CitationForm" ws="fr"/>
    </comparer>
  </sorter>
</view>`

func TestLoadConfig(t *testing.T) {
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig, c)

	dir := t.TempDir()
	file := filepath.Join(dir, "config.ini")
	require.NoError(t, fs.SaveFile(file, []byte(`
server = :9191
data_file = ./data/lexicon.json
format = json
pool_size = 0
result_ttl = 30s

[store]
type = sql
driver_name = postgres
dsn = postgres://localhost/sift
table = views
`)))
	c, err = loadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, ":9191", c.Server)
	assert.Equal(t, "./data/lexicon.json", c.DataFile)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, 0, c.PoolSize)
	// 未配置的项保持默认值
	assert.Equal(t, 2000, c.ScriptMaxExecutionTime)
	assert.Equal(t, 1000, c.MaxPageSize)
	assert.Equal(t, Store{Type: "sql", Dir: "./data/views", DriverName: "postgres", Dsn: "postgres://localhost/sift", Table: "views"}, c.Store)
	ttl, err := c.resultTtl()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)

	require.NoError(t, fs.SaveFile(file, []byte("format = yaml\n")))
	_, err = loadConfig(file)
	assert.EqualError(t, err, "unsupported format=yaml")

	require.NoError(t, fs.SaveFile(file, []byte("[store]\ntype = redis\n")))
	_, err = loadConfig(file)
	assert.EqualError(t, err, "unsupported store type=redis")

	require.NoError(t, fs.SaveFile(file, []byte("result_ttl = soon\n")))
	_, err = loadConfig(file)
	assert.Error(t, err)

	require.NoError(t, fs.SaveFile(file, []byte("refresh = every minute\n")))
	_, err = loadConfig(file)
	assert.Error(t, err)

	require.NoError(t, fs.SaveFile(file, []byte("refresh = 0 */10 * * * *\n")))
	c, err = loadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "0 */10 * * * *", c.Refresh)

	_, err = loadConfig(filepath.Join(dir, "missing.ini"))
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(test.NewLexicon())
	require.NoError(t, err)
	dataFile := filepath.Join(dir, "lexicon.json")
	require.NoError(t, fs.SaveFile(dataFile, data))
	dictDir := filepath.Join(dir, "dic")
	require.NoError(t, fs.CreateDirs(dictDir))
	require.NoError(t, fs.SaveFile(filepath.Join(dictDir, "en.dic"), []byte("feline\ncanine\n")))

	c := DefaultConfig
	c.DataFile = dataFile
	c.DictionaryDir = dictDir
	c.PoolSize = 4
	c.Store.Dir = filepath.Join(dir, "views")
	server, release, err := newServer(c, types.DiscardLogger())
	require.NoError(t, err)
	defer release()

	req := httptest.NewRequest(http.MethodPut, rest.ApiPrefix+"/views/nouns", strings.NewReader(nounsDef))
	req.Header.Set(rest.ContentTypeKey, rest.XmlContextType)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, fs.IsExist(filepath.Join(c.Store.Dir, "nouns.xml")))

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, rest.ApiPrefix+"/views/nouns/items", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp rest.ItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.True(t, resp.Filtered)
	var keys []types.RecordId
	for _, item := range resp.Items {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, []types.RecordId{4, 1, 2}, keys)
}

func TestNewServerErrors(t *testing.T) {
	dir := t.TempDir()
	c := DefaultConfig
	c.Store.Dir = filepath.Join(dir, "views")

	c.DataFile = filepath.Join(dir, "missing.json")
	_, _, err := newServer(c, types.DiscardLogger())
	assert.EqualError(t, err, "data file not found: "+c.DataFile)

	c.DataFile = filepath.Join(dir, "bad.json")
	require.NoError(t, fs.SaveFile(c.DataFile, []byte(`{"records":[{"id":0}]}`)))
	_, _, err = newServer(c, types.DiscardLogger())
	assert.EqualError(t, err, "record id is required")
}

func TestLoadPlugins(t *testing.T) {
	dir := t.TempDir()
	registry := new(engine.ComponentRegistry)
	logger := types.DiscardLogger()
	assert.NoError(t, loadPlugins("", registry, logger))
	assert.NoError(t, loadPlugins(dir, registry, logger))
	assert.Empty(t, registry.GetComponents())

	missing := filepath.Join(dir, "missing")
	assert.EqualError(t, loadPlugins(missing, registry, logger), "plugin dir not found: "+missing)

	// 只加载.so文件
	require.NoError(t, fs.SaveFile(filepath.Join(dir, "readme.txt"), []byte("plugins")))
	assert.NoError(t, loadPlugins(dir, registry, logger))

	require.NoError(t, fs.SaveFile(filepath.Join(dir, "broken.so"), []byte("not a plugin")))
	err := loadPlugins(dir, registry, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.so")
	assert.Empty(t, registry.GetComponents())

	c := DefaultConfig
	c.Store.Dir = filepath.Join(dir, "views")
	c.PluginDir = dir
	_, _, err = newServer(c, logger)
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	dictDir := filepath.Join(dir, "dic")
	require.NoError(t, fs.CreateDirs(dictDir))
	require.NoError(t, fs.SaveFile(filepath.Join(dictDir, "en.dic"), []byte("feline\n")))

	c := DefaultConfig
	c.DictionaryDir = dictDir
	c.Refresh = "@every 1h"
	c.Store.Dir = filepath.Join(dir, "views")
	dictionaries := spelling.NewProvider()
	require.NoError(t, dictionaries.LoadDir(dictDir))
	server, release, err := newServer(c, types.DiscardLogger())
	require.NoError(t, err)
	defer release()

	ok, err := dictionaries.Check("canine", "en")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.SaveFile(filepath.Join(dictDir, "en.dic"), []byte("feline\ncanine\n")))
	refresh(c, dictionaries, server, types.DiscardLogger())
	ok, err = dictionaries.Check("canine", "en")
	require.NoError(t, err)
	assert.True(t, ok)
}
