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

package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/engine"
	"github.com/rulego/sift/store"
	"github.com/rulego/sift/utils/json"
)

// maxBodySize 请求体最大字节数
const maxBodySize = 1 << 20

// Item 视图结果项
type Item struct {
	Key  types.RecordId `json:"key"`
	Root types.RecordId `json:"root"`
	Path string         `json:"path,omitempty"`
}

// ItemsResponse 分页结果
type ItemsResponse struct {
	Id       string `json:"id"`
	Total    int    `json:"total"`
	Offset   int    `json:"offset"`
	Filtered bool   `json:"filtered"`
	Items    []Item `json:"items"`
}

// HighlightRequest 高亮请求，Matcher为JSON格式的持久化节点
type HighlightRequest struct {
	Matcher *types.PersistNode `json:"matcher"`
	Values  []string           `json:"values"`
}

// HighlightResult 单个值的匹配结果
type HighlightResult struct {
	Value   string        `json:"value"`
	Matches bool          `json:"matches"`
	Ranges  []types.Range `json:"ranges,omitempty"`
}

// HighlightResponse 高亮结果
type HighlightResponse struct {
	Valid   bool              `json:"valid"`
	Error   string            `json:"error,omitempty"`
	Results []HighlightResult `json:"results"`
}

func toItems(items []types.PathItem) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		it := Item{Key: item.KeyObject, Root: item.RootObject()}
		if item.PathLength() > 0 {
			it.Path = item.String()
		}
		result = append(result, it)
	}
	return result
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set(ContentTypeKey, JsonContextType)
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// statusOf 错误对应的状态码
func statusOf(err error) int {
	var restoreErr *types.RestoreError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidId), errors.Is(err, engine.ErrEmptyDefinition), errors.As(err, &restoreErr),
		errors.Is(err, types.ErrMalformedNode), errors.Is(err, types.ErrUnknownType), errors.Is(err, types.ErrMissingAttribute):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set(ContentTypeKey, JsonContextType)
	w.WriteHeader(statusOf(err))
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	_, _ = w.Write(b)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodySize))
}

func (s *Server) defContentType() string {
	if _, ok := s.engineConfig.Parser.(*engine.JsonParser); ok {
		return JsonContextType
	}
	return XmlContextType
}

func (s *Server) listComponents(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJson(w, http.StatusOK, s.engineConfig.ComponentsRegistry.GetComponentForms().Values())
}

func (s *Server) listViews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.store == nil {
		writeJson(w, http.StatusOK, []string{})
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJson(w, http.StatusOK, ids)
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	if s.store == nil {
		writeError(w, store.ErrNotFound)
		return
	}
	def, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set(ContentTypeKey, s.defContentType())
	_, _ = w.Write(def)
}

// validate 恢复视图以校验定义
func (s *Server) validate(id string, def []byte) (*engine.View, error) {
	return engine.NewView(id, def, engine.WithConfig(s.engineConfig), engine.WithBindContext(s.ctx))
}

func (s *Server) saveView(w http.ResponseWriter, r *http.Request, id string, status int) {
	if s.store == nil {
		writeError(w, errors.New("no store configured"))
		return
	}
	def, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := s.validate(id, def)
	if err != nil {
		writeError(w, err)
		return
	}
	if id, err = s.store.Save(r.Context(), view.Id(), def); err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(id)
	writeJson(w, status, map[string]string{"id": id})
}

func (s *Server) createView(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.saveView(w, r, "", http.StatusCreated)
}

func (s *Server) updateView(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	s.saveView(w, r, params.ByName("id"), http.StatusOK)
}

func (s *Server) deleteView(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	if s.store == nil {
		writeError(w, store.ErrNotFound)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	s.invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}

// invalidate 删除缓存的视图和结果
func (s *Server) invalidate(id string) {
	s.pool.Del(id)
	s.results.Delete(id)
}

// loadView 从视图池或存储中获取视图
func (s *Server) loadView(r *http.Request, id string) (*engine.View, error) {
	if v, ok := s.pool.Get(id); ok {
		return v, nil
	}
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	def, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return s.pool.New(id, def, engine.WithConfig(s.engineConfig), engine.WithBindContext(s.ctx))
}

// apply 应用视图，结果按Config.ResultTTL缓存
func (s *Server) apply(r *http.Request, view *engine.View, progress types.ProgressSink) ([]types.PathItem, error) {
	if items, ok := s.results.Get(view.Id()); ok {
		return items, nil
	}
	if s.ctx.DataAccess == nil || s.roots == nil {
		return nil, ErrNoData
	}
	if err := s.runner.Apply(r.Context(), view, s.roots(), progress); err != nil {
		return nil, err
	}
	items := view.Items()
	if s.Config.ResultTTL > 0 {
		s.results.Set(view.Id(), items, s.Config.ResultTTL)
	}
	return items, nil
}

func queryInt(r *http.Request, key string, defaultValue int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s=%s", types.ErrMalformedNode, key, v)
	}
	return n, nil
}

func (s *Server) viewItems(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	size, err := queryInt(r, "size", s.Config.MaxPageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if size > s.Config.MaxPageSize {
		size = s.Config.MaxPageSize
	}
	view, err := s.loadView(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	items, err := s.apply(r, view, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, page(id, view.IsFiltered(), items, offset, size))
}

func page(id string, filtered bool, items []types.PathItem, offset, size int) ItemsResponse {
	end := offset + size
	if offset > len(items) {
		offset = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return ItemsResponse{
		Id:       id,
		Total:    len(items),
		Offset:   offset,
		Filtered: filtered,
		Items:    toItems(items[offset:end]),
	}
}

func (s *Server) highlight(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req HighlightRequest
	if err = json.Unmarshal(body, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", types.ErrMalformedNode, err))
		return
	}
	component, err := base.NodeUtils.InitComponent(s.engineConfig, req.Matcher)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := base.As[types.Matcher](req.Matcher, component)
	if err != nil {
		writeError(w, err)
		return
	}
	if err = m.Bind(s.ctx); err != nil {
		writeError(w, err)
		return
	}
	resp := HighlightResponse{Valid: m.IsValid(), Results: []HighlightResult{}}
	if !resp.Valid {
		resp.Error = m.ErrorMessage()
		writeJson(w, http.StatusOK, resp)
		return
	}
	highlighter, _ := m.(types.Highlighter)
	for _, value := range req.Values {
		result := HighlightResult{Value: value, Matches: m.Matches(types.NewText(value))}
		if highlighter != nil && result.Matches {
			result.Ranges = highlighter.MatchRanges(value)
		}
		resp.Results = append(resp.Results, result)
	}
	writeJson(w, http.StatusOK, resp)
}
