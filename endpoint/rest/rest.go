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

// Package rest exposes views over HTTP: component listing, CRUD of persisted view
// definitions, applying a view to the server's records and websocket progress streaming.
//
//	GET    /api/v1/components
//	GET    /api/v1/views
//	POST   /api/v1/views
//	GET    /api/v1/views/:id
//	PUT    /api/v1/views/:id
//	DELETE /api/v1/views/:id
//	GET    /api/v1/views/:id/items?offset=0&size=100
//	GET    /api/v1/views/:id/ws
//	POST   /api/v1/highlight
package rest

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/engine"
	"github.com/rulego/sift/store"
	"github.com/rulego/sift/utils/cache"
	"github.com/rulego/sift/utils/runtime"
)

const (
	ContentTypeKey  = "Content-Type"
	JsonContextType = "application/json"
	XmlContextType  = "application/xml"
	// ApiPrefix 接口路径前缀
	ApiPrefix = "/api/v1"
)

// ErrNoData is returned when applying a view without a DataAccess.
var ErrNoData = errors.New("no data access configured")

// Config Rest 服务配置
type Config struct {
	Addr        string
	CertFile    string
	CertKeyFile string
	// ResultTTL 应用结果的缓存时间，0表示不缓存
	ResultTTL time.Duration
	// MaxPageSize 分页最大条数
	MaxPageSize int
}

// Option configures a Server.
type Option func(*Server)

// WithEngineConfig sets the configuration used to restore views and matchers.
func WithEngineConfig(config types.Config) Option {
	return func(s *Server) {
		s.engineConfig = config
	}
}

// WithStore sets the view definition store.
func WithStore(st store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithBindContext sets the collaborators views are bound to.
func WithBindContext(ctx types.BindContext) Option {
	return func(s *Server) {
		s.ctx = ctx
	}
}

// WithRoots sets the function listing the records views are applied to.
// It defaults to the Ids method of the DataAccess, if any.
func WithRoots(roots func() []types.RecordId) Option {
	return func(s *Server) {
		s.roots = roots
	}
}

// WithPool sets the pool holding restored views.
func WithPool(pool *engine.Pool) Option {
	return func(s *Server) {
		s.pool = pool
	}
}

// Server Rest 服务
type Server struct {
	Config       Config
	engineConfig types.Config
	ctx          types.BindContext
	store        store.Store
	pool         *engine.Pool
	runner       *engine.Runner
	roots        func() []types.RecordId
	results      *cache.Cache[[]types.PathItem]
	router       *httprouter.Router
	upgrader     websocket.Upgrader
	server       *http.Server
	logger       types.Logger
}

// NewServer creates a server and registers its routes.
func NewServer(config Config, opts ...Option) *Server {
	if config.MaxPageSize <= 0 {
		config.MaxPageSize = 1000
	}
	s := &Server{
		Config:       config,
		engineConfig: engine.NewConfig(),
		pool:         engine.NewPool(),
		results:      cache.New[[]types.PathItem](time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = types.NewLogger(s.engineConfig.Logger)
	if s.ctx.Logger == nil {
		s.ctx.Logger = s.logger
	}
	if s.roots == nil {
		if lister, ok := s.ctx.DataAccess.(interface{ Ids() []types.RecordId }); ok {
			s.roots = lister.Ids
		}
	}
	s.runner = engine.NewRunner(s.engineConfig)
	s.router = httprouter.New()
	s.routes()
	s.server = &http.Server{Addr: config.Addr, Handler: s.router}
	return s
}

func (s *Server) routes() {
	s.router.GET(ApiPrefix+"/components", s.handle(s.listComponents))
	s.router.GET(ApiPrefix+"/views", s.handle(s.listViews))
	s.router.POST(ApiPrefix+"/views", s.handle(s.createView))
	s.router.GET(ApiPrefix+"/views/:id", s.handle(s.getView))
	s.router.PUT(ApiPrefix+"/views/:id", s.handle(s.updateView))
	s.router.DELETE(ApiPrefix+"/views/:id", s.handle(s.deleteView))
	s.router.GET(ApiPrefix+"/views/:id/items", s.handle(s.viewItems))
	s.router.GET(ApiPrefix+"/views/:id/ws", s.handle(s.viewProgress))
	s.router.POST(ApiPrefix+"/highlight", s.handle(s.highlight))
}

// Router returns the router, for mounting extra handlers.
func (s *Server) Router() *httprouter.Router {
	return s.router
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Config.Addr and blocks until the server stops.
func (s *Server) Start() error {
	var err error
	if s.Config.CertKeyFile != "" && s.Config.CertFile != "" {
		s.logger.Printf("starting server with TLS on %s", s.Config.Addr)
		err = s.server.ListenAndServeTLS(s.Config.CertFile, s.Config.CertKeyFile)
	} else {
		s.logger.Printf("starting server on %s", s.Config.Addr)
		err = s.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Refresh drops every cached view and result, so the next request restores and applies the
// stored definitions again.
func (s *Server) Refresh() {
	s.pool.Stop()
	s.results.DeleteByPrefix("")
}

// Stop shuts the server down and stops the result cache collector.
func (s *Server) Stop(ctx context.Context) error {
	s.results.StopGC()
	return s.server.Shutdown(ctx)
}

// statusWriter 记录响应状态码
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack 支持websocket升级
func (w *statusWriter) Hijack() (c net.Conn, rw *bufio.ReadWriter, err error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		w.status = http.StatusSwitchingProtocols
		return h.Hijack()
	}
	return nil, nil, errors.New("hijack not supported")
}

// handle 捕捉异常并记录请求日志
func (s *Server) handle(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if e := recover(); e != nil {
				s.logger.Printf("rest handler err :%v", runtime.Recover(e))
				sw.WriteHeader(http.StatusInternalServerError)
			}
			s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, sw.status, time.Since(start))
		}()
		h(sw, r, params)
	}
}
