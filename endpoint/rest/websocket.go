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
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/json"
)

// 进度事件类型
const (
	EventPercent = "percent"
	EventMessage = "message"
	EventDone    = "done"
	EventError   = "error"
)

// ProgressEvent websocket进度事件
type ProgressEvent struct {
	Type    string         `json:"type"`
	Percent int            `json:"percent,omitempty"`
	Message string         `json:"message,omitempty"`
	Result  *ItemsResponse `json:"result,omitempty"`
}

// wsProgress 把进度写到websocket连接
type wsProgress struct {
	conn   *websocket.Conn
	logger types.Logger
	// 最后发送的百分比
	last   int
	locker sync.Mutex
}

func (p *wsProgress) write(event ProgressEvent) {
	b, err := json.Marshal(event)
	if err != nil {
		return
	}
	p.locker.Lock()
	defer p.locker.Unlock()
	if err = p.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		p.logger.Printf("write: %v", err)
	}
}

func (p *wsProgress) SetPercentDone(percent int) {
	if percent == p.last {
		return
	}
	p.last = percent
	p.write(ProgressEvent{Type: EventPercent, Percent: percent})
}

func (p *wsProgress) SetMessage(message string) {
	p.write(ProgressEvent{Type: EventMessage, Message: message})
}

// viewProgress 通过websocket应用视图：依次推送进度事件，最后推送第一页结果
func (s *Server) viewProgress(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := params.ByName("id")
	view, err := s.loadView(r, id)
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
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	progress := &wsProgress{conn: conn, logger: s.logger}
	items, err := s.apply(r, view, progress)
	if err != nil {
		progress.write(ProgressEvent{Type: EventError, Message: err.Error()})
	} else {
		result := page(id, view.IsFiltered(), items, 0, size)
		progress.write(ProgressEvent{Type: EventDone, Percent: 100, Result: &result})
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
