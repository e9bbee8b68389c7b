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

// Package memdata provides an in-memory types.DataAccess, loadable from JSON.
//
// JSON layout:
//
//	{
//	  "records": [
//	    {
//	      "id": 1,
//	      "strings": {"LexEntry.HomographNumber": "2"},
//	      "multiStrings": {"LexEntry.CitationForm": {"en": "cat"}},
//	      "vectors": {"LexEntry.Senses": [2, 3]},
//	      "objects": {"LexEntry.LexemeForm": 4}
//	    }
//	  ]
//	}
package memdata

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rulego/sift/api/types"
)

// Record is the JSON form of one record.
type Record struct {
	Id           types.RecordId                     `json:"id"`
	Strings      map[types.PropId]string            `json:"strings,omitempty"`
	MultiStrings map[types.PropId]map[string]string `json:"multiStrings,omitempty"`
	Vectors      map[types.PropId][]types.RecordId  `json:"vectors,omitempty"`
	Objects      map[types.PropId]types.RecordId    `json:"objects,omitempty"`
}

type document struct {
	Records []*Record `json:"records"`
}

// Store is a thread-safe in-memory record store.
type Store struct {
	records map[types.RecordId]*Record
	sync.RWMutex
}

var _ types.DataAccess = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{records: make(map[types.RecordId]*Record)}
}

// Load reads records from JSON.
func Load(r io.Reader) (*Store, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	s := New()
	for _, rec := range doc.Records {
		if rec == nil || rec.Id == types.NilRecord {
			return nil, fmt.Errorf("record id is required")
		}
		if _, ok := s.records[rec.Id]; ok {
			return nil, fmt.Errorf("duplicate record id=%d", rec.Id)
		}
		s.records[rec.Id] = rec
	}
	return s, nil
}

// MarshalJSON writes the store in the layout read by Load, records ordered by id.
func (s *Store) MarshalJSON() ([]byte, error) {
	s.RLock()
	defer s.RUnlock()
	doc := document{Records: make([]*Record, 0, len(s.records))}
	for _, id := range s.idsLocked() {
		doc.Records = append(doc.Records, s.records[id])
	}
	return json.Marshal(doc)
}

func (s *Store) record(id types.RecordId) *Record {
	rec, ok := s.records[id]
	if !ok {
		rec = &Record{Id: id}
		s.records[id] = rec
	}
	return rec
}

// SetString sets a single string property.
func (s *Store) SetString(id types.RecordId, prop types.PropId, value string) *Store {
	s.Lock()
	defer s.Unlock()
	rec := s.record(id)
	if rec.Strings == nil {
		rec.Strings = make(map[types.PropId]string)
	}
	rec.Strings[prop] = value
	return s
}

// SetMultiString sets the alternative of a multi-string property for writing system ws.
func (s *Store) SetMultiString(id types.RecordId, prop types.PropId, ws string, value string) *Store {
	s.Lock()
	defer s.Unlock()
	rec := s.record(id)
	if rec.MultiStrings == nil {
		rec.MultiStrings = make(map[types.PropId]map[string]string)
	}
	if rec.MultiStrings[prop] == nil {
		rec.MultiStrings[prop] = make(map[string]string)
	}
	rec.MultiStrings[prop][ws] = value
	return s
}

// AppendVector appends items to a vector property.
func (s *Store) AppendVector(id types.RecordId, prop types.PropId, items ...types.RecordId) *Store {
	s.Lock()
	defer s.Unlock()
	rec := s.record(id)
	if rec.Vectors == nil {
		rec.Vectors = make(map[types.PropId][]types.RecordId)
	}
	rec.Vectors[prop] = append(rec.Vectors[prop], items...)
	return s
}

// SetObject sets an atomic object property.
func (s *Store) SetObject(id types.RecordId, prop types.PropId, target types.RecordId) *Store {
	s.Lock()
	defer s.Unlock()
	rec := s.record(id)
	if rec.Objects == nil {
		rec.Objects = make(map[types.PropId]types.RecordId)
	}
	rec.Objects[prop] = target
	return s
}

// Ids returns every record id in ascending order.
func (s *Store) Ids() []types.RecordId {
	s.RLock()
	defer s.RUnlock()
	return s.idsLocked()
}

// IdsWith returns, in ascending order, the ids of records carrying prop in any form.
func (s *Store) IdsWith(prop types.PropId) []types.RecordId {
	s.RLock()
	defer s.RUnlock()
	var result []types.RecordId
	for _, id := range s.idsLocked() {
		rec := s.records[id]
		_, a := rec.Strings[prop]
		_, b := rec.MultiStrings[prop]
		_, c := rec.Vectors[prop]
		_, d := rec.Objects[prop]
		if a || b || c || d {
			result = append(result, id)
		}
	}
	return result
}

func (s *Store) idsLocked() []types.RecordId {
	ids := make([]types.RecordId, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.records)
}

func (s *Store) GetString(id types.RecordId, prop types.PropId) string {
	s.RLock()
	defer s.RUnlock()
	if rec, ok := s.records[id]; ok {
		return rec.Strings[prop]
	}
	return ""
}

func (s *Store) GetMultiString(id types.RecordId, prop types.PropId, ws string) string {
	s.RLock()
	defer s.RUnlock()
	if rec, ok := s.records[id]; ok {
		return rec.MultiStrings[prop][ws]
	}
	return ""
}

func (s *Store) GetVectorSize(id types.RecordId, prop types.PropId) int {
	s.RLock()
	defer s.RUnlock()
	if rec, ok := s.records[id]; ok {
		return len(rec.Vectors[prop])
	}
	return 0
}

func (s *Store) GetVectorItem(id types.RecordId, prop types.PropId, index int) types.RecordId {
	s.RLock()
	defer s.RUnlock()
	if rec, ok := s.records[id]; ok {
		if items := rec.Vectors[prop]; index >= 0 && index < len(items) {
			return items[index]
		}
	}
	return types.NilRecord
}

func (s *Store) GetObjectProperty(id types.RecordId, prop types.PropId) types.RecordId {
	s.RLock()
	defer s.RUnlock()
	if rec, ok := s.records[id]; ok {
		return rec.Objects[prop]
	}
	return types.NilRecord
}
