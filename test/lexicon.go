/*
 * Copyright 2023 The RuleGo Authors.
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

package test

import (
	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/utils/collation"
	"github.com/rulego/sift/utils/memdata"
	"github.com/rulego/sift/utils/spelling"
)

// 测试词典的属性
const (
	PropCitationForm types.PropId = "LexEntry.CitationForm"
	PropHomograph    types.PropId = "LexEntry.HomographNumber"
	PropDateCreated  types.PropId = "LexEntry.DateCreated"
	PropSenses       types.PropId = "LexEntry.Senses"
	PropLexemeForm   types.PropId = "LexEntry.LexemeForm"
	PropGloss        types.PropId = "LexSense.Gloss"
	PropForm         types.PropId = "MoForm.Form"

	// WsVern 词条书写系统
	WsVern = "fr"
	// WsAnal 释义书写系统
	WsAnal = "en"
)

// EntryIds 测试词典的词条
var EntryIds = []types.RecordId{1, 2, 3, 4, 5}

// NewLexicon returns a small lexicon: entries with citation forms, homograph numbers,
// creation dates, senses with glosses and an owned lexeme form.
//
//	id  citation  homograph  senses (gloss)                 lexeme form
//	1   cat       1          101 feline, 102 jazz musician  201 cat
//	2   dog       2          103 canine                     202 dog
//	3   Élan                                                -
//	4   apple     10         104 fruit, 105 tree            204 apple
//	5   zebra     x          106 striped horse              205 zebra
func NewLexicon() *memdata.Store {
	s := memdata.New()
	entry := func(id types.RecordId, citation, homograph, date string) {
		s.SetMultiString(id, PropCitationForm, WsVern, citation)
		if homograph != "" {
			s.SetString(id, PropHomograph, homograph)
		}
		if date != "" {
			s.SetString(id, PropDateCreated, date)
		}
	}
	sense := func(entryId, id types.RecordId, gloss string) {
		s.AppendVector(entryId, PropSenses, id)
		s.SetMultiString(id, PropGloss, WsAnal, gloss)
	}
	form := func(entryId, id types.RecordId, value string) {
		s.SetObject(entryId, PropLexemeForm, id)
		s.SetMultiString(id, PropForm, WsVern, value)
	}
	entry(1, "cat", "1", "2020-05-17")
	entry(2, "dog", "2", "1999-12-31 10:00:00")
	entry(3, "Élan", "", "")
	entry(4, "apple", "10", "2021-01-01T08:00:00Z")
	entry(5, "zebra", "x", "")
	sense(1, 101, "feline")
	sense(1, 102, "jazz musician")
	sense(2, 103, "canine")
	sense(4, 104, "fruit")
	sense(4, 105, "tree")
	sense(5, 106, "striped horse")
	form(1, 201, "cat")
	form(2, 202, "dog")
	form(4, 204, "apple")
	form(5, 205, "zebra")
	return s
}

// NewBindContext binds da with a default collator, an English word list and a quiet logger.
func NewBindContext(da types.DataAccess) types.BindContext {
	p := spelling.NewProvider()
	p.Register(WsAnal, spelling.NewDictionary("feline", "jazz", "musician", "canine", "fruit", "tree", "striped", "horse"))
	return types.BindContext{
		DataAccess: da,
		Collator:   collation.New(),
		Spelling:   p,
		Logger:     types.DiscardLogger(),
	}
}
