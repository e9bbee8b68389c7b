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

package matcher

import (
	"fmt"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
	"github.com/rulego/sift/utils/cast"
	"github.com/rulego/sift/utils/js"
)

func init() {
	Registry.Add(&JsMatcher{})
}

// JsMatcherConfiguration 节点配置
type JsMatcherConfiguration struct {
	//JsScript 配置函数体脚本内容
	//完整脚本函数：
	//function Match(value) { ${JsScript} }
	//return bool
	JsScript string `required:"true"`
}

// JsMatcher 使用js脚本匹配值
type JsMatcher struct {
	Config   JsMatcherConfiguration
	jsEngine *js.GojaJsEngine
	logger   types.Logger
	err      error
}

// NewJsMatcher creates a script matcher; compile errors are reported by IsValid.
func NewJsMatcher(config types.Config, jsScript string) *JsMatcher {
	x := &JsMatcher{Config: JsMatcherConfiguration{JsScript: jsScript}}
	x.compile(config)
	return x
}

// Type 组件类型
func (x *JsMatcher) Type() string {
	return "jsMatch"
}

func (x *JsMatcher) New() types.Component {
	return &JsMatcher{}
}

// Init 初始化
func (x *JsMatcher) Init(config types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "jsScript"); err != nil {
		return err
	}
	x.compile(config)
	return nil
}

func (x *JsMatcher) compile(config types.Config) {
	x.logger = config.Logger
	jsScript := fmt.Sprintf("function Match(value) { %s }", x.Config.JsScript)
	x.jsEngine, x.err = js.NewGojaJsEngine(config, jsScript, nil)
}

func (x *JsMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *JsMatcher) Bind(ctx types.BindContext) error {
	if ctx.Logger != nil {
		x.logger = ctx.Logger
	}
	return nil
}

func (x *JsMatcher) Matches(value types.Text) bool {
	if !value.Valid || x.jsEngine == nil {
		return false
	}
	out, err := x.jsEngine.Execute("Match", value.Value)
	if err == nil {
		var result bool
		if result, err = cast.ToBoolE(out); err == nil {
			return result
		}
	}
	if x.logger != nil {
		x.logger.Printf("jsMatch error: %s", err.Error())
	}
	return false
}

func (x *JsMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *JsMatcher) IsValid() bool {
	return x.jsEngine != nil && x.err == nil
}

func (x *JsMatcher) ErrorMessage() string {
	if x.err != nil {
		return x.err.Error()
	}
	if x.jsEngine == nil {
		return "script not compiled"
	}
	return ""
}

func (x *JsMatcher) CanMakeValid() bool {
	return false
}

func (x *JsMatcher) MakeValid() types.Matcher {
	return &JsMatcher{Config: x.Config, jsEngine: x.jsEngine, logger: x.logger, err: x.err}
}
