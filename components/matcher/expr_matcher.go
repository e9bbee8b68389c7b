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

//配置示例：
//	<matcher type="exprMatch" expr="len(value) > 3 &amp;&amp; value startsWith 'c'"/>
import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/sift/api/types"
	"github.com/rulego/sift/components/base"
)

func init() {
	Registry.Add(&ExprMatcher{})
}

// ExprMatcherConfiguration 节点配置
type ExprMatcherConfiguration struct {
	// Expr 布尔表达式，通过`value`变量访问被匹配的值
	Expr string `required:"true"`
}

// ExprMatcher 使用expr表达式匹配值
// The expression sees the value as `value` and every Udf of the configuration by name.
// An expression that does not compile makes the matcher invalid; a runtime error is a non-match.
type ExprMatcher struct {
	Config  ExprMatcherConfiguration
	udf     map[string]interface{}
	logger  types.Logger
	program *vm.Program
	err     error
}

// NewExprMatcher creates a matcher of expression, compiled with the Udf of config.
func NewExprMatcher(config types.Config, expression string) *ExprMatcher {
	x := &ExprMatcher{Config: ExprMatcherConfiguration{Expr: expression}}
	x.compile(config.Udf, config.Logger)
	return x
}

// Type 组件类型
func (x *ExprMatcher) Type() string {
	return "exprMatch"
}

func (x *ExprMatcher) New() types.Component {
	return &ExprMatcher{}
}

// Init 初始化
func (x *ExprMatcher) Init(config types.Config, node *types.PersistNode) error {
	if err := base.NodeUtils.DecodeConfig(node, &x.Config, "expr"); err != nil {
		return err
	}
	x.compile(config.Udf, config.Logger)
	return nil
}

func (x *ExprMatcher) env(value string) map[string]interface{} {
	env := make(map[string]interface{}, len(x.udf)+1)
	for k, v := range x.udf {
		env[k] = v
	}
	env["value"] = value
	return env
}

func (x *ExprMatcher) compile(udf map[string]interface{}, logger types.Logger) {
	x.udf = make(map[string]interface{}, len(udf))
	for k, v := range udf {
		// js 源码形式的udf只对脚本组件有效
		if _, ok := v.(string); !ok {
			x.udf[k] = v
		}
	}
	x.logger = logger
	x.program, x.err = expr.Compile(x.Config.Expr, expr.Env(x.env("")), expr.AllowUndefinedVariables(), expr.AsBool())
}

func (x *ExprMatcher) Persist(node *types.PersistNode) error {
	return base.NodeUtils.EncodeConfig(node, x.Config)
}

func (x *ExprMatcher) Bind(ctx types.BindContext) error {
	if ctx.Logger != nil {
		x.logger = ctx.Logger
	}
	return nil
}

func (x *ExprMatcher) Matches(value types.Text) bool {
	if !value.Valid || x.program == nil {
		return false
	}
	out, err := vm.Run(x.program, x.env(value.Value))
	if err != nil {
		if x.logger != nil {
			x.logger.Printf("exprMatch expr=%s error: %s", x.Config.Expr, err.Error())
		}
		return false
	}
	result, ok := out.(bool)
	return ok && result
}

func (x *ExprMatcher) SameMatcher(other types.Matcher) bool {
	return base.NodeUtils.SameConfig(x, other)
}

func (x *ExprMatcher) IsValid() bool {
	return x.program != nil && x.err == nil
}

func (x *ExprMatcher) ErrorMessage() string {
	if x.err != nil {
		return x.err.Error()
	}
	if x.program == nil {
		return "expression not compiled"
	}
	return ""
}

func (x *ExprMatcher) CanMakeValid() bool {
	return false
}

func (x *ExprMatcher) MakeValid() types.Matcher {
	return &ExprMatcher{Config: x.Config, udf: x.udf, logger: x.logger, program: x.program, err: x.err}
}
