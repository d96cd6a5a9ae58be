package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// record 是一行遥测记录：标识列为 string，数值列为 double
		cel.Variable("record", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是记录选择谓词的解释器，使用 CEL (Common Expression Language) 实现。
// 用于导入边界上的设备/行筛选，例如只保留某个型号的设备。
//
// 表达式语法（CEL 标准语法）：
//   - 基础：record.model == "ST4000DM000"
//   - 前缀：record.model.startsWith("ST")
//   - 数值：record.capacity_bytes > 4.0e12
//   - 逻辑：record.model.startsWith("ST") && record.failure == 0.0
//
// 表达式编译一次后缓存，可对任意多行求值。
type Eval struct {
	prg cel.Program
}

// NewEval 编译表达式并返回解释器。
// 编译失败是致命的配置错误：表达式必须修正后重试。
func NewEval(expr string) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}

	return &Eval{prg: prg}, nil
}

// Match 对单行记录求值，返回布尔结果。
// record 的 key 为列名；访问不存在的 key 会报错，表达式应使用
// record.key != null 检查存在性。
func (e *Eval) Match(record map[string]any) (bool, error) {
	out, _, err := e.prg.Eval(map[string]any{"record": record})
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}
