package core

import "fmt"

// BuildContext 承载一次构建的配置、表引擎与诊断信息，贯穿整个 Pipeline 透传。
// 各阶段是纯函数（输入表 -> 输出表），不在阶段对象上保存工作状态。
type BuildContext struct {
	// Config 本次构建的配置
	Config BuildConfig

	// Engine 表计算引擎；构建期间引擎独占工作表，调用方不得并发修改输入表
	Engine TableEngine

	// Report 诊断汇总（软失败路径的说明、剔除计数等）
	Report *Report
}

// NewBuildContext 创建 BuildContext。
func NewBuildContext(cfg BuildConfig, eng TableEngine) *BuildContext {
	return &BuildContext{
		Config: cfg,
		Engine: eng,
		Report: &Report{},
	}
}

// Report 收集构建过程中的非致命诊断。
// 配置类软失败（如过滤时关键标识列缺失）只记录在此，不中断构建。
type Report struct {
	// Notes 人类可读的诊断说明
	Notes []string
	// MissingEssential 过滤阶段发现缺失的关键标识列；非空表示按行剔除被跳过
	MissingEssential []string
	// RowsDropped 关键标识列缺失值导致剔除的行数
	RowsDropped int
	// ColumnsDropped 因残留缺失值被整列剔除的列名
	ColumnsDropped []string
}

// Notef 追加一条格式化诊断说明。
func (r *Report) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}
