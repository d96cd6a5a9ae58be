package pipeline

import (
	"context"

	"github.com/rushteam/smartwin/core"
)

// Kind 用于标记 Stage 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindNormalize Kind = "normalize" // 归一化阶段：特征列缩放到 [0,1]
	KindWindow    Kind = "window"    // 窗口化阶段：移位-拼接与降采样
	KindReconcile Kind = "reconcile" // 规整阶段：重名消解与列序规范化
	KindFilter    Kind = "filter"    // 过滤阶段：剔除无效行/列
)

// Stage 是 Pipeline 的最小可扩展单元。
// 统一采用"输入表 -> 输出表"的纯函数形态，配置与诊断经 BuildContext 显式传递，
// 阶段对象自身不持有工作状态，便于单独测试。
type Stage interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		bctx *core.BuildContext,
		f *core.Frame,
	) (*core.Frame, error)
}

// StageBuilder 根据配置构建 Stage。
type StageBuilder func(config map[string]any) (Stage, error)
