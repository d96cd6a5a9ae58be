// Package smartwin 是一个硬盘遥测数据集窗口化工具包（SMART Windowing Kit）。
//
// 设计要点：
// - Pipeline-first: 数据集加工通过 Stage 串联（Normalize → Window → Reconcile → Filter）
// - 纯函数阶段：每一步输入表、输出表，配置与诊断经 BuildContext 显式传递
// - 表引擎可插拔：内存实现与分块/核外实现满足同一 shift/concat/group/materialize 契约
package smartwin

import (
	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pipeline"
)

// 轻量 facade：便于用户直接 import "smartwin" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Stage = pipeline.Stage
type Kind = pipeline.Kind

type Frame = core.Frame
type Series = core.Series
type Tensor = core.Tensor
type BuildConfig = core.BuildConfig
type Overlap = core.Overlap

const (
	KindNormalize = pipeline.KindNormalize
	KindWindow    = pipeline.KindWindow
	KindReconcile = pipeline.KindReconcile
	KindFilter    = pipeline.KindFilter
)

const (
	OverlapFull    = core.OverlapFull
	OverlapDynamic = core.OverlapDynamic
	OverlapHybrid  = core.OverlapHybrid
)
