package core

import (
	"fmt"
	"strings"
)

// Overlap 是窗口重叠策略。
type Overlap string

const (
	// OverlapFull 完全重叠：每行携带前 window_dim−1 个时间步的全部特征副本
	OverlapFull Overlap = "full"
	// OverlapDynamic 动态重叠：按 window_dim 的质因数逐级移位并降采样
	OverlapDynamic Overlap = "dynamic"
	// OverlapHybrid 混合策略：最终故障设备走完全重叠，其余走动态重叠。
	// 配置面上的取值沿用历史写法 "other"。
	OverlapHybrid Overlap = "other"
)

// ParseOverlap 解析 overlap 配置值。"hybrid" 作为 "other" 的别名接受。
func ParseOverlap(s string) (Overlap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full":
		return OverlapFull, nil
	case "dynamic":
		return OverlapDynamic, nil
	case "other", "hybrid":
		return OverlapHybrid, nil
	}
	return "", NewDomainError(ModuleWindow, ErrorCodeInvalidInput,
		fmt.Sprintf("unknown overlap %q (want full / dynamic / other)", s))
}

// DefaultTailGuard 是降采样时每个设备分组末尾排除的固定行数，历史沿用值，可按配置覆盖。
const DefaultTailGuard = 7

// DefaultChunkSize 是分块表引擎的目标分块行数。
const DefaultChunkSize = 100000

// BuildConfig 是一次构建的完整配置。引擎按
// (Model, WindowDim, Ranking, Overlap) 配置键被调用一次，输出可按该键缓存。
type BuildConfig struct {
	// Model 设备型号（仅参与缓存键，不影响构建语义）
	Model string
	// WindowDim 目标历史长度（时间步数），必须为正
	WindowDim int
	// Ranking 上游特征选择的排序方法名（仅参与缓存键）
	Ranking string
	// NumFeatures 上游选择的特征数（仅参与缓存键）
	NumFeatures int
	// Overlap 重叠策略
	Overlap Overlap
	// Windowing 是否执行窗口化；false 时跳过 WindowBuilder 与
	// ValidityFilter 的窗口化相关剔除，仅追加单位深度轴
	Windowing bool
	// TailGuard 降采样尾部保护行数：0 表示 DefaultTailGuard，负数表示不排除
	TailGuard int
	// ChunkSize 分块表引擎的分块行数：0 表示 DefaultChunkSize
	ChunkSize int
}

// Validate 校验配置。
func (c BuildConfig) Validate() error {
	if c.WindowDim <= 0 {
		return NewDomainError(ModuleWindow, ErrorCodeInvalidInput,
			fmt.Sprintf("window_dim must be positive, got %d", c.WindowDim))
	}
	switch c.Overlap {
	case OverlapFull, OverlapDynamic, OverlapHybrid:
	default:
		return NewDomainError(ModuleWindow, ErrorCodeInvalidInput,
			fmt.Sprintf("unknown overlap %q", string(c.Overlap)))
	}
	return nil
}

// EffectiveTailGuard 返回实际生效的尾部保护行数。
func (c BuildConfig) EffectiveTailGuard() int {
	if c.TailGuard == 0 {
		return DefaultTailGuard
	}
	if c.TailGuard < 0 {
		return 0
	}
	return c.TailGuard
}

// EffectiveChunkSize 返回实际生效的分块行数。
func (c BuildConfig) EffectiveChunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

// CacheKey 返回配置键，格式沿用历史缓存文件命名。
func (c BuildConfig) CacheKey() string {
	w := 0
	if c.Windowing {
		w = 1
	}
	return fmt.Sprintf("%s_dataset_windowed_%d_rank_%s_%d_overlap_%s_windowing_%d",
		c.Model, c.WindowDim, c.Ranking, c.NumFeatures, string(c.Overlap), w)
}
