package window

import (
	"context"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pipeline"
)

// Builder 是窗口化 Stage：按重叠策略产出移位-拼接表。
//
// 三种策略在表引擎上的执行都是 Shifting(level) 与 Sampling(level) 步骤的
// 交替，只是调度不同：
//
//   - Full：对 i ∈ [1, window_dim−1] 逐个把整表移位 i 行后前置拼接，
//     终表携带每个特征列的 window_dim 份堆叠副本。移位是全局的（不按设备
//     分段重置），数据集边界上的调用方要么预先分片要么接受该近似。
//   - Dynamic：把 window_dim 分解为质因数 [p1, p2, …] 依次处理。每个因子 p
//     先做 p−1 次移位-拼接（滞后量乘以此前因子的累计步长 s），然后物化累积
//     表并按设备以因子 p 降采样，仅保留 UnderSampler 选出的行。按因子交替
//     "加密-抽稀"既覆盖全部请求滞后深度，又约束了峰值行数。
//   - Hybrid：validate_val == 1（最终故障）设备的行走 Full 流程（故障近旁
//     保留稠密历史）；全部行走 Dynamic 流程；两个结果按行拼接，行号重排为
//     连续区间（窗口化后原行号不再有语义）。
//
// 移位/拼接/分组遇到类型错误即致命返回，无重试：调用方修正上游表后重跑。
type Builder struct{}

func (s *Builder) Name() string        { return "window.builder" }
func (s *Builder) Kind() pipeline.Kind { return pipeline.KindWindow }

func (s *Builder) Process(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	cfg := bctx.Config
	eng := bctx.Engine

	var (
		t   core.Table
		err error
	)
	switch cfg.Overlap {
	case core.OverlapFull:
		t = buildFull(eng, f, cfg.WindowDim)
	case core.OverlapDynamic:
		t, err = buildDynamic(ctx, eng, f, cfg)
	case core.OverlapHybrid:
		t, err = buildHybrid(ctx, eng, f, cfg)
	default:
		err = core.NewDomainError(core.ModuleWindow, core.ErrorCodeInvalidInput,
			"unknown overlap policy")
	}
	if err != nil {
		return nil, err
	}
	return eng.Materialize(ctx, t)
}

// buildFull 构建完全重叠链：cur ← hconcat(shift(base, i), cur)，i = 1 … W−1。
// 新移位副本始终前置，因此最左列是最高滞后副本，最右是未移位原表。
func buildFull(eng core.TableEngine, f *core.Frame, windowDim int) core.Table {
	base := eng.FromFrame(f)
	cur := base
	for i := 1; i < windowDim; i++ {
		cur = eng.HConcat(eng.Shift(base, i), cur)
	}
	return cur
}

// buildDynamic 构建动态重叠链。
//
// retained 维持"当前表行 → 原始表行"的映射：移位总是作用于原始表，再按
// retained 选行与当前（已抽稀的）表对齐，相当于 pandas 按索引对齐拼接。
// 每个因子结束时进入同步点：物化当前表并按设备分组降采样。
func buildDynamic(ctx context.Context, eng core.TableEngine, f *core.Frame, cfg core.BuildConfig) (core.Table, error) {
	serials, ok := f.Col(core.ColSerialNumber)
	if !ok {
		return nil, core.NewDomainError(core.ModuleWindow, core.ErrorCodeMissingColumn,
			"dynamic overlap requires a serial_number column")
	}
	if pv, ok := f.Col(core.ColPredictVal); !ok || pv.Kind != core.SeriesFloat {
		return nil, core.NewDomainError(core.ModuleWindow, core.ErrorCodeMissingColumn,
			"dynamic overlap requires a numeric predict_val column")
	}
	us := &UnderSampler{TailGuard: cfg.EffectiveTailGuard()}

	base := eng.FromFrame(f)
	key := eng.FromFrame(f.WithColumns([]*core.Series{serials}))
	cur := base
	var retained []int // nil 表示恒等映射
	stride := 1

	for _, p := range Factors(cfg.WindowDim) {
		// Shifting(level)：p−1 次移位-拼接，滞后量按累计步长放大
		for i := 1; i < p; i++ {
			shifted := eng.Shift(base, stride*i)
			if retained != nil {
				shifted = eng.Take(shifted, retained)
			}
			cur = eng.HConcat(shifted, cur)
		}
		stride *= p

		// Sampling(level)：同步点 —— 物化并按设备降采样
		idx, err := eng.GroupApply(ctx, cur, key, func(g *core.Frame, off int) []int {
			return us.Indices(g, off, p)
		})
		if err != nil {
			return nil, err
		}
		cur = eng.Take(cur, idx)
		key = eng.Take(key, idx)
		retained = composeRows(retained, idx)
	}
	return cur, nil
}

// buildHybrid 构建混合链：动态结果在前，故障设备的完全重叠结果追加在后。
// 两个子表列数不同（W 份副本对 depth 份副本），按（列名，同名序号）对齐、
// 缺列补缺失值；未共享的副本列随后由 ValidityFilter 剔除。
func buildHybrid(ctx context.Context, eng core.TableEngine, f *core.Frame, cfg core.BuildConfig) (core.Table, error) {
	validate, ok := f.Col(core.ColValidateVal)
	if !ok || validate.Kind != core.SeriesFloat {
		return nil, core.NewDomainError(core.ModuleWindow, core.ErrorCodeMissingColumn,
			"hybrid overlap requires a numeric validate_val column")
	}
	failedRows := make([]int, 0)
	for i, v := range validate.Floats {
		if v == 1 {
			failedRows = append(failedRows, i)
		}
	}

	fullFailed := eng.Take(buildFull(eng, f, cfg.WindowDim), failedRows)
	dyn, err := buildDynamic(ctx, eng, f, cfg)
	if err != nil {
		return nil, err
	}
	return eng.VConcat(dyn, fullFailed), nil
}

// composeRows 把新一轮选行 idx（相对当前表）映射回原始表行号。
// 结果恒非 nil：nil 专指"尚未降采样"的恒等映射，空保留集必须如实传递，
// 否则下一轮会把整高的移位表拼到已清空的累积表上。
func composeRows(retained, idx []int) []int {
	out := make([]int, len(idx))
	if retained == nil {
		copy(out, idx)
		return out
	}
	for i, r := range idx {
		out[i] = retained[r]
	}
	return out
}
