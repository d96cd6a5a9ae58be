package smartwin

import (
	"context"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/filter"
	"github.com/rushteam/smartwin/normalize"
	"github.com/rushteam/smartwin/pipeline"
	"github.com/rushteam/smartwin/reshape"
	"github.com/rushteam/smartwin/tableng"
	"github.com/rushteam/smartwin/window"
)

// Option 配置一次 Partition 调用。
type Option func(*options)

type options struct {
	engine core.TableEngine
	report *core.Report
	cache  core.TensorStore
}

// WithEngine 指定表引擎；缺省使用按配置分块的 ChunkedEngine。
func WithEngine(e core.TableEngine) Option {
	return func(o *options) { o.engine = e }
}

// WithReport 指定诊断收集器，调用方可在构建后读取软失败说明与剔除统计。
func WithReport(r *core.Report) Option {
	return func(o *options) { o.report = r }
}

// WithCache 启用张量缓存：命中 cfg.CacheKey() 时直接返回缓存结果，
// 未命中时构建后写回。缓存本身的可用性问题不致命，只记入诊断。
func WithCache(s core.TensorStore) Option {
	return func(o *options) { o.cache = s }
}

// Partition 是引擎入口：把按 (serial_number, date) 排序的遥测表加工为
// 固定长度历史窗口的三维张量 (样本数, 特征数, 深度)。
//
// 流程：归一化 → 窗口化（按策略）→ 列名规整 → 有效性过滤 → 重塑。
// cfg.Windowing 为 false 时跳过窗口化与规整，只剔除标识列并追加单位深度轴。
//
// 构建对调用方是原子的：要么产出完整张量，要么返回错误，中间产物不外泄。
// 标签数组（predict_val / validate_val 切片）由调用方按同样的保留行自行对齐，
// 本引擎只返回过滤/重塑后的特征张量。
func Partition(ctx context.Context, f *core.Frame, cfg core.BuildConfig, opts ...Option) (*core.Tensor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = tableng.NewChunkedEngine(cfg.EffectiveChunkSize())
	}

	bctx := core.NewBuildContext(cfg, o.engine)
	if o.report != nil {
		bctx.Report = o.report
	}

	if o.cache != nil {
		if t, err := o.cache.Get(ctx, cfg.CacheKey()); err == nil {
			bctx.Report.Notef("cache hit: %s", cfg.CacheKey())
			return t, nil
		} else if !core.IsNotFound(err) {
			bctx.Report.Notef("cache get failed: %v", err)
		}
	}

	stages := []pipeline.Stage{&normalize.MinMax{}}
	if cfg.Windowing {
		stages = append(stages, &window.Builder{}, &window.Reconciler{})
	}
	stages = append(stages, &filter.Validity{})

	p := &pipeline.Pipeline{Stages: stages}
	out, err := p.Run(ctx, bctx, f)
	if err != nil {
		return nil, err
	}

	t, err := reshape.Matrix(out, window.Depth(cfg.WindowDim, cfg.Overlap), cfg.Windowing)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, cfg.CacheKey(), t); err != nil {
			bctx.Report.Notef("cache put failed: %v", err)
		}
	}
	return t, nil
}
