// Package normalize 提供特征缩放阶段。
package normalize

import (
	"context"
	"fmt"
	"math"

	"github.com/rushteam/smartwin/core"
	"github.com/rushteam/smartwin/pipeline"
)

// MinMax 是 Min-Max 归一化 Stage。
// 公式: x' = (x - min) / (max - min)，按列独立缩放到 [0, 1] 区间，
// min/max 取自输入表本身。
//
// 标识/标签列（core.TemporalColumns）原样保留，不参与缩放；
// 其余列必须是数值列，出现字符串列属于致命的类型错误（上游表需要修正后重跑）。
// 行序与对齐保持不变。
type MinMax struct{}

func (s *MinMax) Name() string        { return "normalize.minmax" }
func (s *MinMax) Kind() pipeline.Kind { return pipeline.KindNormalize }

func (s *MinMax) Process(
	ctx context.Context,
	bctx *core.BuildContext,
	f *core.Frame,
) (*core.Frame, error) {
	cols := make([]*core.Series, f.NumCols())
	for i := 0; i < f.NumCols(); i++ {
		c := f.ColAt(i)
		if core.IsTemporalColumn(c.Name) {
			cols[i] = c
			continue
		}
		if c.Kind != core.SeriesFloat {
			return nil, core.NewDomainError(core.ModuleFrame, core.ErrorCodeNonNumeric,
				fmt.Sprintf("normalize: feature column %q is not numeric", c.Name))
		}
		cols[i] = scale(c)
	}
	return f.WithColumns(cols), nil
}

// scale 对单列做 min-max 缩放。缺失值（NaN）不参与统计并原样保留；
// 常数列统一缩放为 0（与 sklearn MinMaxScaler 的零值域处理一致）。
func scale(c *core.Series) *core.Series {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range c.Floats {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(c.Floats))
	span := hi - lo
	for i, v := range c.Floats {
		switch {
		case math.IsNaN(v):
			out[i] = v
		case span > 0:
			out[i] = (v - lo) / span
		default:
			out[i] = 0
		}
	}
	return core.NewFloatSeries(c.Name, out)
}
