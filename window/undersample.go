package window

import (
	"math"

	"github.com/rushteam/smartwin/core"
)

// UnderSampler 计算单设备分组的保留行号。
//
// 给定已按时间排序的设备分组与降采样因子 k：
//  1. 对 predict_val 列计算尾随窗口大小为 k 的滚动最大值；
//  2. 从偏移 (len−1) mod k 起按步长 k 选取行号，保证分组末行落在选取网格上；
//  3. 排除分组末尾 TailGuard 行（防止设备历史末端的标签错位，固定常量，
//     动机未被解释，保留为可覆盖配置）；
//  4. 滚动最大值未定义的行号（窗口不完整或窗口内有缺失值）一律不选取 ——
//     保留下来的样本因此不会对被跳过子窗口内的临近故障信号"失明"。
type UnderSampler struct {
	// TailGuard 每组末尾排除的行数
	TailGuard int
}

// Indices 返回分组内的保留行号（已加上 offset，即全局行号）。
// group 的 predict_val 取最后一个同名列：移位副本被前置拼接，
// 末一个同名列始终是锚定行自身的标签，而非某个滞后副本。
func (u *UnderSampler) Indices(group *core.Frame, offset, downFactor int) []int {
	pv, ok := group.LastCol(core.ColPredictVal)
	if !ok || pv.Kind != core.SeriesFloat {
		return nil
	}
	n := group.NumRows()
	rm := rollingMax(pv.Floats, downFactor)

	stop := n - u.TailGuard
	out := make([]int, 0)
	for i := (n - 1) % downFactor; i < stop; i += downFactor {
		if math.IsNaN(rm[i]) {
			continue
		}
		out = append(out, offset+i)
	}
	return out
}

// rollingMax 计算尾随窗口大小 k 的滚动最大值。
// 前 k−1 个位置以及窗口内含 NaN 的位置结果为 NaN（与 pandas
// rolling(k).max() 在默认 min_periods 下的语义一致）。
func rollingMax(vals []float64, k int) []float64 {
	n := len(vals)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < k-1 {
			out[i] = math.NaN()
			continue
		}
		m := math.Inf(-1)
		ok := true
		for j := i - k + 1; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				ok = false
				break
			}
			if vals[j] > m {
				m = vals[j]
			}
		}
		if !ok {
			out[i] = math.NaN()
		} else {
			out[i] = m
		}
	}
	return out
}
