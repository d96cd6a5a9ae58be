// Package reshape 把纯数值表物化为三维张量。
package reshape

import (
	"fmt"

	"github.com/rushteam/smartwin/core"
)

// Matrix 把过滤后的纯数值表转为张量。
//
// 窗口化启用时，每行长度为 特征数 × depth，重塑为 (样本数, 特征数, depth)；
// depth 必须与 WindowBuilder 按策略计算的有效深度一致
// （见 window.Depth），不一致时行长不可整除，返回形状错误。
// 窗口化关闭时追加单位深度轴，得到 (样本数, 特征数, 1)。
//
// 表中残留字符串列属于致命的类型错误：标识列应当已被过滤阶段剔除。
func Matrix(f *core.Frame, depth int, windowing bool) (*core.Tensor, error) {
	samples := f.NumRows()
	width := f.NumCols()
	for i := 0; i < width; i++ {
		if f.ColAt(i).Kind != core.SeriesFloat {
			return nil, core.NewDomainError(core.ModuleReshape, core.ErrorCodeNonNumeric,
				fmt.Sprintf("reshape: column %q is not numeric", f.ColAt(i).Name))
		}
	}

	if !windowing {
		depth = 1
	}
	if depth <= 0 || width%depth != 0 {
		return nil, core.NewDomainError(core.ModuleReshape, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("reshape: row length %d not divisible by depth %d", width, depth))
	}

	t := core.NewTensor(samples, width/depth, depth)
	// 列序即 Reconciler 排好的规范 schema：同一基础特征的 depth 份副本
	// 字典序相邻，按行主序平铺后恰好构成 (特征, 窗口位) 子矩阵。
	for j := 0; j < width; j++ {
		col := f.ColAt(j).Floats
		for i := 0; i < samples; i++ {
			t.Data[i*width+j] = col[i]
		}
	}
	return t, nil
}

// Flatten 把张量按末两轴平铺回二维行向量表示（逆操作用于测试往返校验）。
func Flatten(t *core.Tensor) []float64 {
	out := make([]float64, len(t.Data))
	copy(out, t.Data)
	return out
}
