// Package window 实现时间窗口化引擎：质因数分解、滚动最大值降采样、
// 三种重叠策略的移位-拼接构建，以及列名规整。
package window

import "github.com/rushteam/smartwin/core"

// Factors 返回正整数 n 的质因数多重集，升序排列，例如 Factors(12) = [2, 2, 3]。
// Factors(1) = []。试除法：先除尽 2，再从 3 起只试奇数到 √n，复杂度 O(√n)。
// 分解结果既决定动态降采样的步长序列，也决定有效窗口深度。
func Factors(n int) []int {
	factors := []int{}
	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}
	for f := 3; f*f <= n; f += 2 {
		for n%f == 0 {
			factors = append(factors, f)
			n /= f
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// Depth 返回给定 window_dim 与重叠策略下的有效窗口深度：
// Full 为 window_dim 本身；Dynamic/Hybrid 为 Σ(factor−1) + 1。
// 例：window_dim=12，质因数 [2,2,3]，深度 = 1+1+2+1 = 5。
func Depth(windowDim int, overlap core.Overlap) int {
	if overlap == core.OverlapFull {
		return windowDim
	}
	d := 1
	for _, f := range Factors(windowDim) {
		d += f - 1
	}
	return d
}
