package core

import "fmt"

// Tensor 是最终输出的三维数值张量，形状为 (样本数, 特征数, 深度)。
// 底层为按行主序的平铺 float64 切片：样本 i、特征 j、窗口位 k 的元素
// 位于 Data[(i*Features+j)*Depth+k]。
type Tensor struct {
	Data     []float64
	Samples  int
	Features int
	Depth    int
}

// NewTensor 创建零值张量。
func NewTensor(samples, features, depth int) *Tensor {
	return &Tensor{
		Data:     make([]float64, samples*features*depth),
		Samples:  samples,
		Features: features,
		Depth:    depth,
	}
}

// Shape 返回 (样本数, 特征数, 深度)。
func (t *Tensor) Shape() (int, int, int) {
	return t.Samples, t.Features, t.Depth
}

// At 返回 (i, j, k) 处的元素。
func (t *Tensor) At(i, j, k int) float64 {
	return t.Data[(i*t.Features+j)*t.Depth+k]
}

// Set 写入 (i, j, k) 处的元素。
func (t *Tensor) Set(i, j, k int, v float64) {
	t.Data[(i*t.Features+j)*t.Depth+k] = v
}

// Row 返回样本 i 的平铺视图（长度 Features*Depth，共享底层数组）。
func (t *Tensor) Row(i int) []float64 {
	w := t.Features * t.Depth
	return t.Data[i*w : (i+1)*w]
}

// Reshape 以新的深度重新解释平铺数据。行长不能被整除时返回形状错误，
// 这是 WindowBuilder 与 Reshaper 的深度计算不一致的信号。
func (t *Tensor) Reshape(depth int) (*Tensor, error) {
	w := t.Features * t.Depth
	if depth <= 0 || w%depth != 0 {
		return nil, NewDomainError(ModuleReshape, ErrorCodeShapeMismatch,
			fmt.Sprintf("cannot reshape row length %d with depth %d", w, depth))
	}
	return &Tensor{
		Data:     t.Data,
		Samples:  t.Samples,
		Features: w / depth,
		Depth:    depth,
	}, nil
}

// Equal 判断两个张量形状与元素是否完全相等（按位比较，NaN != NaN）。
func (t *Tensor) Equal(o *Tensor) bool {
	if o == nil || t.Samples != o.Samples || t.Features != o.Features || t.Depth != o.Depth {
		return false
	}
	for i, v := range t.Data {
		if v != o.Data[i] {
			return false
		}
	}
	return true
}
