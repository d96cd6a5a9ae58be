// Package store 提供张量缓存（core.TensorStore）的实现。
// 接口定义在 core 包；缓存键由 core.BuildConfig.CacheKey() 给出。
package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rushteam/smartwin/core"
)

// 二进制编码格式：magic(4) | samples(8) | features(8) | depth(8) | data(8×n)，
// 全部小端。用于 redis 等字节存储后端。
const tensorMagic = "SWT1"

// EncodeTensor 把张量编码为字节串。
func EncodeTensor(t *core.Tensor) []byte {
	buf := make([]byte, 4+8*3+8*len(t.Data))
	copy(buf[0:4], tensorMagic)
	binary.LittleEndian.PutUint64(buf[4:], uint64(t.Samples))
	binary.LittleEndian.PutUint64(buf[12:], uint64(t.Features))
	binary.LittleEndian.PutUint64(buf[20:], uint64(t.Depth))
	off := 28
	for _, v := range t.Data {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	return buf
}

// DecodeTensor 从字节串解码张量。
func DecodeTensor(b []byte) (*core.Tensor, error) {
	if len(b) < 28 || string(b[0:4]) != tensorMagic {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			"decode tensor: bad header")
	}
	samples := int(binary.LittleEndian.Uint64(b[4:]))
	features := int(binary.LittleEndian.Uint64(b[12:]))
	depth := int(binary.LittleEndian.Uint64(b[20:]))
	n := samples * features * depth
	if len(b) != 28+8*n {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeShapeMismatch,
			fmt.Sprintf("decode tensor: want %d data bytes, got %d", 8*n, len(b)-28))
	}
	t := core.NewTensor(samples, features, depth)
	off := 28
	for i := 0; i < n; i++ {
		t.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[off:]))
		off += 8
	}
	return t, nil
}
