package core

import "context"

// 注意：此文件只定义接口与哨兵错误，实现位于 store 包
// （store.MemoryTensorStore / store.RedisTensorStore）。
//
// 缓存键由 BuildConfig.CacheKey() 给出：同一
// (model, window_dim, ranking, overlap) 配置的构建结果可复用。

// TensorStore 是张量缓存的统一接口。
type TensorStore interface {
	// Name 返回实现名称（memory / redis）
	Name() string
	// Get 按配置键取缓存张量；不存在时返回 ErrTensorNotFound
	Get(ctx context.Context, key string) (*Tensor, error)
	// Put 写入缓存张量；ttl 为可选的过期秒数
	Put(ctx context.Context, key string, t *Tensor, ttl ...int) error
	// Delete 删除缓存项
	Delete(ctx context.Context, key string) error
}

var (
	// ErrTensorNotFound 表示缓存键不存在
	ErrTensorNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "tensor not found")
)
