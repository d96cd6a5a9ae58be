package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/smartwin/core"
)

// RedisTensorStore 是 Redis 实现的 TensorStore。
// 多个训练任务共享同一缓存时使用，张量按二进制编码存储（见 codec.go）。
type RedisTensorStore struct {
	client *redis.Client
}

func NewRedisTensorStore(addr string, db int) (*RedisTensorStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisTensorStore{client: client}, nil
}

func (r *RedisTensorStore) Name() string { return "redis" }

func (r *RedisTensorStore) Get(ctx context.Context, key string) (*core.Tensor, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, core.ErrTensorNotFound
	}
	if err != nil {
		return nil, err
	}
	return DecodeTensor(val)
}

func (r *RedisTensorStore) Put(ctx context.Context, key string, t *core.Tensor, ttl ...int) error {
	var expiration time.Duration
	if len(ttl) > 0 && ttl[0] > 0 {
		expiration = time.Duration(ttl[0]) * time.Second
	}
	return r.client.Set(ctx, key, EncodeTensor(t), expiration).Err()
}

func (r *RedisTensorStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Close 关闭底层连接。
func (r *RedisTensorStore) Close() error {
	return r.client.Close()
}
