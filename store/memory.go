package store

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/smartwin/core"
)

// MemoryTensorStore 是内存实现的 TensorStore，用于测试/开发/单机场景。
// 支持 TTL（过期时间），进程重启后数据丢失。
type MemoryTensorStore struct {
	mu    sync.RWMutex
	data  map[string]*entry
	clean *time.Ticker
}

type entry struct {
	tensor *core.Tensor
	expire *time.Time
}

func NewMemoryTensorStore() *MemoryTensorStore {
	ms := &MemoryTensorStore{
		data:  make(map[string]*entry),
		clean: time.NewTicker(10 * time.Second),
	}
	go ms.cleanup()
	return ms
}

func (m *MemoryTensorStore) Name() string { return "memory" }

func (m *MemoryTensorStore) Get(ctx context.Context, key string) (*core.Tensor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok {
		return nil, core.ErrTensorNotFound
	}
	if e.expire != nil && time.Now().After(*e.expire) {
		return nil, core.ErrTensorNotFound
	}
	return e.tensor, nil
}

func (m *MemoryTensorStore) Put(ctx context.Context, key string, t *core.Tensor, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &entry{tensor: t}
	if len(ttl) > 0 && ttl[0] > 0 {
		exp := time.Now().Add(time.Duration(ttl[0]) * time.Second)
		e.expire = &exp
	}
	m.data[key] = e
	return nil
}

func (m *MemoryTensorStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close 停止后台清理协程。
func (m *MemoryTensorStore) Close() error {
	m.clean.Stop()
	return nil
}

func (m *MemoryTensorStore) cleanup() {
	for range m.clean.C {
		now := time.Now()
		m.mu.Lock()
		for k, e := range m.data {
			if e.expire != nil && now.After(*e.expire) {
				delete(m.data, k)
			}
		}
		m.mu.Unlock()
	}
}
