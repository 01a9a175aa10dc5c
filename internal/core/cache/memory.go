package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter 未配置 redis 时使用的进程内计数器（多副本之间不共享）
type MemoryCounter struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]window
}

type window struct {
	count   int64
	expires time.Time
}

func NewMemory() *MemoryCounter { return NewMemoryWithClock(time.Now) }

func NewMemoryWithClock(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{now: now, windows: map[string]window{}}
}

func (c *MemoryCounter) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	w, ok := c.windows[key]
	if !ok || (!w.expires.IsZero() && !now.Before(w.expires)) {
		w = window{}
		if ttl > 0 {
			w.expires = now.Add(ttl)
		}
		// 清理已过期窗口
		for k, old := range c.windows {
			if !old.expires.IsZero() && !now.Before(old.expires) {
				delete(c.windows, k)
			}
		}
	}
	w.count++
	c.windows[key] = w
	return w.count, nil
}
