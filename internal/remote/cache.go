package remote

import (
	"context"
	"sync"
	"time"

	"github.com/example/myshop/internal/datamodels/product"
)

// Cache 远端商品列表的内存缓存。刷新请求可能并发在途，
// 每次刷新领取一个递增序号，只有不早于已提交序号的响应才允许落地，
// 防止先发出的慢响应覆盖后到的新数据。
type Cache struct {
	client *Client
	ttl    time.Duration

	mu       sync.Mutex
	seq      uint64 // 最近一次发出的刷新序号
	applied  uint64 // 已落地数据对应的序号
	items    []product.Product
	loadedAt time.Time
}

func NewCache(client *Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{client: client, ttl: ttl}
}

// Products 返回缓存列表的副本，过期时先刷新。
// 刷新失败且缓存里有旧数据时，返回旧数据并吞掉错误。
func (c *Cache) Products(ctx context.Context) ([]product.Product, error) {
	c.mu.Lock()
	fresh := c.applied > 0 && time.Since(c.loadedAt) < c.ttl
	cached := c.copyLocked()
	c.mu.Unlock()

	if fresh {
		return cached, nil
	}
	if err := c.Refresh(ctx); err != nil {
		if len(cached) > 0 {
			return cached, nil
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked(), nil
}

// Refresh 同步拉取一次远端列表并尝试落地
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	list, err := c.client.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// 失败不动旧数据
		return err
	}
	if token < c.applied {
		// 更新的响应已经落地，丢弃这份迟到的结果
		return nil
	}
	c.applied = token
	c.items = list
	c.loadedAt = time.Now()
	return nil
}

func (c *Cache) copyLocked() []product.Product {
	out := make([]product.Product, len(c.items))
	copy(out, c.items)
	return out
}
