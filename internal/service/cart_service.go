package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/datamodels/cart"
	"github.com/example/myshop/internal/datamodels/product"
	"github.com/example/myshop/internal/repository/kv"
)

// CartService 购物车。每个商品 ID 至多一行，重复加入只递增数量。
// 所有变更同步落盘后才返回，持久化失败时内存保持原状。
type CartService struct {
	mu    sync.RWMutex
	store kv.KV
	items []cart.Item
}

func NewCartService(store kv.KV) *CartService {
	return &CartService{store: store}
}

// Load 恢复购物车。快照缺失或损坏都按空购物车处理，不向调用方报错。
func (s *CartService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, ok, err := s.store.Get(ctx, kv.CartKey)
	if err != nil {
		zap.L().Warn("load cart snapshot failed", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	items, err := cart.DecodeItems([]byte(raw))
	if err != nil {
		zap.L().Warn("cart snapshot corrupted, starting empty", zap.Error(err))
		return
	}
	s.items = items
}

// Items 当前条目的副本
func (s *CartService) Items() []cart.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]cart.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count 条目行数（页头购物车角标用）
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// AddItem 加入商品：已存在则数量加一，否则按当前商品字段生成快照行
func (s *CartService) AddItem(ctx context.Context, p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyLocked()
	found := false
	for i := range next {
		if next[i].ID == p.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		next = append(next, cart.FromProduct(p))
	}
	return s.commitLocked(ctx, next)
}

// SetQuantity 调整数量，下限收敛到 1；ID 不存在时不做任何事
func (s *CartService) SetQuantity(ctx context.Context, id product.ID, qty int64) error {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyLocked()
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = qty
			break
		}
	}
	return s.commitLocked(ctx, next)
}

// RemoveItem 按 ID 删除条目。ID 在解码边界已归一化为数字，
// 快照里存成字符串的 id 同样能匹配到。
func (s *CartService) RemoveItem(ctx context.Context, id product.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]cart.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID == id {
			continue
		}
		next = append(next, it)
	}
	return s.commitLocked(ctx, next)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, []cart.Item{})
}

// Total 所有条目 price × quantity 之和，空购物车为 0
func (s *CartService) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum int64
	for _, it := range s.items {
		sum += it.Price * it.Quantity
	}
	return sum
}

func (s *CartService) copyLocked() []cart.Item {
	out := make([]cart.Item, len(s.items))
	copy(out, s.items)
	return out
}

// commitLocked 先落盘再提交到内存
func (s *CartService) commitLocked(ctx context.Context, next []cart.Item) error {
	data, err := cart.EncodeItems(next)
	if err != nil {
		return apperr.Storage("encode cart snapshot", err)
	}
	if err := s.store.Set(ctx, kv.CartKey, string(data)); err != nil {
		return apperr.Storage("write cart snapshot", err)
	}
	s.items = next
	return nil
}
