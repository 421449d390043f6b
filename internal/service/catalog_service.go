package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/datamodels/product"
	"github.com/example/myshop/internal/repository/kv"
)

// SeedSource 种子数据源：持久化里没有目录快照时的初始数据
type SeedSource interface {
	FetchSeed(ctx context.Context) ([]product.Product, error)
}

// CatalogService 后台商品目录。内存中的商品列表是本会话的唯一权威副本，
// 每次变更先写持久化存储成功后才提交到内存，失败时内存保持原状。
type CatalogService struct {
	mu       sync.RWMutex
	store    kv.KV
	seed     SeedSource
	notifier Notifier
	products []product.Product
}

func NewCatalogService(store kv.KV, seed SeedSource, notifier Notifier) *CatalogService {
	return &CatalogService{
		store:    store,
		seed:     seed,
		notifier: notifier,
	}
}

// Load 恢复目录：优先读持久化快照，没有则拉取种子数据并落盘。
// 任何失败都不会 panic，目录置空并把错误返回给调用方。
func (s *CatalogService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, kv.CatalogKey)
	if err != nil {
		s.products = nil
		return apperr.Storage("load catalog snapshot", err)
	}
	if ok {
		list, err := product.DecodeList([]byte(raw))
		if err != nil {
			s.products = nil
			return apperr.Format("catalog snapshot is not a product array", err)
		}
		s.products = list
		return nil
	}

	seeded, err := s.seed.FetchSeed(ctx)
	if err != nil {
		s.products = nil
		return err
	}
	// 种子拿到但落不了盘同样按软失败处理：目录置空并报错
	if err := s.persistLocked(ctx, seeded); err != nil {
		zap.L().Warn("persist seeded catalog failed", zap.Error(err))
		s.products = nil
		return err
	}
	s.products = seeded
	return nil
}

// Products 当前目录的副本，保持插入顺序
func (s *CatalogService) Products() []product.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get 按 ID 查找商品
func (s *CatalogService) Get(id product.ID) (product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, apperr.NotFound("product", int64(id))
}

// Add 校验草稿、分配下一个 ID、追加并落盘，返回创建的商品
func (s *CatalogService) Add(ctx context.Context, d product.Draft) (product.Product, error) {
	if err := validateDraft(d, false); err != nil {
		return product.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := product.Product{
		ID:          s.nextIDLocked(),
		Name:        d.Name,
		Price:       d.Price,
		Image:       d.Image,
		Category:    d.Category,
		Hot:         d.Hot,
		Description: d.Description,
	}
	next := append(s.copyLocked(), p)
	if err := s.persistLocked(ctx, next); err != nil {
		return product.Product{}, err
	}
	s.products = next
	s.notify("created", p.ID)
	return p, nil
}

// Update 替换 ID 对应商品的全部可变字段。草稿里没有新图片时沿用旧图，
// 和后台编辑表单不重新选文件的行为一致。
func (s *CatalogService) Update(ctx context.Context, id product.ID, d product.Draft) (product.Product, error) {
	if err := validateDraft(d, true); err != nil {
		return product.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return product.Product{}, apperr.NotFound("product", int64(id))
	}

	next := s.copyLocked()
	updated := next[idx]
	updated.Name = d.Name
	updated.Price = d.Price
	updated.Category = d.Category
	updated.Hot = d.Hot
	updated.Description = d.Description
	if d.Image != "" {
		updated.Image = d.Image
	}
	next[idx] = updated

	if err := s.persistLocked(ctx, next); err != nil {
		return product.Product{}, err
	}
	s.products = next
	s.notify("updated", id)
	return updated, nil
}

// Remove 删除商品，立即生效不可恢复
func (s *CatalogService) Remove(ctx context.Context, id product.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]product.Product, 0, len(s.products))
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return apperr.NotFound("product", int64(id))
	}
	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.products = next
	s.notify("deleted", id)
	return nil
}

// Persist 把完整目录写入持久化存储
func (s *CatalogService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx, s.products)
}

// Export 目录导出为交换格式（商品对象的 JSON 数组）
func (s *CatalogService) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return product.EncodeList(s.copyLocked())
}

// Import 整体替换目录。只在输入是合法的商品数组时生效，
// 否则返回格式错误并保持现有目录不变。
func (s *CatalogService) Import(ctx context.Context, data []byte) error {
	list, err := product.DecodeList(data)
	if err != nil {
		return apperr.Format("import payload is not a product array", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistLocked(ctx, list); err != nil {
		return err
	}
	s.products = list
	s.notify("imported", 0)
	return nil
}

// Reset 丢弃持久化快照并重新加载种子数据
func (s *CatalogService) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Del(ctx, kv.CatalogKey); err != nil {
		s.mu.Unlock()
		return apperr.Storage("delete catalog snapshot", err)
	}
	s.mu.Unlock()

	if err := s.Load(ctx); err != nil {
		return err
	}
	s.notify("reset", 0)
	return nil
}

func (s *CatalogService) nextIDLocked() product.ID {
	var max product.ID
	for _, p := range s.products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (s *CatalogService) copyLocked() []product.Product {
	out := make([]product.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *CatalogService) persistLocked(ctx context.Context, list []product.Product) error {
	data, err := product.EncodeList(list)
	if err != nil {
		return apperr.Storage("encode catalog snapshot", err)
	}
	if err := s.store.Set(ctx, kv.CatalogKey, string(data)); err != nil {
		return apperr.Storage("write catalog snapshot", err)
	}
	return nil
}

func (s *CatalogService) notify(action string, id product.ID) {
	if s.notifier == nil {
		return
	}
	s.notifier.CatalogChanged(action, id)
}

// validateDraft 创建时必填图片；更新时允许空图片（沿用旧图）
func validateDraft(d product.Draft, allowEmptyImage bool) error {
	if d.Name == "" {
		return apperr.Validation("name", "is required")
	}
	if d.Price < 0 {
		return apperr.Validation("price", "must be a non-negative integer")
	}
	if d.Image == "" && !allowEmptyImage {
		return apperr.Validation("image", "is required")
	}
	if d.Category == "" {
		return apperr.Validation("category", "is required")
	}
	return nil
}
