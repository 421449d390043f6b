package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/datamodels/product"
	"github.com/example/myshop/internal/repository/kv"
)

func phone() product.Product {
	return product.Product{
		ID: 2, Name: "iPhone 15", Price: 25000000, Image: "img/ip15.jpg", Category: "phone",
	}
}

func newTestCart(t *testing.T) (*CartService, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	svc := NewCartService(store)
	svc.Load(context.Background())
	return svc, store
}

func TestCartLoad_AbsentSnapshotIsEmpty(t *testing.T) {
	svc, _ := newTestCart(t)
	assert.Empty(t, svc.Items())
	assert.Zero(t, svc.Total())
}

func TestCartLoad_CorruptSnapshotIsEmpty(t *testing.T) {
	store := kv.NewMemory()
	require.NoError(t, store.Set(context.Background(), kv.CartKey, `not json at all`))

	svc := NewCartService(store)
	svc.Load(context.Background())
	assert.Empty(t, svc.Items())
}

func TestCartAddItem_SameProductIncrementsQuantity(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, phone()))
	require.NoError(t, svc.AddItem(ctx, phone()))

	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, phone().Price*2, svc.Total())
}

func TestCartAddItem_CopiesSnapshotFields(t *testing.T) {
	svc, _ := newTestCart(t)
	p := phone()
	require.NoError(t, svc.AddItem(context.Background(), p))

	// 加入后的条目是快照，不跟随商品对象的后续修改
	p.Price = 1
	items := svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(25000000), items[0].Price)
}

func TestCartSetQuantity_ClampsToOne(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, phone()))

	require.NoError(t, svc.SetQuantity(ctx, 2, 0))
	assert.Equal(t, int64(1), svc.Items()[0].Quantity)

	require.NoError(t, svc.SetQuantity(ctx, 2, 5))
	assert.Equal(t, int64(5), svc.Items()[0].Quantity)
}

func TestCartSetQuantity_UnknownIDIsNoop(t *testing.T) {
	svc, _ := newTestCart(t)
	require.NoError(t, svc.AddItem(context.Background(), phone()))
	require.NoError(t, svc.SetQuantity(context.Background(), 99, 3))
	assert.Equal(t, int64(1), svc.Items()[0].Quantity)
}

func TestCartRemoveItem_MatchesStringPersistedID(t *testing.T) {
	store := kv.NewMemory()
	// 旧快照里 id 被存成了字符串
	snapshot := `[{"id":"2","name":"iPhone 15","price":25000000,"image":"img/ip15.jpg","category":"phone","hot":false,"description":"","quantity":1}]`
	require.NoError(t, store.Set(context.Background(), kv.CartKey, snapshot))

	svc := NewCartService(store)
	svc.Load(context.Background())
	require.Len(t, svc.Items(), 1)

	// 数字 id 照样删得掉
	require.NoError(t, svc.RemoveItem(context.Background(), 2))
	assert.Empty(t, svc.Items())
}

func TestCartClear(t *testing.T) {
	svc, store := newTestCart(t)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, phone()))
	require.NoError(t, svc.Clear(ctx))

	assert.Empty(t, svc.Items())
	assert.Zero(t, svc.Total())

	// 清空也同步落盘
	raw, ok, err := store.Get(ctx, kv.CartKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, raw)
}

func TestCartMutation_PersistsBeforeReturning(t *testing.T) {
	svc, store := newTestCart(t)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, phone()))

	// 用落盘的快照重建，状态一致
	other := NewCartService(store)
	other.Load(ctx)
	assert.Equal(t, svc.Items(), other.Items())
	assert.Equal(t, svc.Total(), other.Total())
}

func TestCartAddItem_PersistFailureLeavesStateUnchanged(t *testing.T) {
	store := &failKV{Memory: kv.NewMemory()}
	svc := NewCartService(store)
	svc.Load(context.Background())

	store.failSet = true
	err := svc.AddItem(context.Background(), phone())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Empty(t, svc.Items())
}

func TestCartLoad_QuantityBelowOneIsClamped(t *testing.T) {
	store := kv.NewMemory()
	snapshot := `[{"id":2,"name":"iPhone 15","price":25000000,"image":"img/ip15.jpg","category":"phone","hot":false,"description":"","quantity":0}]`
	require.NoError(t, store.Set(context.Background(), kv.CartKey, snapshot))

	svc := NewCartService(store)
	svc.Load(context.Background())
	require.Len(t, svc.Items(), 1)
	assert.Equal(t, int64(1), svc.Items()[0].Quantity)
}
