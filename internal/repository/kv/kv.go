package kv

import "context"

// KV 持久化键值存储抽象：目录与购物车各占一个键，值为 JSON 快照。
// 取不到的键通过 ok=false 表示，而不是错误。
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// 快照键名
const (
	CatalogKey = "admin_products"
	CartKey    = "cart"
)
