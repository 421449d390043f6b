package cart

import (
	"encoding/json"

	"github.com/example/myshop/internal/datamodels/product"
)

// Item 购物车条目：加入时刻的商品快照加数量。
// 价格/名称/图片在加入后不跟随目录编辑变化。
type Item struct {
	ID          product.ID `json:"id"`
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Hot         bool       `json:"hot"`
	Description string     `json:"description"`
	Quantity    int64      `json:"quantity"` // 最小为 1
}

// DecodeItems 解析购物车快照；数量缺失或小于 1 的条目收敛为 1
func DecodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
	}
	return items, nil
}

// EncodeItems 序列化购物车快照
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// FromProduct 以数量 1 复制商品快照
func FromProduct(p product.Product) Item {
	return Item{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Hot:         p.Hot,
		Description: p.Description,
		Quantity:    1,
	}
}
