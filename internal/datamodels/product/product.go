package product

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID 商品主键。旧快照里 id 可能被写成数字字符串，
// 解码时统一归一化为 int64，避免字符串/数字混用导致比对失败。
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

// Product 商品模型
type Product struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"` // 最小货币单位
	Image       string `json:"image"` // 图片 URL 或 data URI
	Category    string `json:"category"`
	Hot         bool   `json:"hot"`
	Description string `json:"description"`
}

// Draft 创建/更新商品时的字段集合，ID 由目录服务分配
type Draft struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Hot         bool   `json:"hot"`
	Description string `json:"description"`
}

// DecodeList 按交换格式解析商品数组。顶层不是数组时返回错误；
// 元素级字段尽力解析，完全无法解析的元素被跳过。
func DecodeList(data []byte) ([]Product, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	list := make([]Product, 0, len(raw))
	for _, r := range raw {
		var p Product
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// EncodeList 将商品数组序列化为交换格式（带缩进，便于直接当导出文件用）
func EncodeList(list []Product) ([]byte, error) {
	if list == nil {
		list = []Product{}
	}
	return json.MarshalIndent(list, "", "  ")
}
