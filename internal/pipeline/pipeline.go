// Package pipeline 实现目录列表的纯转换：搜索 → 过滤 → 排序 → 分页。
// 后台商品表格和前台商品网格共用同一条管线，本身不做任何 IO。
package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/myshop/internal/datamodels/product"
)

// 排序键；未知键一律回退到按 ID 升序
const (
	SortID        = "id"
	SortName      = "name"
	SortPrice     = "price"
	SortPriceDesc = "price_desc"
)

const defaultPageSize = 10

// Query 一次列表渲染的全部参数
type Query struct {
	Text     string // 名称/描述的大小写不敏感子串匹配，空串匹配全部
	Category string // 分类精确匹配，空串匹配全部
	Hot      bool   // 只看促销商品
	SortKey  string
	Page     int // 从 1 开始
	PageSize int
}

// View 对目录应用查询，返回当前页的商品和总页数。
// 相同输入必定得到相同输出；page 超出范围时返回空页，不做收敛。
func View(items []product.Product, q Query) ([]product.Product, int) {
	filtered := filter(items, q)
	sortStable(filtered, q.SortKey)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []product.Product{}, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

// filter 依次应用关键字、分类、促销过滤，结果是全新切片
func filter(items []product.Product, q Query) []product.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]product.Product, 0, len(items))
	for _, p := range items {
		if text != "" &&
			!strings.Contains(strings.ToLower(p.Name), text) &&
			!strings.Contains(strings.ToLower(p.Description), text) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Hot && !p.Hot {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortStable(items []product.Product, key string) {
	switch key {
	case SortName:
		// 名称排序用越南语排序规则
		c := collate.New(language.Vietnamese)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	case SortPrice:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price > items[j].Price
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ID < items[j].ID
		})
	}
}
