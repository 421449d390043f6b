// Package remote 访问前台使用的远端商品集合（my-json-server 风格）
// 以及目录首次加载的种子数据源。
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/config"
	"github.com/example/myshop/internal/datamodels/product"
)

// Client 远端集合客户端。请求统一带超时，失败包装为网络错误返回，
// 不会让底层 HTTP 错误直接穿透到上层。
type Client struct {
	baseURL string
	seedURL string
	http    *http.Client
}

func NewClient(remoteCfg *config.RemoteConfig, seedCfg *config.SeedConfig) *Client {
	return &Client{
		baseURL: remoteCfg.BaseURL,
		seedURL: seedCfg.URL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// List 拉取远端商品列表
func (c *Client) List(ctx context.Context) ([]product.Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products")
	if err != nil {
		return nil, err
	}
	list, err := product.DecodeList(body)
	if err != nil {
		return nil, apperr.Format("remote product list is not an array", err)
	}
	return list, nil
}

// Get 按 ID 拉取单个远端商品
func (c *Client) Get(ctx context.Context, id product.ID) (product.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, int64(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return product.Product{}, apperr.Network("build request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return product.Product{}, apperr.Network("fetch "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return product.Product{}, apperr.NotFound("product", int64(id))
	}
	if resp.StatusCode != http.StatusOK {
		return product.Product{}, apperr.Network("fetch "+url, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return product.Product{}, apperr.Network("read response", err)
	}
	var p product.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return product.Product{}, apperr.Format("remote product is not valid JSON", err)
	}
	return p, nil
}

// FetchSeed 拉取种子文档 {"products": [...]}
func (c *Client) FetchSeed(ctx context.Context) ([]product.Product, error) {
	body, err := c.get(ctx, c.seedURL)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Products []product.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperr.Format("seed document is not valid JSON", err)
	}
	return doc.Products, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Network("build request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Network("fetch "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Network("fetch "+url, fmt.Errorf("status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Network("read response", err)
	}
	return body, nil
}
