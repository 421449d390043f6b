package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Hot         bool   `json:"hot"`
	Description string `json:"description"`
}

type ApiResponse struct {
	Code       int             `json:"code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	TotalPages int             `json:"total_pages"`
}

// 运维脚本：把后台目录重置回种子数据并打印结果
func main() {
	adminURL := "http://localhost:8081/api"
	client := &http.Client{}

	fmt.Println("🔄 重置商品目录为种子数据...")
	fmt.Println("=" + strings.Repeat("=", 60))

	// 步骤1: 触发重置
	fmt.Println("\n[1/2] 调用重置接口...")
	resp, err := client.Post(adminURL+"/products-reset", "application/json", bytes.NewReader(nil))
	if err != nil {
		fmt.Printf("❌ 重置失败: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("❌ 读取响应失败: %v\n", err)
		return
	}
	var reset ApiResponse
	if err := json.Unmarshal(body, &reset); err != nil || reset.Code != 0 {
		fmt.Printf("❌ 重置接口返回异常: %s\n", string(body))
		return
	}
	fmt.Println("✅ 目录已重置")

	// 步骤2: 拉取重置后的商品列表
	fmt.Println("\n[2/2] 获取重置后的商品列表...")
	listResp, err := client.Get(adminURL + "/products?size=100")
	if err != nil {
		fmt.Printf("❌ 获取商品列表失败: %v\n", err)
		return
	}
	defer listResp.Body.Close()

	listBody, err := io.ReadAll(listResp.Body)
	if err != nil {
		fmt.Printf("❌ 读取响应失败: %v\n", err)
		return
	}
	var list ApiResponse
	if err := json.Unmarshal(listBody, &list); err != nil || list.Code != 0 {
		fmt.Printf("❌ 列表接口返回异常: %s\n", string(listBody))
		return
	}
	var products []Product
	if err := json.Unmarshal(list.Data, &products); err != nil {
		fmt.Printf("❌ 解析商品列表失败: %v\n", err)
		return
	}

	fmt.Printf("✅ 当前共 %d 个商品:\n", len(products))
	for _, p := range products {
		hot := ""
		if p.Hot {
			hot = " [HOT]"
		}
		fmt.Printf("  - #%d %s (%s) %d₫%s\n", p.ID, p.Name, p.Category, p.Price, hot)
	}
}
