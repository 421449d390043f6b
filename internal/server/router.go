package server

import (
	"context"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/config"
	"github.com/example/myshop/internal/datamodels/product"
	"github.com/example/myshop/internal/infra/redis"
	"github.com/example/myshop/internal/middleware"
	"github.com/example/myshop/internal/pipeline"
	"github.com/example/myshop/internal/remote"
	"github.com/example/myshop/internal/repository/kv"
	"github.com/example/myshop/internal/service"
)

// RegisterRoutes 注册前台 HTTP 路由。
// 前台商品数据来自远端集合（与后台本地目录解耦），购物车走本地持久化存储。
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	redisClient := redis.Init(&cfg.Redis)
	store := kv.NewRedis(redisClient)

	client := remote.NewClient(&cfg.Remote, &cfg.Seed)
	cache := remote.NewCache(client, 30*time.Second)

	cartSvc := service.NewCartService(store)
	cartSvc.Load(context.Background())

	// 静态资源：挂载前端静态文件（CSS/JS/图片）
	app.HandleDir("/assets", iris.Dir("./web/assets"))

	// 首页：使用 web/index.html 作为入口页
	app.Get("/", func(ctx iris.Context) {
		_ = ctx.ServeFile("./web/index.html")
	})

	// 商品详情页（服务端渲染）
	app.Get("/product/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		p, err := client.Get(ctx.Request().Context(), product.ID(pid))
		if err != nil {
			ctx.Application().Logger().Warnf("查询商品失败 (ID: %d): %v", pid, err)
			ctx.StatusCode(apperr.HTTPStatus(err))
			_ = ctx.View("shared/error.html", iris.Map{
				"showMessage": fmt.Sprintf("商品不存在或已下线 (ID: %d)", pid),
			})
			return
		}
		if err := ctx.View("product/view.html", iris.Map{"product": p}); err != nil {
			ctx.Application().Logger().Errorf("渲染商品详情页失败: %v", err)
		}
	})

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 商品列表（支持搜索/分类/促销过滤与排序分页）
	api.Get("/products", func(ctx iris.Context) {
		list, err := cache.Products(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(apperr.HTTPStatus(err), iris.Map{"code": apperr.HTTPStatus(err), "msg": err.Error()})
			return
		}

		q := pipeline.Query{
			Text:     ctx.URLParam("q"),
			Category: ctx.URLParam("category"),
			Hot:      ctx.URLParam("hot") == "true",
			SortKey:  storefrontSortKey(ctx.URLParam("sort")),
			Page:     ctx.URLParamIntDefault("page", 1),
			PageSize: ctx.URLParamIntDefault("size", cfg.List.PageSize),
		}
		items, totalPages := pipeline.View(list, q)
		ctx.JSON(iris.Map{"code": 0, "data": items, "total_pages": totalPages})
	})

	// 商品详情
	api.Get("/products/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		p, err := client.Get(ctx.Request().Context(), product.ID(pid))
		if err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// ---------- 购物车 ----------

	// 查看购物车
	api.Get("/cart", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code":  0,
			"data":  cartSvc.Items(),
			"total": cartSvc.Total(),
			"count": cartSvc.Count(),
		})
	})

	// 加入购物车：先从远端集合拉商品，再写入本地购物车。
	// 限流防止连点“立即购买”把远端免费服务刷爆。
	api.Post("/cart/items", middleware.RateLimit(20, 10), func(ctx iris.Context) {
		var req struct {
			ID product.ID `json:"id"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if req.ID == 0 {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "id is required"})
			return
		}

		p, err := client.Get(ctx.Request().Context(), req.ID)
		if err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		if err := cartSvc.AddItem(ctx.Request().Context(), p); err != nil {
			zap.L().Warn("add cart item failed", zap.Int64("product_id", int64(req.ID)), zap.Error(err))
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": cartSvc.Items(), "count": cartSvc.Count()})
	})

	// 调整数量（最小 1）
	api.Put("/cart/items/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		var req struct {
			Quantity int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := cartSvc.SetQuantity(ctx.Request().Context(), product.ID(pid), req.Quantity); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": cartSvc.Items(), "total": cartSvc.Total()})
	})

	// 删除条目
	api.Delete("/cart/items/{id:uint64}", func(ctx iris.Context) {
		pid, _ := ctx.Params().GetUint64("id")
		if err := cartSvc.RemoveItem(ctx.Request().Context(), product.ID(pid)); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": cartSvc.Items(), "total": cartSvc.Total()})
	})

	// 清空购物车
	api.Delete("/cart", func(ctx iris.Context) {
		if err := cartSvc.Clear(ctx.Request().Context()); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "cleared"})
	})
}

// storefrontSortKey 把前台排序选择器的取值映射到管线排序键，
// asc/desc 是价格排序选项，其余直接透传（未知键由管线回退）
func storefrontSortKey(v string) string {
	switch v {
	case "asc":
		return pipeline.SortPrice
	case "desc":
		return pipeline.SortPriceDesc
	default:
		return v
	}
}
