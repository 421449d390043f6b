package server

import (
	"context"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/myshop/internal/apperr"
	"github.com/example/myshop/internal/config"
	"github.com/example/myshop/internal/datamodels/product"
	"github.com/example/myshop/internal/infra/mq"
	"github.com/example/myshop/internal/infra/redis"
	"github.com/example/myshop/internal/pipeline"
	"github.com/example/myshop/internal/remote"
	"github.com/example/myshop/internal/repository/kv"
	"github.com/example/myshop/internal/service"
)

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	// 初始化基础设施
	redisClient := redis.Init(&cfg.Redis)
	store := kv.NewRedis(redisClient)
	seedClient := remote.NewClient(&cfg.Remote, &cfg.Seed)

	// 配置了 MQ 时才发布目录变更事件
	var notifier service.Notifier
	if cfg.RabbitMQ.URL != "" {
		n, err := service.NewMQNotifier(mq.Init(&cfg.RabbitMQ))
		if err != nil {
			zap.L().Warn("catalog event notifier disabled", zap.Error(err))
		} else {
			notifier = n
		}
	}

	catalogSvc := service.NewCatalogService(store, seedClient, notifier)
	// 初次加载软失败：目录为空也照常起服务，错误记日志
	if err := catalogSvc.Load(context.Background()); err != nil {
		zap.L().Warn("initial catalog load failed", zap.Error(err))
	}

	// 静态资源
	app.HandleDir("/assets", iris.Dir("./web/admin/assets"))
	app.Get("/", func(ctx iris.Context) {
		_ = ctx.ServeFile("./web/admin/index.html")
	})

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})

	// ---------- 商品管理 ----------

	// 商品列表（搜索/分类/排序/分页，与后台表格的渲染参数一一对应）
	api.Get("/products", func(ctx iris.Context) {
		q := pipeline.Query{
			Text:     ctx.URLParam("q"),
			Category: ctx.URLParam("category"),
			SortKey:  ctx.URLParamDefault("sort", pipeline.SortID),
			Page:     ctx.URLParamIntDefault("page", 1),
			PageSize: ctx.URLParamIntDefault("size", cfg.List.PageSize),
		}
		items, totalPages := pipeline.View(catalogSvc.Products(), q)
		ctx.JSON(iris.Map{"code": 0, "data": items, "total_pages": totalPages})
	})

	// 商品详情
	api.Get("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		p, err := catalogSvc.Get(product.ID(id))
		if err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 创建商品
	api.Post("/products", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p, err := catalogSvc.Add(ctx.Request().Context(), req.toDraft())
		if err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 更新商品
	api.Put("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p, err := catalogSvc.Update(ctx.Request().Context(), product.ID(id), req.toDraft())
		if err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// 删除商品
	api.Delete("/products/{id:uint64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetUint64("id")
		if err := catalogSvc.Remove(ctx.Request().Context(), product.ID(id)); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "deleted"})
	})

	// ---------- 导入 / 导出 / 重置 ----------

	// 导出目录为 products_export.json
	api.Get("/products-export", func(ctx iris.Context) {
		data, err := catalogSvc.Export()
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="products_export.json"`)
		ctx.ContentType("application/json")
		_, _ = ctx.Write(data)
	})

	// 导入目录：请求体必须是商品对象的 JSON 数组，否则拒绝且目录不变
	api.Post("/products-import", func(ctx iris.Context) {
		body, err := ctx.GetBody()
		if err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := catalogSvc.Import(ctx.Request().Context(), body); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "imported"})
	})

	// 重置目录：丢弃快照并重新拉种子数据
	api.Post("/products-reset", func(ctx iris.Context) {
		if err := catalogSvc.Reset(ctx.Request().Context()); err != nil {
			status := apperr.HTTPStatus(err)
			ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "reset"})
	})
}

// ---- 辅助结构与函数 ----

type productRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Hot         bool   `json:"hot"`
	Description string `json:"description"`
}

func (r *productRequest) toDraft() product.Draft {
	return product.Draft{
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
		Hot:         r.Hot,
		Description: r.Description,
	}
}
