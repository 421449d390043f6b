package main

import (
	"log"

	"github.com/kataras/iris/v12"

	"github.com/example/myshop/internal/config"
	"github.com/example/myshop/internal/server"
	applog "github.com/example/myshop/pkg/log"
)

func main() {
	applog.InitLogger()

	// 加载配置（config.yaml 不存在时使用默认配置）
	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := iris.New()
	// 注册 HTML 模板引擎，使用本项目下的 web/views 目录
	tmpl := iris.HTML("./web/views", ".html")
	tmpl.Reload(true) // 开发模式下启用热重载，方便调试

	// 价格格式化函数，详情页模板用它渲染越南盾金额
	tmpl.AddFunc("formatPrice", server.FormatPrice)

	app.RegisterView(tmpl)

	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	log.Printf("web server listening on %s", addr)
	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Fatalf("failed to run web server: %v", err)
	}
}
