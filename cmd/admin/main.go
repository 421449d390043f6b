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

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	log.Printf("admin server listening on %s", addr)
	if err := app.Run(iris.Addr(addr)); err != nil {
		log.Fatalf("failed to run admin server: %v", err)
	}
}
