package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/electrozone/productservice/config"
	"github.com/electrozone/productservice/internal/adminapi"
	"github.com/electrozone/productservice/internal/app"
	"github.com/electrozone/productservice/internal/repository"
	"github.com/electrozone/productservice/internal/webserver"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	confFile = flag.String("conf", "productservice.yml", "config file")
	initDb   = flag.Bool("initdb", false, "drop tables, migrate and load demo data")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	categories := repository.NewGormCategoryRepository(application.DB())
	products := repository.NewGormProductRepository(application.DB())

	server := webserver.New(cfg)
	adminapi.RegisterHealthRoutes(server.Echo())
	adminapi.NewCategoryAPI(categories).Register(server.Echo())
	adminapi.NewProductAPI(products, categories).Register(server.Echo())

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("web server shutdown: %v", err)
	}
}
