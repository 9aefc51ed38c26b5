package main

import (
	"os"

	"github.com/trendbook/search-backend/internal/app"
	config "github.com/trendbook/search-backend/internal/cfg"
	"github.com/trendbook/search-backend/pkg/logger"
)

//	@title			Visual Product Search API
//	@version		1.0
//	@description	Поиск товаров по визуальному сходству с ре-ранжированием кандидатов

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
