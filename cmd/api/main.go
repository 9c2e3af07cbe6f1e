package main

import (
	"context"
	"log"

	"github.com/sngm3741/restaurant-recs/api/internal/config"
	"github.com/sngm3741/restaurant-recs/api/internal/infrastructure/storage"
	"github.com/sngm3741/restaurant-recs/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	logger := server.NewLogger(cfg)

	stores, err := storage.Open(context.Background(), cfg, logger.Logger)
	if err != nil {
		log.Fatalf("ストア接続に失敗しました: %v", err)
	}

	app := server.New(cfg, stores, logger)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
