package main

import (
	"go.uber.org/zap"

	"github.com/tcarranza/go-delivery-core/internal/app/config"
	"github.com/tcarranza/go-delivery-core/internal/app/controller/http/server"
	"github.com/tcarranza/go-delivery-core/internal/app/logger"
	storage "github.com/tcarranza/go-delivery-core/internal/app/storage/api"
)

func main() {
	config := config.InitConfig()

	err := logger.Initialize(config)
	if err != nil {
		panic(err)
	}

	store, err := storage.InitStorage(config)
	if err != nil {
		zap.L().Fatal("error while initializing storage", zap.Error(err))
	}
	defer store.Close()

	server.New(config, store).StartHTTPServer()
}
