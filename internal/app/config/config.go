package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	NetAddr   string `env:"RUN_ADDRESS"`
	DBConnect string `env:"DATABASE_URI"`
	LogLevel  string `env:"LOG_LEVEL"`

	// Kitchen scheduling knobs.
	CookRole          string `env:"COOK_ROLE"`
	DeliveryBufferMin int    `env:"DELIVERY_BUFFER_MIN"`
	DelayExtensionMin int    `env:"DELAY_EXTENSION_MIN"`
}

func InitConfig() (config Config) {
	flag.StringVar(&config.NetAddr, "a", "localhost:8080", "net address host:port")
	flag.StringVar(&config.DBConnect, "d", "", "database credentials in format: host=host port=port user=myuser password=xxxx dbname=mydb sslmode=disable")
	flag.StringVar(&config.LogLevel, "l", "info", "log level")
	flag.StringVar(&config.CookRole, "cook-role", "cook", "role denomination counted as kitchen staff")
	flag.IntVar(&config.DeliveryBufferMin, "delivery-buffer", 10, "minutes added to home-delivery orders")
	flag.IntVar(&config.DelayExtensionMin, "delay-extension", 10, "minutes added when an order is delayed")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		panic(fmt.Errorf("error while parsing config: %w", err))
	}

	return
}
