package main

import (
	"log"

	"cipherlab/internal/api/gateway"
	"cipherlab/internal/config"
)

func main() {
	cfg := config.Load()

	server := gateway.New(cfg.Addr())
	if err := server.Start(); err != nil {
		log.Fatalf("gateway server failed: %v", err)
	}
}
