package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/mpavlovs/parkgate/internal/gateway"
	"github.com/mpavlovs/parkgate/internal/gateway/config"
)

func main() {

	// optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app := gateway.NewApp(cfg)
	app.Run(context.Background())
}
