package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mpavlovs/parkgate/internal/client/cli"
	"github.com/mpavlovs/parkgate/internal/client/config"
)

func main() {

	// optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
