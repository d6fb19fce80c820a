package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/sozarusac/callaudio/internal/cli"
	"github.com/sozarusac/callaudio/internal/config"
)

func main() {

	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
