package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/freshcart/freshcart-api/cmd/freshcart-api/app"
	"github.com/freshcart/freshcart-api/configs"
)

func main() {
	_ = godotenv.Load() // local runs; ignored when no .env exists

	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	a, cleanup, err := app.InitWithConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	log.Printf("freshcart-api (%s) listening on %s", env, cfg.App.HTTPAddr)
	if err := a.Router.Run(cfg.App.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
