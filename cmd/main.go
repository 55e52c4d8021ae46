package main

import (
	"log"

	"github.com/aitbenali/medina-journeys/cmd/app"
	"github.com/aitbenali/medina-journeys/internal/adapters/config"
	httpSetup "github.com/aitbenali/medina-journeys/internal/adapters/controller/http/setup"
)

func main() {
	cfg := config.Get()

	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = a.Start(httpSetup.Setup(a)); err != nil {
		log.Panic(err)
	}
}
