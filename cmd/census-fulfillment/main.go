package main

import (
	"log"
	"os"

	"github.com/futig/census-agent/internal/builder"
)

func main() {
	app, err := builder.Build(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatal("Failed to build application:", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("Application error:", err)
	}
}
