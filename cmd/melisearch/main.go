package main

import (
	"log"

	"github.com/jloaiza/melisearch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ melisearch failed to start: %v", err)
	}
}
