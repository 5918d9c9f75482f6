package main

import (
	"log"

	"github.com/MrSnakeDoc/appdeck/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ appdeck failed to initialize: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ appdeck failed: %v", err)
	}
}
