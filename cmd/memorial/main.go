package main

import (
	"log"

	"github.com/willowgate/memorial/internal/memorial/app"
)

//	@title			Memorial Service API
//	@version		0.1.0
//	@description	Obituary publishing service: accounts, obituaries, and moderated condolence comments.
//
//	@BasePath	/
func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
