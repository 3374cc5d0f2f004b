package main

import (
	"os"

	"github.com/neimd2025/web-ndrop-sub000/core/logger"
	"github.com/neimd2025/web-ndrop-sub000/core/server"
)

// @title ndrop API
// @version 1.0
// @description Event networking backend: events, participants, business cards, meeting requests and chat

// @host localhost:7070
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
		os.Exit(1)
	}
}
