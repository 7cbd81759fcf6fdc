package main

import (
	app "offer-proxy/internal/app/server"
	"offer-proxy/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	app.Run(cfg)
}
