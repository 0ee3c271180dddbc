package main

import (
	"flag"
	"log"
	"os"

	"fridgechef/internal/config"
	"fridgechef/internal/templates"
)

func main() {
	var addr string
	var dataDir string

	flag.StringVar(&addr, "addr", "", "address to bind (overrides FRIDGECHEF_ADDR)")
	flag.StringVar(&dataDir, "data", "", "directory for persisted client state (overrides FRIDGECHEF_DATA_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	shutdownLogs := setupLogging()
	defer shutdownLogs()

	if err := templates.Init(); err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	if err := runServer(cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
