package main

import (
	"context"
	"log"
	"os"

	"audiograb/internal/config"
	"audiograb/internal/downloader"
	"audiograb/internal/server"
	"audiograb/internal/task"
)

func main() {
	// Optional: Load config from file if exists
	if err := config.LoadConfig("config.json"); err != nil {
		log.Println("Note: config.json not found or invalid, using defaults")
	}

	// Create download dir if not exists
	if err := os.MkdirAll(config.GlobalConfig.DownloadDir, 0755); err != nil {
		log.Fatalf("Failed to create download directory: %v", err)
	}

	// Make sure the yt-dlp binary is available before serving requests.
	downloader.Install(context.Background())

	client := downloader.NewClient()
	mgr := task.NewManager(client, config.GlobalConfig.DownloadDir)

	srv := server.NewServer(mgr, client)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
