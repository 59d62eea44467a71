package main

import (
	"context"
	"os"
	"time"

	"scrollgl/internal/config"
	"scrollgl/internal/page"
	"scrollgl/internal/utils"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		utils.Error("Invalid arguments: %v", err)
		os.Exit(2)
	}
	cfg.ApplyLogging()
	utils.ShowDebugUI = cfg.Debug
	utils.AssetsDir = cfg.AssetsDir

	if cfg.PackOutput != "" {
		if err := runPack(cfg.PagePath, cfg.PackOutput); err != nil {
			utils.Error("Pack failed: %v", err)
			os.Exit(1)
		}
		return
	}

	utils.Info("--- scrollgl start ---")

	assets, err := loadAssets(cfg)
	if err != nil {
		utils.Error("Startup failed: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := assets.fonts.Ready(ctx); err != nil {
		utils.Error("Fonts not ready: %v", err)
		os.Exit(1)
	}

	app, err := NewApp(cfg, assets)
	if err != nil {
		utils.Error("Startup failed: %v", err)
		os.Exit(1)
	}
	defer app.Close()

	utils.Info("Starting render loop...")
	app.Run()
}

// runPack writes the page as an lz4 bundle.
func runPack(pagePath, out string) error {
	doc, err := page.Load(pagePath)
	if err != nil {
		return err
	}
	if err := page.SaveBundle(doc, out); err != nil {
		return err
	}
	utils.Info("Pack successful! Saved to: %s", out)
	return nil
}
