package main

import (
	"fmt"

	"scrollgl/internal/config"
	"scrollgl/internal/fonts"
	"scrollgl/internal/page"
	"scrollgl/internal/utils"
)

type assets struct {
	doc   *page.Document
	fonts *fonts.Library
}

// loadAssets reads the page and starts parsing its fonts in the background.
func loadAssets(cfg config.Config) (*assets, error) {
	doc, err := page.Load(cfg.PagePath)
	if err != nil {
		return nil, err
	}
	utils.Info("Page loaded: %q, %d top-level blocks", doc.Title, len(doc.Blocks))

	fontMap, err := cfg.FontMap()
	if err != nil {
		return nil, fmt.Errorf("font map: %w", err)
	}

	lib := fonts.NewLibrary(fontMap)
	lib.Load()
	return &assets{doc: doc, fonts: lib}, nil
}
