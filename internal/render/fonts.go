package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/fonts"
	"scrollgl/internal/utils"
)

// atlasRunes is the glyph set baked into every font atlas: printable ASCII,
// Latin-1 and common typographic punctuation.
var atlasRunes = func() []rune {
	var rs []rune
	for r := rune(32); r < 127; r++ {
		rs = append(rs, r)
	}
	for r := rune(160); r < 256; r++ {
		rs = append(rs, r)
	}
	return append(rs, '‘', '’', '“', '”', '–', '—', '…', '•', '€')
}()

type fontKey struct {
	resource string
	size     int32
}

// FontCache bakes raylib font atlases from the parsed font library, one per
// resource and pixel size.
type FontCache struct {
	lib   *fonts.Library
	cache map[fontKey]rl.Font

	bake        func(data []byte, size int32) rl.Font
	defaultFont func() rl.Font
}

func NewFontCache(lib *fonts.Library) *FontCache {
	return &FontCache{
		lib:         lib,
		cache:       make(map[fontKey]rl.Font),
		bake:        bakeAtlas,
		defaultFont: rl.GetFontDefault,
	}
}

func bakeAtlas(data []byte, size int32) rl.Font {
	font := rl.LoadFontFromMemory(".ttf", data, size, atlasRunes)
	if font.Texture.ID != 0 {
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	}
	return font
}

// Get returns the atlas for resource at size pixels, rounded up.
func (c *FontCache) Get(resource string, size float64) rl.Font {
	key := fontKey{resource: resource, size: int32(math.Max(1, math.Ceil(size)))}
	if font, ok := c.cache[key]; ok {
		return font
	}

	loaded := c.lib.Get(resource)
	if loaded == nil || len(loaded.Data) == 0 {
		utils.Warn("Render: no font data for %s, using raylib default", resource)
		return c.fallback(key)
	}

	font := c.bake(loaded.Data, key.size)
	if font.Texture.ID == 0 {
		utils.Warn("Render: atlas for %s@%d failed, using raylib default", loaded.Resource, key.size)
		return c.fallback(key)
	}

	utils.Debug("Render: baked %s@%d", loaded.Resource, key.size)
	c.cache[key] = font
	return font
}

// Default is the resource of the default weight.
func (c *FontCache) Default() string {
	return c.lib.Map().Resolve(fonts.DefaultWeight)
}

// fallback remembers the raylib default under key so a failed bake is not
// retried every frame.
func (c *FontCache) fallback(key fontKey) rl.Font {
	font := c.defaultFont()
	c.cache[key] = font
	return font
}

// Unload frees every baked atlas. raylib owns the default font.
func (c *FontCache) Unload() {
	def := c.defaultFont().Texture.ID
	for k, f := range c.cache {
		if f.Texture.ID != def {
			rl.UnloadFont(f)
		}
		delete(c.cache, k)
	}
}
