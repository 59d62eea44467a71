// Package config holds the command-line configuration of the viewer.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"scrollgl/internal/fonts"
	"scrollgl/internal/scroll"
	"scrollgl/internal/textproxy"
	"scrollgl/internal/utils"
)

type Config struct {
	PagePath   string
	FontsPath  string
	AssetsDir  string
	PackOutput string

	Width  int
	Height int
	FPS    int

	Debug    bool
	LogLevel string

	Anchor        string
	ExitAnimation bool
	Particles     int
	Lerp          float64
}

func Default() Config {
	return Config{
		PagePath:      "pages/demo.json",
		AssetsDir:     "assets",
		Width:         1280,
		Height:        800,
		FPS:           60,
		LogLevel:      "warn",
		Anchor:        "left",
		ExitAnimation: true,
		Particles:     0,
		Lerp:          scroll.DefaultLerp,
	}
}

// Bind registers every field on fs with the current values as defaults.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.PagePath, "page", c.PagePath, "Path to the page document (.json or .lz4 bundle)")
	fs.StringVar(&c.FontsPath, "fonts", c.FontsPath, "Optional JSON map of font weight to font file")
	fs.StringVar(&c.AssetsDir, "assets", c.AssetsDir, "Directory searched first for relative paths")
	fs.StringVar(&c.PackOutput, "pack", c.PackOutput, "Write the page as an lz4 bundle to this path and exit")
	fs.IntVar(&c.Width, "width", c.Width, "Initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "Initial window height")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Target frame rate")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable verbose debug logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Minimum log level: debug, info, warn, error")
	fs.StringVar(&c.Anchor, "anchor", c.Anchor, "Text anchor: left or center")
	fs.BoolVar(&c.ExitAnimation, "exit-animation", c.ExitAnimation, "Hide text again when it leaves the viewport")
	fs.IntVar(&c.Particles, "particles", c.Particles, "Number of falling glyphs (0 disables them)")
	fs.Float64Var(&c.Lerp, "lerp", c.Lerp, "Scroll smoothing factor in (0, 1]")
}

// Parse builds a Config from command-line arguments.
func Parse(name string, args []string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.PagePath == "" {
		errs = append(errs, errors.New("-page is required"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("-fps %d must be positive", c.FPS))
	}
	if _, err := utils.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseAnchor(c.Anchor); err != nil {
		errs = append(errs, err)
	}
	if c.Particles < 0 {
		errs = append(errs, fmt.Errorf("-particles %d must not be negative", c.Particles))
	}
	if c.Lerp <= 0 || c.Lerp > 1 {
		errs = append(errs, fmt.Errorf("-lerp %v must be in (0, 1]", c.Lerp))
	}
	return errors.Join(errs...)
}

func ParseAnchor(name string) (textproxy.Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "":
		return textproxy.AnchorLeft, nil
	case "center", "centre":
		return textproxy.AnchorCenter, nil
	}
	return textproxy.AnchorLeft, fmt.Errorf("unknown anchor %q", name)
}

// ProxyOptions turns the text settings into proxy options.
func (c Config) ProxyOptions() []textproxy.Option {
	anchor, _ := ParseAnchor(c.Anchor)
	return []textproxy.Option{
		textproxy.WithAnchor(anchor),
		textproxy.WithExitAnimation(c.ExitAnimation),
	}
}

// FontMap loads the -fonts file, or returns the embedded default map.
func (c Config) FontMap() (fonts.Map, error) {
	if c.FontsPath == "" {
		return fonts.DefaultMap(), nil
	}
	return fonts.LoadMap(c.FontsPath)
}

// ApplyLogging copies the logging settings into the logger.
func (c Config) ApplyLogging() {
	utils.DebugMode = c.Debug
	if level, err := utils.ParseLogLevel(c.LogLevel); err == nil {
		utils.CurrentLevel = level
	}
	if c.Debug {
		utils.CurrentLevel = utils.LevelDebug
	}
}
