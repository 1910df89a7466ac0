package ebitenhost

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every Config variable name.
const envPrefix = "SPRIG_"

// Config holds the host settings. LoadConfig fills it from SPRIG_*
// environment variables; the envDefault tags are the values used when a
// variable is unset.
type Config struct {
	Title  string `env:"TITLE" envDefault:"sprig"`
	Width  int    `env:"WIDTH" envDefault:"960"`
	Height int    `env:"HEIGHT" envDefault:"640"`

	// UIScale multiplies every layout unit. Values <= 0 mean 1.
	UIScale      float64 `env:"UI_SCALE" envDefault:"1"`
	AntiAliasing bool    `env:"ANTI_ALIASING" envDefault:"true"`
	Debug        bool    `env:"DEBUG"`
	ShowFPS      bool    `env:"SHOW_FPS"`

	// ScreenshotDir receives PNG files from Context.Screenshot and the
	// "screenshot" test step.
	ScreenshotDir string `env:"SCREENSHOT_DIR" envDefault:"screenshots"`

	// TestScript is the path of a YAML or JSON script run through
	// sprig.TestRunner. ExitAfterScript ends the game once it finished.
	TestScript      string `env:"TEST_SCRIPT"`
	ExitAfterScript bool   `env:"EXIT_AFTER_SCRIPT"`
}

// LoadConfig reads Config from the process environment.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{Prefix: envPrefix})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("ebitenhost: load config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.UIScale <= 0 {
		cfg.UIScale = 1
	}
	return cfg, nil
}
