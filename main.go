// Command nightsky shows the animated sky backgrounds in a window.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--variant <name>   starfield, deepspace or cursor (default: saved choice)
//	--config <path>    variant file overriding the embedded data/variants.yaml
//	--seed <n>         random seed, 0 seeds from the clock
//	--no-cursor        disable the cursor trail overlay
//	--width, --height  initial window size
//	--verbose          enable logging
//
// Every flag defaults to the matching NIGHTSKY_* environment variable; a
// .env file in the working directory is loaded first.
//
// Controls:
//
//	V        - next variant
//	C        - toggle cursor trail
//	R        - reseed
//	F11      - fullscreen
//	H        - help overlay
//	Q/Escape - quit
package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/decker502/nightsky/pkg/app"
	"github.com/decker502/nightsky/pkg/embedded"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	variantFlag := flag.String("variant", os.Getenv("NIGHTSKY_VARIANT"), "Variant to show")
	configFlag := flag.String("config", os.Getenv("NIGHTSKY_CONFIG"), "Variant file overriding the embedded one")
	seedFlag := flag.Uint64("seed", envUint("NIGHTSKY_SEED", 0), "Random seed (0 = from clock)")
	noCursorFlag := flag.Bool("no-cursor", envBool("NIGHTSKY_NO_CURSOR"), "Disable the cursor trail overlay")
	widthFlag := flag.Int("width", app.DefaultWidth, "Initial window width")
	heightFlag := flag.Int("height", app.DefaultHeight, "Initial window height")
	verboseFlag := flag.Bool("verbose", envBool("NIGHTSKY_VERBOSE"), "Enable verbose logging (default off)")
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:    *verboseFlag,
		Variant:    *variantFlag,
		ConfigPath: *configFlag,
		Seed:       *seedFlag,
		NoCursor:   *noCursorFlag,
		Width:      *widthFlag,
		Height:     *heightFlag,
	}

	viewer, err := app.NewApp(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Night Sky")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil && !app.IsTermination(err) {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	viewer.Close()
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envUint(key string, def uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return def
	}
	return v
}
