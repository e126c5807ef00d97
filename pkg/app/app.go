// Package app 提供查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/embedded"
	"github.com/decker502/nightsky/pkg/engine"
	"github.com/decker502/nightsky/pkg/game"
	"github.com/decker502/nightsky/pkg/host/ebitenhost"
)

// 默认窗口尺寸
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 启动变体，为空则使用保存的设置
	Variant string
	// ConfigPath 覆盖内置的 data/variants.yaml
	ConfigPath string
	// Seed 随机种子，0 则使用保存的设置（仍为 0 时按时间）
	Seed uint64
	// NoCursor 禁用光标轨迹叠加层
	NoCursor bool
	// Width/Height 初始窗口尺寸
	Width, Height int
}

// App 实现 ebiten.Game：主星空引擎 + 可选的光标叠加引擎
type App struct {
	host     *ebitenhost.Host
	variants *config.VariantsFile
	settings *game.SettingsManager

	sky     *engine.Engine
	overlay *engine.Engine // 光标轨迹，始终在最上层
	seed    uint64

	showHelp bool
	verbose  bool
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源（或提供 ConfigPath）。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	variants, err := embedded.LoadVariants(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("变体配置加载失败: %w", err)
	}
	log.Printf("[Config] Loaded variants: %v", variants.Names())

	settings := game.NewSettingsManager(game.OpenStorage())
	s := settings.GetSettings()

	name := cfg.Variant
	if name == "" {
		name = s.Variant
	}
	if _, err := variants.Find(name); err != nil {
		if cfg.Variant != "" {
			return nil, err
		}
		// 保存的变体可能已从配置中移除
		log.Printf("[App] Saved variant %q not available, using %q", name, variants.Names()[0])
		name = variants.Names()[0]
	}
	settings.SetVariant(name)
	if cfg.NoCursor {
		settings.SetCursorTrail(false)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = s.Seed
	}

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}

	a := &App{
		host:     ebitenhost.New(w, h),
		variants: variants,
		settings: settings,
		seed:     seed,
		verbose:  cfg.Verbose,
	}
	if err := a.mountAll(); err != nil {
		return nil, err
	}
	if s.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Printf("[App] Started with variant %s", name)
	return a, nil
}

// mountAll 按顺序挂载主引擎和光标叠加层，保证叠加层的表面在最上面
func (a *App) mountAll() error {
	a.unmountAll()

	s := a.settings.GetSettings()
	v, err := a.variants.Find(s.Variant)
	if err != nil {
		return err
	}
	a.sky = engine.New(v, engine.WithSeed(a.seed))
	if err := a.sky.Mount(a.host); err != nil {
		return fmt.Errorf("挂载 %s 失败: %w", v.Name, err)
	}

	if s.CursorTrail && v.Cursor == nil {
		cv, err := a.variants.Find(config.VariantCursor)
		if err != nil {
			log.Printf("[App] Cursor overlay unavailable: %v", err)
			return nil
		}
		a.overlay = engine.New(cv, engine.WithSeed(a.seed))
		if err := a.overlay.Mount(a.host); err != nil {
			return fmt.Errorf("挂载光标层失败: %w", err)
		}
	}
	return nil
}

func (a *App) unmountAll() {
	if a.sky != nil {
		a.sky.Unmount()
		a.sky = nil
	}
	if a.overlay != nil {
		a.overlay.Unmount()
		a.overlay = nil
	}
}

// Update 处理快捷键，然后推进宿主帧
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		a.Close()
		return ebiten.Termination

	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		next := a.variants.Next(a.settings.GetSettings().Variant)
		a.settings.SetVariant(next)
		log.Printf("[App] Switching to variant %s", next)
		if err := a.mountAll(); err != nil {
			return err
		}
		a.save()

	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		on := !a.settings.GetSettings().CursorTrail
		a.settings.SetCursorTrail(on)
		log.Printf("[App] Cursor trail: %v", on)
		if err := a.mountAll(); err != nil {
			return err
		}
		a.save()

	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.seed = uint64(time.Now().UnixNano())
		a.sky.Reseed(a.seed)
		a.settings.SetSeed(a.seed)
		a.save()

	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		full := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(full)
		a.settings.SetFullscreen(full)
		a.save()

	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.showHelp = !a.showHelp
	}

	return a.host.Update()
}

// Draw 合成所有引擎表面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.host.Draw(screen)
	if a.showHelp {
		ebitenutil.DebugPrint(screen, a.helpText())
	}
}

func (a *App) helpText() string {
	s := a.settings.GetSettings()
	particles := 0
	if st := a.sky.Store(); st != nil {
		particles = st.Len()
	}
	return fmt.Sprintf("variant: %s  particles: %d  tps: %.0f\n"+
		"V next variant  C cursor trail (%v)  R reseed  F11 fullscreen  H help  Q quit",
		s.Variant, particles, ebiten.ActualTPS(), s.CursorTrail)
}

// Layout 视口跟随窗口尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.host.Layout(outsideWidth, outsideHeight)
}

// Close 卸载引擎并保存设置
func (a *App) Close() {
	a.unmountAll()
	a.save()
}

func (a *App) save() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// IsTermination reports whether err is the regular quit signal.
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
