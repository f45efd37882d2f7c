// Package app 提供游戏应用的核心包装器
//
// 该包负责加载配置、创建音频与设置管理器、组装 Simulation，
// 并实现 ebiten.Game 接口。main.go 只负责解析命令行参数。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/pufferfish/pkg/game"
	"github.com/decker502/pufferfish/pkg/systems"
)

// AppName 用于 gdata 存储目录与窗口标题
const AppName = "pufferfish"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sim             *Simulation
	renderSystem    *systems.RenderSystem
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	screenWidth     int
	screenHeight    int
	verbose         bool
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	// 设置持久化失败时以内存设置运行
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 不可用，设置不会保存: %v", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)

	// 初始化音频
	audioContext := audio.NewContext(game.DefaultSampleRate)
	resourceManager := game.NewResourceManager(audioContext, gameConfig.Sounds)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.PreloadSounds([]string{gameConfig.Pufferfish.ExplosionSound})
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim, err := NewSimulation(gameConfig, systems.KeyboardInput{}, audioManager, seed)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	renderSystem := systems.NewRenderSystem(sim.EntityManager, gameConfig.Arena)
	renderSystem.ShowSensors = settingsManager.GetSettings().ShowSensors

	width, height := gameConfig.ScreenSize()
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sim:             sim,
		renderSystem:    renderSystem,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		screenWidth:     width,
		screenHeight:    height,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settingsManager.SetFullscreen(fullscreen)
		a.saveSettings()
	}

	// F3 显示/隐藏感应区
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.renderSystem.ShowSensors = !a.renderSystem.ShowSensors
		a.settingsManager.SetShowSensors(a.renderSystem.ShowSensors)
		a.saveSettings()
	}

	// M 静音切换
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !a.settingsManager.GetSettings().SoundEnabled
		a.settingsManager.SetSoundEnabled(enabled)
		a.saveSettings()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sim.Step(deltaTime)
	return nil
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: 保存设置失败: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.renderSystem.Draw(screen, a.sim.HUD())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// ScreenSize 返回窗口像素尺寸
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// Simulation 返回游戏逻辑
func (a *App) Simulation() *Simulation {
	return a.sim
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
