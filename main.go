package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pufferfish/pkg/app"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", config.DefaultConfigPath, "游戏配置文件路径")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，错误仍需输出
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to start: %v", err)
	}

	width, height := game.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Pufferfish")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
