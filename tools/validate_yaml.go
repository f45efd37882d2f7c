package main

import (
	"fmt"
	"os"

	"github.com/decker502/pufferfish/pkg/config"
)

func main() {
	path := config.DefaultConfigPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ YAML 格式正确: %s\n", path)
	fmt.Printf("✅ 场地: %.0fx%.0f 单位, %.0f 像素/单位\n", cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.PixelsPerUnit)
	fmt.Printf("✅ 河豚: 目标 %q, 尖刺 %d 根, 速度 %.1f~%.1f\n",
		cfg.Pufferfish.TargetTag, cfg.Pufferfish.NumberOfSpines, cfg.Pufferfish.MinSpeed, cfg.Pufferfish.MaxSpeed)
	fmt.Printf("✅ 礁石数量: %d\n", len(cfg.Obstacles))

	missing := 0
	for id, file := range cfg.Sounds {
		if _, err := os.Stat(file); err != nil {
			fmt.Printf("⚠️  音效 %s 文件不存在: %s（运行时使用合成音效）\n", id, file)
			missing++
		}
	}
	if _, ok := cfg.Sounds[cfg.Pufferfish.ExplosionSound]; !ok {
		fmt.Printf("❌ 爆炸音效 %s 未在 sounds 中定义\n", cfg.Pufferfish.ExplosionSound)
		os.Exit(1)
	}
	if missing == 0 {
		fmt.Printf("✅ 所有音效文件存在\n")
	}
}
