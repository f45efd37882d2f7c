// simulate 无窗口运行河豚场景并输出统计
//
// 用法:
//
//	go run ./cmd/simulate --seconds 30 --seed 42
//	go run ./cmd/simulate --config data/pufferfish.yaml --verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/decker502/pufferfish/pkg/app"
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/utils"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", config.DefaultConfigPath, "游戏配置文件路径")
	seed       = flag.Int64("seed", 1, "随机种子")
	seconds    = flag.Float64("seconds", 20, "模拟时长（秒）")
	tps        = flag.Int("tps", 60, "每秒帧数")
)

// idleInput 玩家原地不动
type idleInput struct{}

func (idleInput) MoveAxis() utils.Vec2 { return utils.Vec2{} }
func (idleInput) PauseJustPressed() bool { return false }

// countingSound 只记录播放次数的音效后端
type countingSound struct {
	plays map[string]int
}

func (c *countingSound) PlaySound(soundID string) bool {
	c.plays[soundID]++
	return true
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if *tps <= 0 || *seconds < 0 {
		fmt.Fprintf(os.Stderr, "❌ 参数无效: tps=%d seconds=%.2f\n", *tps, *seconds)
		os.Exit(1)
	}

	sound := &countingSound{plays: make(map[string]int)}
	sim, err := app.NewSimulation(cfg, idleInput{}, sound, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 场景创建失败: %v\n", err)
		os.Exit(1)
	}

	dt := 1.0 / float64(*tps)
	frames := int(*seconds * float64(*tps))
	for i := 0; i < frames; i++ {
		sim.Step(dt)
	}

	hud := sim.HUD()
	em := sim.EntityManager

	fmt.Printf("✅ 模拟完成: %d 帧 (%.1f 秒), 种子 %d\n", sim.Frame(), *seconds, *seed)
	fmt.Printf("   刷新河豚: %d\n", hud.Spawned)
	fmt.Printf("   引爆次数: %d\n", hud.Pufferfish.Detonations)
	fmt.Printf("   直接撞击: %d\n", hud.Pufferfish.DirectHits)
	fmt.Printf("   生成尖刺: %d\n", hud.Pufferfish.SpinesSpawned)

	if player, ok := ecs.GetComponent[*components.PlayerComponent](em, sim.PlayerID); ok {
		fmt.Printf("   玩家被击中: %d\n", player.Hits)
	}

	alive := len(ecs.GetEntitiesWith1[*components.PufferfishComponent](em))
	fmt.Printf("   存活河豚: %d, 实体总数: %d, 待执行任务: %d\n", alive, em.EntityCount(), sim.Scheduler().Len())

	ids := make([]string, 0, len(sound.plays))
	for id := range sound.plays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("   音效 %s: %d 次\n", id, sound.plays[id])
	}
}
