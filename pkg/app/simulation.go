package app

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
	"github.com/decker502/pufferfish/pkg/systems"
)

// Simulation 持有实体与全部游戏逻辑系统，不依赖窗口与渲染
//
// 每帧按固定顺序推进：
// 输入 → 刷新 → 河豚 → 生命周期 → 延迟任务 → 物理（派发接触事件）→ 动画 → 音频 → 移除实体
type Simulation struct {
	EntityManager *ecs.EntityManager
	Config        *config.GameConfig
	PlayerID      ecs.EntityID

	input     systems.InputSource
	scheduler *systems.Scheduler

	playerSystem     *systems.PlayerSystem
	spawnSystem      *systems.SpawnSystem
	pufferfishSystem *systems.PufferfishSystem
	lifetimeSystem   *systems.LifetimeSystem
	physicsSystem    *systems.PhysicsSystem
	animationSystem  *systems.AnimationSystem
	audioSystem      *systems.AudioSystem

	paused bool
	frame  int
}

// NewSimulation 创建场景：玩家位于场地中央，按配置放置礁石
//
// 参数:
//   - cfg: 已校验的游戏配置
//   - input: 玩家输入
//   - sound: 音效后端，可为 nil
//   - seed: 随机种子（刷新位置与河豚速度）
func NewSimulation(cfg *config.GameConfig, input systems.InputSource, sound systems.SoundPlayer, seed int64) (*Simulation, error) {
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(seed))

	playerID, err := entities.NewPlayerEntity(em, cfg.Player, cfg.Arena.Width/2, cfg.Arena.Height/2)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	for i, o := range cfg.Obstacles {
		if _, err := entities.NewObstacleEntity(em, o); err != nil {
			return nil, fmt.Errorf("failed to create obstacle %d: %w", i, err)
		}
	}

	scheduler := systems.NewScheduler()
	pufferfishSystem := systems.NewPufferfishSystem(em, scheduler, cfg.Spine, rng)

	sim := &Simulation{
		EntityManager: em,
		Config:        cfg,
		PlayerID:      playerID,

		input:     input,
		scheduler: scheduler,

		playerSystem:     systems.NewPlayerSystem(em, input, cfg.Arena),
		spawnSystem:      systems.NewSpawnSystem(em, cfg, rng),
		pufferfishSystem: pufferfishSystem,
		lifetimeSystem:   systems.NewLifetimeSystem(em),
		physicsSystem:    systems.NewPhysicsSystem(em, pufferfishSystem, systems.NewSpineSystem(em)),
		animationSystem:  systems.NewAnimationSystem(em),
		audioSystem:      systems.NewAudioSystem(em, sound),
	}

	log.Printf("[Simulation] 场景创建完成: 玩家 %d, 礁石 %d 块, 种子 %d", playerID, len(cfg.Obstacles), seed)
	return sim, nil
}

// Paused 是否处于暂停状态
func (s *Simulation) Paused() bool {
	return s.paused
}

// Frame 已推进的帧数
func (s *Simulation) Frame() int {
	return s.frame
}

// PufferfishSystem 返回河豚系统（手动生成或查询统计）
func (s *Simulation) PufferfishSystem() *systems.PufferfishSystem {
	return s.pufferfishSystem
}

// Scheduler 返回延迟任务队列
func (s *Simulation) Scheduler() *systems.Scheduler {
	return s.scheduler
}

// HUD 返回渲染用统计
func (s *Simulation) HUD() systems.HUDStats {
	return systems.HUDStats{
		Pufferfish: s.pufferfishSystem.Stats(),
		Spawned:    s.spawnSystem.Spawned(),
		Paused:     s.paused,
	}
}

// Step 推进一帧
func (s *Simulation) Step(deltaTime float64) {
	if s.input.PauseJustPressed() {
		s.paused = !s.paused
		log.Printf("[Simulation] 暂停: %v", s.paused)
	}
	if s.paused {
		return
	}

	s.frame++

	s.playerSystem.Update(deltaTime)
	s.spawnSystem.Update(deltaTime)
	s.pufferfishSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.scheduler.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.animationSystem.Update(deltaTime)
	s.audioSystem.Update(deltaTime)
	s.EntityManager.RemoveMarkedEntities()

	// 每 5 秒输出一次状态
	if s.frame%300 == 0 {
		stats := s.pufferfishSystem.Stats()
		log.Printf("[Simulation] 帧 %d: 实体 %d, 引爆 %d, 直撞 %d, 尖刺 %d, 待执行任务 %d",
			s.frame, s.EntityManager.EntityCount(), stats.Detonations, stats.DirectHits, stats.SpinesSpawned, s.scheduler.Len())
	}
}
