package systems

import (
	"errors"
	"log"
	"math"
	"math/rand"

	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
	"github.com/decker502/pufferfish/pkg/entities"
	"github.com/decker502/pufferfish/pkg/utils"
)

// SpawnSystem 按波次在场地边缘生成河豚
//
// 首次更新时生成 Initial 条，之后每隔 Interval 秒生成一条，
// 同时存在的河豚实体（含引爆中的）不超过 MaxAlive，MaxAlive 为 0 表示不限。
// 找不到目标时跳过本次生成。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	rng           *rand.Rand

	started bool
	timer   float64
	spawned int
}

// NewSpawnSystem 创建刷新系统
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		entityManager: em,
		cfg:           cfg,
		rng:           rng,
	}
}

// Spawned 已生成的河豚总数
func (s *SpawnSystem) Spawned() int {
	return s.spawned
}

// Update 推进刷新计时
func (s *SpawnSystem) Update(deltaTime float64) {
	if !s.started {
		s.started = true
		for i := 0; i < s.cfg.Spawner.Initial; i++ {
			s.trySpawn()
		}
		return
	}

	if s.cfg.Spawner.Interval <= 0 {
		return
	}

	s.timer += deltaTime
	for s.timer >= s.cfg.Spawner.Interval {
		s.timer -= s.cfg.Spawner.Interval
		s.trySpawn()
	}
}

// alive 当前存活的河豚数量
func (s *SpawnSystem) alive() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PufferfishComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}

func (s *SpawnSystem) trySpawn() {
	if s.cfg.Spawner.MaxAlive > 0 && s.alive() >= s.cfg.Spawner.MaxAlive {
		return
	}

	pos := s.edgePoint()
	center := utils.Vec2{X: s.cfg.Arena.Width / 2, Y: s.cfg.Arena.Height / 2}
	toCenter := center.Sub(pos)
	rotation := utils.NormalizeDegrees(utils.Rad2Deg * math.Atan2(toCenter.Y, toCenter.X))

	id, err := entities.NewPufferfishEntity(s.entityManager, s.cfg.Pufferfish, pos.X, pos.Y, rotation)
	if err != nil {
		if errors.Is(err, entities.ErrTargetNotFound) {
			log.Printf("[SpawnSystem] 跳过生成: %v", err)
			return
		}
		log.Printf("[SpawnSystem] 警告: 生成河豚失败: %v", err)
		return
	}

	s.spawned++
	log.Printf("[SpawnSystem] 第 %d 条河豚 %d 于 (%.1f, %.1f)", s.spawned, id, pos.X, pos.Y)
}

// edgePoint 在场地四条边上随机取一点（内缩半个身位）
func (s *SpawnSystem) edgePoint() utils.Vec2 {
	inset := s.cfg.Pufferfish.BodySize / 2
	w, h := s.cfg.Arena.Width, s.cfg.Arena.Height
	t := s.rng.Float64()

	switch s.rng.Intn(4) {
	case 0: // 下
		return utils.Vec2{X: inset + t*(w-2*inset), Y: inset}
	case 1: // 上
		return utils.Vec2{X: inset + t*(w-2*inset), Y: h - inset}
	case 2: // 左
		return utils.Vec2{X: inset, Y: inset + t*(h-2*inset)}
	default: // 右
		return utils.Vec2{X: w - inset, Y: inset + t*(h-2*inset)}
	}
}
