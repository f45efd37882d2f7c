package systems

import (
	"github.com/decker502/pufferfish/pkg/components"
	"github.com/decker502/pufferfish/pkg/config"
	"github.com/decker502/pufferfish/pkg/ecs"
)

// PlayerSystem 根据输入设置玩家速度，并把玩家限制在场地内
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
	arena         config.ArenaConfig
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(em *ecs.EntityManager, input InputSource, arena config.ArenaConfig) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		input:         input,
		arena:         arena,
	}
}

// Update 写入玩家速度并夹紧上一帧积分后的位置
// 斜向移动速度与直线相同
func (s *PlayerSystem) Update(deltaTime float64) {
	axis := s.input.MoveAxis().Normalized()

	for _, id := range ecs.GetEntitiesWith3[*components.PlayerComponent, *components.PositionComponent, *components.VelocityComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		half := 0.0
		if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, id); ok {
			half = col.Width / 2
		}
		pos.X = clamp(pos.X, half, s.arena.Width-half)
		pos.Y = clamp(pos.Y, half, s.arena.Height-half)

		vel.VX = axis.X * player.Speed
		vel.VY = axis.Y * player.Speed
	}
}
